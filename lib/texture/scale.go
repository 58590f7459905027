package texture

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Lanczos3 is a Lanczos resampling kernel with a support of 3.
var Lanczos3 = &draw.Kernel{
	Support: 3,
	At: func(t float64) float64 {
		if t < 0 {
			t = -t
		}
		if t >= 3 {
			return 0
		}
		return sinc(t) * sinc(t/3)
	},
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	x *= math.Pi
	return math.Sin(x) / x
}

func checkSize(size int) error {
	if size <= 0 || size > 1<<16 {
		return fmt.Errorf("invalid texture size: %d", size)
	}
	return nil
}

// ResizeRGB returns the image scaled to size x size. If the image already
// has that size it is returned unchanged.
func ResizeRGB(im *image.RGBA, size int) (*image.RGBA, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	if im.Rect.Dx() == size && im.Rect.Dy() == size {
		return im, nil
	}
	out := image.NewRGBA(image.Rectangle{Max: image.Point{X: size, Y: size}})
	Lanczos3.Scale(out, out.Rect, im, im.Rect, draw.Src, nil)
	// The kernel can ring into alpha at hard edges; the output is RGB.
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out, nil
}

// ResizeGray returns the image scaled to size x size. If the image already
// has that size it is returned unchanged.
func ResizeGray(im *image.Gray, size int) (*image.Gray, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	if im.Rect.Dx() == size && im.Rect.Dy() == size {
		return im, nil
	}
	out := image.NewGray(image.Rectangle{Max: image.Point{X: size, Y: size}})
	Lanczos3.Scale(out, out.Rect, im, im.Rect, draw.Src, nil)
	return out, nil
}
