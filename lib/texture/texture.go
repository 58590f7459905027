package texture

import (
	"fmt"
	"image"
)

// InvertGreen inverts the green channel of an opaque image in place. This
// converts a normal map between the OpenGL and DirectX conventions.
func InvertGreen(im *image.RGBA) {
	xsz := im.Rect.Dx()
	ysz := im.Rect.Dy()
	for y := 0; y < ysz; y++ {
		off := im.PixOffset(im.Rect.Min.X, im.Rect.Min.Y+y)
		row := im.Pix[off : off+xsz*4 : off+xsz*4]
		for x := 0; x < xsz; x++ {
			row[x*4+1] = 255 - row[x*4+1]
		}
	}
}

// Invert returns a new image with every value v replaced by 255-v.
func Invert(im *image.Gray) *image.Gray {
	out := image.NewGray(im.Rect)
	xsz := im.Rect.Dx()
	ysz := im.Rect.Dy()
	for y := 0; y < ysz; y++ {
		ioff := im.PixOffset(im.Rect.Min.X, im.Rect.Min.Y+y)
		irow := im.Pix[ioff : ioff+xsz : ioff+xsz]
		orow := out.Pix[y*out.Stride : y*out.Stride+xsz : y*out.Stride+xsz]
		for x, v := range irow {
			orow[x] = 255 - v
		}
	}
	return out
}

// Uniform returns a size x size gray image filled with v.
func Uniform(size int, v uint8) *image.Gray {
	out := image.NewGray(image.Rectangle{Max: image.Point{X: size, Y: size}})
	for i := range out.Pix {
		out.Pix[i] = v
	}
	return out
}

// Merge combines three gray images of the same size into the red, green, and
// blue channels of an opaque image.
func Merge(r, g, b *image.Gray) (*image.RGBA, error) {
	sz := r.Rect.Size()
	if g.Rect.Size() != sz || b.Rect.Size() != sz {
		return nil, fmt.Errorf("channel sizes differ: %v, %v, %v",
			sz, g.Rect.Size(), b.Rect.Size())
	}
	out := image.NewRGBA(image.Rectangle{Max: sz})
	chans := [3]*image.Gray{r, g, b}
	for y := 0; y < sz.Y; y++ {
		orow := out.Pix[y*out.Stride : y*out.Stride+sz.X*4 : y*out.Stride+sz.X*4]
		for c, ch := range chans {
			off := ch.PixOffset(ch.Rect.Min.X, ch.Rect.Min.Y+y)
			irow := ch.Pix[off : off+sz.X : off+sz.X]
			for x, v := range irow {
				orow[x*4+c] = v
			}
		}
		for x := 0; x < sz.X; x++ {
			orow[x*4+3] = 0xff
		}
	}
	return out, nil
}

// Channel extracts one channel (0=red, 1=green, 2=blue, 3=alpha) of an RGBA
// image as a gray image.
func Channel(im *image.RGBA, c int) *image.Gray {
	if c < 0 || 3 < c {
		panic("invalid channel")
	}
	xsz := im.Rect.Dx()
	ysz := im.Rect.Dy()
	out := image.NewGray(image.Rectangle{Max: image.Point{X: xsz, Y: ysz}})
	for y := 0; y < ysz; y++ {
		off := im.PixOffset(im.Rect.Min.X, im.Rect.Min.Y+y)
		irow := im.Pix[off : off+xsz*4 : off+xsz*4]
		orow := out.Pix[y*out.Stride : y*out.Stride+xsz : y*out.Stride+xsz]
		for x := range orow {
			orow[x] = irow[x*4+c]
		}
	}
	return out
}
