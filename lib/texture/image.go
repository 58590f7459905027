package texture

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	// Input decoders.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ReadImage reads an image file in any registered format.
func ReadImage(filename string) (image.Image, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	im, _, err := image.Decode(bufio.NewReader(fp))
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", filename, err)
	}
	return im, nil
}

// CheckImage verifies that a file can be opened and has a recognized image
// header, without decoding the pixel data.
func CheckImage(filename string) error {
	fp, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	cfg, _, err := image.DecodeConfig(bufio.NewReader(fp))
	if err != nil {
		return fmt.Errorf("could not decode %q: %w", filename, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("image %q is empty", filename)
	}
	return nil
}

// WritePNG writes an image to a PNG file. Opaque RGBA images are written as
// 8-bit RGB, gray images as 8-bit grayscale.
func WritePNG(filename string, im image.Image) error {
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(fp)
	if err := png.Encode(w, im); err != nil {
		fp.Close()
		return fmt.Errorf("could not encode %q: %w", filename, err)
	}
	if err := w.Flush(); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}

// ToRGB converts an image to an opaque RGBA image with origin (0, 0). Alpha
// is discarded, not composited: color values are taken unpremultiplied.
func ToRGB(im image.Image) *image.RGBA {
	b := im.Bounds()
	xsz := b.Dx()
	ysz := b.Dy()
	out := image.NewRGBA(image.Rectangle{Max: image.Point{X: xsz, Y: ysz}})
	switch im := im.(type) {
	case *image.NRGBA:
		for y := 0; y < ysz; y++ {
			irow := im.Pix[im.PixOffset(b.Min.X, b.Min.Y+y):]
			orow := out.Pix[y*out.Stride : y*out.Stride+xsz*4 : y*out.Stride+xsz*4]
			for x := 0; x < xsz; x++ {
				orow[x*4] = irow[x*4]
				orow[x*4+1] = irow[x*4+1]
				orow[x*4+2] = irow[x*4+2]
				orow[x*4+3] = 0xff
			}
		}
	case *image.RGBA:
		for y := 0; y < ysz; y++ {
			irow := im.Pix[im.PixOffset(b.Min.X, b.Min.Y+y):]
			orow := out.Pix[y*out.Stride : y*out.Stride+xsz*4 : y*out.Stride+xsz*4]
			for x := 0; x < xsz; x++ {
				if a := irow[x*4+3]; a == 0xff {
					orow[x*4] = irow[x*4]
					orow[x*4+1] = irow[x*4+1]
					orow[x*4+2] = irow[x*4+2]
				} else {
					orow[x*4] = unpremultiply(irow[x*4], a)
					orow[x*4+1] = unpremultiply(irow[x*4+1], a)
					orow[x*4+2] = unpremultiply(irow[x*4+2], a)
				}
				orow[x*4+3] = 0xff
			}
		}
	case *image.YCbCr:
		for y := 0; y < ysz; y++ {
			orow := out.Pix[y*out.Stride : y*out.Stride+xsz*4 : y*out.Stride+xsz*4]
			for x := 0; x < xsz; x++ {
				yi := im.YOffset(b.Min.X+x, b.Min.Y+y)
				ci := im.COffset(b.Min.X+x, b.Min.Y+y)
				orow[x*4], orow[x*4+1], orow[x*4+2] = color.YCbCrToRGB(im.Y[yi], im.Cb[ci], im.Cr[ci])
				orow[x*4+3] = 0xff
			}
		}
	case *image.Gray:
		for y := 0; y < ysz; y++ {
			irow := im.Pix[im.PixOffset(b.Min.X, b.Min.Y+y):]
			orow := out.Pix[y*out.Stride : y*out.Stride+xsz*4 : y*out.Stride+xsz*4]
			for x := 0; x < xsz; x++ {
				v := irow[x]
				orow[x*4] = v
				orow[x*4+1] = v
				orow[x*4+2] = v
				orow[x*4+3] = 0xff
			}
		}
	default:
		for y := 0; y < ysz; y++ {
			orow := out.Pix[y*out.Stride : y*out.Stride+xsz*4 : y*out.Stride+xsz*4]
			for x := 0; x < xsz; x++ {
				c := color.NRGBAModel.Convert(im.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				orow[x*4] = c.R
				orow[x*4+1] = c.G
				orow[x*4+2] = c.B
				orow[x*4+3] = 0xff
			}
		}
	}
	return out
}

// unpremultiply gives the same result as color.NRGBAModel for one channel of
// a premultiplied 8-bit color.
func unpremultiply(c, a uint8) uint8 {
	if a == 0 {
		return 0
	}
	c16 := uint32(c) * 0x101
	a16 := uint32(a) * 0x101
	return uint8((c16 * 0xffff / a16) >> 8)
}

// ToGray converts an image to 8-bit luma with origin (0, 0), ignoring alpha.
func ToGray(im image.Image) *image.Gray {
	b := im.Bounds()
	if g, ok := im.(*image.Gray); ok {
		out := image.NewGray(image.Rectangle{Max: image.Point{X: b.Dx(), Y: b.Dy()}})
		draw.Draw(out, out.Rect, g, b.Min, draw.Src)
		return out
	}
	rgb := ToRGB(im)
	out := image.NewGray(rgb.Rect)
	xsz := rgb.Rect.Dx()
	ysz := rgb.Rect.Dy()
	for y := 0; y < ysz; y++ {
		irow := rgb.Pix[y*rgb.Stride : y*rgb.Stride+xsz*4 : y*rgb.Stride+xsz*4]
		orow := out.Pix[y*out.Stride : y*out.Stride+xsz : y*out.Stride+xsz]
		for x := 0; x < xsz; x++ {
			orow[x] = luma(irow[x*4], irow[x*4+1], irow[x*4+2])
		}
	}
	return out
}

// luma uses the ITU-R 601-2 weights, rounded.
func luma(r, g, b uint8) uint8 {
	return uint8((uint32(r)*299 + uint32(g)*587 + uint32(b)*114 + 500) / 1000)
}
