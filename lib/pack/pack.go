// Package pack creates channel-packed textures from a PBR texture set.
package pack

import (
	"context"
	"image"

	"github.com/depp/pbrpack/lib/job"
	"github.com/depp/pbrpack/lib/texture"

	"github.com/pkg/errors"
)

// SavedFunc is called after each output file is written. The index i counts
// from 1 to n.
type SavedFunc func(i, n int, path string)

// Pack writes one PNG for each selected variant of the job and returns their
// paths, in selection order. Every input used by the selections is decoded
// before the first file is written, so an unreadable input leaves the output
// directory untouched. The context is checked before each input and each
// variant; if it is done, Pack returns the files written so far and
// ctx.Err().
func Pack(ctx context.Context, j *job.Job, saved SavedFunc) ([]string, error) {
	src, err := Decode(ctx, j)
	if err != nil {
		return nil, err
	}
	sel := j.Selections()
	paths := make([]string, 0, len(sel))
	for i, v := range sel {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		im, err := Variant(j, v, src)
		if err != nil {
			return paths, err
		}
		out := j.OutputPath(v)
		if err := texture.WritePNG(out, im); err != nil {
			return paths, errors.Wrapf(err, "could not write %s texture", v.Description())
		}
		paths = append(paths, out)
		if saved != nil {
			saved(i+1, len(sel), out)
		}
	}
	return paths, nil
}

// Sources holds the decoded input images of a job.
type Sources map[job.Channel]image.Image

// Decode reads and fully decodes every input required by the job's
// selections.
func Decode(ctx context.Context, j *job.Job) (Sources, error) {
	src := make(Sources)
	for _, c := range j.RequiredInputs() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		im, err := readInput(j, c)
		if err != nil {
			return nil, err
		}
		src[c] = im
	}
	return src, nil
}

// Variant creates the image for one variant of the job from decoded inputs.
func Variant(j *job.Job, v job.Variant, src Sources) (*image.RGBA, error) {
	size := j.Size()
	switch v {
	case job.Color:
		im, err := src.rgb(j, job.BaseColor)
		if err != nil {
			return nil, err
		}
		return texture.ResizeRGB(im, size)
	case job.Normal:
		im, err := src.rgb(j, job.NormalMap)
		if err != nil {
			return nil, err
		}
		return Normal(im, j.Convention(), size)
	case job.AmbientSpec:
		ao, err := src.gray(j, job.AO, size)
		if err != nil {
			return nil, err
		}
		return AmbientSpec(ao)
	case job.SpecMetalGloss:
		metal, err := src.gray(j, job.Metallic, size)
		if err != nil {
			return nil, err
		}
		rough, err := src.gray(j, job.Roughness, size)
		if err != nil {
			return nil, err
		}
		return SpecMetalGloss(metal, rough)
	}
	return nil, errors.Errorf("unknown variant: %v", v)
}

// Normal converts a normal map to the DirectX convention and scales it. The
// image is modified in place if it is already at the target size.
func Normal(im *image.RGBA, conv texture.Convention, size int) (*image.RGBA, error) {
	if conv == texture.OpenGL {
		texture.InvertGreen(im)
	}
	return texture.ResizeRGB(im, size)
}

// AmbientSpec packs ambient occlusion into green, with red and blue white.
func AmbientSpec(ao *image.Gray) (*image.RGBA, error) {
	if ao.Rect.Dx() != ao.Rect.Dy() {
		return nil, errors.Errorf("ambient occlusion map is not square: %v", ao.Rect.Size())
	}
	white := texture.Uniform(ao.Rect.Dx(), 255)
	return texture.Merge(white, ao, white)
}

// SpecMetalGloss packs metallic into green and gloss, the inverse of
// roughness, into blue, with red white.
func SpecMetalGloss(metal, rough *image.Gray) (*image.RGBA, error) {
	if metal.Rect.Dx() != metal.Rect.Dy() {
		return nil, errors.Errorf("metallic map is not square: %v", metal.Rect.Size())
	}
	white := texture.Uniform(metal.Rect.Dx(), 255)
	return texture.Merge(white, metal, texture.Invert(rough))
}

func readInput(j *job.Job, c job.Channel) (image.Image, error) {
	p := j.Input(c)
	if p == "" {
		return nil, &job.InputError{Channel: c, Err: errors.New("no file selected")}
	}
	im, err := texture.ReadImage(p)
	if err != nil {
		return nil, &job.InputError{Channel: c, Path: p, Err: err}
	}
	return im, nil
}

func (s Sources) input(j *job.Job, c job.Channel) (image.Image, error) {
	if im := s[c]; im != nil {
		return im, nil
	}
	return readInput(j, c)
}

// rgb returns a fresh RGB copy of an input, which the caller may modify.
func (s Sources) rgb(j *job.Job, c job.Channel) (*image.RGBA, error) {
	im, err := s.input(j, c)
	if err != nil {
		return nil, err
	}
	return texture.ToRGB(im), nil
}

// gray returns an input as 8-bit grayscale at the given size.
func (s Sources) gray(j *job.Job, c job.Channel, size int) (*image.Gray, error) {
	im, err := s.input(j, c)
	if err != nil {
		return nil, err
	}
	return texture.ResizeGray(texture.ToGray(im), size)
}
