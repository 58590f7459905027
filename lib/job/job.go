// Package job defines a texture conversion job: the PBR inputs, the packed
// variants to produce, and where to put them.
package job

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/depp/pbrpack/lib/native"
	"github.com/depp/pbrpack/lib/texture"

	"github.com/pkg/errors"
)

// Sizes are the standard output resolutions. Other positive sizes work.
var Sizes = []int{512, 1024, 2048, 4096}

// DefaultSize is the default output resolution.
const DefaultSize = 1024

// A Request holds the raw settings for a job, before validation.
type Request struct {
	Inputs        map[Channel]string
	OutputDir     string
	BaseName      string
	Size          int
	Selections    []Variant
	Convention    texture.Convention // UnknownConvention means detect.
	ConverterPath string

	// StrictInputs requires all five inputs, even those not used by the
	// selected variants.
	StrictInputs bool
}

// A Job is a validated conversion job. It is not modified after creation.
type Job struct {
	inputs     map[Channel]string
	outputDir  string
	baseName   string
	size       int
	selections []Variant
	convention texture.Convention
	converter  string
	mode       native.Mode
}

// New validates a request and creates a job. Settings problems are reported
// as *ConfigError, input textures which cannot be opened as images as
// *InputError. No files are written.
func New(req Request) (*Job, error) {
	j := Job{
		inputs:    make(map[Channel]string, len(AllChannels)),
		outputDir: req.OutputDir,
		baseName:  strings.TrimSpace(req.BaseName),
		size:      req.Size,
		converter: req.ConverterPath,
	}
	if err := checkOutputDir(j.outputDir); err != nil {
		return nil, &ConfigError{Field: "output directory", Err: err}
	}
	if j.baseName == "" {
		return nil, &ConfigError{Field: "base name", Err: errors.New("base name is empty")}
	}
	if strings.ContainsAny(j.baseName, `/\`) {
		return nil, &ConfigError{Field: "base name",
			Err: errors.Errorf("base name contains a path separator: %q", j.baseName)}
	}
	if j.size <= 0 {
		return nil, &ConfigError{Field: "size", Err: errors.Errorf("size must be positive, got %d", j.size)}
	}
	if len(req.Selections) == 0 {
		return nil, &ConfigError{Field: "selections", Err: errors.New("no output variant selected")}
	}
	seen := make(map[Variant]bool)
	for _, v := range req.Selections {
		if v.Inputs() == nil {
			return nil, &ConfigError{Field: "selections", Err: errors.Errorf("invalid variant: %v", v)}
		}
		if seen[v] {
			return nil, &ConfigError{Field: "selections", Err: errors.Errorf("variant %s selected twice", v)}
		}
		seen[v] = true
		j.selections = append(j.selections, v)
	}
	mode, err := native.ModeFor(j.converter)
	if err != nil {
		return nil, &ConfigError{Field: "converter", Err: err}
	}
	if st, err := os.Stat(j.converter); err != nil {
		return nil, &ConfigError{Field: "converter", Err: err}
	} else if st.IsDir() {
		return nil, &ConfigError{Field: "converter", Err: errors.Errorf("%q is a directory", j.converter)}
	}
	j.mode = mode

	for c, p := range req.Inputs {
		if p != "" {
			j.inputs[c] = p
		}
	}
	required := AllChannels
	if !req.StrictInputs {
		required = j.RequiredInputs()
	}
	for _, c := range required {
		p := j.inputs[c]
		if p == "" {
			return nil, &InputError{Channel: c, Err: errors.New("no file selected")}
		}
		if err := texture.CheckImage(p); err != nil {
			return nil, &InputError{Channel: c, Path: p, Err: err}
		}
	}

	j.convention = req.Convention
	if j.convention == texture.UnknownConvention {
		j.convention = texture.DetectConvention(j.inputs[NormalMap])
	}
	return &j, nil
}

func checkOutputDir(dir string) error {
	if dir == "" {
		return errors.New("no output directory selected")
	}
	st, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return errors.Errorf("%q is not a directory", dir)
	}
	fp, err := os.CreateTemp(dir, ".pbrpack-*")
	if err != nil {
		return errors.Wrap(err, "directory is not writable")
	}
	name := fp.Name()
	fp.Close()
	return os.Remove(name)
}

// RequiredInputs returns the input channels used by the selected variants,
// in channel order.
func (j *Job) RequiredInputs() []Channel {
	used := make(map[Channel]bool)
	for _, v := range j.selections {
		for _, c := range v.Inputs() {
			used[c] = true
		}
	}
	var cs []Channel
	for _, c := range AllChannels {
		if used[c] {
			cs = append(cs, c)
		}
	}
	return cs
}

// Input returns the path of an input texture, or "" if none was given.
func (j *Job) Input(c Channel) string { return j.inputs[c] }

// Inputs returns a copy of the input texture paths.
func (j *Job) Inputs() map[Channel]string {
	m := make(map[Channel]string, len(j.inputs))
	for c, p := range j.inputs {
		m[c] = p
	}
	return m
}

// OutputDir returns the directory where outputs are written.
func (j *Job) OutputDir() string { return j.outputDir }

// BaseName returns the output file name prefix.
func (j *Job) BaseName() string { return j.baseName }

// Size returns the output resolution. Outputs are square.
func (j *Job) Size() int { return j.size }

// Selections returns a copy of the selected variants, in output order.
func (j *Job) Selections() []Variant {
	return append([]Variant(nil), j.selections...)
}

// Convention returns the resolved normal map convention.
func (j *Job) Convention() texture.Convention { return j.convention }

// ConverterPath returns the path to the native converter.
func (j *Job) ConverterPath() string { return j.converter }

// Mode returns how the native converter is invoked.
func (j *Job) Mode() native.Mode { return j.mode }

// OutputPath returns the PNG path for a variant: {base}_{code}.png.
func (j *Job) OutputPath(v Variant) string {
	return filepath.Join(j.outputDir, j.baseName+"_"+v.String()+".png")
}
