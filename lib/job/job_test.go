package job

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/depp/pbrpack/lib/native"
	"github.com/depp/pbrpack/lib/texture"

	"github.com/pkg/errors"
)

type fixture struct {
	dir string
	req Request
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0666); err != nil {
		t.Fatal(err)
	}
}

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	fp, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	if err := png.Encode(fp, image.NewGray(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}
}

func newFixture(t *testing.T) *fixture {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	if err := os.Mkdir(out, 0777); err != nil {
		t.Fatal(err)
	}
	conv := filepath.Join(dir, "ImageToPAA.exe")
	writeFile(t, conv, nil)
	inputs := make(map[Channel]string)
	for _, c := range AllChannels {
		p := filepath.Join(dir, "rock_"+c.String()+".png")
		writeTestPNG(t, p)
		inputs[c] = p
	}
	return &fixture{
		dir: dir,
		req: Request{
			Inputs:        inputs,
			OutputDir:     out,
			BaseName:      "rock",
			Size:          512,
			Selections:    []Variant{Color, AmbientSpec},
			ConverterPath: conv,
		},
	}
}

func TestNew(t *testing.T) {
	f := newFixture(t)
	j, err := New(f.req)
	if err != nil {
		t.Fatal(err)
	}
	if j.Mode() != native.PerFile {
		t.Errorf("Mode = %v, want %v", j.Mode(), native.PerFile)
	}
	if j.Convention() != texture.DirectX {
		t.Errorf("Convention = %v, want DirectX", j.Convention())
	}
	if got, want := j.OutputPath(AmbientSpec), filepath.Join(f.req.OutputDir, "rock_as.png"); got != want {
		t.Errorf("OutputPath = %q, want %q", got, want)
	}
	sel := j.Selections()
	sel[0] = Normal
	if j.Selections()[0] != Color {
		t.Error("Selections returned the job's own slice")
	}
	in := j.Inputs()
	delete(in, BaseColor)
	if j.Input(BaseColor) == "" {
		t.Error("Inputs returned the job's own map")
	}
}

func TestNewDetectsConvention(t *testing.T) {
	f := newFixture(t)
	p := filepath.Join(f.dir, "rock_normal_opengl.png")
	writeTestPNG(t, p)
	f.req.Inputs[NormalMap] = p
	j, err := New(f.req)
	if err != nil {
		t.Fatal(err)
	}
	if j.Convention() != texture.OpenGL {
		t.Errorf("Convention = %v, want OpenGL", j.Convention())
	}
	f.req.Convention = texture.DirectX
	if j, err = New(f.req); err != nil {
		t.Fatal(err)
	}
	if j.Convention() != texture.DirectX {
		t.Errorf("explicit convention: got %v, want DirectX", j.Convention())
	}
}

func TestNewConfigErrors(t *testing.T) {
	cases := []struct {
		name   string
		modify func(t *testing.T, f *fixture)
	}{
		{"no output dir", func(t *testing.T, f *fixture) { f.req.OutputDir = "" }},
		{"missing output dir", func(t *testing.T, f *fixture) { f.req.OutputDir = filepath.Join(f.dir, "nope") }},
		{"output is a file", func(t *testing.T, f *fixture) { f.req.OutputDir = f.req.ConverterPath }},
		{"no base name", func(t *testing.T, f *fixture) { f.req.BaseName = "  " }},
		{"base name with separator", func(t *testing.T, f *fixture) { f.req.BaseName = "a/b" }},
		{"zero size", func(t *testing.T, f *fixture) { f.req.Size = 0 }},
		{"no selections", func(t *testing.T, f *fixture) { f.req.Selections = nil }},
		{"duplicate selection", func(t *testing.T, f *fixture) { f.req.Selections = []Variant{Color, Color} }},
		{"invalid selection", func(t *testing.T, f *fixture) { f.req.Selections = []Variant{UnknownVariant} }},
		{"wrong converter", func(t *testing.T, f *fixture) {
			p := filepath.Join(f.dir, "convert.exe")
			writeFile(t, p, nil)
			f.req.ConverterPath = p
		}},
		{"missing converter", func(t *testing.T, f *fixture) { f.req.ConverterPath = filepath.Join(f.dir, "PAAConverter.exe") }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			c.modify(t, f)
			_, err := New(f.req)
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("err = %v, want *ConfigError", err)
			}
		})
	}
}

func TestNewInputErrors(t *testing.T) {
	cases := []struct {
		name    string
		channel Channel
		modify  func(t *testing.T, f *fixture)
	}{
		{"missing", BaseColor, func(t *testing.T, f *fixture) { delete(f.req.Inputs, BaseColor) }},
		{"nonexistent", AO, func(t *testing.T, f *fixture) { f.req.Inputs[AO] = filepath.Join(f.dir, "nope.png") }},
		{"not an image", AO, func(t *testing.T, f *fixture) {
			p := filepath.Join(f.dir, "ao.png")
			writeFile(t, p, []byte("not an image"))
			f.req.Inputs[AO] = p
		}},
		{"strict", Roughness, func(t *testing.T, f *fixture) {
			delete(f.req.Inputs, Roughness)
			f.req.StrictInputs = true
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			c.modify(t, f)
			_, err := New(f.req)
			var ie *InputError
			if !errors.As(err, &ie) {
				t.Fatalf("err = %v, want *InputError", err)
			}
			if ie.Channel != c.channel {
				t.Errorf("Channel = %v, want %v", ie.Channel, c.channel)
			}
		})
	}
}

func TestNewUnusedInputs(t *testing.T) {
	f := newFixture(t)
	f.req.Selections = []Variant{Color}
	for _, c := range []Channel{NormalMap, AO, Metallic, Roughness} {
		delete(f.req.Inputs, c)
	}
	j, err := New(f.req)
	if err != nil {
		t.Fatal(err)
	}
	if got := j.RequiredInputs(); len(got) != 1 || got[0] != BaseColor {
		t.Errorf("RequiredInputs = %v, want [BaseColor]", got)
	}
}

func TestParseVariant(t *testing.T) {
	for _, v := range AllVariants {
		got, err := ParseVariant("_" + v.String())
		if err != nil || got != v {
			t.Errorf("ParseVariant(_%s) = %v, %v", v, got, err)
		}
	}
	var l VariantList
	if err := l.Set("co, SMDI,,nohq"); err != nil {
		t.Fatal(err)
	}
	if got := l.String(); got != "co,smdi,nohq" {
		t.Errorf("VariantList = %q", got)
	}
	if err := l.Set("co,xx"); err == nil {
		t.Error(`Set("co,xx") succeeded`)
	}
}
