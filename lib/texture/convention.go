package texture

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

// A Convention is the tangent-space sign convention of a normal map's green
// channel.
type Convention uint32

const (
	// UnknownConvention is a missing convention, resolved by Detect.
	UnknownConvention Convention = iota
	// DirectX is Y-down, the convention expected by the native converter.
	DirectX
	// OpenGL is Y-up, converted by inverting green.
	OpenGL
)

var conventions = [...]struct {
	name    string
	aliases []string
}{
	DirectX: {name: "DirectX", aliases: []string{"dx", "d3d"}},
	OpenGL:  {name: "OpenGL", aliases: []string{"gl", "ogl"}},
}

// String returns the name of the convention.
func (c Convention) String() (s string) {
	i := uint32(c)
	if i < uint32(len(conventions)) {
		s = conventions[i].name
	}
	if s == "" {
		if c == UnknownConvention {
			return "auto"
		}
		s = "Convention(" + strconv.FormatUint(uint64(i), 10) + ")"
	}
	return
}

// Set sets the convention to a string value. The value "auto" sets it to
// UnknownConvention.
func (c *Convention) Set(s string) error {
	if strings.EqualFold(s, "auto") {
		*c = UnknownConvention
		return nil
	}
	for i, n := range conventions {
		if n.name == "" {
			continue
		}
		if strings.EqualFold(s, n.name) {
			*c = Convention(i)
			return nil
		}
		for _, a := range n.aliases {
			if strings.EqualFold(s, a) {
				*c = Convention(i)
				return nil
			}
		}
	}
	return fmt.Errorf("unknown normal convention: %q", s)
}

// Type returns the flag type name.
func (c *Convention) Type() string {
	return "convention"
}

// DetectConvention guesses the convention of a normal map from its filename.
// Names containing "opengl" or a "gl"/"ogl" token are OpenGL, names
// containing "directx" or a "dx" token are DirectX. The result is DirectX if
// nothing matches.
func DetectConvention(filename string) Convention {
	c, ok := detect(filename)
	if !ok {
		return DirectX
	}
	return c
}

func detect(filename string) (Convention, bool) {
	name := strings.ToLower(filepath.Base(filename))
	name = strings.TrimSuffix(name, filepath.Ext(name))
	switch {
	case strings.Contains(name, "opengl"):
		return OpenGL, true
	case strings.Contains(name, "directx"):
		return DirectX, true
	}
	tokens := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	// Later tokens win.
	for i := len(tokens) - 1; i >= 0; i-- {
		switch tokens[i] {
		case "gl", "ogl":
			return OpenGL, true
		case "dx", "d3d":
			return DirectX, true
		}
	}
	return UnknownConvention, false
}
