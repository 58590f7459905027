// Package native runs the external converter that produces PAA textures from
// PNG files.
package native

import (
	"fmt"
	"path/filepath"
	"strings"
)

// A Mode is the way a converter executable is invoked.
type Mode uint32

const (
	// UnknownMode is an unrecognized converter.
	UnknownMode Mode = iota
	// Batch converts a whole directory with a single invocation.
	Batch
	// PerFile converts one file per invocation.
	PerFile
)

// OutputExt is the extension of converted files.
const OutputExt = ".paa"

var modes = [...]struct {
	name string
	exe  string
}{
	Batch:   {name: "batch", exe: "paaconverter.exe"},
	PerFile: {name: "per-file", exe: "imagetopaa.exe"},
}

func (m Mode) String() string {
	if i := uint32(m); 0 < i && i < uint32(len(modes)) {
		return modes[i].name
	}
	return "unknown"
}

// ModeFor returns the invocation mode for a converter executable, chosen by
// its file name. The comparison is case-insensitive.
func ModeFor(path string) (Mode, error) {
	name := filepath.Base(path)
	for i, m := range modes {
		if m.exe != "" && strings.EqualFold(name, m.exe) {
			return Mode(i), nil
		}
	}
	return UnknownMode, fmt.Errorf(
		"converter %q is not PAAConverter.exe or ImageToPAA.exe", name)
}

// BatchArgs returns the arguments for converting every PNG in dir.
func BatchArgs(dir string) []string {
	return []string{"-batch", dir, "-output", dir, "-quiet"}
}

// OutputPath returns the path of the converted file for an input PNG: the
// same stem with the PAA extension.
func OutputPath(png string) string {
	return strings.TrimSuffix(png, filepath.Ext(png)) + OutputExt
}

// FileArgs returns the arguments for converting a single PNG.
func FileArgs(png string) []string {
	return []string{png, OutputPath(png)}
}
