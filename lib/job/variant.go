package job

import (
	"fmt"
	"strings"
)

// A Variant is a packed output texture type, identified by its filename
// suffix.
type Variant uint32

const (
	// UnknownVariant is an invalid variant.
	UnknownVariant Variant = iota
	// Color is the base color, "_co".
	Color
	// Normal is the DirectX normal map, "_nohq".
	Normal
	// AmbientSpec packs ambient occlusion into green, "_as".
	AmbientSpec
	// SpecMetalGloss packs metallic into green and gloss into blue, "_smdi".
	SpecMetalGloss
)

var variants = [...]struct {
	code   string
	desc   string
	inputs []Channel
}{
	Color:          {code: "co", desc: "Color", inputs: []Channel{BaseColor}},
	Normal:         {code: "nohq", desc: "Normal", inputs: []Channel{NormalMap}},
	AmbientSpec:    {code: "as", desc: "AmbientSpec", inputs: []Channel{AO}},
	SpecMetalGloss: {code: "smdi", desc: "SpecMetalGloss", inputs: []Channel{Metallic, Roughness}},
}

// AllVariants lists every variant in the default order.
var AllVariants = []Variant{Color, Normal, AmbientSpec, SpecMetalGloss}

// String returns the variant code, as used in file names.
func (v Variant) String() string {
	if i := uint32(v); 0 < i && i < uint32(len(variants)) {
		return variants[i].code
	}
	return fmt.Sprintf("Variant(%d)", uint32(v))
}

// Description returns a human-readable name.
func (v Variant) Description() string {
	if i := uint32(v); 0 < i && i < uint32(len(variants)) {
		return variants[i].desc
	}
	return v.String()
}

// Inputs returns the input channels the variant is made from.
func (v Variant) Inputs() []Channel {
	if i := uint32(v); 0 < i && i < uint32(len(variants)) {
		return variants[i].inputs
	}
	return nil
}

// ParseVariant parses a variant code, case-insensitively. A leading
// underscore is accepted.
func ParseVariant(s string) (Variant, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "_")
	for i, v := range variants {
		if v.code != "" && strings.EqualFold(s, v.code) {
			return Variant(i), nil
		}
	}
	return UnknownVariant, fmt.Errorf("unknown output variant: %q", s)
}

// A VariantList is an ordered list of variants. It implements pflag.Value as
// a comma-separated list.
type VariantList []Variant

func (l *VariantList) String() string {
	if l == nil {
		return ""
	}
	s := make([]string, len(*l))
	for i, v := range *l {
		s[i] = v.String()
	}
	return strings.Join(s, ",")
}

// Set replaces the list with the comma-separated variant codes in s.
func (l *VariantList) Set(s string) error {
	var vs []Variant
	for _, f := range strings.Split(s, ",") {
		if strings.TrimSpace(f) == "" {
			continue
		}
		v, err := ParseVariant(f)
		if err != nil {
			return err
		}
		vs = append(vs, v)
	}
	*l = vs
	return nil
}

// Type returns the flag type name.
func (l *VariantList) Type() string {
	return "variants"
}
