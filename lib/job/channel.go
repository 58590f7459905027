package job

import (
	"fmt"
	"strings"
)

// A Channel is a semantic input texture of a PBR texture set.
type Channel uint32

const (
	// UnknownChannel is an invalid channel.
	UnknownChannel Channel = iota
	// BaseColor is the albedo map.
	BaseColor
	// NormalMap is the tangent-space normal map.
	NormalMap
	// AO is the ambient occlusion map.
	AO
	// Metallic is the metalness map.
	Metallic
	// Roughness is the roughness map.
	Roughness
)

var channelNames = [...]string{
	BaseColor: "BaseColor",
	NormalMap: "Normal",
	AO:        "AO",
	Metallic:  "Metallic",
	Roughness: "Roughness",
}

// AllChannels lists every input channel.
var AllChannels = []Channel{BaseColor, NormalMap, AO, Metallic, Roughness}

func (c Channel) String() string {
	if i := uint32(c); 0 < i && i < uint32(len(channelNames)) {
		return channelNames[i]
	}
	return fmt.Sprintf("Channel(%d)", uint32(c))
}

// ParseChannel parses a channel name, case-insensitively.
func ParseChannel(s string) (Channel, error) {
	for i, n := range channelNames {
		if n != "" && strings.EqualFold(s, n) {
			return Channel(i), nil
		}
	}
	return UnknownChannel, fmt.Errorf("unknown input channel: %q", s)
}
