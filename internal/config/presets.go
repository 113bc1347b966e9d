package config

import "sort"

// Preset is a named sample input.
type Preset struct {
	Mode  string
	Input string
	Note  string
}

var Presets = map[string]Preset{
	"textbook":   {Mode: "gray-to-binary", Input: "1011", Note: "worked example, decodes to 1101"},
	"encode":     {Mode: "binary-to-gray", Input: "1101", Note: "inverse of textbook"},
	"zeros":      {Mode: "gray-to-binary", Input: "000000", Note: "all zeros stay zeros"},
	"ones":       {Mode: "binary-to-gray", Input: "111111", Note: "encodes to 100000"},
	"encoder":    {Mode: "gray-to-binary", Input: "1000000000", Note: "10-bit rotary encoder at half turn"},
	"single-bit": {Mode: "gray-to-binary", Input: "1", Note: "MSB only"},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
