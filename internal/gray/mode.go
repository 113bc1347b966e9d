package gray

import (
	"fmt"
	"strings"
)

type Mode int

const (
	ModeGrayToBinary Mode = iota
	ModeBinaryToGray
)

var modeNames = map[string]Mode{
	"gray-to-binary": ModeGrayToBinary,
	"g2b":            ModeGrayToBinary,
	"binary-to-gray": ModeBinaryToGray,
	"b2g":            ModeBinaryToGray,
}

// ParseMode accepts the long (gray-to-binary) and short (g2b) spellings.
func ParseMode(s string) (Mode, error) {
	m, ok := modeNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

func (m Mode) String() string {
	if m == ModeBinaryToGray {
		return "binary-to-gray"
	}
	return "gray-to-binary"
}

// SourceLabel names the code the input is written in.
func (m Mode) SourceLabel() string {
	if m == ModeBinaryToGray {
		return "Binary"
	}
	return "Gray"
}

// TargetLabel names the code the result is written in.
func (m Mode) TargetLabel() string {
	return m.Inverse().SourceLabel()
}

func (m Mode) Inverse() Mode {
	if m == ModeBinaryToGray {
		return ModeGrayToBinary
	}
	return ModeBinaryToGray
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
