package chip8

import (
	"fmt"
	"sort"
	"strings"
)

// Quirks selects between the behaviors historical interpreters disagree on.
// The zero value matches DefaultQuirks.
type Quirks struct {
	// ShiftUsesVY makes 8xy6 and 8xyE shift VY and store the result in VX,
	// as the COSMAC VIP interpreter did. Otherwise VX is shifted in place.
	ShiftUsesVY bool

	// AddIndexSetsVF makes Fx1E set VF to 1 when I overflows past 0xFFF and
	// to 0 otherwise, as the Amiga interpreter did. Otherwise VF is untouched.
	AddIndexSetsVF bool

	// LoadStoreIncrementsI makes Fx55 and Fx65 leave I pointing past the
	// last accessed byte (I = I + X + 1). Otherwise I is unchanged.
	LoadStoreIncrementsI bool

	// VerticalWrap makes sprite rows that fall below the bottom edge of the
	// display wrap around to the top. Otherwise they are clipped.
	VerticalWrap bool
}

// DefaultQuirks returns the quirks of most modern interpreters.
func DefaultQuirks() Quirks {
	return Quirks{}
}

// Quirk presets.
const (
	PresetModern = "modern"
	PresetCosmac = "cosmac"
	PresetAmiga  = "amiga"
)

var presets = map[string]Quirks{
	PresetModern: DefaultQuirks(),
	PresetCosmac: {
		ShiftUsesVY:          true,
		LoadStoreIncrementsI: true,
	},
	PresetAmiga: {
		AddIndexSetsVF: true,
	},
}

// QuirksFromPreset returns the quirks of a named preset. An empty name
// returns the default quirks.
func QuirksFromPreset(name string) (Quirks, error) {
	if name == "" {
		return DefaultQuirks(), nil
	}
	q, ok := presets[strings.ToLower(name)]
	if !ok {
		return Quirks{}, fmt.Errorf("unsupported quirks preset '%s', valid presets: %s",
			name, strings.Join(PresetNames(), ", "))
	}
	return q, nil
}

// PresetNames returns the sorted names of all quirk presets.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (q Quirks) String() string {
	var enabled []string
	if q.ShiftUsesVY {
		enabled = append(enabled, "shift-vy")
	}
	if q.AddIndexSetsVF {
		enabled = append(enabled, "addi-vf")
	}
	if q.LoadStoreIncrementsI {
		enabled = append(enabled, "loadstore-inc")
	}
	if q.VerticalWrap {
		enabled = append(enabled, "vwrap")
	}
	if len(enabled) == 0 {
		return "none"
	}
	return strings.Join(enabled, ",")
}
