/* handicap.go
 * Contains the codec between the display form of an Asian handicap (e.g. 受半球/一球) and the numeric pair the
 * settlement works with
 */

package logic

import (
	"math"
	"strings"

	"handicap-pool/api/shared"
)

// handicapMarker flips the sign: side a receives the handicap instead of giving it
const handicapMarker = "受"

// handicapSeparator splits a quarter handicap into its two halves
const handicapSeparator = "/"

// handicapTable maps goal fraction names to values, in ascending order so it can be searched both ways
var handicapTable = []struct {
	Name  string
	Value float64
}{
	{"平手", 0},
	{"半球", 0.5},
	{"一球", 1},
	{"球半", 1.5},
	{"两球", 2},
	{"两球半", 2.5},
	{"三球", 3},
	{"三球半", 3.5},
	{"四球", 4},
	{"四球半", 4.5},
	{"五球", 5},
	{"五球半", 5.5},
	{"六球", 6},
	{"六球半", 6.5},
	{"七球", 7},
	{"七球半", 7.5},
	{"八球", 8},
}

func lookupHandicap(name string) (float64, bool) {
	for _, h := range handicapTable {
		if h.Name == name {
			return h.Value, true
		}
	}
	return 0, false
}

func handicapName(value float64) (string, bool) {
	for _, h := range handicapTable {
		if h.Value == value {
			return h.Name, true
		}
	}
	return "", false
}

// ParseHandicap converts a handicap display string into its numeric pair
// Preconditions: Receives the display string as shown by the odds provider, e.g. "受半球/一球", "球半" or "平手"
// Postconditions: Returns the handicap pair (a single handicap is duplicated), or *shared.InvalidHandicapError if the
// string is empty or a token is not in the lookup table
func ParseHandicap(display string) (shared.Handicap, error) {
	s := strings.TrimSpace(strings.ReplaceAll(display, "\u00a0", ""))
	if s == "" {
		return shared.Handicap{}, &shared.InvalidHandicapError{Display: display}
	}

	sign := 1.0
	if strings.HasPrefix(s, handicapMarker) {
		sign = -1
		s = strings.TrimPrefix(s, handicapMarker)
	}

	tokens := strings.Split(s, handicapSeparator)
	if len(tokens) > 2 {
		return shared.Handicap{}, &shared.InvalidHandicapError{Display: display}
	}

	var values []float64
	for _, token := range tokens {
		v, ok := lookupHandicap(strings.TrimSpace(token))
		if !ok {
			return shared.Handicap{}, &shared.InvalidHandicapError{Display: display, Token: token}
		}
		values = append(values, sign*v)
	}

	if len(values) == 1 {
		return shared.Handicap{values[0], values[0]}, nil
	}
	return shared.Handicap{values[0], values[1]}, nil
}

// FormatHandicap converts a handicap pair back into its display string. Used by import tools that only carry numbers
// Preconditions: Receives a handicap pair whose values have the same sign and whose magnitudes are in the lookup table
// Postconditions: Returns the display string, or *shared.InvalidHandicapError if the pair cannot be displayed
func FormatHandicap(h shared.Handicap) (string, error) {
	if (h[0] < 0 && h[1] > 0) || (h[0] > 0 && h[1] < 0) {
		return "", &shared.InvalidHandicapError{Display: formatPair(h)}
	}

	prefix := ""
	if h[0] < 0 || h[1] < 0 {
		prefix = handicapMarker
	}

	first, ok := handicapName(math.Abs(h[0]))
	if !ok {
		return "", &shared.InvalidHandicapError{Display: formatPair(h)}
	}
	second, ok := handicapName(math.Abs(h[1]))
	if !ok {
		return "", &shared.InvalidHandicapError{Display: formatPair(h)}
	}

	if first == second {
		return prefix + first, nil
	}
	return prefix + first + handicapSeparator + second, nil
}

func formatPair(h shared.Handicap) string {
	return strings.Join([]string{formatFloat(h[0]), formatFloat(h[1])}, handicapSeparator)
}
