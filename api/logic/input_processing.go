/* input_processing.go
 * Contains the logic for processing user input: cleaning up typed arguments and resolving team names typed by users
 * to the teams of a match
 */

package logic

import (
	"strconv"
	"strings"

	"handicap-pool/api/shared"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// CleanInput strips the quote characters users wrap multi word arguments in
func CleanInput(input string) string {
	input = strings.ReplaceAll(input, "\"", "")
	input = strings.ReplaceAll(input, "“", "")
	input = strings.ReplaceAll(input, "”", "")
	return strings.TrimSpace(input)
}

// CanonicalTeam matches a team name against a list of valid team names, ignoring case only
// Preconditions: receives the input and the list of valid team names
// Postconditions: returns the stored spelling of the team and true, or "" and false if no name is equal to the input
func CanonicalTeam(input string, validTeams []string) (string, bool) {
	lowerInput := strings.ToLower(CleanInput(input))
	if lowerInput == "" {
		return "", false
	}
	for _, name := range validTeams {
		if strings.ToLower(name) == lowerInput {
			return name, true
		}
	}
	return "", false
}

// ResolveTeam matches a team name typed by a user against a list of valid team names
// Preconditions: receives the user's input and the list of valid team names
// Postconditions: returns the correctly formatted team name and true, or "" and false if nothing matches or the input
// is a partial match of more than one team
func ResolveTeam(input string, validTeams []string) (string, bool) {
	if name, ok := CanonicalTeam(input, validTeams); ok {
		return name, true
	}
	lowerInput := strings.ToLower(CleanInput(input))
	if lowerInput == "" {
		return "", false
	}

	// Convert to lowercase for better matching
	lookup := make(map[string]string)
	var validTeamsLower []string
	for _, name := range validTeams {
		lower := strings.ToLower(name)
		lookup[lower] = name
		validTeamsLower = append(validTeamsLower, lower)
	}

	fuzzyResults := fuzzy.RankFind(lowerInput, validTeamsLower)
	if len(fuzzyResults) != 1 {
		return "", false
	}
	return lookup[fuzzyResults[0].Target], true
}

// ResolveSide turns a user's pick into a side token
// Preconditions: receives the match and the user's pick, either a side token ("a"/"b") or (part of) a team name
// Postconditions: returns "a" or "b", or *shared.InvalidArgumentError if the pick matches neither side
func ResolveSide(m shared.Match, input string) (string, error) {
	pick := strings.ToLower(CleanInput(input))
	if pick == shared.SideA || pick == shared.SideB {
		return pick, nil
	}

	team, ok := ResolveTeam(input, []string{m.A.Team, m.B.Team})
	if !ok {
		return "", &shared.InvalidArgumentError{Name: "side", Value: input}
	}
	if team == m.A.Team {
		return shared.SideA, nil
	}
	return shared.SideB, nil
}

// ParseIndex converts a 1-based listing number typed by a user into a slice index
func ParseIndex(input string, length int) (int, error) {
	n, err := strconv.Atoi(CleanInput(input))
	if err != nil || n < 1 || n > length {
		return 0, &shared.InvalidArgumentError{Name: "match number", Value: input}
	}
	return n - 1, nil
}
