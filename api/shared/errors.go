/* errors.go
 * Contains the typed errors returned by the logic and api packages. Callers match them with errors.As
 */

package shared

import "fmt"

// InvalidHandicapError is returned when a handicap display string contains a token outside the lookup table
type InvalidHandicapError struct {
	Display string
	Token   string
}

func (e *InvalidHandicapError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("invalid handicap %q", e.Display)
	}
	return fmt.Sprintf("invalid handicap %q: unknown token %q", e.Display, e.Token)
}

// InvalidArgumentError is returned when an argument is rejected before any state is read or changed
type InvalidArgumentError struct {
	Name  string
	Value string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Name, e.Value)
}
