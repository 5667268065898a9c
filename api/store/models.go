/* models.go
 * This file contain the errors and helper functions that relate to DB objects
 */

package store

import (
	"errors"

	"handicap-pool/api/shared"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrGamblerExists is returned when a rename targets a name that is already taken
	ErrGamblerExists = errors.New("gambler already exists")
	// ErrMatchExists is returned when re-keying a match would collide with another match
	ErrMatchExists = errors.New("match already exists")
)

// gamblersField returns the dotted path of a side's bettor list, e.g. "a.gamblers"
func gamblersField(side string) string {
	return side + ".gamblers"
}

// otherSide returns the opposite side token
func otherSide(side string) string {
	if side == shared.SideA {
		return shared.SideB
	}
	return shared.SideA
}

// matchSort orders matches by kickoff, then id for matches kicking off together
func matchSort(reverse bool) bson.D {
	order := 1
	if reverse {
		order = -1
	}
	return bson.D{{Key: "match_time", Value: order}, {Key: "id", Value: order}}
}

// normalizeMatch makes sure bettor lists are arrays, not null, so $addToSet and $pull can work on them
func normalizeMatch(m shared.Match) shared.Match {
	if m.A.Gamblers == nil {
		m.A.Gamblers = []string{}
	}
	if m.B.Gamblers == nil {
		m.B.Gamblers = []string{}
	}
	return m
}
