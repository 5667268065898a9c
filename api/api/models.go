/* models.go
 * This file contain the structs that are used by api consumers
 */

package api

import (
	"time"
)

// NewMatch holds the facts of a fixture as published before kickoff
type NewMatch struct {
	League    string
	MatchTime time.Time // naive civil time in the tournament's zone
	Handicap  string    // display form, e.g. "受半球/一球"
	TeamA     string
	TeamB     string
	PremiumA  float64
	PremiumB  float64
	Weight    float64 // 0 picks the weight from the tournament schedule
}

// Fixture is a published fixture together with its score, if known. Importing it inserts the match, refreshes the
// handicap while it is still open and records the score
type Fixture struct {
	NewMatch
	ScoreA *int
	ScoreB *int
}
