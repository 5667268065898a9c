/* models.go
 * This file contain the structs shared between the logic, store and api packages: gamblers, auctions, matches and the
 * series derived from them
 */

package shared

import (
	"time"
)

// Side tokens accepted by bet updates
const (
	SideA = "a"
	SideB = "b"
)

// DefaultWeight is the stake of a match when neither the caller nor the tournament weight schedule sets one
const DefaultWeight = 2.0

// MatchIDTimeLayout is the Go layout of the time prefix of a match id (strftime %Y%m%d%H%M)
const MatchIDTimeLayout = "200601021504"

// Gambler is a member of the pool. Name is the key bets and auctions refer to, OpenID the external identity
type Gambler struct {
	Name   string `bson:"name" json:"name"`
	OpenID string `bson:"openid" json:"openid"`
}

// Auction records which gambler bought a team in the pre-tournament draft. One owner per team per league
type Auction struct {
	League  string  `bson:"league" json:"league"`
	Team    string  `bson:"team" json:"team"`
	Gambler string  `bson:"gambler" json:"gambler"`
	Price   float64 `bson:"price" json:"price"`
}

// Handicap is the pair of sub-handicaps a match is settled against. A plain handicap is stored as two equal values
type Handicap [2]float64

// TeamSide is one side of a fixture. Score is nil until the result is known
type TeamSide struct {
	Team     string   `bson:"team" json:"team"`
	Premium  float64  `bson:"premium" json:"premium"`
	Score    *int     `bson:"score" json:"score"`
	Gamblers []string `bson:"gamblers" json:"gamblers"`
}

// HasGambler reports whether the gambler picked this side
func (t TeamSide) HasGambler(name string) bool {
	for _, g := range t.Gamblers {
		if g == name {
			return true
		}
	}
	return false
}

// Match is a single fixture. MatchTime is a naive civil time in the tournament's zone, stored with time.UTC as its
// location so that the wall clock survives the round trip through the db unchanged
type Match struct {
	ID              string    `bson:"id" json:"id"`
	League          string    `bson:"league" json:"league"`
	MatchTime       time.Time `bson:"match_time" json:"match_time"`
	HandicapDisplay string    `bson:"handicap_display" json:"handicap_display"`
	Handicap        Handicap  `bson:"handicap" json:"handicap"`
	Weight          float64   `bson:"weight" json:"weight"`
	A               TeamSide  `bson:"a" json:"a"`
	B               TeamSide  `bson:"b" json:"b"`
}

// GenerateMatchID builds the natural key of a match: <%Y%m%d%H%M>-<team a>-<team b>
func GenerateMatchID(matchTime time.Time, teamA string, teamB string) string {
	return matchTime.Format(MatchIDTimeLayout) + "-" + teamA + "-" + teamB
}

// IsCompleted reports whether both scores are known
func (m Match) IsCompleted() bool {
	return m.A.Score != nil && m.B.Score != nil
}

// Side returns the side for a token, or false if the token is neither "a" nor "b"
func (m Match) Side(side string) (TeamSide, bool) {
	switch side {
	case SideA:
		return m.A, true
	case SideB:
		return m.B, true
	}
	return TeamSide{}, false
}

// PickOf returns the side token the gambler is on, or "" if they have not picked
func (m Match) PickOf(gambler string) string {
	if m.A.HasGambler(gambler) {
		return SideA
	}
	if m.B.HasGambler(gambler) {
		return SideB
	}
	return ""
}

// Display returns "<team a> vs <team b>" for listings
func (m Match) Display() string {
	return m.A.Team + " vs " + m.B.Team
}

// Point is one entry of a series: the running total after a match was settled
type Point struct {
	MatchID string  `json:"match_id"`
	Total   float64 `json:"total"`
}

// Series is the cumulative trace of a gambler's points across the completed matches of a tournament, in kickoff order
type Series struct {
	Gambler string  `json:"gambler"`
	Points  []Point `json:"points"`
}

// Latest returns the most recent running total, 0 when no match has been settled yet
func (s Series) Latest() float64 {
	if len(s.Points) == 0 {
		return 0
	}
	return s.Points[len(s.Points)-1].Total
}

// IntPtr is a small helper for building scores
func IntPtr(v int) *int {
	return &v
}

// WeightStep is one entry of a tournament's weight schedule: matches kicking off before Before are worth Weight
type WeightStep struct {
	Before time.Time `json:"before"`
	Weight float64   `json:"weight"`
}
