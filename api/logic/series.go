/* series.go
 * Contains the aggregation of settled matches into running totals per gambler, and the standings derived from them
 */

package logic

import (
	"sort"

	"handicap-pool/api/shared"
)

// Standing is a gambler's final total, used for the leaderboard
type Standing struct {
	Gambler string
	Points  float64
}

// BuildSeries folds matches into one series per gambler
// Preconditions: Receives matches ordered by kickoff ascending, the gamblers to build series for (the output keeps this
// order), the gamblers required to pick, and a function returning the team owners of a league
// Postconditions: Returns one Series per gambler. Incomplete matches are skipped; every completed match adds a point
// holding the running total after that match, including for gamblers that were not involved in it
func BuildSeries(matches []shared.Match, gamblers []string, required []string, ownersFor func(league string) Owners) []shared.Series {
	series := make([]shared.Series, len(gamblers))
	totals := make([]float64, len(gamblers))
	for i, g := range gamblers {
		series[i] = shared.Series{Gambler: g, Points: []shared.Point{}}
	}

	for _, m := range matches {
		if !m.IsCompleted() {
			continue
		}
		var owners Owners
		if ownersFor != nil {
			owners = ownersFor(m.League)
		}
		result := Settle(m, required, owners)
		for i, g := range gamblers {
			if delta, ok := result[g]; ok {
				totals[i] += delta
			}
			series[i].Points = append(series[i].Points, shared.Point{MatchID: m.ID, Total: totals[i]})
		}
	}
	return series
}

// Standings returns the latest total of every series, highest first. Ties are ordered by name
func Standings(series []shared.Series) []Standing {
	standings := make([]Standing, 0, len(series))
	for _, s := range series {
		standings = append(standings, Standing{Gambler: s.Gambler, Points: s.Latest()})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		return standings[i].Gambler < standings[j].Gambler
	})
	return standings
}
