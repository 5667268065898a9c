/* schedule.go
 * Contains the wall-clock rules of a match: when the handicap stops changing, when bets are accepted, and which
 * weight a match gets from the tournament schedule. All times are naive civil times in the tournament's zone
 */

package logic

import (
	"fmt"
	"strconv"
	"time"

	"handicap-pool/api/shared"
)

// handicapCutoffHour is the local hour after which the handicap of the day's matches is fixed
const handicapCutoffHour = 12

// matchTimeLayouts are the accepted textual forms of a kickoff time
var matchTimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	shared.MatchIDTimeLayout,
}

// HandicapCutoff returns the time after which the handicap of a match no longer changes: noon on the day of the
// match, or noon the previous day when the match kicks off at or before noon
func HandicapCutoff(matchTime time.Time) time.Time {
	cutoff := time.Date(matchTime.Year(), matchTime.Month(), matchTime.Day(), handicapCutoffHour, 0, 0, 0, matchTime.Location())
	if !cutoff.Before(matchTime) {
		cutoff = cutoff.AddDate(0, 0, -1)
	}
	return cutoff
}

// BetWindow returns the period during which picks may be changed: (handicap cutoff, kickoff]
func BetWindow(matchTime time.Time) (time.Time, time.Time) {
	return HandicapCutoff(matchTime), matchTime
}

// HandicapOpen reports whether the handicap of the match may still be updated at now
func HandicapOpen(matchTime time.Time, now time.Time) bool {
	return now.Before(HandicapCutoff(matchTime))
}

// BetOpen reports whether now falls inside the bet window. The start is exclusive and kickoff itself is inclusive
func BetOpen(matchTime time.Time, now time.Time) bool {
	start, end := BetWindow(matchTime)
	return now.After(start) && !now.After(end)
}

// WeightFor returns the stake of a match kicking off at matchTime according to a tournament weight schedule
// Preconditions: Receives the kickoff time and the schedule ordered by Before ascending
// Postconditions: Returns the weight of the first step whose Before is after the kickoff, the last step's weight when
// the kickoff is past every step, or shared.DefaultWeight for an empty schedule
func WeightFor(matchTime time.Time, schedule []shared.WeightStep) float64 {
	if len(schedule) == 0 {
		return shared.DefaultWeight
	}
	for _, step := range schedule {
		if matchTime.Before(step.Before) {
			return step.Weight
		}
	}
	return schedule[len(schedule)-1].Weight
}

// CivilTime converts an instant into the naive civil time of the given zone. The result carries time.UTC as its
// location, matching how match times are stored
func CivilTime(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), time.UTC)
}

// ParseMatchTime parses a kickoff time given as text, e.g. "2018-03-31 19:30" or "201803311930"
func ParseMatchTime(s string) (time.Time, error) {
	for _, layout := range matchTimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, &shared.InvalidArgumentError{Name: "match time", Value: s}
}

// ParseScore converts a textual score into a score pointer. An empty string means the score is not known yet
func ParseScore(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return nil, &shared.InvalidArgumentError{Name: "score", Value: s}
	}
	return &v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatPoints renders a point value with two decimals, the way standings are shown
func FormatPoints(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
