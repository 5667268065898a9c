/* settlement.go
 * Contains the settlement of a completed match: turns the score, the handicap pair, the bettors of each side, the
 * gamblers required to pick and the team owners into a signed point transfer between gamblers
 */

package logic

import (
	"sort"

	"handicap-pool/api/shared"
)

// Owners maps a team to the gambler who bought it in the auction of the match's league
type Owners map[string]string

// OwnerOf returns the owner of a team, or "" if nobody bought it
func (o Owners) OwnerOf(team string) string {
	if o == nil {
		return ""
	}
	return o[team]
}

// OwnersFromAuctions indexes auction records by team
func OwnersFromAuctions(auctions []shared.Auction) Owners {
	owners := make(Owners, len(auctions))
	for _, a := range auctions {
		owners[a.Team] = a.Gambler
	}
	return owners
}

// Result maps a gambler to the points won (positive) or lost (negative) on a match
type Result map[string]float64

// Total returns the sum of all deltas. It is negative when a pooled reward had no winner to go to
func (r Result) Total() float64 {
	var total float64
	for _, g := range r.Gamblers() {
		total += r[g]
	}
	return total
}

// Gamblers returns the gamblers of the result sorted by name
func (r Result) Gamblers() []string {
	names := make([]string, 0, len(r))
	for g := range r {
		names = append(names, g)
	}
	sort.Strings(names)
	return names
}

// Settle computes the point transfer of a completed match
// Preconditions: Receives the match, the gamblers that are expected to pick a side (anyone in this list who picked
// neither side loses as if they had picked the losing side), and the team owners of the match's league
// Postconditions: Returns a delta for every bettor and required gambler, or nil if the match is not completed. The match
// is not modified and repeated calls return equal results
func Settle(m shared.Match, required []string, owners Owners) Result {
	if !m.IsCompleted() {
		return nil
	}

	result := make(Result)
	for _, g := range m.A.Gamblers {
		result[g] = 0
	}
	for _, g := range m.B.Gamblers {
		result[g] = 0
	}
	for _, g := range required {
		result[g] = 0
	}

	abstainers := findAbstainers(m, required)
	scoreA := float64(*m.A.Score)
	scoreB := float64(*m.B.Score)
	stack := m.Weight / float64(len(m.Handicap))

	for _, h := range m.Handicap {
		// Abstainers pay on every sub-bet, pushes included
		for _, g := range abstainers {
			result[g] -= stack
		}

		var winner, loser shared.TeamSide
		switch {
		case scoreA > scoreB+h:
			winner, loser = m.A, m.B
		case scoreA < scoreB+h:
			winner, loser = m.B, m.A
		default:
			continue
		}

		for _, g := range loser.Gamblers {
			result[g] -= stack
		}

		rewardSum := stack * float64(len(loser.Gamblers)+len(abstainers))
		var winnerReward float64
		if len(winner.Gamblers) > 0 {
			winnerReward = rewardSum / float64(len(winner.Gamblers))
		}
		for _, g := range winner.Gamblers {
			result[g] += winnerReward
		}

		winnerOwner := owners.OwnerOf(winner.Team)
		loserOwner := owners.OwnerOf(loser.Team)
		if winnerOwner != "" && winner.HasGambler(winnerOwner) {
			result[winnerOwner] += winnerReward
		}
		if loserOwner != "" && loserOwner != winnerOwner && winner.HasGambler(loserOwner) {
			result[loserOwner] += winnerReward
		}
	}
	return result
}

// findAbstainers returns the required gamblers that picked neither side, without duplicates
func findAbstainers(m shared.Match, required []string) []string {
	var abstainers []string
	seen := make(map[string]bool)
	for _, g := range required {
		if seen[g] {
			continue
		}
		seen[g] = true
		if m.PickOf(g) == "" {
			abstainers = append(abstainers, g)
		}
	}
	return abstainers
}
