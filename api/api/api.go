/* api.go
 * This file contains the public methods for interacting with this package. Front ends (bot, web, admin commands)
 * should only call the methods in this file, not the logic and store packages directly
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"handicap-pool/api/logic"
	"handicap-pool/api/shared"
	"handicap-pool/api/store"
	"handicap-pool/config"
	"handicap-pool/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// API provides methods for interacting with the betting pool data layer
type API struct {
	Store   store.Interface
	Logger  *logrus.Logger
	Metrics *metrics.Manager

	// Location is the tournament's civil time zone, used to turn Now into the naive time match times are stored in
	Location *time.Location
	// Now is the clock. Tests replace it
	Now func() time.Time

	WeightSchedule []shared.WeightStep
	// RequiredGamblers must pick a side of every match. Empty means every registered gambler
	RequiredGamblers []string
}

// NewAPI creates a new API instance for the active tournament of the configuration
func NewAPI(ctx context.Context, cfg *config.Config, logger *logrus.Logger, m *metrics.Manager) (*API, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	tournament, err := cfg.ActiveTournament()
	if err != nil {
		return nil, err
	}
	schedule, err := tournament.Schedule()
	if err != nil {
		return nil, err
	}

	s, err := store.NewStore(ctx, tournament.DBName, cfg.MongoURI, tournament.League, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	if err = s.EnsureIndexes(ctx); err != nil {
		return nil, err
	}

	return &API{
		Store:            s,
		Logger:           logger,
		Metrics:          m,
		Location:         cfg.Location(),
		Now:              time.Now,
		WeightSchedule:   schedule,
		RequiredGamblers: cfg.RequiredGamblers,
	}, nil
}

func (a *API) log() *logrus.Logger {
	if a.Logger == nil {
		return logrus.StandardLogger()
	}
	return a.Logger
}

// now returns the current naive civil time of the tournament
func (a *API) now() time.Time {
	clock := a.Now
	if clock == nil {
		clock = time.Now
	}
	loc := a.Location
	if loc == nil {
		loc = time.UTC
	}
	return logic.CivilTime(clock(), loc)
}

// region matches

// InsertMatch stores a new fixture. Inserting a fixture that already exists returns the stored record unchanged
// Preconditions: Receives the fixture facts. Empty league means the store's league, any other league must equal it.
// Zero weight means the weight schedule decides
// Postconditions: Returns the stored match, *shared.InvalidHandicapError or *shared.InvalidArgumentError for bad
// input, or another error if it occurs
func (a *API) InsertMatch(ctx context.Context, nm NewMatch) (shared.Match, error) {
	if nm.TeamA == "" {
		return shared.Match{}, &shared.InvalidArgumentError{Name: "team a", Value: nm.TeamA}
	}
	if nm.TeamB == "" {
		return shared.Match{}, &shared.InvalidArgumentError{Name: "team b", Value: nm.TeamB}
	}
	if nm.Weight < 0 {
		return shared.Match{}, &shared.InvalidArgumentError{Name: "weight", Value: logic.FormatPoints(nm.Weight)}
	}
	handicap, err := logic.ParseHandicap(nm.Handicap)
	if err != nil {
		return shared.Match{}, err
	}

	league := a.Store.GetLeague()
	if nm.League != "" && nm.League != league {
		return shared.Match{}, &shared.InvalidArgumentError{Name: "league", Value: nm.League}
	}
	weight := nm.Weight
	if weight == 0 {
		weight = logic.WeightFor(nm.MatchTime, a.WeightSchedule)
	}

	match := shared.Match{
		ID:              shared.GenerateMatchID(nm.MatchTime, nm.TeamA, nm.TeamB),
		League:          league,
		MatchTime:       nm.MatchTime,
		HandicapDisplay: nm.Handicap,
		Handicap:        handicap,
		Weight:          weight,
		A:               shared.TeamSide{Team: nm.TeamA, Premium: nm.PremiumA, Gamblers: []string{}},
		B:               shared.TeamSide{Team: nm.TeamB, Premium: nm.PremiumB, Gamblers: []string{}},
	}

	stored, inserted, err := a.Store.InsertMatch(ctx, match)
	if err != nil {
		return shared.Match{}, err
	}
	if !inserted {
		a.log().WithField("match", stored.ID).Debug("match already stored")
	}
	return stored, nil
}

// UpdateMatchScore records the result of a match. A nil score on either side means the result is not known yet and
// nothing is written. Scores are accepted at any time, results are often backfilled
func (a *API) UpdateMatchScore(ctx context.Context, matchID string, scoreA *int, scoreB *int) error {
	if scoreA == nil || scoreB == nil {
		return nil
	}
	if *scoreA < 0 || *scoreB < 0 {
		return &shared.InvalidArgumentError{Name: "score", Value: fmt.Sprintf("%d:%d", *scoreA, *scoreB)}
	}
	if err := a.Store.UpdateMatchScore(ctx, matchID, *scoreA, *scoreB); err != nil {
		return err
	}
	a.Metrics.RecordScoreUpdate()
	return nil
}

// UpdateMatchHandicap replaces the handicap of a match
// Preconditions: Receives the match id, the handicap display string, and whether the handicap cutoff applies
// Postconditions: Returns true when the handicap was written, false when it was ignored because the cutoff has passed,
// *shared.InvalidHandicapError for a bad display (nothing is written), or another error if it occurs
func (a *API) UpdateMatchHandicap(ctx context.Context, matchID string, display string, cutoffCheck bool) (bool, error) {
	handicap, err := logic.ParseHandicap(display)
	if err != nil {
		return false, err
	}

	if cutoffCheck {
		match, err := a.Store.FindMatchByID(ctx, matchID)
		if err != nil {
			return false, err
		}
		if !logic.HandicapOpen(match.MatchTime, a.now()) {
			a.log().WithFields(logrus.Fields{"match": matchID, "handicap": display}).Debug("handicap update after cutoff ignored")
			a.Metrics.RecordHandicapUpdate(metrics.ResultIgnored)
			return false, nil
		}
	}

	if err = a.Store.UpdateMatchHandicap(ctx, matchID, display, handicap); err != nil {
		return false, err
	}
	a.Metrics.RecordHandicapUpdate(metrics.ResultAccepted)
	return true, nil
}

// UpdateMatchGamblers records a gambler's pick of a side
// Preconditions: Receives the match id, side ("a" or "b"), the gambler's name, and whether the bet window applies
// Postconditions: Returns true when the pick was written, false when it was ignored because the bet window is closed,
// *shared.InvalidArgumentError for a bad side (checked before anything is read), mongo.ErrNoDocuments for an unknown
// match, or another error if it occurs
func (a *API) UpdateMatchGamblers(ctx context.Context, matchID string, side string, gambler string, cutoffCheck bool) (bool, error) {
	if side != shared.SideA && side != shared.SideB {
		return false, &shared.InvalidArgumentError{Name: "side", Value: side}
	}

	if cutoffCheck {
		match, err := a.Store.FindMatchByID(ctx, matchID)
		if err != nil {
			return false, err
		}
		if !logic.BetOpen(match.MatchTime, a.now()) {
			a.log().WithFields(logrus.Fields{"match": matchID, "gambler": gambler}).Debug("bet outside the bet window ignored")
			a.Metrics.RecordBet(metrics.ResultIgnored)
			return false, nil
		}
	}

	if err := a.Store.UpdateMatchGamblers(ctx, matchID, side, gambler); err != nil {
		return false, err
	}
	a.Metrics.RecordBet(metrics.ResultAccepted)
	return true, nil
}

// UpdateMatchWeight sets the stake of a match. The weight must be positive
func (a *API) UpdateMatchWeight(ctx context.Context, matchID string, weight float64) error {
	if weight <= 0 {
		return &shared.InvalidArgumentError{Name: "weight", Value: logic.FormatPoints(weight)}
	}
	return a.Store.UpdateMatchWeight(ctx, matchID, weight)
}

// UpdateMatchTime moves a match to a new kickoff and returns its new id
func (a *API) UpdateMatchTime(ctx context.Context, matchID string, matchTime time.Time) (string, error) {
	return a.Store.UpdateMatchTime(ctx, matchID, matchTime)
}

// FindMatches returns the matches of the tournament by kickoff, latest first when reverse is set. A limit of 0 means
// every match
func (a *API) FindMatches(ctx context.Context, reverse bool, limit int64) ([]shared.Match, error) {
	return a.Store.FindMatches(ctx, reverse, limit)
}

// FindMatchByID returns a single match, or mongo.ErrNoDocuments
func (a *API) FindMatchByID(ctx context.Context, matchID string) (shared.Match, error) {
	return a.Store.FindMatchByID(ctx, matchID)
}

// ImportFixture applies a published fixture: the match is inserted if new, its handicap refreshed while the handicap
// is still open, and its score recorded when known
func (a *API) ImportFixture(ctx context.Context, fixture Fixture) (shared.Match, error) {
	match, err := a.InsertMatch(ctx, fixture.NewMatch)
	if err != nil {
		return shared.Match{}, err
	}

	if match.HandicapDisplay != fixture.Handicap && logic.HandicapOpen(match.MatchTime, a.now()) {
		if _, err = a.UpdateMatchHandicap(ctx, match.ID, fixture.Handicap, false); err != nil {
			return shared.Match{}, err
		}
	}

	if err = a.UpdateMatchScore(ctx, match.ID, fixture.ScoreA, fixture.ScoreB); err != nil {
		return shared.Match{}, err
	}

	return a.Store.FindMatchByID(ctx, match.ID)
}

// endregion

// region settlement

// SettleMatch computes the point transfer of a single match
// Preconditions: Receives the match id
// Postconditions: Returns the delta of every involved gambler, nil if the match is not completed, or an error if it
// occurs
func (a *API) SettleMatch(ctx context.Context, matchID string) (logic.Result, error) {
	match, err := a.Store.FindMatchByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.IsCompleted() {
		return nil, nil
	}

	required, err := a.requiredGamblers(ctx, nil)
	if err != nil {
		return nil, err
	}
	owners, err := a.owners(ctx)
	if err != nil {
		return nil, err
	}

	result := logic.Settle(match, required, owners)
	a.Metrics.RecordSettlements(1)
	return result, nil
}

// GenerateSeries builds the running totals of every registered gambler across the completed matches of the
// tournament
// Preconditions: Receives the gamblers required to pick a side, nil for the configured ones
// Postconditions: Returns one series per gambler ordered by name, or an error if it occurs
func (a *API) GenerateSeries(ctx context.Context, required []string) ([]shared.Series, error) {
	start := time.Now()
	defer a.Metrics.ObserveSeriesDuration(start)

	matches, err := a.Store.FindMatches(ctx, false, 0)
	if err != nil {
		return nil, err
	}
	gamblers, err := a.Store.FindGamblers(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(gamblers))
	for _, g := range gamblers {
		names = append(names, g.Name)
	}

	required, err = a.requiredGamblers(ctx, required)
	if err != nil {
		return nil, err
	}
	owners, err := a.owners(ctx)
	if err != nil {
		return nil, err
	}

	series := logic.BuildSeries(matches, names, required, func(string) logic.Owners { return owners })

	completed := 0
	for _, m := range matches {
		if m.IsCompleted() {
			completed++
		}
	}
	a.Metrics.RecordSettlements(completed)
	a.log().WithFields(logrus.Fields{"gamblers": len(names), "matches": completed}).Debug("series generated")
	return series, nil
}

// GetStandings returns the final total of every gambler, highest first
func (a *API) GetStandings(ctx context.Context) ([]logic.Standing, error) {
	series, err := a.GenerateSeries(ctx, nil)
	if err != nil {
		return nil, err
	}
	return logic.Standings(series), nil
}

// requiredGamblers resolves who must pick every match. An explicit list wins; otherwise the configured list filtered to
// registered gamblers; with nothing configured, every registered gambler
func (a *API) requiredGamblers(ctx context.Context, explicit []string) ([]string, error) {
	if explicit != nil {
		return explicit, nil
	}

	gamblers, err := a.Store.FindGamblers(ctx)
	if err != nil {
		return nil, err
	}
	required := make([]string, 0, len(gamblers))
	for _, g := range gamblers {
		if len(a.RequiredGamblers) == 0 || contains(a.RequiredGamblers, g.Name) {
			required = append(required, g.Name)
		}
	}
	return required, nil
}

// owners loads the auction results of the league once
func (a *API) owners(ctx context.Context) (logic.Owners, error) {
	auctions, err := a.Store.FindAuctions(ctx)
	if err != nil {
		return nil, err
	}
	return logic.OwnersFromAuctions(auctions), nil
}

// endregion

// region gamblers

// RegisterGambler creates a gambler
// Preconditions: Receives the name and the external identity. An empty openID gets a generated one
// Postconditions: Returns the gambler and true when it was created. When the openID is already registered the existing
// gambler and false are returned. Returns store.ErrGamblerExists when the name belongs to someone else, or another
// error if it occurs
func (a *API) RegisterGambler(ctx context.Context, name string, openID string) (shared.Gambler, bool, error) {
	name = logic.CleanInput(name)
	if name == "" {
		return shared.Gambler{}, false, &shared.InvalidArgumentError{Name: "name", Value: name}
	}

	if openID != "" {
		existing, err := a.Store.FindGamblerByOpenID(ctx, openID)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return shared.Gambler{}, false, err
		}
	} else {
		openID = uuid.NewString()
	}

	_, err := a.Store.FindGamblerByName(ctx, name)
	if err == nil {
		return shared.Gambler{}, false, store.ErrGamblerExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return shared.Gambler{}, false, err
	}

	gambler := shared.Gambler{Name: name, OpenID: openID}
	if err = a.Store.InsertGambler(ctx, gambler); err != nil {
		return shared.Gambler{}, false, err
	}
	a.log().WithField("gambler", name).Info("gambler registered")
	return gambler, true, nil
}

// FindGamblerByOpenID returns the gambler registered with an external identity, or mongo.ErrNoDocuments
func (a *API) FindGamblerByOpenID(ctx context.Context, openID string) (shared.Gambler, error) {
	return a.Store.FindGamblerByOpenID(ctx, openID)
}

// RenameGambler renames a gambler everywhere the name is used
func (a *API) RenameGambler(ctx context.Context, current string, newName string) error {
	newName = logic.CleanInput(newName)
	if newName == "" {
		return &shared.InvalidArgumentError{Name: "name", Value: newName}
	}
	if newName == current {
		return nil
	}
	return a.Store.RenameGambler(ctx, current, newName)
}

// DropGambler removes a gambler. Bets and auctions keep the name
func (a *API) DropGambler(ctx context.Context, name string) error {
	return a.Store.DropGambler(ctx, name)
}

// FindGamblers returns every gambler ordered by name
func (a *API) FindGamblers(ctx context.Context) ([]shared.Gambler, error) {
	return a.Store.FindGamblers(ctx)
}

// endregion

// region auctions

// InsertAuction records who bought a team. A team name that equals a stored team apart from case takes the stored
// spelling, any other name is stored as given
func (a *API) InsertAuction(ctx context.Context, team string, gambler string, price float64) (shared.Auction, error) {
	team = logic.CleanInput(team)
	if team == "" {
		return shared.Auction{}, &shared.InvalidArgumentError{Name: "team", Value: team}
	}
	if price < 0 {
		return shared.Auction{}, &shared.InvalidArgumentError{Name: "price", Value: logic.FormatPoints(price)}
	}
	if _, err := a.Store.FindGamblerByName(ctx, gambler); err != nil {
		return shared.Auction{}, err
	}

	teams, err := a.knownTeams(ctx)
	if err != nil {
		return shared.Auction{}, err
	}
	if resolved, ok := logic.CanonicalTeam(team, teams); ok {
		team = resolved
	}

	auction := shared.Auction{League: a.Store.GetLeague(), Team: team, Gambler: gambler, Price: price}
	if err = a.Store.InsertAuction(ctx, auction); err != nil {
		return shared.Auction{}, err
	}
	return auction, nil
}

// FindAuctions returns every auction of the tournament ordered by team
func (a *API) FindAuctions(ctx context.Context) ([]shared.Auction, error) {
	return a.Store.FindAuctions(ctx)
}

// FindTeamOwner returns the owner of a team, "" if nobody bought it
func (a *API) FindTeamOwner(ctx context.Context, team string) (string, error) {
	return a.Store.FindTeamOwner(ctx, team)
}

// knownTeams returns the distinct team names of the stored matches
func (a *API) knownTeams(ctx context.Context) ([]string, error) {
	matches, err := a.Store.FindMatches(ctx, false, 0)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	teams := []string{}
	for _, m := range matches {
		for _, team := range []string{m.A.Team, m.B.Team} {
			if !seen[team] {
				seen[team] = true
				teams = append(teams, team)
			}
		}
	}
	return teams, nil
}

// endregion

func contains(items []string, item string) bool {
	for _, i := range items {
		if i == item {
			return true
		}
	}
	return false
}
