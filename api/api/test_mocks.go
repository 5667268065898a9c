/* test_mocks.go
 * Contains mock structures and interfaces for testing the API package and its consumers
 */

package api

import (
	"context"
	"sort"
	"time"

	"handicap-pool/api/shared"
	"handicap-pool/api/store"

	"go.mongodb.org/mongo-driver/mongo"
)

// MockStore implements the Store interface in memory for testing
type MockStore struct {
	// Storage for mock data
	Gamblers []shared.Gambler
	Auctions []shared.Auction
	Matches  map[string]shared.Match

	// Error injection for testing error paths
	InsertGamblerError       error
	FindGamblerError         error
	FindGamblersError        error
	RenameGamblerError       error
	InsertAuctionError       error
	FindAuctionsError        error
	InsertMatchError         error
	FindMatchError           error
	FindMatchesError         error
	UpdateMatchError         error
	UpdateMatchGamblersError error

	// Calls counts the writes to matches, to check that ignored updates do not reach the store
	Calls map[string]int

	League   string
	Database interface{ Name() string }
}

// mockDatabase implements the minimal Database interface needed for tests
type mockDatabase struct {
	name string
}

func (m *mockDatabase) Name() string {
	return m.name
}

// NewMockStore creates a new, empty MockStore for a league
func NewMockStore(league string) *MockStore {
	return &MockStore{
		Gamblers: []shared.Gambler{},
		Auctions: []shared.Auction{},
		Matches:  make(map[string]shared.Match),
		Calls:    make(map[string]int),
		League:   league,
		Database: &mockDatabase{name: "test_db"},
	}
}

// EnsureIndexes mock implementation
func (m *MockStore) EnsureIndexes(ctx context.Context) error {
	return nil
}

// region gamblers

// InsertGambler mock implementation
func (m *MockStore) InsertGambler(ctx context.Context, gambler shared.Gambler) error {
	if m.InsertGamblerError != nil {
		return m.InsertGamblerError
	}
	for i, g := range m.Gamblers {
		if g.Name == gambler.Name {
			m.Gamblers[i] = gambler
			return nil
		}
	}
	m.Gamblers = append(m.Gamblers, gambler)
	return nil
}

// FindGamblerByName mock implementation
func (m *MockStore) FindGamblerByName(ctx context.Context, name string) (shared.Gambler, error) {
	if m.FindGamblerError != nil {
		return shared.Gambler{}, m.FindGamblerError
	}
	for _, g := range m.Gamblers {
		if g.Name == name {
			return g, nil
		}
	}
	return shared.Gambler{}, mongo.ErrNoDocuments
}

// FindGamblerByOpenID mock implementation
func (m *MockStore) FindGamblerByOpenID(ctx context.Context, openID string) (shared.Gambler, error) {
	if m.FindGamblerError != nil {
		return shared.Gambler{}, m.FindGamblerError
	}
	for _, g := range m.Gamblers {
		if g.OpenID == openID {
			return g, nil
		}
	}
	return shared.Gambler{}, mongo.ErrNoDocuments
}

// FindGamblers mock implementation
func (m *MockStore) FindGamblers(ctx context.Context) ([]shared.Gambler, error) {
	if m.FindGamblersError != nil {
		return nil, m.FindGamblersError
	}
	gamblers := append([]shared.Gambler{}, m.Gamblers...)
	sort.Slice(gamblers, func(i, j int) bool { return gamblers[i].Name < gamblers[j].Name })
	return gamblers, nil
}

// RenameGambler mock implementation, cascading like the real store
func (m *MockStore) RenameGambler(ctx context.Context, current string, newName string) error {
	if m.RenameGamblerError != nil {
		return m.RenameGamblerError
	}
	if _, err := m.FindGamblerByName(ctx, newName); err == nil {
		return store.ErrGamblerExists
	}
	index := -1
	for i, g := range m.Gamblers {
		if g.Name == current {
			index = i
		}
	}
	if index < 0 {
		return mongo.ErrNoDocuments
	}
	m.Gamblers[index].Name = newName

	for id, match := range m.Matches {
		match.A.Gamblers = replaceName(match.A.Gamblers, current, newName)
		match.B.Gamblers = replaceName(match.B.Gamblers, current, newName)
		m.Matches[id] = match
	}
	for i := range m.Auctions {
		if m.Auctions[i].Gambler == current {
			m.Auctions[i].Gambler = newName
		}
	}
	return nil
}

// DropGambler mock implementation
func (m *MockStore) DropGambler(ctx context.Context, name string) error {
	for i, g := range m.Gamblers {
		if g.Name == name {
			m.Gamblers = append(m.Gamblers[:i], m.Gamblers[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func replaceName(names []string, current string, newName string) []string {
	for i, n := range names {
		if n == current {
			names[i] = newName
		}
	}
	return names
}

// endregion

// region auctions

// InsertAuction mock implementation
func (m *MockStore) InsertAuction(ctx context.Context, auction shared.Auction) error {
	if m.InsertAuctionError != nil {
		return m.InsertAuctionError
	}
	if auction.League == "" {
		auction.League = m.League
	}
	for i, a := range m.Auctions {
		if a.League == auction.League && a.Team == auction.Team {
			m.Auctions[i] = auction
			return nil
		}
	}
	m.Auctions = append(m.Auctions, auction)
	return nil
}

// FindAuction mock implementation
func (m *MockStore) FindAuction(ctx context.Context, team string) (shared.Auction, error) {
	if m.FindAuctionsError != nil {
		return shared.Auction{}, m.FindAuctionsError
	}
	for _, a := range m.Auctions {
		if a.League == m.League && a.Team == team {
			return a, nil
		}
	}
	return shared.Auction{}, mongo.ErrNoDocuments
}

// FindAuctions mock implementation
func (m *MockStore) FindAuctions(ctx context.Context) ([]shared.Auction, error) {
	if m.FindAuctionsError != nil {
		return nil, m.FindAuctionsError
	}
	auctions := []shared.Auction{}
	for _, a := range m.Auctions {
		if a.League == m.League {
			auctions = append(auctions, a)
		}
	}
	sort.Slice(auctions, func(i, j int) bool { return auctions[i].Team < auctions[j].Team })
	return auctions, nil
}

// FindTeamOwner mock implementation
func (m *MockStore) FindTeamOwner(ctx context.Context, team string) (string, error) {
	a, err := m.FindAuction(ctx, team)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return a.Gambler, nil
}

// endregion

// region matches

// InsertMatch mock implementation
func (m *MockStore) InsertMatch(ctx context.Context, match shared.Match) (shared.Match, bool, error) {
	if m.InsertMatchError != nil {
		return shared.Match{}, false, m.InsertMatchError
	}
	if existing, ok := m.Matches[match.ID]; ok {
		return existing, false, nil
	}
	m.Matches[match.ID] = match
	m.Calls["InsertMatch"]++
	return match, true, nil
}

// FindMatchByID mock implementation
func (m *MockStore) FindMatchByID(ctx context.Context, matchID string) (shared.Match, error) {
	if m.FindMatchError != nil {
		return shared.Match{}, m.FindMatchError
	}
	match, ok := m.Matches[matchID]
	if !ok {
		return shared.Match{}, mongo.ErrNoDocuments
	}
	return match, nil
}

// FindMatches mock implementation
func (m *MockStore) FindMatches(ctx context.Context, reverse bool, limit int64) ([]shared.Match, error) {
	if m.FindMatchesError != nil {
		return nil, m.FindMatchesError
	}
	matches := []shared.Match{}
	for _, match := range m.Matches {
		if match.League == m.League {
			matches = append(matches, match)
		}
	}
	less := func(x, y shared.Match) bool {
		if !x.MatchTime.Equal(y.MatchTime) {
			return x.MatchTime.Before(y.MatchTime)
		}
		return x.ID < y.ID
	}
	sort.Slice(matches, func(i, j int) bool {
		if reverse {
			return less(matches[j], matches[i])
		}
		return less(matches[i], matches[j])
	})
	if limit > 0 && int64(len(matches)) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// UpdateMatchScore mock implementation
func (m *MockStore) UpdateMatchScore(ctx context.Context, matchID string, scoreA int, scoreB int) error {
	return m.updateMatch("UpdateMatchScore", matchID, func(match *shared.Match) {
		match.A.Score = shared.IntPtr(scoreA)
		match.B.Score = shared.IntPtr(scoreB)
	})
}

// UpdateMatchHandicap mock implementation
func (m *MockStore) UpdateMatchHandicap(ctx context.Context, matchID string, display string, handicap shared.Handicap) error {
	return m.updateMatch("UpdateMatchHandicap", matchID, func(match *shared.Match) {
		match.HandicapDisplay = display
		match.Handicap = handicap
	})
}

// UpdateMatchWeight mock implementation
func (m *MockStore) UpdateMatchWeight(ctx context.Context, matchID string, weight float64) error {
	return m.updateMatch("UpdateMatchWeight", matchID, func(match *shared.Match) {
		match.Weight = weight
	})
}

// UpdateMatchTime mock implementation
func (m *MockStore) UpdateMatchTime(ctx context.Context, matchID string, matchTime time.Time) (string, error) {
	if m.UpdateMatchError != nil {
		return "", m.UpdateMatchError
	}
	match, ok := m.Matches[matchID]
	if !ok {
		return "", mongo.ErrNoDocuments
	}
	newID := shared.GenerateMatchID(matchTime, match.A.Team, match.B.Team)
	if _, taken := m.Matches[newID]; taken && newID != matchID {
		return "", store.ErrMatchExists
	}
	delete(m.Matches, matchID)
	match.ID = newID
	match.MatchTime = matchTime
	m.Matches[newID] = match
	m.Calls["UpdateMatchTime"]++
	return newID, nil
}

// UpdateMatchGamblers mock implementation
func (m *MockStore) UpdateMatchGamblers(ctx context.Context, matchID string, side string, gambler string) error {
	if m.UpdateMatchGamblersError != nil {
		return m.UpdateMatchGamblersError
	}
	if side != shared.SideA && side != shared.SideB {
		return &shared.InvalidArgumentError{Name: "side", Value: side}
	}
	return m.updateMatch("UpdateMatchGamblers", matchID, func(match *shared.Match) {
		match.A.Gamblers = removeName(match.A.Gamblers, gambler)
		match.B.Gamblers = removeName(match.B.Gamblers, gambler)
		if side == shared.SideA {
			match.A.Gamblers = append(match.A.Gamblers, gambler)
		} else {
			match.B.Gamblers = append(match.B.Gamblers, gambler)
		}
	})
}

func (m *MockStore) updateMatch(call string, matchID string, apply func(*shared.Match)) error {
	if m.UpdateMatchError != nil {
		return m.UpdateMatchError
	}
	match, ok := m.Matches[matchID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	apply(&match)
	m.Matches[matchID] = match
	m.Calls[call]++
	return nil
}

func removeName(names []string, name string) []string {
	kept := []string{}
	for _, n := range names {
		if n != name {
			kept = append(kept, n)
		}
	}
	return kept
}

// endregion

// Helper methods for setting up test scenarios

// AddMatch stores a match directly, bypassing the facade
func (m *MockStore) AddMatch(match shared.Match) {
	if match.League == "" {
		match.League = m.League
	}
	m.Matches[match.ID] = match
}

// AddGamblers registers gamblers with their names as openids
func (m *MockStore) AddGamblers(names ...string) {
	for _, name := range names {
		m.Gamblers = append(m.Gamblers, shared.Gambler{Name: name, OpenID: name})
	}
}

// GetLeague returns the league of the mock store
func (m *MockStore) GetLeague() string {
	return m.League
}

// GetDatabase returns the mock database
func (m *MockStore) GetDatabase() interface{ Name() string } {
	return m.Database
}

// mockClient implements minimal client interface
type mockClient struct{}

func (mc *mockClient) Disconnect(ctx context.Context) error {
	return nil
}

func (m *MockStore) GetClient() interface{ Disconnect(context.Context) error } {
	return &mockClient{}
}

// Ensure MockStore implements store.Interface
var _ store.Interface = (*MockStore)(nil)
