/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 */

package store

import (
	"context"
	"time"

	"handicap-pool/api/shared"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	EnsureIndexes(ctx context.Context) error

	// Gamblers
	InsertGambler(ctx context.Context, gambler shared.Gambler) error
	FindGamblerByName(ctx context.Context, name string) (shared.Gambler, error)
	FindGamblerByOpenID(ctx context.Context, openID string) (shared.Gambler, error)
	FindGamblers(ctx context.Context) ([]shared.Gambler, error)
	RenameGambler(ctx context.Context, current string, newName string) error
	DropGambler(ctx context.Context, name string) error

	// Auctions
	InsertAuction(ctx context.Context, auction shared.Auction) error
	FindAuction(ctx context.Context, team string) (shared.Auction, error)
	FindAuctions(ctx context.Context) ([]shared.Auction, error)
	FindTeamOwner(ctx context.Context, team string) (string, error)

	// Matches
	InsertMatch(ctx context.Context, match shared.Match) (shared.Match, bool, error)
	FindMatchByID(ctx context.Context, matchID string) (shared.Match, error)
	FindMatches(ctx context.Context, reverse bool, limit int64) ([]shared.Match, error)
	UpdateMatchScore(ctx context.Context, matchID string, scoreA int, scoreB int) error
	UpdateMatchHandicap(ctx context.Context, matchID string, display string, handicap shared.Handicap) error
	UpdateMatchWeight(ctx context.Context, matchID string, weight float64) error
	UpdateMatchTime(ctx context.Context, matchID string, matchTime time.Time) (string, error)
	UpdateMatchGamblers(ctx context.Context, matchID string, side string, gambler string) error

	// Getter methods for accessing fields
	GetLeague() string
	GetDatabase() interface{ Name() string }
	GetClient() interface{ Disconnect(context.Context) error }
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// GetLeague returns the league matches and auctions are partitioned by
func (s *Store) GetLeague() string {
	return s.League
}

// GetDatabase returns the database instance
func (s *Store) GetDatabase() interface{ Name() string } {
	return s.Database
}

// GetClient returns the MongoDB client
func (s *Store) GetClient() interface{ Disconnect(context.Context) error } {
	return s.Client
}
