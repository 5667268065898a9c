/* auctions.go
 * Contains the methods for interacting with the auction collection
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"handicap-pool/api/shared"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsertAuction stores who bought a team. A second auction for the same team of the league replaces the first
// Preconditions: Receives the auction record. An empty league is filled with the store's league
// Postconditions: Inserts or replaces the auction document, or returns an error if it occurs
func (s *Store) InsertAuction(ctx context.Context, auction shared.Auction) error {
	if auction.League == "" {
		auction.League = s.League
	}
	filter := bson.M{"league": auction.League, "team": auction.Team}
	_, err := s.Collections.Auctions.ReplaceOne(ctx, filter, auction, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert auction: %w", err)
	}
	s.log().WithFields(logrus.Fields{"team": auction.Team, "gambler": auction.Gambler, "price": auction.Price}).Info("auction stored")
	return nil
}

// FindAuction returns the auction of a team in the store's league, or mongo.ErrNoDocuments
func (s *Store) FindAuction(ctx context.Context, team string) (shared.Auction, error) {
	var result shared.Auction
	err := s.Collections.Auctions.FindOne(ctx, bson.M{"league": s.League, "team": team}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return shared.Auction{}, err
		}
		return shared.Auction{}, fmt.Errorf("error fetching auction from db: %w", err)
	}
	return result, nil
}

// FindAuctions returns every auction of the store's league ordered by team
func (s *Store) FindAuctions(ctx context.Context) ([]shared.Auction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "team", Value: 1}})
	cursor, err := s.Collections.Auctions.Find(ctx, bson.M{"league": s.League}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching auctions from db: %w", err)
	}

	results := []shared.Auction{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of auctions: %w", err)
	}
	return results, nil
}

// FindTeamOwner returns the gambler who owns a team. A team nobody bought is not an error: "" is returned
func (s *Store) FindTeamOwner(ctx context.Context, team string) (string, error) {
	auction, err := s.FindAuction(ctx, team)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", err
	}
	return auction.Gambler, nil
}
