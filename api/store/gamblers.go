/* gamblers.go
 * Contains the methods for interacting with the gambler collection
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

// InsertGambler stores a gambler, replacing any gambler stored under the same name
// Preconditions: Receives the gambler to store
// Postconditions: Inserts or replaces the gambler document, or returns an error if it occurs
func (s *Store) InsertGambler(ctx context.Context, gambler shared.Gambler) error {
	filter := bson.M{"name": gambler.Name}
	_, err := s.Collections.Gamblers.ReplaceOne(ctx, filter, gambler, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert gambler: %w", err)
	}
	s.log().WithField("gambler", gambler.Name).Info("gambler stored")
	return nil
}

// FindGamblerByName returns the gambler with the given name, or mongo.ErrNoDocuments
func (s *Store) FindGamblerByName(ctx context.Context, name string) (shared.Gambler, error) {
	return s.findGambler(ctx, bson.M{"name": name})
}

// FindGamblerByOpenID returns the gambler linked to an external identity, or mongo.ErrNoDocuments
func (s *Store) FindGamblerByOpenID(ctx context.Context, openID string) (shared.Gambler, error) {
	return s.findGambler(ctx, bson.M{"openid": openID})
}

func (s *Store) findGambler(ctx context.Context, filter bson.M) (shared.Gambler, error) {
	var result shared.Gambler
	err := s.Collections.Gamblers.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return shared.Gambler{}, err
		}
		return shared.Gambler{}, fmt.Errorf("error fetching gambler from db: %w", err)
	}
	return result, nil
}

// FindGamblers returns every gambler ordered by name
func (s *Store) FindGamblers(ctx context.Context) ([]shared.Gambler, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.Collections.Gamblers.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching gamblers from db: %w", err)
	}

	// Unpack the cursor into a slice
	results := []shared.Gambler{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of gamblers: %w", err)
	}
	return results, nil
}

// RenameGambler changes a gambler's name. Names are the join key of bets and auctions, so every match and auction
// that refers to the old name is rewritten too
// Preconditions: Receives the current and the new name
// Postconditions: Returns nil, ErrGamblerExists if the new name is taken, mongo.ErrNoDocuments if there is no gambler
// with the current name, or another error if it occurs
func (s *Store) RenameGambler(ctx context.Context, current string, newName string) error {
	if current == newName {
		return nil
	}

	_, err := s.FindGamblerByName(ctx, newName)
	if err == nil {
		return ErrGamblerExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	res, err := s.Collections.Gamblers.UpdateOne(ctx, bson.M{"name": current}, bson.M{"$set": bson.M{"name": newName}})
	if err != nil {
		return fmt.Errorf("failed to rename gambler: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	// Bets on either side
	for _, side := range []string{shared.SideA, shared.SideB} {
		field := gamblersField(side)
		_, err = s.Collections.Matches.UpdateMany(ctx,
			bson.M{field: current},
			bson.M{"$set": bson.M{field + ".$": newName}},
		)
		if err != nil {
			return fmt.Errorf("failed to rename gambler in matches: %w", err)
		}
	}

	_, err = s.Collections.Auctions.UpdateMany(ctx, bson.M{"gambler": current}, bson.M{"$set": bson.M{"gambler": newName}})
	if err != nil {
		return fmt.Errorf("failed to rename gambler in auctions: %w", err)
	}

	s.log().WithFields(logrus.Fields{"from": current, "to": newName}).Info("gambler renamed")
	return nil
}

// DropGambler deletes a gambler. Matches and auctions keep the name so that past results do not change
func (s *Store) DropGambler(ctx context.Context, name string) error {
	res, err := s.Collections.Gamblers.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("failed to drop gambler: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	s.log().WithField("gambler", name).Info("gambler dropped")
	return nil
}
