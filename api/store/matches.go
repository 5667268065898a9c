/* matches.go
 * Contains the methods for interacting with the match collection: inserting fixtures, reading them back in kickoff
 * order and the partial updates applied to them (score, handicap, weight, kickoff time and bets)
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"handicap-pool/api/shared"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsertMatch stores a match unless a match with the same id already exists
// Preconditions: Receives the match to store with its id set
// Postconditions: Returns the stored match and true when it was inserted, the existing match and false when the id was
// already taken, or an error if it occurs
func (s *Store) InsertMatch(ctx context.Context, match shared.Match) (shared.Match, bool, error) {
	existing, err := s.FindMatchByID(ctx, match.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return shared.Match{}, false, fmt.Errorf("lookup for existing match failed: %w", err)
	}

	match = normalizeMatch(match)
	_, err = s.Collections.Matches.InsertOne(ctx, match)
	if err != nil {
		// Another writer inserted the same fixture in between
		if mongo.IsDuplicateKeyError(err) {
			existing, findErr := s.FindMatchByID(ctx, match.ID)
			if findErr != nil {
				return shared.Match{}, false, findErr
			}
			return existing, false, nil
		}
		return shared.Match{}, false, fmt.Errorf("failed to insert match: %w", err)
	}

	s.log().WithField("match", match.ID).Info("match inserted")
	return match, true, nil
}

// FindMatchByID returns a match, or mongo.ErrNoDocuments if there is none with that id
func (s *Store) FindMatchByID(ctx context.Context, matchID string) (shared.Match, error) {
	var result shared.Match
	err := s.Collections.Matches.FindOne(ctx, bson.M{"id": matchID}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return shared.Match{}, err
		}
		return shared.Match{}, fmt.Errorf("error fetching match from db: %w", err)
	}
	return normalizeMatch(result), nil
}

// FindMatches returns the matches of the store's league ordered by kickoff
// Preconditions: Receives reverse (latest first when true) and limit (0 for no limit)
// Postconditions: Returns the ordered matches, or an error if it occurs
func (s *Store) FindMatches(ctx context.Context, reverse bool, limit int64) ([]shared.Match, error) {
	opts := options.Find().SetSort(matchSort(reverse))
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := s.Collections.Matches.Find(ctx, bson.M{"league": s.League}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching matches from db: %w", err)
	}

	results := []shared.Match{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of matches: %w", err)
	}
	for i := range results {
		results[i] = normalizeMatch(results[i])
	}
	return results, nil
}

// UpdateMatchScore sets both scores of a match
func (s *Store) UpdateMatchScore(ctx context.Context, matchID string, scoreA int, scoreB int) error {
	err := s.updateMatch(ctx, matchID, bson.M{"$set": bson.M{"a.score": scoreA, "b.score": scoreB}})
	if err != nil {
		return err
	}
	s.log().WithFields(logrus.Fields{"match": matchID, "score": fmt.Sprintf("%d:%d", scoreA, scoreB)}).Info("match score updated")
	return nil
}

// UpdateMatchHandicap sets the display string of the handicap together with its numeric pair
func (s *Store) UpdateMatchHandicap(ctx context.Context, matchID string, display string, handicap shared.Handicap) error {
	err := s.updateMatch(ctx, matchID, bson.M{"$set": bson.M{"handicap_display": display, "handicap": handicap}})
	if err != nil {
		return err
	}
	s.log().WithFields(logrus.Fields{"match": matchID, "handicap": display}).Info("match handicap updated")
	return nil
}

// UpdateMatchWeight sets the stake of a match
func (s *Store) UpdateMatchWeight(ctx context.Context, matchID string, weight float64) error {
	err := s.updateMatch(ctx, matchID, bson.M{"$set": bson.M{"weight": weight}})
	if err != nil {
		return err
	}
	s.log().WithFields(logrus.Fields{"match": matchID, "weight": weight}).Info("match weight updated")
	return nil
}

// UpdateMatchTime moves a match to a new kickoff time. The id embeds the kickoff time, so the match is re-keyed
// Preconditions: Receives the current match id and the new kickoff time
// Postconditions: Returns the new id, ErrMatchExists if another match already has that id, mongo.ErrNoDocuments if the
// match does not exist, or another error if it occurs
func (s *Store) UpdateMatchTime(ctx context.Context, matchID string, matchTime time.Time) (string, error) {
	match, err := s.FindMatchByID(ctx, matchID)
	if err != nil {
		return "", err
	}

	newID := shared.GenerateMatchID(matchTime, match.A.Team, match.B.Team)
	if newID != matchID {
		_, err = s.FindMatchByID(ctx, newID)
		if err == nil {
			return "", ErrMatchExists
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return "", err
		}
	}

	err = s.updateMatch(ctx, matchID, bson.M{"$set": bson.M{"id": newID, "match_time": matchTime}})
	if err != nil {
		return "", err
	}
	s.log().WithFields(logrus.Fields{"match": matchID, "new_id": newID}).Info("match time updated")
	return newID, nil
}

// UpdateMatchGamblers records a gambler's pick. The gambler is pulled from the other side and added to the chosen
// side in a single update, so a gambler is never on both sides
// Preconditions: Receives the match id, the side token ("a" or "b") and the gambler's name
// Postconditions: Returns nil, *shared.InvalidArgumentError for a bad side, mongo.ErrNoDocuments if the match does not
// exist, or another error if it occurs
func (s *Store) UpdateMatchGamblers(ctx context.Context, matchID string, side string, gambler string) error {
	if side != shared.SideA && side != shared.SideB {
		return &shared.InvalidArgumentError{Name: "side", Value: side}
	}

	update := bson.M{
		"$pull":     bson.M{gamblersField(otherSide(side)): gambler},
		"$addToSet": bson.M{gamblersField(side): gambler},
	}
	err := s.updateMatch(ctx, matchID, update)
	if err != nil {
		return err
	}
	s.log().WithFields(logrus.Fields{"match": matchID, "side": side, "gambler": gambler}).Info("bet updated")
	return nil
}

// updateMatch applies an update document to a single match and maps "no match" to mongo.ErrNoDocuments
func (s *Store) updateMatch(ctx context.Context, matchID string, update bson.M) error {
	res, err := s.Collections.Matches.UpdateOne(ctx, bson.M{"id": matchID}, update)
	if err != nil {
		return fmt.Errorf("failed to update match %s: %w", matchID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
