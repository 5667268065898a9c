/* store.go
 * Contains the store struct and NewStore function. The methods for this package were split by collection:
 * gamblers, auctions and matches. Each of these files contain methods for interacting with that part of the database
 */

package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names. One database holds one tournament
const (
	GamblerCollection = "gambler"
	MatchCollection   = "match"
	AuctionCollection = "auction"
)

// Collections holds the handles of the collections a Store works with
type Collections struct {
	Gamblers *mongo.Collection
	Matches  *mongo.Collection
	Auctions *mongo.Collection
}

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	League      string
	Logger      *logrus.Logger
	Collections Collections
}

// NewStore initialises the Store and its db connection
// Preconditions: Receives strings containing the following: dbName, mongoURI and league (the competition name matches
// and auctions are partitioned by), and the logger to use (nil falls back to the logrus standard logger)
// Postconditions: Returns pointer to the Store object, or error if it occurs
func NewStore(ctx context.Context, dbName string, mongoURI string, league string, logger *logrus.Logger) (*Store, error) {
	if dbName == "" || league == "" {
		return nil, fmt.Errorf("dbName or league cannot be empty")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	db := client.Database(dbName)

	return &Store{
		Client:   client,
		Database: db,
		League:   league,
		Logger:   logger,
		Collections: Collections{
			Gamblers: db.Collection(GamblerCollection),
			Matches:  db.Collection(MatchCollection),
			Auctions: db.Collection(AuctionCollection),
		},
	}, nil
}

// EnsureIndexes creates the unique indexes that back the natural keys: match id, gambler name and (league, team)
// for auctions. Safe to run on every start
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.Collections.Matches.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create match index: %w", err)
	}

	_, err = s.Collections.Gamblers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create gambler index: %w", err)
	}

	_, err = s.Collections.Auctions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "league", Value: 1}, {Key: "team", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create auction index: %w", err)
	}
	return nil
}

func (s *Store) log() *logrus.Logger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}
