/* test_helpers.go
 * Contains test helper functions and sample data for store package tests
 */

package store

import (
	"context"
	"time"

	"handicap-pool/api/shared"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateTestStore creates a Store connected to a test database.
// Returns the store and a cleanup function that drops the database.
func CreateTestStore(ctx context.Context, mongoURI string) (*Store, func(), error) {
	store, err := NewStore(ctx, "test_pool", mongoURI, "硬糙", logrus.New())
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if store.Client != nil {
			_ = store.Database.Drop(context.TODO())
			_ = store.Client.Disconnect(context.TODO())
		}
	}

	return store, cleanup, nil
}

// CreateSampleMatch creates a match between 水宫 and 利浦 kicking off 2018-03-31 19:30 with no bets and no score
func CreateSampleMatch() shared.Match {
	matchTime := time.Date(2018, 3, 31, 19, 30, 0, 0, time.UTC)
	return shared.Match{
		ID:              shared.GenerateMatchID(matchTime, "水宫", "利浦"),
		League:          "硬糙",
		MatchTime:       matchTime,
		HandicapDisplay: "受一球",
		Handicap:        shared.Handicap{-1, -1},
		Weight:          shared.DefaultWeight,
		A:               shared.TeamSide{Team: "水宫", Premium: 1.85, Gamblers: []string{}},
		B:               shared.TeamSide{Team: "利浦", Premium: 2.05, Gamblers: []string{}},
	}
}

// ToDocument converts a value into the document the server would return for it. Panics on values bson cannot
// encode, which only happens for broken fixtures
func ToDocument(v interface{}) bson.D {
	raw, err := bson.Marshal(v)
	if err != nil {
		panic(err)
	}
	var doc bson.D
	if err = bson.Unmarshal(raw, &doc); err != nil {
		panic(err)
	}
	return doc
}
