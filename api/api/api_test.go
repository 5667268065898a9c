/* api_test.go
 * Contains unit tests for api.go - testing all public API methods against the in-memory store
 */

package api

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"handicap-pool/api/shared"
	"handicap-pool/api/store"
	"handicap-pool/config"
	"handicap-pool/metrics"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

const testLeague = "硬糙"

var beijing = time.FixedZone("UTC+8", 8*60*60)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newTestAPI returns an API over an empty mock store whose clock is frozen at now
func newTestAPI(now time.Time) (*API, *MockStore) {
	mockStore := NewMockStore(testLeague)
	return &API{
		Store:    mockStore,
		Logger:   quietLogger(),
		Metrics:  metrics.NewManager(),
		Location: beijing,
		Now:      func() time.Time { return now },
	}, mockStore
}

// match1 kicks off at 2018-03-31 19:30 Beijing time; its handicap cutoff is 12:00 the same day (04:00 UTC)
func match1() NewMatch {
	return NewMatch{
		League:    testLeague,
		MatchTime: time.Date(2018, 3, 31, 19, 30, 0, 0, time.UTC),
		Handicap:  "受一球",
		TeamA:     "水宫",
		TeamB:     "利浦",
		PremiumA:  1.85,
		PremiumB:  2.05,
	}
}

func match2() NewMatch {
	return NewMatch{
		League:    testLeague,
		MatchTime: time.Date(2018, 3, 31, 22, 10, 0, 0, time.UTC),
		Handicap:  "半球/一球",
		TeamA:     "纽尔联",
		TeamB:     "哈尔德",
		PremiumA:  1.9,
		PremiumB:  2.0,
	}
}

const (
	match1ID = "201803311930-水宫-利浦"
	match2ID = "201803312210-纽尔联-哈尔德"
)

// region NewAPI tests

func TestNewAPI_MissingConfig(t *testing.T) {
	_, err := NewAPI(context.Background(), nil, quietLogger(), nil)
	assert.Error(t, err)
}

func TestNewAPI_UnknownTournament(t *testing.T) {
	cfg := config.New()
	cfg.Tournament = "nowhere"

	_, err := NewAPI(context.Background(), cfg, quietLogger(), nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

// endregion

// region InsertMatch tests

func TestInsertMatch_Success(t *testing.T) {
	a, mockStore := newTestAPI(time.Now())

	m, err := a.InsertMatch(context.Background(), match1())
	require.NoError(t, err)

	assert.Equal(t, match1ID, m.ID)
	assert.Equal(t, shared.Handicap{-1, -1}, m.Handicap)
	assert.Equal(t, "受一球", m.HandicapDisplay)
	assert.Equal(t, shared.DefaultWeight, m.Weight)
	assert.Nil(t, m.A.Score)
	assert.Empty(t, m.A.Gamblers)
	assert.Contains(t, mockStore.Matches, match1ID)
}

func TestInsertMatch_Duplicate(t *testing.T) {
	a, mockStore := newTestAPI(time.Now())
	ctx := context.Background()

	_, err := a.InsertMatch(ctx, match1())
	require.NoError(t, err)

	second := match1()
	second.Handicap = "球半"
	m, err := a.InsertMatch(ctx, second)
	require.NoError(t, err)

	assert.Equal(t, "受一球", m.HandicapDisplay, "the stored record is returned unchanged")
	assert.Equal(t, 1, mockStore.Calls["InsertMatch"])
}

func TestInsertMatch_ForeignLeague(t *testing.T) {
	a, mockStore := newTestAPI(time.Now())
	nm := match1()
	nm.League = "西甲"

	_, err := a.InsertMatch(context.Background(), nm)

	var argErr *shared.InvalidArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "league", argErr.Name)
	assert.Empty(t, mockStore.Matches)

	nm.League = ""
	match, err := a.InsertMatch(context.Background(), nm)
	require.NoError(t, err)
	assert.Equal(t, testLeague, match.League)
}

func TestInsertMatch_InvalidHandicap(t *testing.T) {
	a, mockStore := newTestAPI(time.Now())

	nm := match1()
	nm.Handicap = "三角球"
	_, err := a.InsertMatch(context.Background(), nm)

	var handicapErr *shared.InvalidHandicapError
	assert.True(t, errors.As(err, &handicapErr))
	assert.Empty(t, mockStore.Matches)
}

func TestInsertMatch_MissingTeam(t *testing.T) {
	a, _ := newTestAPI(time.Now())

	nm := match1()
	nm.TeamB = ""
	_, err := a.InsertMatch(context.Background(), nm)

	var argErr *shared.InvalidArgumentError
	assert.True(t, errors.As(err, &argErr))
}

func TestInsertMatch_WeightFromSchedule(t *testing.T) {
	a, _ := newTestAPI(time.Now())
	a.WeightSchedule = []shared.WeightStep{
		{Before: time.Date(2018, 3, 31, 0, 0, 0, 0, time.UTC), Weight: 2},
		{Before: time.Date(2018, 4, 5, 0, 0, 0, 0, time.UTC), Weight: 4},
	}

	m, err := a.InsertMatch(context.Background(), match1())
	require.NoError(t, err)
	assert.Equal(t, 4.0, m.Weight)
}

func TestInsertMatch_ExplicitWeight(t *testing.T) {
	a, _ := newTestAPI(time.Now())

	nm := match1()
	nm.Weight = 16
	m, err := a.InsertMatch(context.Background(), nm)
	require.NoError(t, err)
	assert.Equal(t, 16.0, m.Weight)
}

func TestInsertMatch_DefaultLeague(t *testing.T) {
	a, _ := newTestAPI(time.Now())

	nm := match1()
	nm.League = ""
	m, err := a.InsertMatch(context.Background(), nm)
	require.NoError(t, err)
	assert.Equal(t, testLeague, m.League)
}

func TestInsertMatch_StoreError(t *testing.T) {
	a, mockStore := newTestAPI(time.Now())
	mockStore.InsertMatchError = errors.New("db down")

	_, err := a.InsertMatch(context.Background(), match1())
	assert.EqualError(t, err, "db down")
}

// endregion

// region UpdateMatchHandicap tests

func TestUpdateMatchHandicap_BeforeCutoff(t *testing.T) {
	a, mockStore := newTestAPI(time.Date(2018, 3, 31, 3, 59, 59, 0, time.UTC))
	ctx := context.Background()
	_, err := a.InsertMatch(ctx, match1())
	require.NoError(t, err)

	applied, err := a.UpdateMatchHandicap(ctx, match1ID, "受球半", true)
	require.NoError(t, err)

	assert.True(t, applied)
	assert.Equal(t, shared.Handicap{-1.5, -1.5}, mockStore.Matches[match1ID].Handicap)
	assert.Equal(t, "受球半", mockStore.Matches[match1ID].HandicapDisplay)
}

func TestUpdateMatchHandicap_AfterCutoffIgnored(t *testing.T) {
	a, mockStore := newTestAPI(time.Date(2018, 3, 31, 4, 0, 1, 0, time.UTC))
	ctx := context.Background()
	_, err := a.InsertMatch(ctx, match1())
	require.NoError(t, err)

	applied, err := a.UpdateMatchHandicap(ctx, match1ID, "受球半", true)
	require.NoError(t, err)

	assert.False(t, applied)
	assert.Equal(t, shared.Handicap{-1, -1}, mockStore.Matches[match1ID].Handicap)
	assert.Equal(t, 0, mockStore.Calls["UpdateMatchHandicap"])
}

func TestUpdateMatchHandicap_NoCutoffCheck(t *testing.T) {
	a, mockStore := newTestAPI(time.Date(2018, 4, 30, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()
	_, err := a.InsertMatch(ctx, match1())
	require.NoError(t, err)

	applied, err := a.UpdateMatchHandicap(ctx, match1ID, "半球/一球", false)
	require.NoError(t, err)

	assert.True(t, applied)
	assert.Equal(t, shared.Handicap{0.5, 1}, mockStore.Matches[match1ID].Handicap)
}

func TestUpdateMatchHandicap_InvalidDisplay(t *testing.T) {
	a, mockStore := newTestAPI(time.Date(2018, 3, 31, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()
	_, err := a.InsertMatch(ctx, match1())
	require.NoError(t, err)

	_, err = a.UpdateMatchHandicap(ctx, match1ID, "一球/两球/三球", true)

	var handicapErr *shared.InvalidHandicapError
	assert.True(t, errors.As(err, &handicapErr))
	assert.Equal(t, "受一球", mockStore.Matches[match1ID].HandicapDisplay)
}

func TestUpdateMatchHandicap_UnknownMatch(t *testing.T) {
	a, _ := newTestAPI(time.Date(2018, 3, 31, 0, 0, 0, 0, time.UTC))

	_, err := a.UpdateMatchHandicap(context.Background(), "nope", "平手", true)
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}

// endregion

// region UpdateMatchGamblers tests

func TestUpdateMatchGamblers_BeforeWindowIgnored(t *testing.T) {
	a, mockStore := newTestAPI(time.Date(2018, 3, 31, 3, 59, 59, 0, time.UTC))
	ctx := context.Background()
	_, err := a.InsertMatch(ctx, match1())
	require.NoError(t, err)

	applied, err := a.UpdateMatchGamblers(ctx, match1ID, shared.SideA, "g1", true)
	require.NoError(t, err)

	assert.False(t, applied)
	assert.Empty(t, mockStore.Matches[match1ID].A.Gamblers)
}

func TestUpdateMatchGamblers_InsideWindow(t *testing.T) {
	a, mockStore := newTestAPI(time.Date(2018, 3, 31, 4, 0, 1, 0, time.UTC))
	ctx := context.Background()
	_, err := a.InsertMatch(ctx, match1())
	require.NoError(t, err)

	applied, err := a.UpdateMatchGamblers(ctx, match1ID, shared.SideA, "g1", true)
	require.NoError(t, err)

	assert.True(t, applied)
	assert.Equal(t, []string{"g1"}, mockStore.Matches[match1ID].A.Gamblers)
}

func TestUpdateMatchGamblers_AfterKickoffIgnored(t *testing.T) {
	a, mockStore := newTestAPI(time.Date(2018, 3, 31, 11, 30, 1, 0, time.UTC))
	ctx := context.Background()
	_, err := a.InsertMatch(ctx, match1())
	require.NoError(t, err)

	applied, err := a.UpdateMatchGamblers(ctx, match1ID, shared.SideB, "g1", true)
	require.NoError(t, err)

	assert.False(t, applied)
	assert.Empty(t, mockStore.Matches[match1ID].B.Gamblers)
}

func TestUpdateMatchGamblers_AtKickoffAccepted(t *testing.T) {
	a, _ := newTestAPI(time.Date(2018, 3, 31, 11, 30, 0, 0, time.UTC))
	ctx := context.Background()
	_, err := a.InsertMatch(ctx, match1())
	require.NoError(t, err)

	applied, err := a.UpdateMatchGamblers(ctx, match1ID, shared.SideB, "g1", true)
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestUpdateMatchGamblers_SwitchSides(t *testing.T) {
	a, mockStore := newTestAPI(time.Now())
	ctx := context.Background()
	_, err := a.InsertMatch(ctx, match1())
	require.NoError(t, err)

	_, err = a.UpdateMatchGamblers(ctx, match1ID, shared.SideA, "g1", false)
	require.NoError(t, err)
	_, err = a.UpdateMatchGamblers(ctx, match1ID, shared.SideB, "g1", false)
	require.NoError(t, err)

	m := mockStore.Matches[match1ID]
	assert.Empty(t, m.A.Gamblers)
	assert.Equal(t, []string{"g1"}, m.B.Gamblers)
}

func TestUpdateMatchGamblers_InvalidSide(t *testing.T) {
	a, mockStore := newTestAPI(time.Now())
	mockStore.FindMatchError = errors.New("should not be read")

	_, err := a.UpdateMatchGamblers(context.Background(), match1ID, "c", "g1", true)

	var argErr *shared.InvalidArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, "side", argErr.Name)
}

// endregion

// region UpdateMatchScore, weight and time tests

func TestUpdateMatchScore_Success(t *testing.T) {
	a, mockStore := newTestAPI(time.Now())
	ctx := context.Background()
	_, err := a.InsertMatch(ctx, match1())
	require.NoError(t, err)

	err = a.UpdateMatchScore(ctx, match1ID, shared.IntPtr(2), shared.IntPtr(4))
	require.NoError(t, err)

	m := mockStore.Matches[match1ID]
	assert.True(t, m.IsCompleted())
	assert.Equal(t, 2, *m.A.Score)
	assert.Equal(t, 4, *m.B.Score)
}

func TestUpdateMatchScore_NilIsNoop(t *testing.T) {
	a, mockStore := newTestAPI(time.Now())
	ctx := context.Background()
	_, err := a.InsertMatch(ctx, match1())
	require.NoError(t, err)

	err = a.UpdateMatchScore(ctx, match1ID, shared.IntPtr(1), nil)
	require.NoError(t, err)

	assert.False(t, mockStore.Matches[match1ID].IsCompleted())
	assert.Equal(t, 0, mockStore.Calls["UpdateMatchScore"])
}

func TestUpdateMatchScore_Negative(t *testing.T) {
	a, _ := newTestAPI(time.Now())

	err := a.UpdateMatchScore(context.Background(), match1ID, shared.IntPtr(-1), shared.IntPtr(0))

	var argErr *shared.InvalidArgumentError
	assert.True(t, errors.As(err, &argErr))
}

func TestUpdateMatchWeight(t *testing.T) {
	a, mockStore := newTestAPI(time.Now())
	ctx := context.Background()
	_, err := a.InsertMatch(ctx, match1())
	require.NoError(t, err)

	require.NoError(t, a.UpdateMatchWeight(ctx, match1ID, 8))
	assert.Equal(t, 8.0, mockStore.Matches[match1ID].Weight)

	var argErr *shared.InvalidArgumentError
	assert.True(t, errors.As(a.UpdateMatchWeight(ctx, match1ID, 0), &argErr))
}

func TestUpdateMatchTime(t *testing.T) {
	a, mockStore := newTestAPI(time.Now())
	ctx := context.Background()
	_, err := a.InsertMatch(ctx, match1())
	require.NoError(t, err)

	newID, err := a.UpdateMatchTime(ctx, match1ID, time.Date(2018, 4, 1, 20, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "201804012000-水宫-利浦", newID)
	assert.NotContains(t, mockStore.Matches, match1ID)
	assert.Contains(t, mockStore.Matches, newID)
}

// endregion

// region FindMatches tests

func TestFindMatches_Order(t *testing.T) {
	a, _ := newTestAPI(time.Now())
	ctx := context.Background()
	_, err := a.InsertMatch(ctx, match2())
	require.NoError(t, err)
	_, err = a.InsertMatch(ctx, match1())
	require.NoError(t, err)

	matches, err := a.FindMatches(ctx, false, 0)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, match1ID, matches[0].ID)

	matches, err = a.FindMatches(ctx, true, 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, match2ID, matches[0].ID)
}

// endregion

// region ImportFixture tests

func TestImportFixture_NewMatchWithScore(t *testing.T) {
	a, _ := newTestAPI(time.Date(2018, 4, 1, 0, 0, 0, 0, time.UTC))

	m, err := a.ImportFixture(context.Background(), Fixture{NewMatch: match1(), ScoreA: shared.IntPtr(2), ScoreB: shared.IntPtr(4)})
	require.NoError(t, err)

	assert.Equal(t, match1ID, m.ID)
	assert.True(t, m.IsCompleted())
}

func TestImportFixture_RefreshesOpenHandicap(t *testing.T) {
	a, mockStore := newTestAPI(time.Date(2018, 3, 30, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()
	_, err := a.ImportFixture(ctx, Fixture{NewMatch: match1()})
	require.NoError(t, err)

	moved := match1()
	moved.Handicap = "受一球/球半"
	m, err := a.ImportFixture(ctx, Fixture{NewMatch: moved})
	require.NoError(t, err)

	assert.Equal(t, shared.Handicap{-1, -1.5}, m.Handicap)
	assert.Equal(t, 1, mockStore.Calls["UpdateMatchHandicap"])
}

func TestImportFixture_KeepsClosedHandicap(t *testing.T) {
	a, mockStore := newTestAPI(time.Date(2018, 3, 30, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()
	_, err := a.ImportFixture(ctx, Fixture{NewMatch: match1()})
	require.NoError(t, err)

	a.Now = func() time.Time { return time.Date(2018, 3, 31, 5, 0, 0, 0, time.UTC) }
	moved := match1()
	moved.Handicap = "受球半"
	m, err := a.ImportFixture(ctx, Fixture{NewMatch: moved})
	require.NoError(t, err)

	assert.Equal(t, shared.Handicap{-1, -1}, m.Handicap)
	assert.Equal(t, 0, mockStore.Calls["UpdateMatchHandicap"])
}

// endregion

// region series tests

func TestGenerateSeries_NoBets(t *testing.T) {
	a, mockStore := newTestAPI(time.Now())
	ctx := context.Background()
	mockStore.AddGamblers("g1", "g2", "g3", "g4")

	_, err := a.ImportFixture(ctx, Fixture{NewMatch: match1(), ScoreA: shared.IntPtr(2), ScoreB: shared.IntPtr(4)})
	require.NoError(t, err)
	_, err = a.ImportFixture(ctx, Fixture{NewMatch: match2(), ScoreA: shared.IntPtr(2), ScoreB: shared.IntPtr(1)})
	require.NoError(t, err)

	series, err := a.GenerateSeries(ctx, nil)
	require.NoError(t, err)
	require.Len(t, series, 4)

	for _, s := range series {
		assert.Equal(t, []shared.Point{
			{MatchID: match1ID, Total: -2},
			{MatchID: match2ID, Total: -4},
		}, s.Points, s.Gambler)
	}
}

func TestGenerateSeries_SkipsIncomplete(t *testing.T) {
	a, mockStore := newTestAPI(time.Now())
	ctx := context.Background()
	mockStore.AddGamblers("g1")

	_, err := a.ImportFixture(ctx, Fixture{NewMatch: match1()})
	require.NoError(t, err)

	series, err := a.GenerateSeries(ctx, nil)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Empty(t, series[0].Points)
}

func TestGenerateSeries_ConfiguredRequiredGamblers(t *testing.T) {
	a, mockStore := newTestAPI(time.Now())
	ctx := context.Background()
	mockStore.AddGamblers("g1", "g2")
	a.RequiredGamblers = []string{"g1", "ghost"}

	_, err := a.ImportFixture(ctx, Fixture{NewMatch: match1(), ScoreA: shared.IntPtr(2), ScoreB: shared.IntPtr(4)})
	require.NoError(t, err)

	series, err := a.GenerateSeries(ctx, nil)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, -2.0, series[0].Latest())
	assert.Equal(t, 0.0, series[1].Latest())
}

func TestGenerateSeries_StoreError(t *testing.T) {
	a, mockStore := newTestAPI(time.Now())
	mockStore.FindMatchesError = errors.New("db down")

	_, err := a.GenerateSeries(context.Background(), nil)
	assert.EqualError(t, err, "db down")
}

func TestGetStandings_WithAuction(t *testing.T) {
	a, mockStore := newTestAPI(time.Now())
	ctx := context.Background()
	mockStore.AddGamblers("g1", "g2", "g3", "g4")
	mockStore.Auctions = []shared.Auction{
		{League: testLeague, Team: "水宫", Gambler: "g4"},
		{League: testLeague, Team: "利浦", Gambler: "g3"},
	}

	nm := match1()
	nm.Handicap = "半球"
	_, err := a.InsertMatch(ctx, nm)
	require.NoError(t, err)
	for _, bet := range []struct{ side, gambler string }{{"a", "g1"}, {"a", "g2"}, {"b", "g3"}} {
		_, err = a.UpdateMatchGamblers(ctx, match1ID, bet.side, bet.gambler, false)
		require.NoError(t, err)
	}
	require.NoError(t, a.UpdateMatchScore(ctx, match1ID, shared.IntPtr(0), shared.IntPtr(0)))

	standings, err := a.GetStandings(ctx)
	require.NoError(t, err)
	require.Len(t, standings, 4)

	assert.Equal(t, "g3", standings[0].Gambler)
	assert.Equal(t, 12.0, standings[0].Points)
	for _, s := range standings[1:] {
		assert.Equal(t, -2.0, s.Points, s.Gambler)
	}
}

func TestSettleMatch(t *testing.T) {
	a, mockStore := newTestAPI(time.Now())
	ctx := context.Background()
	mockStore.AddGamblers("g1", "g2", "g3", "g4")

	nm := match1()
	nm.Handicap = "球半"
	_, err := a.InsertMatch(ctx, nm)
	require.NoError(t, err)

	result, err := a.SettleMatch(ctx, match1ID)
	require.NoError(t, err)
	assert.Nil(t, result, "incomplete matches settle to nothing")

	for _, bet := range []struct{ side, gambler string }{{"a", "g1"}, {"a", "g2"}, {"b", "g3"}, {"b", "g4"}} {
		_, err = a.UpdateMatchGamblers(ctx, match1ID, bet.side, bet.gambler, false)
		require.NoError(t, err)
	}
	require.NoError(t, a.UpdateMatchScore(ctx, match1ID, shared.IntPtr(3), shared.IntPtr(1)))

	result, err = a.SettleMatch(ctx, match1ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"g1": 2, "g2": 2, "g3": -2, "g4": -2}, map[string]float64(result))
	assert.Equal(t, 0.0, result.Total())
}

// endregion

// region gambler tests

func TestRegisterGambler_GeneratedOpenID(t *testing.T) {
	a, mockStore := newTestAPI(time.Now())

	g, created, err := a.RegisterGambler(context.Background(), "g1", "")
	require.NoError(t, err)

	assert.True(t, created)
	assert.Equal(t, "g1", g.Name)
	assert.Len(t, g.OpenID, 36)
	assert.Len(t, mockStore.Gamblers, 1)
}

func TestRegisterGambler_ExistingOpenID(t *testing.T) {
	a, _ := newTestAPI(time.Now())
	ctx := context.Background()

	_, _, err := a.RegisterGambler(ctx, "g1", "discord-1")
	require.NoError(t, err)

	g, created, err := a.RegisterGambler(ctx, "other", "discord-1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "g1", g.Name)
}

func TestRegisterGambler_NameTaken(t *testing.T) {
	a, _ := newTestAPI(time.Now())
	ctx := context.Background()

	_, _, err := a.RegisterGambler(ctx, "g1", "discord-1")
	require.NoError(t, err)

	_, _, err = a.RegisterGambler(ctx, "g1", "discord-2")
	assert.ErrorIs(t, err, store.ErrGamblerExists)
}

func TestRegisterGambler_EmptyName(t *testing.T) {
	a, _ := newTestAPI(time.Now())

	_, _, err := a.RegisterGambler(context.Background(), "\"\"", "discord-1")

	var argErr *shared.InvalidArgumentError
	assert.True(t, errors.As(err, &argErr))
}

func TestRenameGambler_Cascades(t *testing.T) {
	a, mockStore := newTestAPI(time.Now())
	ctx := context.Background()
	mockStore.AddGamblers("g1", "g2")
	_, err := a.InsertMatch(ctx, match1())
	require.NoError(t, err)
	_, err = a.UpdateMatchGamblers(ctx, match1ID, shared.SideA, "g1", false)
	require.NoError(t, err)
	_, err = a.InsertAuction(ctx, "水宫", "g1", 10)
	require.NoError(t, err)

	require.NoError(t, a.RenameGambler(ctx, "g1", "g9"))

	assert.Equal(t, []string{"g9"}, mockStore.Matches[match1ID].A.Gamblers)
	owner, err := a.FindTeamOwner(ctx, "水宫")
	require.NoError(t, err)
	assert.Equal(t, "g9", owner)

	assert.ErrorIs(t, a.RenameGambler(ctx, "g9", "g2"), store.ErrGamblerExists)
	assert.ErrorIs(t, a.RenameGambler(ctx, "nobody", "g7"), mongo.ErrNoDocuments)
}

func TestDropGambler(t *testing.T) {
	a, mockStore := newTestAPI(time.Now())
	ctx := context.Background()
	mockStore.AddGamblers("g1")

	require.NoError(t, a.DropGambler(ctx, "g1"))
	gamblers, err := a.FindGamblers(ctx)
	require.NoError(t, err)
	assert.Empty(t, gamblers)

	assert.ErrorIs(t, a.DropGambler(ctx, "g1"), mongo.ErrNoDocuments)
}

// endregion

// region auction tests

func TestInsertAuction_CanonicalSpelling(t *testing.T) {
	a, _ := newTestAPI(time.Now())
	ctx := context.Background()
	a.Store.(*MockStore).AddGamblers("g1")
	_, err := a.InsertMatch(ctx, NewMatch{
		MatchTime: time.Date(2018, 6, 14, 23, 0, 0, 0, time.UTC),
		Handicap:  "一球",
		TeamA:     "Russia",
		TeamB:     "Saudi Arabia",
	})
	require.NoError(t, err)

	auction, err := a.InsertAuction(ctx, "saudi arabia", "g1", 12.5)
	require.NoError(t, err)
	assert.Equal(t, "Saudi Arabia", auction.Team)
	assert.Equal(t, testLeague, auction.League)

	owner, err := a.FindTeamOwner(ctx, "Saudi Arabia")
	require.NoError(t, err)
	assert.Equal(t, "g1", owner)
}

// TestInsertAuction_PartialNameKeepsOwners tests that a team whose name is part of another team's name gets its own
// auction instead of replacing the other team's owner
func TestInsertAuction_PartialNameKeepsOwners(t *testing.T) {
	a, _ := newTestAPI(time.Now())
	ctx := context.Background()
	a.Store.(*MockStore).AddGamblers("g1", "g2")
	_, err := a.InsertMatch(ctx, NewMatch{
		MatchTime: time.Date(2016, 6, 12, 18, 0, 0, 0, time.UTC),
		Handicap:  "受半球",
		TeamA:     "Northern Ireland",
		TeamB:     "Poland",
	})
	require.NoError(t, err)

	_, err = a.InsertAuction(ctx, "Northern Ireland", "g1", 10)
	require.NoError(t, err)
	auction, err := a.InsertAuction(ctx, "Ireland", "g2", 5)
	require.NoError(t, err)
	assert.Equal(t, "Ireland", auction.Team)

	owner, err := a.FindTeamOwner(ctx, "Northern Ireland")
	require.NoError(t, err)
	assert.Equal(t, "g1", owner)
	owner, err = a.FindTeamOwner(ctx, "Ireland")
	require.NoError(t, err)
	assert.Equal(t, "g2", owner)

	auctions, err := a.FindAuctions(ctx)
	require.NoError(t, err)
	assert.Len(t, auctions, 2)
}

func TestInsertAuction_UnknownGambler(t *testing.T) {
	a, _ := newTestAPI(time.Now())

	_, err := a.InsertAuction(context.Background(), "水宫", "nobody", 1)
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}

func TestFindTeamOwner_NoAuction(t *testing.T) {
	a, _ := newTestAPI(time.Now())

	owner, err := a.FindTeamOwner(context.Background(), "水宫")
	require.NoError(t, err)
	assert.Equal(t, "", owner)
}

// endregion
