/* models.go
 * Contains the web server configuration and the JSON bodies of the endpoints
 */

package web

import (
	"handicap-pool/api/api"
	"handicap-pool/metrics"

	"github.com/sirupsen/logrus"
)

// Config holds the configuration for the web server
type Config struct {
	Addr    string
	API     *api.API
	Metrics *metrics.Manager
	Logger  *logrus.Logger
}

// Server is the HTTP server that handles webhook and series requests
type Server struct {
	api     *api.API
	metrics *metrics.Manager
	logger  *logrus.Logger
}

// FixturePayload is one fixture as pushed by the odds feed. match_time is the kickoff in the tournament's civil time,
// e.g. "2018-03-31 19:30". Scores are omitted until the match is over
type FixturePayload struct {
	League    string  `json:"league"`
	MatchTime string  `json:"match_time"`
	Handicap  string  `json:"handicap"`
	TeamA     string  `json:"team_a"`
	TeamB     string  `json:"team_b"`
	PremiumA  float64 `json:"premium_a"`
	PremiumB  float64 `json:"premium_b"`
	ScoreA    *int    `json:"score_a,omitempty"`
	ScoreB    *int    `json:"score_b,omitempty"`
	Weight    float64 `json:"weight,omitempty"`
}

// FixtureError reports why a fixture of a webhook call was rejected
type FixtureError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// ImportResponse is the body returned by the fixtures webhook
type ImportResponse struct {
	Imported []string       `json:"imported"`
	Errors   []FixtureError `json:"errors,omitempty"`
}
