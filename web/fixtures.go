/* fixtures.go
 * Contains the webhook the odds feed pushes fixtures to. Each fixture is inserted if new, its handicap refreshed while
 * the handicap is still open, and its score recorded once known
 */

package web

import (
	"encoding/json"
	"net/http"

	"handicap-pool/api/api"
	"handicap-pool/api/logic"

	"github.com/sirupsen/logrus"
)

// maxWebhookBody caps the size of a fixtures batch
const maxWebhookBody = 1 << 20

// FixturesWebhookHandler HTTP endpoint that receives a JSON array of fixtures and imports them in order
// Preconditions: HTTP server has been started, receives HTTP ResponseWriter and Http Request
// Postconditions: Responds 200 with the imported match ids when every fixture was imported, 422 with the per-fixture
// errors when some were rejected (the others are still imported), 400 for a body that is not a fixture array
func (s *Server) FixturesWebhookHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	var fixtures []FixturePayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxWebhookBody)).Decode(&fixtures); err != nil {
		s.log().WithError(err).Warn("failed to decode fixtures webhook")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	response := ImportResponse{Imported: []string{}}
	for i, payload := range fixtures {
		matchID, err := s.importFixture(r, payload)
		if err != nil {
			s.log().WithError(err).WithField("index", i).Warn("fixture rejected")
			response.Errors = append(response.Errors, FixtureError{Index: i, Error: err.Error()})
			continue
		}
		response.Imported = append(response.Imported, matchID)
	}

	status := http.StatusOK
	if len(response.Errors) > 0 {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, response)
}

func (s *Server) importFixture(r *http.Request, payload FixturePayload) (string, error) {
	fixture, err := payload.toFixture()
	if err != nil {
		return "", err
	}
	stored, err := s.api.ImportFixture(r.Context(), fixture)
	if err != nil {
		return "", err
	}
	s.log().WithFields(logrus.Fields{"match": stored.ID, "handicap": stored.HandicapDisplay}).Debug("fixture imported")
	return stored.ID, nil
}

// toFixture converts the wire form of a fixture into the facade's form
func (p FixturePayload) toFixture() (api.Fixture, error) {
	matchTime, err := logic.ParseMatchTime(p.MatchTime)
	if err != nil {
		return api.Fixture{}, err
	}
	return api.Fixture{
		NewMatch: api.NewMatch{
			League:    p.League,
			MatchTime: matchTime,
			Handicap:  p.Handicap,
			TeamA:     p.TeamA,
			TeamB:     p.TeamB,
			PremiumA:  p.PremiumA,
			PremiumB:  p.PremiumB,
			Weight:    p.Weight,
		},
		ScoreA: p.ScoreA,
		ScoreB: p.ScoreB,
	}, nil
}
