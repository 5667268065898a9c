/* series.go
 * Contains the read endpoints: the running totals of every gambler, for charting
 */

package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// SeriesHandler HTTP endpoint that returns the series of every gambler as JSON
// Preconditions: Optional query parameter required=g1,g2 overrides who must pick every match
// Postconditions: Responds 200 with [{gambler, points:[{match_id, total}]}] ordered by gambler name, or 500 if the
// series could not be built
func (s *Server) SeriesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	series, err := s.api.GenerateSeries(r.Context(), parseRequired(r.URL.Query().Get("required")))
	if err != nil {
		s.log().WithError(err).Error("failed to generate series")
		http.Error(w, "failed to generate series", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

// parseRequired splits a comma separated gambler list. An empty value returns nil so the configured list applies
func parseRequired(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	required := []string{}
	for _, name := range strings.Split(value, ",") {
		if name = strings.TrimSpace(name); name != "" {
			required = append(required, name)
		}
	}
	return required
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Warn("failed to write response")
	}
}
