/* routes.go
 * Contains the construction of the server and its routes
 */

package web

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// NewServer creates a server for the configuration
func NewServer(cfg Config) *Server {
	return &Server{
		api:     cfg.API,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
	}
}

// Handler binds the handler methods that have access to s.api
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhooks/fixtures", s.FixturesWebhookHandler)
	mux.HandleFunc("/series", s.SeriesHandler)
	mux.Handle("/metrics", s.metrics.Handler())
	return mux
}

func (s *Server) log() *logrus.Logger {
	if s.logger == nil {
		return logrus.StandardLogger()
	}
	return s.logger
}
