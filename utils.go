/* utils.go
 * Utility functions used across the application
 */

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"handicap-pool/api/logic"

	"github.com/sirupsen/logrus"
)

// newLogger builds the process logger
// Preconditions: Receives a level name (debug, info, warn, error), case insensitive. Empty means info
// Postconditions: Returns a text logger writing to stderr, or an error if the level is unknown
func newLogger(level string) (*logrus.Logger, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(parsed)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return logger, nil
}

// parseFloatArg converts a numeric command line argument
func parseFloatArg(name string, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	return v, nil
}

// parseScoreArg converts a score command line argument. Unlike a fixture, an admin must give both scores
func parseScoreArg(value string) (int, error) {
	score, err := logic.ParseScore(strings.TrimSpace(value))
	if err != nil {
		return 0, err
	}
	if score == nil {
		return 0, fmt.Errorf("score is required")
	}
	return *score, nil
}

func usageError(command string, args string) error {
	return fmt.Errorf("usage: %s %s", command, args)
}
