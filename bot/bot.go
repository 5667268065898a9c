/* bot.go
 * Contains logic used for creating the bot and routing messages to the command handlers. Requires a discord bot token
 * and an API pointer, both of which are passed in from main.go
 */

package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"handicap-pool/api/api"
	"handicap-pool/config"

	"github.com/bwmarrin/discordgo"
	"github.com/go-andiamo/splitter"
	"github.com/sirupsen/logrus"
)

// commandTimeout bounds the db work done for a single message
const commandTimeout = 10 * time.Second

const defaultMaxMatchDisplay = 20

type Bot struct {
	BotToken string
	APIPtr   *api.API
	Logger   *logrus.Logger

	// MaxMatchDisplay is the length of the $matches listing that $bet and $result numbers refer to
	MaxMatchDisplay int64

	limiter *userLimiter
}

// NewBot creates a bot for the API. cfg supplies the listing length and the per-user bet rate, nil uses defaults
func NewBot(botToken string, apiPtr *api.API, cfg *config.Config) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if apiPtr == nil {
		return nil, fmt.Errorf("apiPtr is required but none was provided")
	}

	b := &Bot{
		BotToken:        botToken,
		APIPtr:          apiPtr,
		Logger:          apiPtr.Logger,
		MaxMatchDisplay: defaultMaxMatchDisplay,
	}
	if cfg != nil {
		b.MaxMatchDisplay = int64(cfg.MaxMatchDisplay)
		b.limiter = newUserLimiter(cfg.BetRatePerMinute)
	}
	return b, nil
}

func (b *Bot) log() *logrus.Logger {
	if b.Logger == nil {
		return logrus.StandardLogger()
	}
	return b.Logger
}

// newMessageHandler routes messages to the command handlers
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	if message.Author == nil || message.Author.ID == botUserID {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	switch {
	case startsWith(message.Content, "$help"):
		b.helpMessageHandler(session, message)

	case startsWith(message.Content, "$register"):
		b.registerHandler(ctx, session, message)

	case startsWith(message.Content, "$rename"):
		b.renameHandler(ctx, session, message)

	case startsWith(message.Content, "$matches"):
		b.matchesHandler(ctx, session, message)

	case startsWith(message.Content, "$bet"):
		b.betHandler(ctx, session, message)

	case startsWith(message.Content, "$standings"):
		b.standingsHandler(ctx, session, message)

	case startsWith(message.Content, "$owners"):
		b.ownersHandler(ctx, session, message)

	case startsWith(message.Content, "$result"):
		b.resultHandler(ctx, session, message)
	}
}

// splitArgs returns the arguments after the command. Arguments containing spaces are wrapped in double quotes, e.g.
// $bet 1 "Crystal Palace"
func splitArgs(content string) ([]string, error) {
	spaceSplitter, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return nil, err
	}
	parts, err := spaceSplitter.Split(content)
	if err != nil {
		return nil, err
	}

	args := make([]string, 0, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if i == 0 || p == "" {
			continue
		}
		args = append(args, p)
	}
	return args, nil
}

// Helper function to check if a string starts with a given substring
// Preconditions: Recieves an input string and a substring
// Postconditions: Returns true if the substring is at the start of the string, else returns false
func startsWith(inputString string, substring string) bool {
	return strings.HasPrefix(inputString, substring)
}
