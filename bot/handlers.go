/* handlers.go
 * Contains the command handlers. They accept the DiscordSession interface so they can be tested without a connection
 */

package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"handicap-pool/api/logic"
	"handicap-pool/api/shared"
	"handicap-pool/api/store"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

const displayTimeLayout = "2006-01-02 15:04"

// helpMessageHandler handles the $help command
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("Handicap Pool Bot\n")
	res.WriteString("`$register <name>`: Joins the pool under a name. Without a name your discord username is used\n")
	res.WriteString("`$rename <new name>`: Changes your name in the pool. Past bets and auctions follow the new name\n")
	res.WriteString(fmt.Sprintf("`$matches`: Lists the latest %d matches, newest first, with their handicap, weight, score and your pick\n", b.MaxMatchDisplay))
	res.WriteString("`$bet <match #> <a|b|team>`: Picks a side of a match from the `$matches` list. Bets open at 12:00 the day before an early kickoff or on match day and close at kickoff\n")
	res.WriteString("`$result <match #>`: Shows the points won and lost on a finished match\n")
	res.WriteString("`$standings`: Shows the total points of every gambler\n")
	res.WriteString("`$owners`: Shows who bought which team in the auction. Owners earn a second share when they win on their own team\n")
	res.WriteString("Team names are fuzzy matched. Names with spaces need to be wrapped in \" (e.g. \"Crystal Palace\")\n")
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// registerHandler handles the $register command
func (b *Bot) registerHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	args, err := splitArgs(message.Content)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Could not read the command: %s", err))
		return
	}
	name := message.Author.Username
	if len(args) > 0 {
		name = logic.CleanInput(args[0])
	}

	gambler, created, err := b.APIPtr.RegisterGambler(ctx, name, message.Author.ID)
	var res string
	switch {
	case errors.Is(err, store.ErrGamblerExists):
		res = fmt.Sprintf("The name %s is already taken", name)
	case err != nil:
		b.log().WithError(err).WithField("user", message.Author.ID).Error("register failed")
		res = fmt.Sprintf("An error occurred registering %s", name)
	case !created:
		res = fmt.Sprintf("You are already registered as %s", gambler.Name)
	default:
		res = fmt.Sprintf("%s has joined the pool", gambler.Name)
	}
	session.ChannelMessageSend(message.ChannelID, res)
}

// renameHandler handles the $rename command
func (b *Bot) renameHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	args, err := splitArgs(message.Content)
	if err != nil || len(args) == 0 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$rename <new name>`")
		return
	}

	gambler, ok := b.currentGambler(ctx, session, message)
	if !ok {
		return
	}

	newName := logic.CleanInput(args[0])
	err = b.APIPtr.RenameGambler(ctx, gambler.Name, newName)
	var res string
	switch {
	case errors.Is(err, store.ErrGamblerExists):
		res = fmt.Sprintf("The name %s is already taken", newName)
	case err != nil:
		b.log().WithError(err).WithField("gambler", gambler.Name).Error("rename failed")
		res = fmt.Sprintf("An error occurred renaming %s", gambler.Name)
	default:
		res = fmt.Sprintf("%s is now known as %s", gambler.Name, newName)
	}
	session.ChannelMessageSend(message.ChannelID, res)
}

// matchesHandler handles the $matches command
func (b *Bot) matchesHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	matches, err := b.listMatches(ctx)
	if err != nil {
		b.log().WithError(err).Error("listing matches failed")
		session.ChannelMessageSend(message.ChannelID, "An error occurred getting the matches")
		return
	}
	if len(matches) == 0 {
		session.ChannelMessageSend(message.ChannelID, "No matches")
		return
	}

	// The pick column is only shown to registered users
	var gamblerName string
	if gambler, err := b.APIPtr.FindGamblerByOpenID(ctx, message.Author.ID); err == nil {
		gamblerName = gambler.Name
	}

	var res strings.Builder
	res.WriteString("Matches (newest first):\n")
	for i, m := range matches {
		res.WriteString(fmt.Sprintf("`%d` %s %s | %s | weight %s", i+1, m.MatchTime.Format(displayTimeLayout), m.Display(),
			m.HandicapDisplay, logic.FormatPoints(m.Weight)))
		if m.IsCompleted() {
			res.WriteString(fmt.Sprintf(" | %d:%d", *m.A.Score, *m.B.Score))
		}
		if gamblerName != "" {
			if side, ok := m.Side(m.PickOf(gamblerName)); ok {
				res.WriteString(fmt.Sprintf(" | your pick: %s", side.Team))
			}
		}
		res.WriteString("\n")
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// betHandler handles the $bet command
func (b *Bot) betHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	args, err := splitArgs(message.Content)
	if err != nil || len(args) < 2 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$bet <match #> <a|b|team>`")
		return
	}

	if !b.limiter.Allow(message.Author.ID) {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("%s, you are betting too fast. Try again in a minute", message.Author.Username))
		return
	}

	gambler, ok := b.currentGambler(ctx, session, message)
	if !ok {
		return
	}

	m, ok := b.matchFromListing(ctx, session, message, args[0])
	if !ok {
		return
	}

	side, err := logic.ResolveSide(m, args[1])
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("%s is neither side of %s", args[1], m.Display()))
		return
	}

	accepted, err := b.APIPtr.UpdateMatchGamblers(ctx, m.ID, side, gambler.Name, true)
	if err != nil {
		b.log().WithError(err).WithFields(logrus.Fields{"match": m.ID, "gambler": gambler.Name}).Error("bet failed")
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("An error occurred setting %s's bet", gambler.Name))
		return
	}
	if !accepted {
		start, end := logic.BetWindow(m.MatchTime)
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Bets for %s are only accepted after %s until kickoff at %s",
			m.Display(), start.Format(displayTimeLayout), end.Format(displayTimeLayout)))
		return
	}

	picked, _ := m.Side(side)
	session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("%s picked %s (%s %s)", gambler.Name, picked.Team, m.Display(), m.HandicapDisplay))
}

// standingsHandler handles the $standings command
func (b *Bot) standingsHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	standings, err := b.APIPtr.GetStandings(ctx)
	if err != nil {
		b.log().WithError(err).Error("standings failed")
		session.ChannelMessageSend(message.ChannelID, "An error occurred getting the standings")
		return
	}
	if len(standings) == 0 {
		session.ChannelMessageSend(message.ChannelID, "No gamblers have registered yet")
		return
	}

	var res strings.Builder
	res.WriteString("Standings:\n")
	for i, s := range standings {
		res.WriteString(fmt.Sprintf("%d. %s: %s\n", i+1, s.Gambler, logic.FormatPoints(s.Points)))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// ownersHandler handles the $owners command
func (b *Bot) ownersHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	auctions, err := b.APIPtr.FindAuctions(ctx)
	if err != nil {
		b.log().WithError(err).Error("listing auctions failed")
		session.ChannelMessageSend(message.ChannelID, "An error occurred getting the team owners")
		return
	}
	if len(auctions) == 0 {
		session.ChannelMessageSend(message.ChannelID, "No teams have been auctioned")
		return
	}

	var res strings.Builder
	res.WriteString("Team owners:\n")
	for _, a := range auctions {
		res.WriteString(fmt.Sprintf("- %s: %s (%s)\n", a.Team, a.Gambler, logic.FormatPoints(a.Price)))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// resultHandler handles the $result command
func (b *Bot) resultHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	args, err := splitArgs(message.Content)
	if err != nil || len(args) == 0 {
		session.ChannelMessageSend(message.ChannelID, "Usage: `$result <match #>`")
		return
	}

	m, ok := b.matchFromListing(ctx, session, message, args[0])
	if !ok {
		return
	}

	result, err := b.APIPtr.SettleMatch(ctx, m.ID)
	if err != nil {
		b.log().WithError(err).WithField("match", m.ID).Error("settlement failed")
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("An error occurred settling %s", m.Display()))
		return
	}
	if result == nil {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("%s has no result yet", m.Display()))
		return
	}

	var res strings.Builder
	res.WriteString(fmt.Sprintf("%s %d:%d (%s, weight %s)\n", m.Display(), *m.A.Score, *m.B.Score, m.HandicapDisplay, logic.FormatPoints(m.Weight)))
	for _, g := range result.Gamblers() {
		res.WriteString(fmt.Sprintf("%s: %+.2f\n", g, result[g]))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// listMatches returns the matches the listing numbers refer to
func (b *Bot) listMatches(ctx context.Context) ([]shared.Match, error) {
	return b.APIPtr.FindMatches(ctx, true, b.MaxMatchDisplay)
}

// currentGambler looks up the author of a message. Unregistered authors are told how to register
func (b *Bot) currentGambler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) (shared.Gambler, bool) {
	gambler, err := b.APIPtr.FindGamblerByOpenID(ctx, message.Author.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("%s is not registered. Use `$register <name>` first", message.Author.Username))
		} else {
			b.log().WithError(err).WithField("user", message.Author.ID).Error("gambler lookup failed")
			session.ChannelMessageSend(message.ChannelID, "An unexpected error occurred")
		}
		return shared.Gambler{}, false
	}
	return gambler, true
}

// matchFromListing resolves a listing number typed by a user into a match
func (b *Bot) matchFromListing(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate, input string) (shared.Match, bool) {
	matches, err := b.listMatches(ctx)
	if err != nil {
		b.log().WithError(err).Error("listing matches failed")
		session.ChannelMessageSend(message.ChannelID, "An error occurred getting the matches")
		return shared.Match{}, false
	}
	idx, err := logic.ParseIndex(input, len(matches))
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("Invalid match number %s. Use `$matches` to see the list", input))
		return shared.Match{}, false
	}
	return matches[idx], true
}
