/* session_interface.go
 * Contains the subset of the Discord session the command handlers need
 */

package bot

import "github.com/bwmarrin/discordgo"

// DiscordSession is what the handlers reply through. *discordgo.Session in production, MockDiscordSession in tests
type DiscordSession interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ DiscordSession = (*discordgo.Session)(nil)
