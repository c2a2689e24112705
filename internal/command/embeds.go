package command

import "github.com/bwmarrin/discordgo"

// Embed colours, matching the palette the bot has always used.
const (
	EmbedColor   = 0xb01e66
	ColorRed     = 0xed4245
	ColorGreen   = 0x57f287
	ColorGold    = 0xf1c40f
	ColorBlurple = 0x5865f2
	ColorPink    = 0xe91e63
)

// ErrorEmbed is the red embed used for every user-visible failure.
func ErrorEmbed(description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       ColorRed,
		Description: description,
	}
}

// UnsupportedEmbed tells the user the command only works through the other surface.
func UnsupportedEmbed() *discordgo.MessageEmbed {
	return ErrorEmbed("⛔ This command is only supported as a slash command.")
}

// NoticeEmbed is a neutral informational embed.
func NoticeEmbed(description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       EmbedColor,
		Description: description,
	}
}
