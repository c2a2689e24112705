package info

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/bazaar-bot/internal/command"
	"github.com/keshon/bazaar-bot/pkg/util"
)

const (
	avatarSize    = "2048"
	maxRolesValue = 1023
)

// UserInfoCommand shows a member's id, roles and join/boost history.
type UserInfoCommand struct{}

func (c *UserInfoCommand) Name() string          { return "userinfo" }
func (c *UserInfoCommand) Description() string   { return "Tells you useful information about a user." }
func (c *UserInfoCommand) Permissions() []string { return []string{"ADMINISTRATOR"} }

func (c *UserInfoCommand) Options() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "target",
			Description: "The user you want information for.",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionBoolean,
			Name:        "hidden",
			Description: "\"Only you can see this message.\" Default: False",
		},
	}
}

func (c *UserInfoCommand) Run(_ context.Context, inv *command.Invocation) error {
	if inv.Kind != command.Structured {
		return inv.ReplyEmbed(command.UnsupportedEmbed(), false)
	}

	guildID := inv.GuildID()
	if guildID == "" {
		return command.ErrGuildOnly
	}
	opt, ok := inv.Options["target"]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionUser {
		return errors.New("must specify a valid target")
	}
	userID, _ := opt.Value.(string)

	member, err := inv.Client.GuildMember(guildID, userID)
	if err != nil {
		return fmt.Errorf("fetch member %s: %w", userID, err)
	}
	roles, err := inv.Client.GuildRoles(guildID)
	if err != nil {
		return fmt.Errorf("fetch roles: %w", err)
	}

	return inv.ReplyEmbed(MemberEmbed(guildID, member, roles), inv.BoolOption("hidden"))
}

// MemberEmbed renders the userinfo card for member.
func MemberEmbed(guildID string, member *discordgo.Member, roles []*discordgo.Role) *discordgo.MessageEmbed {
	user := member.User
	if user == nil {
		user = &discordgo.User{}
	}

	color := command.ColorBlurple
	boosted := "Not currently boosting."
	if member.PremiumSince != nil && !member.PremiumSince.IsZero() {
		color = command.ColorPink
		boosted = relative(*member.PremiumSince)
	}

	created := "unknown"
	if ts, err := discordgo.SnowflakeTimestamp(user.ID); err == nil {
		created = relative(ts)
	}

	avatar := user.AvatarURL(avatarSize)
	return &discordgo.MessageEmbed{
		Color:     color,
		Author:    &discordgo.MessageEmbedAuthor{Name: user.String(), IconURL: avatar},
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: avatar},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "ID", Value: user.ID},
			{Name: "Roles", Value: RoleMentions(guildID, member.Roles, roles)},
			{Name: "Member Since", Value: relative(member.JoinedAt), Inline: true},
			{Name: "Discord User Since", Value: created, Inline: true},
			{Name: "Boosted This Server Since", Value: boosted, Inline: true},
		},
	}
}

// RoleMentions lists the member's roles highest first, without @everyone,
// cut to fit an embed field.
func RoleMentions(guildID string, memberRoles []string, guildRoles []*discordgo.Role) string {
	byID := make(map[string]*discordgo.Role, len(guildRoles))
	for _, r := range guildRoles {
		byID[r.ID] = r
	}

	held := make([]*discordgo.Role, 0, len(memberRoles))
	for _, id := range memberRoles {
		if r, ok := byID[id]; ok && r.ID != guildID {
			held = append(held, r)
		}
	}
	sort.SliceStable(held, func(i, j int) bool { return held[i].Position > held[j].Position })

	mentions := make([]string, 0, len(held))
	for _, r := range held {
		mentions = append(mentions, r.Mention())
	}
	out := []rune(strings.Join(mentions, " "))
	if len(out) > maxRolesValue {
		out = out[:maxRolesValue]
	}
	if s := strings.TrimSpace(string(out)); s != "" {
		return s
	}
	return "None"
}

func relative(t time.Time) string {
	return util.DiscordTimestamp(t.UnixMilli(), 'R')
}
