package command

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

type permission struct {
	bit   int64
	label string
}

// permissions is the fixed platform vocabulary accepted in Permissions().
var permissions = map[string]permission{
	"CREATE_INSTANT_INVITE":      {discordgo.PermissionCreateInstantInvite, "Create Instant Invite"},
	"KICK_MEMBERS":               {discordgo.PermissionKickMembers, "Kick Members"},
	"BAN_MEMBERS":                {discordgo.PermissionBanMembers, "Ban Members"},
	"ADMINISTRATOR":              {discordgo.PermissionAdministrator, "Administrator"},
	"MANAGE_CHANNELS":            {discordgo.PermissionManageChannels, "Manage Channels"},
	"MANAGE_GUILD":               {discordgo.PermissionManageGuild, "Manage Server"},
	"ADD_REACTIONS":              {discordgo.PermissionAddReactions, "Add Reactions"},
	"VIEW_AUDIT_LOG":             {discordgo.PermissionViewAuditLogs, "View Audit Logs"},
	"PRIORITY_SPEAKER":           {discordgo.PermissionVoicePrioritySpeaker, "Priority Speaker"},
	"STREAM":                     {discordgo.PermissionVoiceStreamVideo, "Stream Video"},
	"VIEW_CHANNEL":               {discordgo.PermissionViewChannel, "View Channel"},
	"SEND_MESSAGES":              {discordgo.PermissionSendMessages, "Send Messages"},
	"SEND_TTS_MESSAGES":          {discordgo.PermissionSendTTSMessages, "Send TTS Messages"},
	"MANAGE_MESSAGES":            {discordgo.PermissionManageMessages, "Manage Messages"},
	"EMBED_LINKS":                {discordgo.PermissionEmbedLinks, "Embed Links"},
	"ATTACH_FILES":               {discordgo.PermissionAttachFiles, "Attach Files"},
	"READ_MESSAGE_HISTORY":       {discordgo.PermissionReadMessageHistory, "Read Message History"},
	"MENTION_EVERYONE":           {discordgo.PermissionMentionEveryone, "Mention Everyone"},
	"USE_EXTERNAL_EMOJIS":        {discordgo.PermissionUseExternalEmojis, "Use External Emojis"},
	"VIEW_GUILD_INSIGHTS":        {discordgo.PermissionViewGuildInsights, "View Guild Insights"},
	"CONNECT":                    {discordgo.PermissionVoiceConnect, "Connect to Voice Channel"},
	"SPEAK":                      {discordgo.PermissionVoiceSpeak, "Speak"},
	"MUTE_MEMBERS":               {discordgo.PermissionVoiceMuteMembers, "Mute Members"},
	"DEAFEN_MEMBERS":             {discordgo.PermissionVoiceDeafenMembers, "Deafen Members"},
	"MOVE_MEMBERS":               {discordgo.PermissionVoiceMoveMembers, "Move Members"},
	"USE_VAD":                    {discordgo.PermissionVoiceUseVAD, "Use Voice Activity Detection"},
	"CHANGE_NICKNAME":            {discordgo.PermissionChangeNickname, "Change Nickname"},
	"MANAGE_NICKNAMES":           {discordgo.PermissionManageNicknames, "Manage Nicknames"},
	"MANAGE_ROLES":               {discordgo.PermissionManageRoles, "Manage Roles"},
	"MANAGE_WEBHOOKS":            {discordgo.PermissionManageWebhooks, "Manage Webhooks"},
	"MANAGE_EMOJIS_AND_STICKERS": {1 << 30, "Manage Emojis and Stickers"},
	"USE_APPLICATION_COMMANDS":   {discordgo.PermissionUseApplicationCommands, "Use Application Commands"},
	"REQUEST_TO_SPEAK":           {discordgo.PermissionVoiceRequestToSpeak, "Request to Speak"},
	"MANAGE_EVENTS":              {discordgo.PermissionManageEvents, "Manage Events"},
	"MANAGE_THREADS":             {discordgo.PermissionManageThreads, "Manage Threads"},
	"CREATE_PUBLIC_THREADS":      {discordgo.PermissionCreatePublicThreads, "Create Public Threads"},
	"CREATE_PRIVATE_THREADS":     {discordgo.PermissionCreatePrivateThreads, "Create Private Threads"},
	"USE_PUBLIC_THREADS":         {discordgo.PermissionCreatePublicThreads, "Use Public Threads"},
	"USE_PRIVATE_THREADS":        {discordgo.PermissionCreatePrivateThreads, "Use Private Threads"},
	"USE_EXTERNAL_STICKERS":      {discordgo.PermissionUseExternalStickers, "Use External Stickers"},
	"SEND_MESSAGES_IN_THREADS":   {discordgo.PermissionSendMessagesInThreads, "Send Messages in Threads"},
	"START_EMBEDDED_ACTIVITIES":  {1 << 39, "Start Embedded Activities"},
	"MODERATE_MEMBERS":           {discordgo.PermissionModerateMembers, "Moderate Members"},
}

// PermissionByName returns the permission bit for a vocabulary name.
func PermissionByName(name string) (int64, bool) {
	p, ok := permissions[name]
	return p.bit, ok
}

// PermissionLabel returns the human readable label for a vocabulary name.
func PermissionLabel(name string) string {
	if p, ok := permissions[name]; ok {
		return p.label
	}
	return name
}

// PermissionBits folds vocabulary names into one bit set. Unknown names are an error.
func PermissionBits(names []string) (int64, error) {
	var bits int64
	var invalid []string
	for _, name := range names {
		bit, ok := PermissionByName(name)
		if !ok {
			invalid = append(invalid, name)
			continue
		}
		bits |= bit
	}
	if len(invalid) > 0 {
		return 0, fmt.Errorf("invalid permission: %s", strings.Join(invalid, ", "))
	}
	return bits, nil
}
