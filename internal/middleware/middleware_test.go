package middleware

import (
	"context"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/goleak"

	"github.com/keshon/bazaar-bot/internal/command"
	"github.com/keshon/bazaar-bot/pkg/cmd"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type guardedDef struct {
	perms     []string
	guildOnly bool
	ran       int
}

func (d *guardedDef) Name() string          { return "guarded" }
func (d *guardedDef) Description() string   { return "guarded test command" }
func (d *guardedDef) Permissions() []string { return d.perms }
func (d *guardedDef) GuildOnly() bool       { return d.guildOnly }
func (d *guardedDef) Run(context.Context, *command.Invocation) error {
	d.ran++
	return nil
}

type permClient struct{ perms int64 }

func (p permClient) GuildMember(string, string, ...discordgo.RequestOption) (*discordgo.Member, error) {
	return nil, nil
}

func (p permClient) GuildRoles(string, ...discordgo.RequestOption) ([]*discordgo.Role, error) {
	return nil, nil
}

func (p permClient) UserChannelPermissions(string, string, ...discordgo.RequestOption) (int64, error) {
	return p.perms, nil
}

func textInvocation(guildID, userID string, perms int64) (*command.Invocation, *[]*command.Reply) {
	var replies []*command.Reply
	return &command.Invocation{
		Kind:   command.Text,
		Name:   "guarded",
		Client: permClient{perms: perms},
		Message: &discordgo.MessageCreate{Message: &discordgo.Message{
			GuildID:   guildID,
			ChannelID: "c",
			Author:    &discordgo.User{ID: userID},
		}},
		Responder: command.ResponderFunc(func(r *command.Reply) error {
			replies = append(replies, r)
			return nil
		}),
	}, &replies
}

func TestUserPermissionCheck(t *testing.T) {
	tests := []struct {
		name    string
		perms   []string
		guildID string
		userID  string
		have    int64
		wantRun bool
	}{
		{name: "no permissions declared", guildID: "g", userID: "u", wantRun: true},
		{name: "holds all", perms: []string{"KICK_MEMBERS", "BAN_MEMBERS"}, guildID: "g", userID: "u",
			have: discordgo.PermissionKickMembers | discordgo.PermissionBanMembers, wantRun: true},
		{name: "holds one of two", perms: []string{"KICK_MEMBERS", "BAN_MEMBERS"}, guildID: "g", userID: "u",
			have: discordgo.PermissionKickMembers},
		{name: "administrator bypass", perms: []string{"BAN_MEMBERS"}, guildID: "g", userID: "u",
			have: discordgo.PermissionAdministrator, wantRun: true},
		{name: "developer bypass", perms: []string{"ADMINISTRATOR"}, guildID: "g", userID: "dev", wantRun: true},
		{name: "outside guild", perms: []string{"ADMINISTRATOR"}, userID: "u", wantRun: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			def := &guardedDef{perms: tc.perms}
			c := cmd.Apply(&command.Adapter{Def: def}, WithUserPermissionCheck("dev"))
			inv, replies := textInvocation(tc.guildID, tc.userID, tc.have)

			if err := command.Run(context.Background(), c, inv); err != nil {
				t.Fatal(err)
			}
			if got := def.ran == 1; got != tc.wantRun {
				t.Fatalf("ran = %v, want %v", got, tc.wantRun)
			}
			if !tc.wantRun {
				if len(*replies) != 1 || !(*replies)[0].Ephemeral {
					t.Fatalf("replies = %+v", *replies)
				}
				if !strings.Contains((*replies)[0].Embeds[0].Description, "Ban Members") {
					t.Fatalf("denial does not name the missing permission: %q", (*replies)[0].Embeds[0].Description)
				}
			}
		})
	}
}

func TestGuildOnly(t *testing.T) {
	def := &guardedDef{guildOnly: true}
	c := cmd.Apply(&command.Adapter{Def: def}, WithGuildOnly())

	inv, replies := textInvocation("", "u", 0)
	if err := command.Run(context.Background(), c, inv); err != nil {
		t.Fatal(err)
	}
	if def.ran != 0 || len(*replies) != 1 {
		t.Fatalf("ran = %d, replies = %d", def.ran, len(*replies))
	}

	inv, _ = textInvocation("g", "u", 0)
	if err := command.Run(context.Background(), c, inv); err != nil {
		t.Fatal(err)
	}
	if def.ran != 1 {
		t.Fatalf("ran = %d inside a guild", def.ran)
	}
}

func TestDefaultChainKeepsRoot(t *testing.T) {
	def := &guardedDef{}
	c := cmd.Apply(&command.Adapter{Def: def}, Default("")...)

	got, ok := command.DefinitionOf(c)
	if !ok || got != command.Definition(def) {
		t.Fatal("definition lost through middleware chain")
	}
	inv, _ := textInvocation("g", "u", 0)
	if err := command.Run(context.Background(), c, inv); err != nil {
		t.Fatal(err)
	}
	if def.ran != 1 {
		t.Fatalf("ran = %d", def.ran)
	}
}
