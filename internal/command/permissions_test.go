package command

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestPermissionBits(t *testing.T) {
	bits, err := PermissionBits([]string{"ADMINISTRATOR", "SEND_MESSAGES"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := int64(discordgo.PermissionAdministrator | discordgo.PermissionSendMessages)
	if bits != want {
		t.Fatalf("bits = %#x, want %#x", bits, want)
	}

	if _, err := PermissionBits([]string{"SEND_MESSAGES", "administrator"}); err == nil {
		t.Fatal("vocabulary is case-sensitive; lowercase names must be rejected")
	}
}

func TestThreadPermissionAliases(t *testing.T) {
	tests := []struct {
		name string
		want int64
	}{
		{"USE_PUBLIC_THREADS", discordgo.PermissionCreatePublicThreads},
		{"USE_PRIVATE_THREADS", discordgo.PermissionCreatePrivateThreads},
	}
	for _, tc := range tests {
		bit, ok := PermissionByName(tc.name)
		if !ok {
			t.Fatalf("%s must be accepted", tc.name)
		}
		if bit != tc.want {
			t.Fatalf("%s = %#x, want %#x", tc.name, bit, tc.want)
		}
	}
	if _, err := PermissionBits([]string{"USE_PUBLIC_THREADS", "USE_PRIVATE_THREADS"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPermissionLabel(t *testing.T) {
	if got := PermissionLabel("MANAGE_GUILD"); got != "Manage Server" {
		t.Fatalf("label = %q, want Manage Server", got)
	}
	if got := PermissionLabel("UNKNOWN"); got != "UNKNOWN" {
		t.Fatalf("label = %q, want the raw name back", got)
	}
}
