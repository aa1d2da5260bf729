package sshutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withHome points HOME at a temp dir holding the given ~/.ssh/config.
func withHome(t *testing.T, sshConfig string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USER", "notary")
	t.Setenv("SSH_AUTH_SOCK", "")
	if sshConfig != "" {
		dir := filepath.Join(home, ".ssh")
		require.NoError(t, os.MkdirAll(dir, 0o700))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config"), []byte(sshConfig), 0o600))
	}
	return home
}

func TestResolveSettings(t *testing.T) {
	home := withHome(t, `
Host kmd-node
    HostName 10.0.0.5
    User komodo
    Port 2222
    IdentityFile ~/.ssh/notary_key
`)

	tests := []struct {
		host     string
		wantHost string
		wantPort string
		wantUser string
		wantKey  string
	}{
		{"example.com", "example.com", "22", "notary", ""},
		{"alice@example.com", "example.com", "22", "alice", ""},
		{"example.com:2200", "example.com", "2200", "notary", ""},
		{"bob@10.1.1.1:23", "10.1.1.1", "23", "bob", ""},
		{"kmd-node", "10.0.0.5", "2222", "komodo", filepath.Join(home, ".ssh", "notary_key")},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			s := resolveSettings(tt.host)
			assert.Equal(t, tt.wantHost, s.hostname)
			assert.Equal(t, tt.wantPort, s.port)
			assert.Equal(t, tt.wantUser, s.user)
			assert.Equal(t, tt.wantKey, s.identityFile)
		})
	}
}

func TestResolveSettings_Address(t *testing.T) {
	withHome(t, "")
	assert.Equal(t, "example.com:22", resolveSettings("example.com").address())
	assert.Equal(t, "[::1]:22", resolveSettings("::1").address())
}

func TestConfigHostsFile(t *testing.T) {
	home := withHome(t, `
Host *
    ServerAliveInterval 30

Host kmd-node kmd-backup
    HostName 10.0.0.5
    User komodo

Host lab-?
    User nobody

Host third-party
    HostName 3p.example.com
    Port 2222

Match host foo
    User ignored

Host after-match
    HostName hidden.example.com
`)

	hosts, err := ConfigHosts()
	require.NoError(t, err)

	var aliases []string
	for _, h := range hosts {
		aliases = append(aliases, h.Alias)
	}
	assert.Equal(t, []string{"kmd-node", "kmd-backup", "third-party"}, aliases)
	assert.Equal(t, "10.0.0.5", hosts[0].Hostname)
	assert.Equal(t, "komodo", hosts[0].User)
	assert.Equal(t, "2222", hosts[2].Port)

	missing, err := ConfigHostsFile(filepath.Join(home, "nope"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestHostEntry_Description(t *testing.T) {
	tests := []struct {
		entry HostEntry
		want  string
	}{
		{HostEntry{Alias: "a"}, "a"},
		{HostEntry{Alias: "a", Hostname: "a"}, "a"},
		{HostEntry{Alias: "a", Hostname: "10.0.0.1"}, "10.0.0.1"},
		{HostEntry{Alias: "a", User: "u"}, "user: u"},
		{HostEntry{Alias: "a", Port: "22"}, "a"},
		{HostEntry{Alias: "a", Hostname: "h", User: "u", Port: "2222"}, "h, user: u, port: 2222"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.Description())
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := withHome(t, "")
	assert.Equal(t, filepath.Join(home, ".ssh", "id"), expandPath("~/.ssh/id"))
	assert.Equal(t, "/etc/key", expandPath("/etc/key"))
}
