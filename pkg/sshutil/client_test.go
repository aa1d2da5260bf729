package sshutil

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/ntxmon/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

func writeKey(t *testing.T, path string, passphrase string) ssh.PublicKey {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	var block *pem.Block
	if passphrase == "" {
		block, err = ssh.MarshalPrivateKey(priv, "test")
	} else {
		block, err = ssh.MarshalPrivateKeyWithPassphrase(priv, "test", []byte(passphrase))
	}
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0o600))

	sshPub, err := ssh.NewPublicKey(pub)
	require.NoError(t, err)
	return sshPub
}

func TestKeyFileAuth(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "plain")
	writeKey(t, plain, "")
	m, err := keyFileAuth(plain)
	require.NoError(t, err)
	assert.NotNil(t, m)

	locked := filepath.Join(dir, "locked")
	writeKey(t, locked, "hunter2")
	_, err = keyFileAuth(locked)
	var enc *EncryptedKeyError
	require.ErrorAs(t, err, &enc)
	assert.Equal(t, locked, enc.Path)

	_, err = keyFileAuth(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestClientConfig_NoKeys(t *testing.T) {
	withHome(t, "")
	_, err := clientConfig(resolveSettings("example.com"), time.Second)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSSH))
	assert.Contains(t, err.Error(), "No SSH auth methods")
}

func TestClientConfig_OnlyEncryptedKeys(t *testing.T) {
	home := withHome(t, "")
	writeKey(t, filepath.Join(home, ".ssh", "id_ed25519"), "secret")

	_, err := clientConfig(resolveSettings("example.com"), time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encrypted")

	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Contains(t, e.Suggestion, "ssh-add")
}

func TestClientConfig_WithKey(t *testing.T) {
	home := withHome(t, "")
	writeKey(t, filepath.Join(home, ".ssh", "id_ed25519"), "")

	cfg, err := clientConfig(resolveSettings("alice@example.com"), 3*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "alice", cfg.User)
	assert.Len(t, cfg.Auth, 1)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.FileExists(t, filepath.Join(home, ".ssh", "known_hosts"))
}

func TestKnownHostsCallback_Mismatch(t *testing.T) {
	dir := t.TempDir()
	known := filepath.Join(dir, "known_hosts")

	recorded := writeKey(t, filepath.Join(dir, "a"), "")
	presented := writeKey(t, filepath.Join(dir, "b"), "")
	line := knownhosts.Line([]string{knownhosts.Normalize("kmd.example.com:22"), knownhosts.Normalize("10.0.0.5:22")}, recorded)
	require.NoError(t, os.WriteFile(known, []byte(line+"\n"), 0o600))

	cb, err := knownHostsCallback(known)
	require.NoError(t, err)

	addr := &net.TCPAddr{IP: net.ParseIP("10.0.0.5"), Port: 22}
	assert.NoError(t, cb("kmd.example.com:22", addr, recorded))

	err = cb("kmd.example.com:22", addr, presented)
	var mismatch *HostKeyMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, ssh.KeyAlgoED25519, mismatch.ReceivedType)
	assert.Contains(t, mismatch.Suggestion(), "ssh-keygen -R kmd.example.com")
	assert.Contains(t, mismatch.Suggestion(), ssh.KeyAlgoED25519)
}

func TestDial_Unreachable(t *testing.T) {
	home := withHome(t, "")
	writeKey(t, filepath.Join(home, ".ssh", "id_ed25519"), "")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	_, err = Dial(fmt.Sprintf("127.0.0.1:%d", port), time.Second)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSSH))
	assert.Contains(t, err.Error(), "Can't reach")
}

func TestClient_NilSafe(t *testing.T) {
	var c *Client
	assert.NoError(t, c.Close())
	assert.NoError(t, (&Client{Host: "x"}).Close())

	_, _, code, err := (&Client{Host: "x"}).Exec("true")
	assert.Equal(t, -1, code)
	assert.True(t, errors.IsCode(err, errors.ErrSSH))
}

func TestSuggestions(t *testing.T) {
	assert.Contains(t, dialSuggestion(fmt.Errorf("dial tcp: connection refused")), "sshd")
	assert.Contains(t, dialSuggestion(fmt.Errorf("i/o timeout")), "timed out")
	assert.Contains(t, dialSuggestion(fmt.Errorf("weird")), "ping")

	assert.Contains(t, handshakeSuggestion(fmt.Errorf("ssh: unable to authenticate"), nil), "ssh-add -l")
	assert.Contains(t, handshakeSuggestion(fmt.Errorf("ssh: unable to authenticate"), []string{"/k"}), "ssh-add")
	assert.Contains(t, handshakeSuggestion(fmt.Errorf("ssh: host key mismatch"), nil), "Host key")
}
