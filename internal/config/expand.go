package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandTilde replaces ~ or ~/path with the user's home directory.
// Use this for LOCAL paths only. Remote paths keep ~ for the remote shell.
func ExpandTilde(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}

	return path
}

// ExpandLocal expands ${USER}, ${HOME} and a leading ~ for a path on this machine.
func ExpandLocal(s string) string {
	if s == "" {
		return s
	}
	result := s
	if strings.Contains(result, "${USER}") {
		result = strings.ReplaceAll(result, "${USER}", getUser())
	}
	if strings.Contains(result, "${HOME}") {
		result = strings.ReplaceAll(result, "${HOME}", getHome())
	}
	return ExpandTilde(result)
}

// ExpandRemote expands a path that lives on an SSH host.
// ${HOME} becomes ~ and ~ is kept so the remote shell resolves it.
func ExpandRemote(s string) string {
	if s == "" {
		return s
	}
	result := s
	if strings.Contains(result, "${USER}") {
		result = strings.ReplaceAll(result, "${USER}", getUser())
	}
	if strings.Contains(result, "${HOME}") {
		result = strings.ReplaceAll(result, "${HOME}", "~")
	}
	return result
}

// ExpandCoin expands the paths of a coin, treating them as remote when the
// coin is reached over SSH.
func ExpandCoin(c Coin) Coin {
	expand := ExpandLocal
	if len(c.SSH) > 0 {
		expand = ExpandRemote
	}
	c.Wallet = expand(c.Wallet)
	// The .conf is always read locally; SSH coins must set rpc explicitly.
	c.Conf = ExpandLocal(c.Conf)
	return c
}

func getUser() string {
	for _, key := range []string{"USER", "LOGNAME", "USERNAME"} {
		if user := os.Getenv(key); user != "" {
			return user
		}
	}
	return "user"
}

func getHome() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return os.Getenv("HOME")
}
