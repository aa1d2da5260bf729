package sshutil

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kevinburke/ssh_config"
	"github.com/rileyhilliard/ntxmon/internal/logger"
)

// settings are the resolved connection parameters for one host.
type settings struct {
	hostname      string
	port          string
	user          string
	identityFile  string
	encryptedKeys []string
}

func (s *settings) address() string {
	return net.JoinHostPort(s.hostname, s.port)
}

var matchWarningOnce sync.Once

// resolveSettings parses user@host:port and overlays ~/.ssh/config values
// for the alias.
func resolveSettings(host string) *settings {
	s := &settings{port: "22", user: currentUser()}

	if at := strings.Index(host, "@"); at != -1 {
		s.user = host[:at]
		host = host[at+1:]
	}
	if h, port, err := net.SplitHostPort(host); err == nil && isDigits(port) {
		host, s.port = h, port
	}
	s.hostname = host

	cfg, matchLine, err := loadConfig(filepath.Join(homeDir(), ".ssh", "config"))
	if err != nil {
		return s
	}

	found := false
	if v, _ := cfg.Get(host, "HostName"); v != "" {
		s.hostname, found = v, true
	}
	if v, _ := cfg.Get(host, "Port"); v != "" {
		s.port, found = v, true
	}
	if v, _ := cfg.Get(host, "User"); v != "" {
		s.user, found = v, true
	}
	if v, _ := cfg.Get(host, "IdentityFile"); v != "" {
		s.identityFile, found = expandPath(v), true
	}

	if matchLine > 0 && !found {
		matchWarningOnce.Do(func() {
			logger.Default().Warn("SSH host '%s' not found; ~/.ssh/config has a Match block at line %d and entries after it are ignored", host, matchLine)
		})
	}
	return s
}

// loadConfig decodes an ssh config file. ssh_config can't parse Match
// blocks, so everything from the first Match onward is dropped and its
// line number returned.
func loadConfig(path string) (*ssh_config.Config, int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}

	lines := strings.Split(string(content), "\n")
	matchLine := 0
	for i, line := range lines {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "match ") {
			matchLine = i + 1
			lines = lines[:i]
			break
		}
	}

	cfg, err := ssh_config.Decode(bytes.NewReader([]byte(strings.Join(lines, "\n"))))
	if err != nil {
		return nil, matchLine, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, matchLine, nil
}

// HostEntry is a concrete host alias from ~/.ssh/config.
type HostEntry struct {
	Alias    string
	Hostname string
	User     string
	Port     string
}

// Description summarizes where the alias points, for pickers.
func (h HostEntry) Description() string {
	var parts []string
	if h.Hostname != "" && h.Hostname != h.Alias {
		parts = append(parts, h.Hostname)
	}
	if h.User != "" {
		parts = append(parts, "user: "+h.User)
	}
	if h.Port != "" && h.Port != "22" {
		parts = append(parts, "port: "+h.Port)
	}
	if len(parts) == 0 {
		return h.Alias
	}
	return strings.Join(parts, ", ")
}

// ConfigHosts lists the non-wildcard aliases in ~/.ssh/config.
func ConfigHosts() ([]HostEntry, error) {
	return ConfigHostsFile(filepath.Join(homeDir(), ".ssh", "config"))
}

// ConfigHostsFile lists the non-wildcard aliases in path, in file order.
// A missing file yields no hosts and no error.
func ConfigHostsFile(path string) ([]HostEntry, error) {
	cfg, _, err := loadConfig(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var hosts []HostEntry
	seen := make(map[string]bool)
	for _, h := range cfg.Hosts {
		for _, p := range h.Patterns {
			alias := p.String()
			if strings.ContainsAny(alias, "*?!") || seen[alias] {
				continue
			}
			seen[alias] = true

			e := HostEntry{Alias: alias}
			e.Hostname, _ = cfg.Get(alias, "HostName")
			e.User, _ = cfg.Get(alias, "User")
			e.Port, _ = cfg.Get(alias, "Port")
			hosts = append(hosts, e)
		}
	}
	return hosts, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return os.Getenv("HOME")
}

func currentUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "root"
}

func expandPath(p string) string {
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(homeDir(), p[2:])
	}
	return p
}
