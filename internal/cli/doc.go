// Package cli implements the ntxmon command-line interface.
//
// Every command loads the config the same way (--config, ./.ntxmon.yaml,
// then ~/.config/ntxmon/config.yaml), applies the global flag overrides and
// opens one daemon endpoint per coin:
//
//	ntxmon              - Interactive refresh loop on stdout
//	ntxmon once         - Render the table once and exit
//	ntxmon tui          - Full-screen dashboard
//	ntxmon check        - Probe each daemon and report latency
//	ntxmon init         - Write a starter .ntxmon.yaml
//	ntxmon version      - Print build information
//
// Configuration errors are returned before any daemon is contacted and are
// the only failures that make the refresh loop exit non-zero. A daemon that
// is down only shows up as an unavailable row.
package cli
