// Package sshutil dials SSH connections to hosts that run notary daemons.
//
// Connections resolve aliases from ~/.ssh/config, authenticate with the
// agent or default key files, and verify host keys against known_hosts.
// A Client is used two ways: its embedded ssh.Client tunnels RPC traffic
// with Dial, and Exec runs one-shot commands such as stat on wallet files.
package sshutil
