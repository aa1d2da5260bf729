// Package daemon talks to bitcoin-style coin daemons over JSON-RPC.
//
// Client is the narrow interface the stats collector needs; RPCClient is the
// HTTP implementation. Daemons on other machines are reached by dialing the
// RPC port through an SSH connection from Pool, and their wallet files are
// sized with a remote stat instead of os.Stat.
package daemon
