// Package cli provides the interactive QDrive command-line client.
//
// It wires configuration and the HTTP API client into a small REPL. Commands
// available before login: register, login. After login: me, ride, status,
// avatar, logout. help and exit work in both states.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// standard input is closed.
package cli
