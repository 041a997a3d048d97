// Package cli wires bitmeter's cobra commands to the store, preference and
// monitor packages.
//
// Running bare 'bitmeter' opens the live graph. The remaining commands are
// one-shot: they load config, open the database, print, and exit.
package cli
