// Package cli provides the interactive MarketFeed command-line client.
//
// It wires configuration, the local store and the application services
// into a REPL. A durable session left by a previous run is restored at
// start-up, and a background watcher reports when the external sign-in
// widget has a token ready.
//
// Key features:
//   - Signup / Login / Federated login / Logout
//   - Profile and avatar editing
//   - Posting to the feed, listing it, liking and commenting
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartProviderWatcher, and runREPL for details.
package cli
