// Package cli provides the interactive blog command-line client.
//
// It wires configuration, the local session database, the HTTP API
// clients, the view controllers and an interactive REPL. Typical flow:
// restore the previous session if its token is still accepted, otherwise
// ask the user to log in, then browse and edit posts.
//
// Key features:
//   - Register / Login / Logout, session kept between runs
//   - List posts with pagination, title search and "my posts"
//   - Show a post; create, edit and delete your own posts
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
