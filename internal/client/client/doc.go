// Package client contains the client-side building blocks that talk to the
// blogging API.
//
// # Overview
//
// The package provides:
//  1. Transport-agnostic resource contracts (AuthAPI, PostsAPI) used by the
//     view controllers.
//  2. An HTTP implementation (HTTPClient, AuthResource, PostsResource) with
//     request and response interceptors: the bearer token is read from the
//     Session on every request, access tokens in responses are written back
//     to it, and a 401 ends the session and sends the user to the login view.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     SQLite file that backs the session between runs.
//
// # Error Handling
//
// Non-2xx responses become *APIError, which carries the server's message
// and per-field validation errors and matches the sentinel errors below
// with errors.Is. Transport failures wrap ErrUnavailable. Nothing is
// retried. ErrorMessage turns any of these into text for the user.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation.
package client
