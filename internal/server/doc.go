// Package server provides HTTP routing, middleware, and the OAuth callback
// handler for the CLI authentication flow.
//
// The [Router] interface defines HTTP routing with middleware support;
// [Middleware] wraps handlers in reverse order (last added executes first),
// following the standard Go pattern. [BasicRouter] uses [http.ServeMux]
// internally with method filtering.
//
// [OAuthHandler] implements the OAuth2 authorization code callback for the
// YouTube consent flow. When the user runs `tubeflow auth login`, a temporary
// HTTP server starts on localhost, handles the callback, and shuts down after
// receiving the token. The handler validates the state parameter (CSRF
// protection), exchanges the authorization code for tokens, and sends the
// result through a channel. It only processes one callback to prevent replay
// attacks.
package server
