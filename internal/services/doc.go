// package services defines the [Backend] interface for the content-automation
// API and its HTTP implementation.
//
// The backend wraps the AI generation, preview, privacy/playlist, and publish
// endpoints. Every call attaches a bearer token from a [TokenSource]; an empty
// token short-circuits the call with [shared.ErrAuthFailed] before any network
// traffic. Transport-level failures are classified onto the shared error
// sentinels so orchestration code can branch with errors.Is.
package services
