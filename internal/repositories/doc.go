// package repositories provides persistence layer implementations.
//
// The session repository implements [SessionStore], the durable store for the
// active upload session. It survives process restarts so a workflow can resume
// where it left off.
package repositories
