// package tasks implements the upload orchestration engine.
//
// The core abstraction is [UploadEngine], which sequences the remote
// generation, preview, and publish calls for one upload session. Each remote
// capability runs behind a [Client], an observable task handle that tracks
// loading/error/result state and discards stale resolutions. Operations emit
// progress updates via channels for non-blocking status reporting to CLI/UI
// layers.
package tasks
