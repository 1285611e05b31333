// package models defines the data model for the upload orchestration workflow.
//
// An [UploadSession] tracks one video's journey from raw file to published
// YouTube video. [StageContent] accumulates generated candidates and user
// overrides per step, and [PublishSettings] holds privacy and playlist choices.
package models
