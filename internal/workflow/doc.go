// package workflow implements the step sequencer for the upload pipeline.
//
// Steps run strictly in order: upload, title, description, timestamps,
// thumbnail, preview. The preview step hosts a three-stage sub-sequence
// (content review, settings, final). Completion is always derived from
// content, never stored, so the indicator can not drift from reality.
package workflow
