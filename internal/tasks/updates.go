package tasks

import (
	"fmt"

	"github.com/desertthunder/tubeflow/internal/models"
	"github.com/desertthunder/tubeflow/internal/services"
	"github.com/desertthunder/tubeflow/internal/workflow"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	PhaseUpload Phase = iota
	PhaseGenerate
	PhaseThumbnails
	PhaseAllInOne
	PhasePreview
	PhasePublish
	PhaseDownload
)

func (p Phase) String() string {
	switch p {
	case PhaseUpload:
		return "upload"
	case PhaseGenerate:
		return "generate"
	case PhaseThumbnails:
		return "thumbnails"
	case PhaseAllInOne:
		return "all_in_one"
	case PhasePreview:
		return "preview"
	case PhasePublish:
		return "publish"
	case PhaseDownload:
		return "download"
	default:
		return ""
	}
}

func uploadingUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseUpload,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Uploading %s...", path),
	}
}

func uploadedUpdate(session *models.UploadSession) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseUpload,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Upload accepted (session %s)", session.ID),
		Data:    session,
	}
}

func generatingUpdate(step workflow.Step) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseGenerate,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Generating %s...", step),
	}
}

func generatedUpdate(step workflow.Step) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseGenerate,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Generated %s", step),
	}
}

func thumbnailBatchUpdate(done, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseThumbnails,
		Step:    done,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Generating thumbnails...", done, total),
	}
}

func allInOneUpdate(done, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseAllInOne,
		Step:    done,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Running generation steps...", done, total),
	}
}

func allInOneDoneUpdate(ops BatchResult[string]) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseAllInOne,
		Step:    ops.Total(),
		Total:   ops.Total(),
		Message: ops.Summary(),
		Data:    ops,
	}
}

func publishPrivacyUpdate(privacy models.Privacy) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhasePublish,
		Step:    1,
		Total:   2,
		Message: fmt.Sprintf("Setting privacy to %s...", privacy),
	}
}

func publishingUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhasePublish,
		Step:    2,
		Total:   2,
		Message: "Publishing to YouTube...",
	}
}

func publishedUpdate(receipt *services.PublishReceipt) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhasePublish,
		Step:    2,
		Total:   2,
		Message: fmt.Sprintf("Published: %s", receipt.VideoURL),
		Data:    receipt,
	}
}

func downloadingUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PhaseDownload,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Downloading to %s...", path),
	}
}
