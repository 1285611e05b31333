package workflow

import (
	"fmt"

	"github.com/desertthunder/tubeflow/internal/models"
)

// Step is one linear phase of the upload workflow.
type Step int

const (
	StepUpload Step = iota
	StepTitle
	StepDescription
	StepTimestamps
	StepThumbnail
	StepPreview
)

// Steps lists every step in workflow order.
var Steps = []Step{StepUpload, StepTitle, StepDescription, StepTimestamps, StepThumbnail, StepPreview}

func (s Step) String() string {
	switch s {
	case StepUpload:
		return "upload"
	case StepTitle:
		return "title"
	case StepDescription:
		return "description"
	case StepTimestamps:
		return "timestamps"
	case StepThumbnail:
		return "thumbnail"
	case StepPreview:
		return "preview"
	default:
		return ""
	}
}

// ParseStep resolves a step name as used on the command line.
func ParseStep(name string) (Step, error) {
	for _, step := range Steps {
		if step.String() == name {
			return step, nil
		}
	}
	return 0, fmt.Errorf("unknown step %q (expected one of upload, title, description, timestamps, thumbnail, preview)", name)
}

// PreviewStage is the sub-sequence active while the current step is preview.
type PreviewStage int

const (
	StageContentReview PreviewStage = iota + 1
	StageSettings
	StageFinal
)

func (p PreviewStage) String() string {
	switch p {
	case StageContentReview:
		return "content review"
	case StageSettings:
		return "settings"
	case StageFinal:
		return "final preview"
	default:
		return ""
	}
}

// Machine is the workflow step sequencer.
//
// Forward navigation is never hard-blocked on completion; the completed flag
// is advisory. Backward navigation is always permitted. Preview is terminal:
// there is no step after it.
type Machine struct {
	current Step
	stage   PreviewStage

	// onEnterFinal fires exactly once per settings→final transition, not on
	// every render. The engine uses it to refresh playlist candidates.
	onEnterFinal func()
}

// NewMachine creates a machine positioned at the upload step.
func NewMachine() *Machine {
	return &Machine{current: StepUpload, stage: StageContentReview}
}

// OnEnterFinal registers the hook fired on each settings→final stage transition.
func (m *Machine) OnEnterFinal(fn func()) { m.onEnterFinal = fn }

// Current returns the active step.
func (m *Machine) Current() Step { return m.current }

// Stage returns the preview sub-stage; meaningful only while Current is preview.
func (m *Machine) Stage() PreviewStage { return m.stage }

// Advance moves to the next step. From preview it is a no-op; the workflow is
// terminal there and never revisits upload.
func (m *Machine) Advance() Step {
	if m.current < StepPreview {
		m.current++
		if m.current == StepPreview {
			m.stage = StageContentReview
		}
	}
	return m.current
}

// Retreat moves to the previous step. Always permitted; stops at upload.
func (m *Machine) Retreat() Step {
	if m.current > StepUpload {
		m.current--
	}
	return m.current
}

// AdvanceStage moves forward within the preview sub-sequence.
//
// The settings→final transition fires the registered hook once.
func (m *Machine) AdvanceStage() PreviewStage {
	if m.current != StepPreview {
		return m.stage
	}
	if m.stage < StageFinal {
		m.stage++
		if m.stage == StageFinal && m.onEnterFinal != nil {
			m.onEnterFinal()
		}
	}
	return m.stage
}

// RetreatStage moves backward within the preview sub-sequence.
func (m *Machine) RetreatStage() PreviewStage {
	if m.current != StepPreview {
		return m.stage
	}
	if m.stage > StageContentReview {
		m.stage--
	}
	return m.stage
}

// ForceToPreview jumps straight to the final preview stage from any point.
//
// Used by the all-in-one fast path; intermediate steps are silently treated
// as visited. The enter-final hook does not fire here since the caller
// refreshes the preview itself.
func (m *Machine) ForceToPreview() {
	m.current = StepPreview
	m.stage = StageFinal
}

// Completed reports whether a step's content requirements are met.
//
// Purely derived from session presence and stage content; never stored. The
// title step requires an explicit selection or override, not merely generated
// candidates. Preview is the terminal destination and is never complete.
func Completed(step Step, session *models.UploadSession, content *models.StageContent) bool {
	switch step {
	case StepUpload:
		return session != nil && session.ID != ""
	case StepTitle:
		return content.CustomTitle != "" || content.SelectedTitle != ""
	case StepDescription:
		return content.EffectiveDescription() != ""
	case StepTimestamps:
		return content.EffectiveTimestamps() != ""
	case StepThumbnail:
		return content.SelectedThumbnail != ""
	case StepPreview:
		return false
	default:
		return false
	}
}
