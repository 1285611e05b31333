package workflow

import (
	"testing"

	"github.com/desertthunder/tubeflow/internal/models"
)

func TestMachine(t *testing.T) {
	t.Run("Advances Linearly Through Every Step", func(t *testing.T) {
		m := NewMachine()
		if m.Current() != StepUpload {
			t.Fatalf("expected initial step upload, got %s", m.Current())
		}

		visited := []Step{m.Current()}
		for i := 0; i < len(Steps)-1; i++ {
			visited = append(visited, m.Advance())
		}

		for i, step := range Steps {
			if visited[i] != step {
				t.Errorf("expected step %s at position %d, got %s", step, i, visited[i])
			}
		}
	})

	t.Run("Preview Is Terminal", func(t *testing.T) {
		m := NewMachine()
		for i := 0; i < 10; i++ {
			m.Advance()
		}
		if m.Current() != StepPreview {
			t.Errorf("expected preview after excess advances, got %s", m.Current())
		}
	})

	t.Run("Retreat Stops At Upload", func(t *testing.T) {
		m := NewMachine()
		m.Advance()
		m.Advance()

		if got := m.Retreat(); got != StepTitle {
			t.Errorf("expected title, got %s", got)
		}
		if got := m.Retreat(); got != StepUpload {
			t.Errorf("expected upload, got %s", got)
		}
		if got := m.Retreat(); got != StepUpload {
			t.Errorf("expected retreat to stop at upload, got %s", got)
		}
	})

	t.Run("Entering Preview Resets Stage", func(t *testing.T) {
		m := NewMachine()
		for m.Current() != StepPreview {
			m.Advance()
		}
		if m.Stage() != StageContentReview {
			t.Errorf("expected stage content review on entry, got %s", m.Stage())
		}
	})

	t.Run("Stage Navigation Is Bounded", func(t *testing.T) {
		m := NewMachine()
		for m.Current() != StepPreview {
			m.Advance()
		}

		if got := m.AdvanceStage(); got != StageSettings {
			t.Errorf("expected settings, got %s", got)
		}
		if got := m.AdvanceStage(); got != StageFinal {
			t.Errorf("expected final, got %s", got)
		}
		if got := m.AdvanceStage(); got != StageFinal {
			t.Errorf("expected stage to stop at final, got %s", got)
		}

		if got := m.RetreatStage(); got != StageSettings {
			t.Errorf("expected settings, got %s", got)
		}
		if got := m.RetreatStage(); got != StageContentReview {
			t.Errorf("expected content review, got %s", got)
		}
		if got := m.RetreatStage(); got != StageContentReview {
			t.Errorf("expected stage to stop at content review, got %s", got)
		}
	})

	t.Run("Stage Is Inert Outside Preview", func(t *testing.T) {
		m := NewMachine()
		m.Advance() // title

		if got := m.AdvanceStage(); got != StageContentReview {
			t.Errorf("expected stage unchanged outside preview, got %s", got)
		}
	})

	t.Run("Enter Final Hook Fires Once Per Transition", func(t *testing.T) {
		m := NewMachine()
		fired := 0
		m.OnEnterFinal(func() { fired++ })

		for m.Current() != StepPreview {
			m.Advance()
		}
		m.AdvanceStage() // settings
		m.AdvanceStage() // final, fires
		m.AdvanceStage() // no-op at final

		if fired != 1 {
			t.Errorf("expected hook fired once, got %d", fired)
		}

		m.RetreatStage()
		m.AdvanceStage() // fires again on re-entry

		if fired != 2 {
			t.Errorf("expected hook fired on re-entry, got %d", fired)
		}
	})

	t.Run("ForceToPreview Skips The Hook", func(t *testing.T) {
		m := NewMachine()
		fired := 0
		m.OnEnterFinal(func() { fired++ })

		m.ForceToPreview()

		if m.Current() != StepPreview || m.Stage() != StageFinal {
			t.Errorf("expected final preview stage, got %s/%s", m.Current(), m.Stage())
		}
		if fired != 0 {
			t.Errorf("expected hook not fired on force transition, got %d", fired)
		}
	})
}

func TestCompleted(t *testing.T) {
	session := &models.UploadSession{ID: "session-1"}

	tests := []struct {
		name     string
		step     Step
		session  *models.UploadSession
		content  models.StageContent
		expected bool
	}{
		{"Upload Incomplete Without Session", StepUpload, nil, models.StageContent{}, false},
		{"Upload Complete With Session", StepUpload, session, models.StageContent{}, true},
		{"Title Incomplete With Only Candidates", StepTitle, session, models.StageContent{Titles: []string{"a", "b"}}, false},
		{"Title Complete With Selection", StepTitle, session, models.StageContent{SelectedTitle: "a"}, true},
		{"Title Complete With Custom Override", StepTitle, session, models.StageContent{CustomTitle: "mine"}, true},
		{"Description Complete When Generated", StepDescription, session, models.StageContent{Description: "text"}, true},
		{"Description Complete When Custom", StepDescription, session, models.StageContent{CustomDescription: "text"}, true},
		{"Description Incomplete When Empty", StepDescription, session, models.StageContent{}, false},
		{"Timestamps Complete When Generated", StepTimestamps, session, models.StageContent{Timestamps: "00:00 intro"}, true},
		{"Thumbnail Incomplete With Only Candidates", StepThumbnail, session, models.StageContent{Thumbnails: []string{"u"}}, false},
		{"Thumbnail Complete With Selection", StepThumbnail, session, models.StageContent{SelectedThumbnail: "u"}, true},
		{"Preview Never Complete", StepPreview, session, models.StageContent{CustomTitle: "x"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Completed(tc.step, tc.session, &tc.content); got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestParseStep(t *testing.T) {
	t.Run("Resolves Known Names", func(t *testing.T) {
		for _, step := range Steps {
			got, err := ParseStep(step.String())
			if err != nil {
				t.Fatalf("unexpected error for %s: %v", step, err)
			}
			if got != step {
				t.Errorf("expected %s, got %s", step, got)
			}
		}
	})

	t.Run("Rejects Unknown Names", func(t *testing.T) {
		if _, err := ParseStep("render"); err == nil {
			t.Error("expected error for unknown step")
		}
	})
}
