package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tubeflow/internal/models"
	"github.com/desertthunder/tubeflow/internal/services"
	"github.com/desertthunder/tubeflow/internal/tasks"
	"github.com/desertthunder/tubeflow/internal/workflow"
)

type (
	uploadDoneMsg struct {
		session *models.UploadSession
		err     error
	}
	generateDoneMsg struct {
		step workflow.Step
		err  error
	}
	allInOneDoneMsg struct {
		result *tasks.AllInOneResult
		err    error
	}
	saveDoneMsg struct {
		step workflow.Step
		err  error
	}
	stageDoneMsg struct {
		stage workflow.PreviewStage
		err   error
	}
	previewDoneMsg struct {
		record *models.VideoRecord
		err    error
	}
	settingsDoneMsg struct {
		err error
	}
	publishDoneMsg struct {
		receipt *services.PublishReceipt
		err     error
	}
	progressMsg       tasks.ProgressUpdate
	progressClosedMsg struct{}
)

// Model is the bubbletea model driving the upload workflow.
//
// The current view is derived from the engine's workflow machine rather than
// duplicated UI state; the model only tracks presentation concerns (lists,
// the edit buffer, in-flight status).
type Model struct {
	ctx    context.Context
	engine *tasks.UploadEngine

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	input   textinput.Model

	candidates list.Model
	thumbs     list.Model
	playlists  list.Model

	width  int
	height int

	videoPath string
	busy      bool
	editing   bool
	regen     bool
	confirm   bool
	done      bool
	status    string
	err       error
	receipt   *services.PublishReceipt

	progressChan chan tasks.ProgressUpdate
}

// NewModel creates a workflow TUI. videoPath may be empty when resuming a
// restored session.
func NewModel(ctx context.Context, engine *tasks.UploadEngine, videoPath string) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.title

	input := textinput.New()
	input.CharLimit = 0

	newList := func(title string) list.Model {
		l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
		l.Title = title
		l.SetShowHelp(false)
		l.SetFilteringEnabled(false)
		return l
	}

	return &Model{
		ctx:          ctx,
		engine:       engine,
		keys:         newKeyMap(),
		help:         help.New(),
		spinner:      sp,
		input:        input,
		candidates:   newList("Title Candidates"),
		thumbs:       newList("Thumbnails"),
		playlists:    newList("Playlists"),
		videoPath:    videoPath,
		progressChan: make(chan tasks.ProgressUpdate, 16),
	}
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.waitForProgress()}
	if m.engine.Session() == nil && m.videoPath != "" {
		m.busy = true
		m.status = "uploading " + m.videoPath
		cmds = append(cmds, m.uploadCmd())
	}
	return tea.Batch(cmds...)
}

// waitForProgress re-arms itself after every message, the standard pattern for
// bridging a channel into the Elm loop.
func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.progressChan
		if !ok {
			return progressClosedMsg{}
		}
		return progressMsg(update)
	}
}

func (m *Model) uploadCmd() tea.Cmd {
	return func() tea.Msg {
		session, err := m.engine.Upload(m.ctx, m.videoPath, m.progressChan)
		return uploadDoneMsg{session: session, err: err}
	}
}

func (m *Model) generateCmd(step workflow.Step, requirements string) tea.Cmd {
	return func() tea.Msg {
		var err error
		if requirements != "" {
			err = m.engine.Regenerate(m.ctx, step, requirements, m.progressChan)
		} else {
			err = m.engine.Generate(m.ctx, step, m.progressChan)
		}
		return generateDoneMsg{step: step, err: err}
	}
}

func (m *Model) allInOneCmd() tea.Cmd {
	return func() tea.Msg {
		result, err := m.engine.AllInOne(m.ctx, m.progressChan)
		return allInOneDoneMsg{result: result, err: err}
	}
}

func (m *Model) saveCmd(step workflow.Step, value string) tea.Cmd {
	return func() tea.Msg {
		var err error
		switch step {
		case workflow.StepTitle:
			err = m.engine.SaveTitle(m.ctx, value)
		case workflow.StepDescription:
			err = m.engine.SaveDescription(m.ctx, value, "")
		case workflow.StepTimestamps:
			err = m.engine.SaveTimestamps(m.ctx, value)
		}
		return saveDoneMsg{step: step, err: err}
	}
}

func (m *Model) nextStageCmd() tea.Cmd {
	return func() tea.Msg {
		stage, err := m.engine.NextStage(m.ctx)
		return stageDoneMsg{stage: stage, err: err}
	}
}

func (m *Model) previewCmd() tea.Cmd {
	return func() tea.Msg {
		record, err := m.engine.FetchPreview(m.ctx)
		return previewDoneMsg{record: record, err: err}
	}
}

func (m *Model) applyPrivacyCmd(p models.Privacy) tea.Cmd {
	return func() tea.Msg {
		return settingsDoneMsg{err: m.engine.ApplyPrivacy(m.ctx, p)}
	}
}

func (m *Model) applyPlaylistCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return settingsDoneMsg{err: m.engine.ApplyPlaylist(m.ctx, id)}
	}
}

func (m *Model) publishCmd() tea.Cmd {
	return func() tea.Msg {
		receipt, err := m.engine.Publish(m.ctx, true, m.progressChan)
		return publishDoneMsg{receipt: receipt, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 4
		listHeight := msg.Height - 10
		if listHeight < 5 {
			listHeight = 5
		}
		m.candidates.SetSize(msg.Width-4, listHeight)
		m.thumbs.SetSize(msg.Width-4, listHeight)
		m.playlists.SetSize(msg.Width-4, listHeight)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progressMsg:
		m.status = msg.Message
		return m, m.waitForProgress()

	case progressClosedMsg:
		return m, nil

	case uploadDoneMsg:
		m.busy = false
		m.err = msg.err
		if msg.err == nil {
			m.status = "upload complete, generate titles with g"
		}
		return m, nil

	case generateDoneMsg:
		m.busy = false
		m.err = msg.err
		if msg.err == nil {
			m.refreshLists()
			m.status = fmt.Sprintf("%s generated", msg.step)
		}
		return m, nil

	case allInOneDoneMsg:
		m.busy = false
		m.err = msg.err
		if msg.result != nil {
			m.refreshLists()
			m.status = msg.result.Ops.Summary()
		}
		return m, nil

	case saveDoneMsg:
		m.busy = false
		m.err = msg.err
		if msg.err == nil {
			m.status = fmt.Sprintf("%s saved", msg.step)
		}
		return m, nil

	case stageDoneMsg:
		m.busy = false
		m.err = msg.err
		m.refreshLists()
		m.status = msg.stage.String()
		return m, nil

	case previewDoneMsg:
		m.busy = false
		m.err = msg.err
		if msg.err == nil {
			m.status = "preview refreshed"
		}
		return m, nil

	case settingsDoneMsg:
		m.busy = false
		m.err = msg.err
		if msg.err == nil {
			m.status = "settings saved"
		}
		return m, nil

	case publishDoneMsg:
		m.busy = false
		m.err = msg.err
		if msg.err == nil {
			m.done = true
			m.receipt = msg.receipt
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) && !m.editing {
		return m, tea.Quit
	}
	if m.done {
		if msg.Type == tea.KeyEnter {
			return m, tea.Quit
		}
		return m, nil
	}
	if m.busy {
		return m, nil
	}

	if m.editing {
		switch msg.Type {
		case tea.KeyEnter:
			value := m.input.Value()
			step := m.engine.Machine().Current()
			m.editing = false
			m.input.Blur()
			if value == "" {
				return m, nil
			}
			if m.regen {
				m.regen = false
				m.busy = true
				return m, m.generateCmd(step, value)
			}
			m.busy = true
			return m, m.saveCmd(step, value)
		case tea.KeyEsc:
			m.editing = false
			m.regen = false
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	machine := m.engine.Machine()
	step := machine.Current()

	if key.Matches(msg, m.keys.auto) && step != workflow.StepUpload {
		m.busy = true
		return m, m.allInOneCmd()
	}

	switch step {
	case workflow.StepUpload:
		if key.Matches(msg, m.keys.enter) && m.videoPath != "" {
			m.busy = true
			return m, m.uploadCmd()
		}
		return m, nil

	case workflow.StepTitle:
		switch {
		case key.Matches(msg, m.keys.generate):
			m.busy = true
			return m, m.generateCmd(step, "")
		case msg.String() == "r":
			return m, m.startRegen()
		case key.Matches(msg, m.keys.edit):
			return m, m.startEdit(step)
		case key.Matches(msg, m.keys.enter):
			if item, ok := m.candidates.SelectedItem().(candidateItem); ok {
				m.engine.SelectTitle(item.title)
				machine.Advance()
				m.status = ""
			}
			return m, nil
		case key.Matches(msg, m.keys.back):
			machine.Retreat()
			return m, nil
		}
		var cmd tea.Cmd
		m.candidates, cmd = m.candidates.Update(msg)
		return m, cmd

	case workflow.StepDescription, workflow.StepTimestamps:
		switch {
		case key.Matches(msg, m.keys.generate):
			m.busy = true
			return m, m.generateCmd(step, "")
		case msg.String() == "r" && step == workflow.StepDescription:
			return m, m.startRegen()
		case key.Matches(msg, m.keys.edit):
			return m, m.startEdit(step)
		case key.Matches(msg, m.keys.enter):
			if m.engine.StepCompleted(step) {
				machine.Advance()
				m.status = ""
			}
			return m, nil
		case key.Matches(msg, m.keys.back):
			machine.Retreat()
			return m, nil
		}
		return m, nil

	case workflow.StepThumbnail:
		switch {
		case key.Matches(msg, m.keys.generate):
			m.busy = true
			return m, m.generateCmd(step, "")
		case key.Matches(msg, m.keys.enter):
			if item, ok := m.thumbs.SelectedItem().(thumbnailItem); ok {
				m.engine.SelectThumbnail(item.url)
				machine.Advance()
				m.busy = true
				m.status = "fetching preview"
				return m, m.previewCmd()
			}
			return m, nil
		case key.Matches(msg, m.keys.back):
			machine.Retreat()
			return m, nil
		}
		var cmd tea.Cmd
		m.thumbs, cmd = m.thumbs.Update(msg)
		return m, cmd

	case workflow.StepPreview:
		return m.handlePreviewKeys(msg, machine)
	}

	return m, nil
}

func (m *Model) handlePreviewKeys(msg tea.KeyMsg, machine *workflow.Machine) (tea.Model, tea.Cmd) {
	switch machine.Stage() {
	case workflow.StageContentReview:
		switch {
		case key.Matches(msg, m.keys.enter):
			m.busy = true
			return m, m.nextStageCmd()
		case key.Matches(msg, m.keys.back):
			machine.Retreat()
			return m, nil
		case key.Matches(msg, m.keys.generate):
			m.busy = true
			return m, m.previewCmd()
		}
		return m, nil

	case workflow.StageSettings:
		switch {
		case msg.String() == "p":
			next := nextPrivacy(m.engine.Settings().Privacy)
			m.busy = true
			return m, m.applyPrivacyCmd(next)
		case key.Matches(msg, m.keys.enter):
			if item, ok := m.playlists.SelectedItem().(playlistItem); ok {
				m.busy = true
				return m, tea.Sequence(m.applyPlaylistCmd(item.playlist.ID), m.nextStageCmd())
			}
			m.busy = true
			return m, m.nextStageCmd()
		case key.Matches(msg, m.keys.back):
			machine.RetreatStage()
			return m, nil
		}
		var cmd tea.Cmd
		m.playlists, cmd = m.playlists.Update(msg)
		return m, cmd

	case workflow.StageFinal:
		switch {
		case m.confirm && key.Matches(msg, m.keys.yes):
			m.confirm = false
			m.busy = true
			return m, m.publishCmd()
		case m.confirm && key.Matches(msg, m.keys.no):
			m.confirm = false
			return m, nil
		case key.Matches(msg, m.keys.enter):
			m.confirm = true
			return m, nil
		case key.Matches(msg, m.keys.generate):
			m.busy = true
			return m, m.previewCmd()
		case key.Matches(msg, m.keys.back):
			machine.RetreatStage()
			return m, nil
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) startEdit(step workflow.Step) tea.Cmd {
	m.editing = true
	m.input.SetValue(m.engine.EditSeed(step))
	m.input.CursorEnd()
	return m.input.Focus()
}

// startRegen opens the edit buffer to collect free-text requirements for
// constraint-guided regeneration.
func (m *Model) startRegen() tea.Cmd {
	m.editing = true
	m.regen = true
	m.input.SetValue("")
	return m.input.Focus()
}

// refreshLists rebuilds the list models from the engine's current content.
func (m *Model) refreshLists() {
	content := m.engine.Content()

	candidates := make([]list.Item, len(content.Titles))
	for i, t := range content.Titles {
		candidates[i] = candidateItem{title: t, index: i}
	}
	m.candidates.SetItems(candidates)

	thumbs := make([]list.Item, len(content.Thumbnails))
	for i, u := range content.Thumbnails {
		thumbs[i] = thumbnailItem{url: u, index: i}
	}
	m.thumbs.SetItems(thumbs)

	pls := m.engine.Playlists()
	items := make([]list.Item, len(pls))
	for i, p := range pls {
		items[i] = playlistItem{playlist: p}
	}
	m.playlists.SetItems(items)
}

func nextPrivacy(p models.Privacy) models.Privacy {
	switch p {
	case models.PrivacyPublic:
		return models.PrivacyUnlisted
	case models.PrivacyUnlisted:
		return models.PrivacyPrivate
	default:
		return models.PrivacyPublic
	}
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("tubeflow") + "\n")
	b.WriteString(m.renderSteps() + "\n\n")

	if m.done {
		b.WriteString(styles.ok.Render("Published!") + "\n")
		if m.receipt != nil {
			if m.receipt.VideoURL != "" {
				b.WriteString(m.receipt.VideoURL + "\n")
			}
			if m.receipt.Message != "" {
				b.WriteString(m.receipt.Message + "\n")
			}
		}
		b.WriteString(styles.help.Render("press enter to exit"))
		return b.String()
	}

	if m.busy {
		b.WriteString(m.spinner.View() + " " + m.status + "\n")
	} else {
		b.WriteString(m.renderBody())
	}

	if m.err != nil {
		b.WriteString("\n" + styles.err.Render(m.err.Error()) + "\n")
	}
	if !m.busy && m.status != "" {
		b.WriteString("\n" + styles.warn.Render(m.status) + "\n")
	}

	b.WriteString("\n" + m.help.ShortHelpView(m.keys.ShortHelp()))
	return b.String()
}

// renderSteps draws the step breadcrumb with completion markers.
func (m *Model) renderSteps() string {
	current := m.engine.Machine().Current()
	parts := make([]string, 0, len(workflow.Steps))
	for _, step := range workflow.Steps {
		label := step.String()
		switch {
		case step == current:
			label = styles.title.Render("[" + label + "]")
		case m.engine.StepCompleted(step):
			label = styles.ok.Render(label + " ✓")
		default:
			label = styles.help.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " → ")
}

func (m *Model) renderBody() string {
	if m.editing {
		prompt := "Edit"
		if m.regen {
			prompt = "Requirements"
		}
		return prompt + ":\n" + m.input.View() + "\n" + styles.help.Render("enter to submit, esc to cancel")
	}

	machine := m.engine.Machine()
	switch machine.Current() {
	case workflow.StepUpload:
		if m.videoPath == "" {
			return styles.warn.Render("no video file given; run with a path or resume a session")
		}
		return fmt.Sprintf("Ready to upload %s\n%s", m.videoPath, styles.help.Render("press enter to start"))

	case workflow.StepTitle:
		if len(m.candidates.Items()) == 0 {
			return styles.help.Render("press g to generate title candidates")
		}
		return m.candidates.View()

	case workflow.StepDescription:
		content := m.engine.Content()
		return m.renderText("Description", content.EffectiveDescription())

	case workflow.StepTimestamps:
		content := m.engine.Content()
		return m.renderText("Chapters", content.EffectiveTimestamps())

	case workflow.StepThumbnail:
		if len(m.thumbs.Items()) == 0 {
			return styles.help.Render("press g to generate thumbnails")
		}
		return m.thumbs.View()

	case workflow.StepPreview:
		return m.renderPreview(machine.Stage())
	}
	return ""
}

func (m *Model) renderText(heading, body string) string {
	if body == "" {
		return styles.help.Render("press g to generate, e to write your own")
	}
	return styles.ok.Render(heading) + "\n" + body + "\n" + styles.help.Render("enter to continue, g regenerate, e edit")
}

func (m *Model) renderPreview(stage workflow.PreviewStage) string {
	var b strings.Builder
	b.WriteString(styles.ok.Render(stage.String()) + "\n\n")

	switch stage {
	case workflow.StageContentReview:
		content := m.engine.Content()
		b.WriteString("Title:       " + content.EffectiveTitle() + "\n")
		b.WriteString("Description: " + truncate(content.EffectiveDescription(), 80) + "\n")
		b.WriteString("Chapters:    " + truncate(content.EffectiveTimestamps(), 80) + "\n")
		b.WriteString("Thumbnail:   " + content.EffectiveThumbnail() + "\n\n")
		b.WriteString(styles.help.Render("enter to continue, g refresh preview, esc back"))

	case workflow.StageSettings:
		settings := m.engine.Settings()
		b.WriteString("Privacy: " + styles.warn.Render(string(settings.Privacy)) + styles.help.Render(" (p to cycle)") + "\n")
		if settings.PlaylistID != "" {
			b.WriteString("Playlist: " + settings.PlaylistID + "\n")
		}
		b.WriteString("\n")
		if len(m.playlists.Items()) > 0 {
			b.WriteString(m.playlists.View() + "\n")
		}
		b.WriteString(styles.help.Render("enter to continue, esc back"))

	case workflow.StageFinal:
		if preview := m.engine.LastPreview(); preview != nil {
			b.WriteString("Title:   " + preview.Title + "\n")
			b.WriteString("Privacy: " + string(preview.Privacy) + "\n")
			if preview.PlaylistID != "" {
				b.WriteString("Playlist: " + preview.PlaylistID + "\n")
			}
			b.WriteString("\n")
		}
		if m.confirm {
			b.WriteString(styles.warn.Render("Publish to YouTube? (y/n)"))
		} else {
			b.WriteString(styles.help.Render("enter to publish, g refresh preview, esc back"))
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
