package ui

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/guestlist/internal/report"
	"github.com/nconklindev/guestlist/internal/sheet"
	"github.com/nconklindev/guestlist/internal/types"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// PreviewRows is how many dietary entries the results screen shows.
const PreviewRows = 10

type state int

const (
	stateFilePicker state = iota
	stateProcessing
	stateComplete
	stateError
)

type Model struct {
	state        state
	filepicker   filepicker.Model
	selectedFile string
	result       *types.Result
	saved        []string
	err          error
	width        int
	height       int
	progress     progress.Model
	progressChan chan float64
	resultChan   chan reportResultMsg
	logger       *slog.Logger
}

type reportResultMsg struct {
	result *types.Result
	err    error
}

type reportCompleteMsg struct {
	result *types.Result
	err    error
}

type savedMsg struct {
	path string
	err  error
}

type progressMsg float64

type waitForProgressMsg struct{}

// InitialModel starts in the file picker at startDir, or the working
// directory when startDir is empty.
func InitialModel(startDir string, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	fp := filepicker.New()
	fp.AllowedTypes = []string{".csv", ".xlsx"}
	fp.CurrentDirectory = startDir
	if fp.CurrentDirectory == "" {
		fp.CurrentDirectory, _ = os.Getwd()
	}

	// Set filepicker colors to match theme
	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(accent)
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(highlight)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(highlight)
	fp.Styles.File = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	fp.Styles.Permission = lipgloss.NewStyle().Foreground(muted)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(accent).Bold(true)
	fp.Styles.FileSize = lipgloss.NewStyle().Foreground(muted)

	prog := progress.New(progress.WithGradient("#2E8B57", "#7BC47F"))

	return Model{
		state:      stateFilePicker,
		filepicker: fp,
		progress:   prog,
		logger:     logger,
	}
}

func (m Model) Init() tea.Cmd {
	return m.filepicker.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Leave room for the title, subtitle and help text
		height := msg.Height - 14
		if height < 5 {
			height = 5
		}

		m.filepicker.SetHeight(height)

		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateFilePicker, stateProcessing:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			}

		case stateComplete:
			switch msg.String() {
			case "ctrl+c", "q", "esc":
				return m, tea.Quit
			case "s":
				return m, m.save(outputPath(m.selectedFile, ".xlsx"))
			case "c":
				return m, m.save(outputPath(m.selectedFile, ".csv"))
			case "m":
				return m, m.save(outputPath(m.selectedFile, ".md"))
			}

		case stateError:
			switch msg.String() {
			case "ctrl+c", "q", "enter", "esc":
				return m, tea.Quit
			}
		}

	case reportCompleteMsg:
		if msg.err != nil {
			m.logger.Error("report failed", "path", m.selectedFile, "error", msg.err)
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.result = msg.result
		m.state = stateComplete
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.logger.Error("save failed", "path", msg.path, "error", msg.err)
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.logger.Info("report saved", "path", msg.path)
		m.saved = append(m.saved, msg.path)
		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case progressMsg:
		if m.state == stateProcessing {
			cmd := m.progress.SetPercent(float64(msg))
			return m, tea.Batch(cmd, waitForProgress(m.progressChan, m.resultChan))
		}
		return m, nil

	case waitForProgressMsg:
		return m, waitForProgress(m.progressChan, m.resultChan)
	}

	if m.state == stateFilePicker {
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)

		if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			m.state = stateProcessing
			return m.buildReport()
		}

		return m, cmd
	}

	return m, nil
}

// outputPath derives a sibling of input, e.g. guests.xlsx -> guests_dietary.md.
func outputPath(input, ext string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "_dietary" + ext
}

func (m Model) buildReport() (Model, tea.Cmd) {
	m.progressChan = make(chan float64, 100)
	m.resultChan = make(chan reportResultMsg, 1)

	cmd := tea.Batch(
		func() tea.Msg {
			// Capture channels for the goroutine
			progressChan := m.progressChan
			resultChan := m.resultChan
			selectedFile := m.selectedFile
			logger := m.logger

			go func() {
				res, err := runReport(selectedFile, logger, progressChan)

				resultChan <- reportResultMsg{result: res, err: err}

				close(progressChan)
				close(resultChan)
			}()

			return waitForProgressMsg{}
		},
		m.progress.Init(),
	)

	return m, cmd
}

func runReport(path string, logger *slog.Logger, progressChan chan<- float64) (*types.Result, error) {
	data, err := sheet.ReadFileData(path)
	if err != nil {
		return nil, err
	}

	// Counts are shown on the results screen rather than printed.
	res, err := report.NewBuilder(io.Discard, logger).Run(data, progressChan)
	if err != nil {
		return nil, err
	}
	res.InputFile = path
	return res, nil
}

func (m Model) save(path string) tea.Cmd {
	res := m.result
	return func() tea.Msg {
		if strings.ToLower(filepath.Ext(path)) == ".md" {
			var buf bytes.Buffer
			if err := report.WriteMarkdown(&buf, res); err != nil {
				return savedMsg{path: path, err: err}
			}
			return savedMsg{path: path, err: os.WriteFile(path, buf.Bytes(), 0o644)}
		}
		return savedMsg{path: path, err: sheet.WriteEntries(path, res.Dietary)}
	}
}

func waitForProgress(progressChan chan float64, resultChan chan reportResultMsg) tea.Cmd {
	return func() tea.Msg {
		if progressChan == nil {
			return nil
		}

		p, ok := <-progressChan
		if !ok {
			// Progress channel closed, check result
			res, ok := <-resultChan
			if ok {
				return reportCompleteMsg(res)
			}
			return nil
		}

		return progressMsg(p)
	}
}

func (m Model) View() string {
	switch m.state {
	case stateFilePicker:
		return m.viewFilePicker()
	case stateProcessing:
		return m.viewProcessing()
	case stateComplete:
		return m.viewComplete()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("🍽  Guest List - Dietary Report"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render("Select a CSV or XLSX guest list"))
	s.WriteString("\n\n")
	s.WriteString(m.filepicker.View())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press q to quit"))

	return s.String()
}

func (m Model) viewProcessing() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("🍽  Processing..."))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("Building report for %s...", filepath.Base(m.selectedFile)))
	s.WriteString("\n\n")
	s.WriteString(m.progress.View())

	return BoxStyle.Render(s.String())
}

func (m Model) viewComplete() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("✓ Report Complete"))
	s.WriteString("\n\n")

	// Truncate paths if they're too long
	maxPathLen := m.width - 20
	if maxPathLen < 30 {
		maxPathLen = 30
	}

	s.WriteString(fmt.Sprintf("Input: %s\n\n", truncatePath(m.result.InputFile, maxPathLen)))
	s.WriteString(fmt.Sprintf("Attendees with a guest:            %d\n", m.result.GuestBearers))
	s.WriteString(fmt.Sprintf("Guests with a dietary restriction: %d\n", m.result.DietaryGuests))
	s.WriteString(SuccessStyle.Render(fmt.Sprintf("Dietary entries:                   %d", len(m.result.Dietary))))
	s.WriteString("\n\n")

	if len(m.result.Dietary) > 0 {
		s.WriteString(previewTable(m.result.Dietary, PreviewRows))
		s.WriteString("\n")
		if more := len(m.result.Dietary) - PreviewRows; more > 0 {
			s.WriteString(SubtitleStyle.Render(fmt.Sprintf("... and %d more", more)))
			s.WriteString("\n")
		}
	}

	for _, path := range m.saved {
		s.WriteString(SuccessStyle.Render("Saved: " + truncatePath(path, maxPathLen)))
		s.WriteString("\n")
	}

	s.WriteString(HelpStyle.Render("s: save xlsx • c: save csv • m: save markdown • q: quit"))

	return BoxStyle.Render(s.String())
}

func previewTable(entries []types.DietaryEntry, limit int) string {
	if len(entries) > limit {
		entries = entries[:limit]
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, e.Strings())
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(TableBorderStyle).
		Headers(types.EntryColumns...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		}).
		String()
}

func truncatePath(path string, maxLen int) string {
	if len(path) > maxLen {
		return "..." + path[len(path)-maxLen+3:]
	}
	return path
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render("✗ Error"))
	s.WriteString("\n\n")
	s.WriteString(m.err.Error())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press q, enter or esc to exit"))

	return BoxStyle.Render(s.String())
}
