package ui

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// newTestProgram creates a tea.Program configured for test environments without a TTY.
func newTestProgram(m tea.Model) *tea.Program {
	return tea.NewProgram(m,
		tea.WithInput(strings.NewReader("")),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
	)
}

// waitForBar waits for the bar's program to exit, failing the test if it exceeds timeout.
func waitForBar(t *testing.T, pb *interactiveProgressBar) {
	t.Helper()
	select {
	case <-pb.done:
	case <-time.After(2 * time.Second):
		t.Error("tea.Program did not exit within 2 second timeout")
	}
}

func testTheme() *Theme {
	return NewTheme(ThemeConfig{Mode: "dark"})
}

func TestInteractiveProgressBarIncrement(t *testing.T) {
	pb := startProgressBar(newTestProgram(newProgressModel(testTheme(), "Writing", 10)))

	pb.Increment(3)
	pb.Increment(2)
	pb.Done()

	waitForBar(t, pb)
}

func TestInteractiveProgressBarSetTitle(t *testing.T) {
	pb := startProgressBar(newTestProgram(newProgressModel(testTheme(), "src/app.js", 5)))

	pb.SetTitle("src/config/db.js")
	pb.Done()

	waitForBar(t, pb)
}

func TestInteractiveProgressBarDoneIdempotent(t *testing.T) {
	pb := startProgressBar(newTestProgram(newProgressModel(testTheme(), "Writing", 10)))

	pb.Done()
	pb.Done()
	pb.Done()

	waitForBar(t, pb)
}

func TestProgressImplStartInteractivePath(t *testing.T) {
	theme := NewTheme(ThemeConfig{NoColor: false, Mode: "dark"})
	if theme.NoColor {
		t.Skip("NO_COLOR is set in the environment")
	}
	hm := NewHeadlessManager()
	hm.ForceHeadless(false)

	var buf bytes.Buffer
	pb := NewProgress(theme, hm, &buf).Start("Writing project", 5)
	if _, ok := pb.(*interactiveProgressBar); !ok {
		t.Fatalf("Start() = %T, want *interactiveProgressBar", pb)
	}

	pb.Increment(2)
	pb.SetTitle("README.md")
	pb.Increment(3)
	pb.Done()
	pb.Done()
}

func TestProgressModelUpdate(t *testing.T) {
	t.Parallel()

	m := newProgressModel(testTheme(), "Writing", 4)

	updated, _ := m.Update(progressIncrMsg(3))
	m = updated.(progressModel)
	if m.current != 3 {
		t.Errorf("current = %d, want 3", m.current)
	}

	updated, _ = m.Update(progressIncrMsg(5))
	m = updated.(progressModel)
	if m.current != 4 {
		t.Errorf("current = %d, want clamped 4", m.current)
	}

	updated, _ = m.Update(progressTitleMsg("package.json"))
	m = updated.(progressModel)
	if m.title != "package.json" {
		t.Errorf("title = %q", m.title)
	}
	if !strings.Contains(m.View(), "[4/4] package.json") {
		t.Errorf("View() = %q", m.View())
	}

	updated, cmd := m.Update(progressDoneMsg{})
	m = updated.(progressModel)
	if !m.done || cmd == nil {
		t.Error("done message should finish the model and quit")
	}
	if m.View() != "" {
		t.Errorf("View() after done = %q, want empty", m.View())
	}
}

func TestProgressModelCtrlC(t *testing.T) {
	t.Parallel()

	m := newProgressModel(testTheme(), "Writing", 4)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !updated.(progressModel).done || cmd == nil {
		t.Error("ctrl+c should stop the bar")
	}
}

func TestProgressModelFrameMsg(t *testing.T) {
	t.Parallel()

	m := newProgressModel(testTheme(), "Color frame", 10)
	updated, _ := m.Update(progress.FrameMsg{})
	if updated.(progressModel).done {
		t.Error("FrameMsg should not mark the progress bar as done")
	}
}

func TestProgressModelZeroTotal(t *testing.T) {
	t.Parallel()

	m := newProgressModel(testTheme(), "Nothing", 0)
	if m.percent() != 0 {
		t.Errorf("percent() = %v, want 0", m.percent())
	}
}
