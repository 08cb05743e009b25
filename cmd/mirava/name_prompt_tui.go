package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mirava/internal/ui"
)

const untitledCourse = "Untitled Course"

// promptInput is where the non-interactive prompt reads its line. Tests
// replace it; the TUI is only used when it is still os.Stdin.
var promptInput io.Reader = os.Stdin

// namePromptModel is the bubbletea model for the course name prompt.
type namePromptModel struct {
	input     textinput.Model
	value     string
	submitted bool
}

func newNamePromptModel(placeholder string) namePromptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.PromptStyle = tc.Cyan
	ti.Cursor.Style = tc.Cyan
	ti.PlaceholderStyle = tc.Faint
	ti.CharLimit = 255
	ti.Width = 50
	ti.Focus()
	return namePromptModel{input: ti}
}

func (m namePromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m namePromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.value = m.input.Value()
			m.submitted = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m namePromptModel) View() string {
	if m.submitted {
		return ""
	}
	return fmt.Sprintf("\n  %s\n\n  %s\n\n  %s\n",
		tc.Title.Render("Course name"),
		m.input.View(),
		tc.Faint.Render("enter to accept • esc to use the directory name"))
}

// promptCourseName asks the operator for a course name. Blank input (or a
// cancelled prompt) falls back to defaultCourseName(root).
func promptCourseName(root string) string {
	fallback := defaultCourseName(root)

	var input string
	if promptInput == os.Stdin && ui.IsTTY() && ui.StdinIsTTY() {
		final, err := tea.NewProgram(newNamePromptModel(fallback)).Run()
		if err == nil {
			if m, ok := final.(namePromptModel); ok && m.submitted {
				input = m.value
			}
		}
	} else {
		fmt.Fprint(ui.Out, "Enter the course name (leave blank for current directory name): ")
		input = readPromptLine(promptInput)
	}

	if name := strings.TrimSpace(input); name != "" {
		return name
	}
	return fallback
}

func readPromptLine(r io.Reader) string {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimRight(line, "\r\n")
}

// defaultCourseName is the base name of root, or "Untitled Course" when root
// has no usable base name.
func defaultCourseName(root string) string {
	base := filepath.Base(root)
	if root == "" || base == "." || base == string(filepath.Separator) || base == "" {
		return untitledCourse
	}
	return base
}
