package prompt

import (
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/ghv/internal/ui/styles"
)

// TextInputResult holds the result of a text input prompt.
type TextInputResult struct {
	Value     string
	Cancelled bool
}

// TextInputOptions configures TextInput.
type TextInputOptions struct {
	Placeholder string
	CharLimit   int
	// Validate runs on enter; a non-nil error keeps the prompt open and is
	// shown below the input.
	Validate func(string) error
}

type textInputModel struct {
	textInput textinput.Model
	prompt    string
	validate  func(string) error
	errMsg    string
	done      bool
	cancelled bool
}

func newTextInputModel(prompt string, opts TextInputOptions) textInputModel {
	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.Focus()
	ti.CharLimit = opts.CharLimit
	ti.SetWidth(40)

	return textInputModel{
		textInput: ti,
		prompt:    prompt,
		validate:  opts.Validate,
	}
}

func (m textInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "enter":
			if m.validate != nil {
				if err := m.validate(strings.TrimSpace(m.textInput.Value())); err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
			}
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}
	m.errMsg = ""
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m textInputModel) View() tea.View {
	return tea.NewView(m.render())
}

func (m textInputModel) render() string {
	if m.done {
		return ""
	}
	view := fmt.Sprintf("%s\n%s", m.prompt, m.textInput.View())
	if m.errMsg != "" {
		view += "\n" + styles.ErrorStyle.Render(m.errMsg)
	}
	return view
}

// TextInput shows a text input prompt on stderr and returns the trimmed input.
func TextInput(prompt string, opts TextInputOptions) (TextInputResult, error) {
	p := tea.NewProgram(newTextInputModel(prompt, opts), tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return TextInputResult{}, err
	}
	m := finalModel.(textInputModel)
	return TextInputResult{
		Value:     strings.TrimSpace(m.textInput.Value()),
		Cancelled: m.cancelled,
	}, nil
}
