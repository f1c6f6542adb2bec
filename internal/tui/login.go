// ABOUTME: Interactive TUI wizard for connecting a homefeed account.
// ABOUTME: 2-step bubbletea model collecting the server URL and bearer token.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Step represents the current wizard step.
type Step int

const (
	StepServerURL Step = iota
	StepToken
	StepValidating
	StepDone
	StepFailed
)

// validationResultMsg carries the result of an async validation attempt.
type validationResultMsg struct {
	username string
	err      error
}

// ValidateFn is the function signature for token validation. It returns the
// username the backend associates with the token.
type ValidateFn func(ctx context.Context, apiURL, token string) (string, error)

// cancelHolder shares a cancel function across bubbletea model copies.
// This MUST be stored as a pointer field on LoginModel so that value-receiver
// methods (required by tea.Model) can store the cancel func and have it
// visible to all copies of the model.
type cancelHolder struct {
	cancel context.CancelFunc
}

// LoginModel is the bubbletea model for the login wizard.
type LoginModel struct {
	step          Step
	inputs        [2]textinput.Model
	spinner       spinner.Model
	validateFn    ValidateFn
	cancelCtx     *cancelHolder
	username      string
	validationErr error
	quitting      bool
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewLoginModel creates a new login wizard model, pre-filling with existing
// config values.
func NewLoginModel(apiURL, token string) LoginModel {
	urlInput := textinput.New()
	urlInput.Placeholder = "https://your-server.example.com"
	urlInput.Focus()
	urlInput.Width = 50
	if apiURL != "" {
		urlInput.SetValue(apiURL)
	}

	tokenInput := textinput.New()
	tokenInput.Placeholder = "your-bearer-token"
	tokenInput.EchoMode = textinput.EchoPassword
	tokenInput.Width = 50
	if token != "" {
		tokenInput.SetValue(token)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	return LoginModel{
		step:       StepServerURL,
		inputs:     [2]textinput.Model{urlInput, tokenInput},
		spinner:    s,
		validateFn: ValidateToken,
		cancelCtx:  &cancelHolder{},
	}
}

// Init implements tea.Model.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			if m.cancelCtx.cancel != nil {
				m.cancelCtx.cancel()
			}
			return m, tea.Quit
		}

		switch m.step {
		case StepServerURL, StepToken:
			return m.updateInput(msg)
		case StepFailed:
			return m.updateFailed(msg)
		}

	case validationResultMsg:
		m.cancelCtx.cancel = nil
		if msg.err == nil {
			m.username = msg.username
			m.step = StepDone
			return m, tea.Quit
		}
		m.validationErr = msg.err
		m.step = StepFailed
		return m, nil

	case spinner.TickMsg:
		if m.step == StepValidating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m LoginModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		idx := int(m.step)

		// Normalize trailing slashes on the server URL
		if m.step == StepServerURL {
			m.inputs[0].SetValue(strings.TrimRight(m.inputs[0].Value(), "/"))
		}

		// Don't advance on empty URL or token
		if m.inputs[idx].Value() == "" {
			return m, nil
		}

		m.inputs[idx].Blur()

		switch m.step {
		case StepServerURL:
			m.step = StepToken
			m.inputs[1].Focus()
			return m, textinput.Blink
		case StepToken:
			m.step = StepValidating
			return m, tea.Batch(m.startValidation(), m.spinner.Tick)
		}
	}

	// Forward to the active input
	idx := int(m.step)
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

func (m LoginModel) updateFailed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyRunes {
		switch msg.Runes[0] {
		case 'r':
			m.step = StepValidating
			m.validationErr = nil
			return m, tea.Batch(m.startValidation(), m.spinner.Tick)
		case 'e':
			m.step = StepServerURL
			m.validationErr = nil
			m.inputs[0].Focus()
			return m, textinput.Blink
		case 'q':
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m LoginModel) startValidation() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelCtx.cancel = cancel
	apiURL := m.inputs[0].Value()
	token := m.inputs[1].Value()
	fn := m.validateFn
	return func() tea.Msg {
		username, err := fn(ctx, apiURL, token)
		return validationResultMsg{username: username, err: err}
	}
}

// View implements tea.Model.
func (m LoginModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   HOMEFEED"))
	b.WriteString(titleStyle.Render(" - Login"))
	b.WriteString("\n\n")
	b.WriteString("Connect your homefeed account.\n\n")

	switch m.step {
	case StepServerURL:
		b.WriteString(stepStyle.Render("Step 1 of 2: Server URL"))
		b.WriteString("\n")
		b.WriteString(m.inputs[0].View())
		b.WriteString("\n")

	case StepToken:
		b.WriteString(fmt.Sprintf("  Server: %s\n\n", m.inputs[0].Value()))
		b.WriteString(stepStyle.Render("Step 2 of 2: Bearer Token"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("(issued by the login page of your server)"))
		b.WriteString("\n")
		b.WriteString(m.inputs[1].View())
		b.WriteString("\n")

	case StepValidating:
		b.WriteString(fmt.Sprintf("  Server: %s\n", m.inputs[0].Value()))
		b.WriteString(fmt.Sprintf("  Token:  %s\n\n", strings.Repeat("*", len(m.inputs[1].Value()))))
		b.WriteString(m.spinner.View())
		b.WriteString(" Validating token...")
		b.WriteString("\n")

	case StepDone:
		b.WriteString(successStyle.Render(fmt.Sprintf("✓ Logged in as %s", m.username)))
		b.WriteString("\n")

	case StepFailed:
		errMsg := "unknown error"
		if m.validationErr != nil {
			errMsg = m.validationErr.Error()
		}
		b.WriteString(errorStyle.Render(fmt.Sprintf("✗ Validation failed: %s", errMsg)))
		b.WriteString("\n\n")
		b.WriteString(promptStyle.Render("[r]etry  [e]dit  [q]uit"))
		b.WriteString("\n")
	}

	return b.String()
}

// Result returns the entered values and the validated username.
func (m LoginModel) Result() (apiURL, token, username string) {
	return m.inputs[0].Value(), m.inputs[1].Value(), m.username
}

// ShouldSave returns true if validation succeeded and the user did not
// cancel with Ctrl+C, Escape, or 'q'.
func (m LoginModel) ShouldSave() bool {
	return m.step == StepDone && !m.quitting
}
