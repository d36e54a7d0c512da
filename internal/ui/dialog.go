package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"subx/internal/api"
)

// DialogModel shows a spinner while a request is in flight, then a
// success or failure box that stays up until the user dismisses it.
type DialogModel struct {
	Spinner   spinner.Model
	Title     string
	IsLoading bool
	Result    api.Result
	Width     int
	Dismissed bool

	// Notifications counts results received, it should never exceed one
	Notifications int
}

// NewDialogModel creates a dialog waiting for a result
func NewDialogModel(title string) DialogModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return DialogModel{
		Spinner:   s,
		Title:     title,
		IsLoading: true,
	}
}

// Init initializes the model
func (m DialogModel) Init() tea.Cmd {
	return m.Spinner.Tick
}

// Update handles UI updates
func (m DialogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.Dismissed = true
			return m, tea.Quit
		case "enter", "esc", "q", " ":
			// The box can only be dismissed once there is something to acknowledge
			if !m.IsLoading {
				m.Dismissed = true
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		return m, nil

	case resultMsg:
		m.Notifications++
		m.IsLoading = false
		m.Result = api.Result(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.IsLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the UI
func (m DialogModel) View() string {
	if m.IsLoading {
		return lipgloss.NewStyle().
			Padding(1, 2).
			Render(fmt.Sprintf("%s %s", m.Spinner.View(), m.Title))
	}

	borderColor := lipgloss.Color("10")
	heading := "Success"
	if !m.Result.OK() {
		borderColor = lipgloss.Color("196")
		heading = "Failure"
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2)
	if m.Width > 8 {
		box = box.MaxWidth(m.Width - 2)
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(borderColor).
		Render(heading)

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render("Press enter to close")

	return box.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		m.Result.Message(),
		"",
		help,
	))
}

// Messages
type resultMsg api.Result

// Dialog is a Notifier that renders the outcome in a blocking terminal dialog.
// Run must be called for Notify to be delivered.
type Dialog struct {
	program *tea.Program
	final   DialogModel
}

// NewDialog creates a dialog titled title
func NewDialog(title string, opts ...tea.ProgramOption) *Dialog {
	return &Dialog{
		program: tea.NewProgram(NewDialogModel(title), opts...),
	}
}

// Notify hands the result to the running dialog
func (d *Dialog) Notify(result api.Result) {
	d.program.Send(resultMsg(result))
}

// Run blocks until the user dismisses the dialog
func (d *Dialog) Run() error {
	final, err := d.program.Run()
	if m, ok := final.(DialogModel); ok {
		d.final = m
	}
	return err
}

// Final returns the model as it was when the dialog closed
func (d *Dialog) Final() DialogModel {
	return d.final
}
