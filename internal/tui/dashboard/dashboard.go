// ABOUTME: Interactive dashboard showing the signed-in user's overview
// ABOUTME: Displays upcoming appointments and unread message/reminder counts

package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/GramosTV/zelqora-client/internal/models"
	"github.com/GramosTV/zelqora-client/internal/tui/styles"
)

// Data holds everything the dashboard renders.
type Data struct {
	User            *models.User
	Appointments    []models.Appointment
	UnreadMessages  []models.Message
	UnreadReminders int
}

// Loader fetches fresh dashboard data from the backend.
type Loader func(ctx context.Context) (*Data, error)

type loadedMsg struct {
	data *Data
}

type errMsg struct {
	err error
}

// Model is the bubbletea model for the dashboard view.
type Model struct {
	load    Loader
	spinner spinner.Model
	data    *Data
	err     error
	loading bool
	width   int
}

// New creates a dashboard model that loads its data via load.
func New(load Loader) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.StatusOK
	return Model{
		load:    load,
		spinner: sp,
		loading: true,
	}
}

// Init starts the spinner and kicks off the initial load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m Model) fetch() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		data, err := m.load(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return loadedMsg{data: data}
	}
}

// Update handles key presses and load results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if !m.loading {
				m.loading = true
				m.err = nil
				return m, tea.Batch(m.spinner.Tick, m.fetch())
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case loadedMsg:
		m.loading = false
		m.data = msg.data
	case errMsg:
		m.loading = false
		m.err = msg.err
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Zelqora Dashboard"))
	sb.WriteString("\n")

	if m.loading {
		sb.WriteString(fmt.Sprintf("%s Loading your overview...\n", m.spinner.View()))
		sb.WriteString(m.helpLine())
		return sb.String()
	}

	if m.err != nil {
		sb.WriteString(styles.StatusCritical.Render("Error: " + m.err.Error()))
		sb.WriteString("\n")
		sb.WriteString(m.helpLine())
		return sb.String()
	}

	if m.data == nil {
		sb.WriteString(styles.Subtitle.Render("No data available."))
		sb.WriteString("\n")
		sb.WriteString(m.helpLine())
		return sb.String()
	}

	if m.data.User != nil {
		sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("Signed in as %s (%s)", m.data.User.FullName(), m.data.User.Role)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Unread messages:  %s\n", styles.Badge(len(m.data.UnreadMessages))))
	sb.WriteString(fmt.Sprintf("Unread reminders: %s\n", styles.Badge(m.data.UnreadReminders)))
	sb.WriteString("\n")

	sb.WriteString(styles.ValueStyle.Render("Upcoming appointments"))
	sb.WriteString("\n")
	if len(m.data.Appointments) == 0 {
		sb.WriteString(styles.Subtitle.Render("  No upcoming appointments."))
		sb.WriteString("\n")
	}
	for i, appt := range m.data.Appointments {
		if i >= 5 {
			sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("  ... and %d more", len(m.data.Appointments)-i)))
			sb.WriteString("\n")
			break
		}
		sb.WriteString(fmt.Sprintf("  %s  %s %s\n",
			appt.StartTime.Local().Format("Mon Jan 2 3:04 PM"),
			appt.Title,
			statusStyle(appt.Status).Render("["+string(appt.Status)+"]")))
	}

	sb.WriteString(m.helpLine())
	return sb.String()
}

func (m Model) helpLine() string {
	return styles.Help.Render(
		styles.KeyStyle.Render("r") + " refresh  " +
			styles.KeyStyle.Render("q") + " quit")
}

func statusStyle(status models.AppointmentStatus) interface{ Render(...string) string } {
	switch status {
	case models.StatusConfirmed, models.StatusCompleted:
		return styles.StatusOK
	case models.StatusCancelled:
		return styles.StatusCritical
	default:
		return styles.StatusWarning
	}
}
