package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/daybook/internal/model"
	"github.com/dori/daybook/internal/schedule"
)

// Requests sent from views to the root model.
// (Defined here to avoid circular import with ui package)

// EditTaskRequest opens the manual form prefilled with a task
type EditTaskRequest struct {
	Task model.Task
}

// CloseRequest returns from a form to the task browser
type CloseRequest struct {
	Status string
}

// UploadCommittedMsg reports the tasks an upload created and its schedule
type UploadCommittedMsg struct {
	Schedule schedule.Schedule
	Count    int
}

func closeWith(status string) tea.Cmd {
	return func() tea.Msg { return CloseRequest{Status: status} }
}
