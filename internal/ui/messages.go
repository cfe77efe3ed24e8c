package ui

// View represents the current active screen
type View int

const (
	ViewList View = iota
	ViewBoard
	ViewForm
	ViewChecklist
	ViewUpload
	ViewChooser
)

// String returns the display name for a view
func (v View) String() string {
	switch v {
	case ViewList:
		return "List"
	case ViewBoard:
		return "Board"
	case ViewForm:
		return "Task"
	case ViewChecklist:
		return "Checklist"
	case ViewUpload:
		return "Upload"
	case ViewChooser:
		return "New"
	default:
		return "Unknown"
	}
}

// browsing returns true for the views that show the task tabs
func (v View) browsing() bool {
	return v == ViewList || v == ViewBoard
}

// Messages for inter-component communication

// bannerTickMsg advances the banner for timer generation gen
type bannerTickMsg struct {
	gen uint64
}

// toastTickMsg re-renders the footer so expired toasts disappear
type toastTickMsg struct{}

// remindedMsg reports the startup desktop reminders were sent
type remindedMsg struct{}
