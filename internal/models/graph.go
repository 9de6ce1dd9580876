package models

// TaskList represents a To Do list as returned by /me/todo/lists.
type TaskList struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	WellknownListName string `json:"wellknownListName"`
}

// Task represents a To Do task as returned by /me/todo/lists/{id}/tasks.
type Task struct {
	ID                string            `json:"id"`
	Title             string            `json:"title"`
	Importance        string            `json:"importance"`
	Status            string            `json:"status"`
	Categories        []string          `json:"categories"`
	CreatedDateTime   string            `json:"createdDateTime"`
	DueDateTime       *DateTimeTimeZone `json:"dueDateTime"`
	CompletedDateTime *DateTimeTimeZone `json:"completedDateTime"`
	ReminderDateTime  *DateTimeTimeZone `json:"reminderDateTime"`
	Body              *ItemBody         `json:"body"`
	ChecklistItems    []ChecklistItem   `json:"checklistItems"`
}

// ItemBody is the rich body of a task.
type ItemBody struct {
	Content     string `json:"content" yaml:"content"`
	ContentType string `json:"contentType" yaml:"contentType"`
}

// DateTimeTimeZone is Graph's timestamp-with-zone pair.
type DateTimeTimeZone struct {
	DateTime string `json:"dateTime" yaml:"dateTime"`
	TimeZone string `json:"timeZone" yaml:"timeZone"`
}

// ChecklistItem is a single checklist entry on a task.
type ChecklistItem struct {
	DisplayName string `json:"displayName" yaml:"displayName"`
	IsChecked   bool   `json:"isChecked" yaml:"isChecked"`
}
