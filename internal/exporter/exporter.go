// Package exporter turns one To Do task into one markdown file: a metadata
// header, an optional checklist table, and the task body.
package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yshiba/mstodo2md/internal/models"
)

const (
	// maxTitleRunes caps the filename derived from a task title.
	maxTitleRunes = 150

	// untitledName is used when a title sanitizes to nothing.
	untitledName = "untitled"

	// untitledListName is used for lists without a display name.
	untitledListName = "untitled_list"
)

var (
	titleSeparators = regexp.MustCompile(`[:/\\\s]+`)
	folderCollapsed = regexp.MustCompile(`[\s/]+`)
)

// Metadata is the exported view of a task. Raw importance, status and
// categories are deliberately dropped; importance survives only as the
// derived is_starred flag.
type Metadata struct {
	Title             string                   `json:"title" yaml:"title"`
	IsStarred         bool                     `json:"is_starred" yaml:"is_starred"`
	CreatedDateTime   string                   `json:"createdDateTime" yaml:"createdDateTime"`
	DueDateTime       *models.DateTimeTimeZone `json:"dueDateTime" yaml:"dueDateTime"`
	CompletedDateTime *models.DateTimeTimeZone `json:"completedDateTime" yaml:"completedDateTime"`
	ReminderDateTime  *models.DateTimeTimeZone `json:"reminderDateTime" yaml:"reminderDateTime"`
	Body              *models.ItemBody         `json:"body" yaml:"body"`
}

// Record is what gets written for one task. Checklist rides next to the
// metadata so the renderer can reach it, but it is never part of the
// metadata header.
type Record struct {
	Metadata  Metadata               `json:"metadata"`
	Checklist []models.ChecklistItem `json:"checklistItems"`
}

// Project reduces a raw task to its export record.
func Project(task models.Task) Record {
	return Record{
		Metadata: Metadata{
			Title:             task.Title,
			IsStarred:         strings.EqualFold(task.Importance, "high"),
			CreatedDateTime:   task.CreatedDateTime,
			DueDateTime:       task.DueDateTime,
			CompletedDateTime: task.CompletedDateTime,
			ReminderDateTime:  task.ReminderDateTime,
			Body:              task.Body,
		},
		Checklist: task.ChecklistItems,
	}
}

// SanitizeTitle derives a filename base from a task title: runs of path
// separators, colons and whitespace collapse to a single underscore, the
// ends are trimmed, an empty result becomes "untitled", and the result is
// capped at 150 runes. Applying it twice gives the same result as once.
func SanitizeTitle(title string) string {
	s := titleSeparators.ReplaceAllString(title, "_")
	s = strings.Trim(s, "_\n\r")
	if s == "" {
		return untitledName
	}
	if runes := []rune(s); len(runes) > maxTitleRunes {
		s = strings.TrimRight(string(runes[:maxTitleRunes]), "_")
	}
	return s
}

// SanitizeListFolder derives a folder name from a list display name.
// Whitespace and slash runs are deleted outright, not replaced; this is a
// looser rule than SanitizeTitle and the distinction is intentional.
func SanitizeListFolder(displayName string) string {
	if displayName == "" {
		displayName = untitledListName
	}
	return folderCollapsed.ReplaceAllString(displayName, "")
}

// WriteError reports a filesystem failure for the intended destination path.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Exporter writes task records beneath a root output folder.
type Exporter struct {
	root string
}

// New creates an Exporter rooted at the given output folder.
func New(root string) *Exporter {
	return &Exporter{root: root}
}

// Export renders the task and writes it to a fresh file under listFolder,
// returning the path written. An existing file is never overwritten: the
// filename gets _1, _2, ... suffixes until a free path is found.
func (e *Exporter) Export(task models.Task, listFolder string) (string, error) {
	content := Render(Project(task))

	dir := filepath.Join(e.root, listFolder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &WriteError{Path: dir, Err: err}
	}

	path := nextFreePath(dir, SanitizeTitle(task.Title))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", &WriteError{Path: path, Err: err}
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return "", &WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return "", &WriteError{Path: path, Err: err}
	}

	return path, nil
}

// nextFreePath returns the first <base>.md, <base>_1.md, <base>_2.md, ...
// that does not already exist in dir.
func nextFreePath(dir, base string) string {
	path := filepath.Join(dir, base+".md")
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); err != nil {
			return path
		}
		path = filepath.Join(dir, fmt.Sprintf("%s_%d.md", base, counter))
	}
}

// Render produces the full document for a record.
func Render(record Record) string {
	var doc strings.Builder
	doc.WriteString(renderMetadata(record.Metadata))
	if len(record.Checklist) > 0 {
		doc.WriteString(renderChecklist(record.Checklist))
	}
	doc.WriteString(renderBody(record))
	return doc.String()
}

// renderMetadata writes the metadata header between two delimiter lines.
// When structured serialization fails, the same fields are written in a
// plain bracketed form instead so the header is always present.
func renderMetadata(meta Metadata) string {
	var b strings.Builder
	b.WriteString("---\n")
	if out, err := yaml.Marshal(meta); err == nil {
		b.Write(out)
	} else {
		fmt.Fprintf(&b, "[%+v]\n", meta)
	}
	b.WriteString("---\n")
	return b.String()
}

// renderChecklist writes the checklist as a two-column table. Literal pipes
// in item text are escaped so they cannot break the table.
func renderChecklist(items []models.ChecklistItem) string {
	var b strings.Builder
	b.WriteString("\n| Status | Item |\n")
	b.WriteString("| --- | --- |\n")
	for _, item := range items {
		status := "to do"
		if item.IsChecked {
			status = "done"
		}
		name := strings.ReplaceAll(item.DisplayName, "|", `\|`)
		fmt.Fprintf(&b, "| %s | %s |\n", status, name)
	}
	return b.String()
}

// renderBody appends the task body verbatim, or a fenced serialization of
// the whole record when there is no readable body.
func renderBody(record Record) string {
	if body := record.Metadata.Body; body != nil && strings.TrimSpace(body.Content) != "" {
		content := body.Content
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		return "\n" + content
	}

	out, _ := json.MarshalIndent(record, "", "  ")
	return "\n```json\n" + string(out) + "\n```\n"
}
