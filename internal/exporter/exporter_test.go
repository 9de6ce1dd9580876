package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yshiba/mstodo2md/internal/models"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{
			name:     "Plain title",
			title:    "Buy milk",
			expected: "Buy_milk",
		},
		{
			name:     "Separators collapse to one underscore",
			title:    "a: / \\ b",
			expected: "a_b",
		},
		{
			name:     "Leading and trailing separators trimmed",
			title:    "  /weekly report:  \n",
			expected: "weekly_report",
		},
		{
			name:     "Empty title",
			title:    "",
			expected: "untitled",
		},
		{
			name:     "Whitespace-only title",
			title:    " \t\n ",
			expected: "untitled",
		},
		{
			name:     "Long title truncated",
			title:    strings.Repeat("a", 200),
			expected: strings.Repeat("a", 150),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeTitle(tt.title)
			if got != tt.expected {
				t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.title, got, tt.expected)
			}
			if again := SanitizeTitle(got); again != got {
				t.Errorf("SanitizeTitle is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestSanitizeListFolder(t *testing.T) {
	tests := []struct {
		name        string
		displayName string
		expected    string
	}{
		{
			name:        "Spaces deleted",
			displayName: "My Tasks",
			expected:    "MyTasks",
		},
		{
			name:        "Slashes deleted",
			displayName: "work/home list",
			expected:    "workhomelist",
		},
		{
			name:        "Colons kept",
			displayName: "a:b",
			expected:    "a:b",
		},
		{
			name:        "Missing display name",
			displayName: "",
			expected:    "untitled_list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeListFolder(tt.displayName); got != tt.expected {
				t.Errorf("SanitizeListFolder(%q) = %q, want %q", tt.displayName, got, tt.expected)
			}
		})
	}
}

func TestProject(t *testing.T) {
	tests := []struct {
		name        string
		importance  string
		wantStarred bool
	}{
		{
			name:        "High importance",
			importance:  "High",
			wantStarred: true,
		},
		{
			name:        "Lowercase high",
			importance:  "high",
			wantStarred: true,
		},
		{
			name:        "Low importance",
			importance:  "low",
			wantStarred: false,
		},
		{
			name:        "Missing importance",
			importance:  "",
			wantStarred: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := Project(models.Task{
				Title:      "Test",
				Importance: tt.importance,
				Status:     "completed",
				Categories: []string{"red"},
			})
			if record.Metadata.IsStarred != tt.wantStarred {
				t.Errorf("IsStarred = %v, want %v", record.Metadata.IsStarred, tt.wantStarred)
			}
		})
	}
}

func TestRenderMetadataDropsRawFields(t *testing.T) {
	task := models.Task{
		Title:      "Projection",
		Importance: "high",
		Status:     "notStarted",
		Categories: []string{"blue category"},
	}

	doc := Render(Project(task))

	if !strings.HasPrefix(doc, "---\n") {
		t.Errorf("Expected document to start with the metadata delimiter, got %q", doc[:10])
	}
	if !strings.Contains(doc, "is_starred: true") {
		t.Error("Expected is_starred: true in the metadata block")
	}
	for _, dropped := range []string{"status", "categories", "importance"} {
		if strings.Contains(doc, dropped) {
			t.Errorf("Raw field %q leaked into the document:\n%s", dropped, doc)
		}
	}
}

func TestRenderChecklist(t *testing.T) {
	task := models.Task{
		Title: "With checklist",
		ChecklistItems: []models.ChecklistItem{
			{DisplayName: "A", IsChecked: true},
			{DisplayName: "B|C", IsChecked: false},
		},
		Body: &models.ItemBody{Content: "notes", ContentType: "text"},
	}

	doc := Render(Project(task))

	if !strings.Contains(doc, "| Status | Item |") {
		t.Error("Expected checklist table header")
	}
	if !strings.Contains(doc, "| done | A |") {
		t.Error("Expected checked item rendered as done")
	}
	if !strings.Contains(doc, `| to do | B\|C |`) {
		t.Error("Expected unchecked item with escaped pipe")
	}

	// The table sits between the metadata block and the body text.
	if strings.Index(doc, "| Status | Item |") > strings.LastIndex(doc, "notes") {
		t.Error("Expected the checklist table before the body")
	}
}

func TestRenderNoChecklist(t *testing.T) {
	doc := Render(Project(models.Task{Title: "Bare"}))
	if strings.Contains(doc, "| Status | Item |") {
		t.Error("Expected no checklist table for a task without checklist items")
	}
}

func TestRenderBody(t *testing.T) {
	t.Run("Body content written verbatim", func(t *testing.T) {
		task := models.Task{
			Title: "With body",
			Body:  &models.ItemBody{Content: "line one\nline two", ContentType: "text"},
		}
		doc := Render(Project(task))
		if !strings.Contains(doc, "line one\nline two") {
			t.Errorf("Expected body content in document:\n%s", doc)
		}
		if !strings.HasSuffix(doc, "\n") {
			t.Error("Expected document to end with a line break")
		}
		if strings.Contains(doc, "```json") {
			t.Error("Did not expect the fallback fence when a body exists")
		}
	})

	t.Run("Empty body falls back to fenced record", func(t *testing.T) {
		doc := Render(Project(models.Task{Title: "No body"}))
		if !strings.Contains(doc, "```json") {
			t.Errorf("Expected fenced fallback for empty body:\n%s", doc)
		}
		if !strings.Contains(doc, `"is_starred"`) {
			t.Error("Expected the fallback to carry the full projected record")
		}
	})
}

func TestExportCollisionAvoidance(t *testing.T) {
	dir := t.TempDir()
	exp := New(dir)
	task := models.Task{Title: "Same Title", Body: &models.ItemBody{Content: "x"}}

	var paths []string
	for i := 0; i < 3; i++ {
		path, err := exp.Export(task, "MyList")
		if err != nil {
			t.Fatalf("Export() error = %v", err)
		}
		paths = append(paths, filepath.Base(path))
	}

	want := []string{"Same_Title.md", "Same_Title_1.md", "Same_Title_2.md"}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("Export %d wrote %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestExportRespectsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	listDir := filepath.Join(dir, "MyList")
	if err := os.MkdirAll(listDir, 0755); err != nil {
		t.Fatalf("Failed to create list dir: %v", err)
	}
	occupied := filepath.Join(listDir, "Held.md")
	if err := os.WriteFile(occupied, []byte("keep me"), 0644); err != nil {
		t.Fatalf("Failed to create existing file: %v", err)
	}

	exp := New(dir)
	path, err := exp.Export(models.Task{Title: "Held"}, "MyList")
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if filepath.Base(path) != "Held_1.md" {
		t.Errorf("Export wrote %q, want Held_1.md", filepath.Base(path))
	}
	data, err := os.ReadFile(occupied)
	if err != nil || string(data) != "keep me" {
		t.Errorf("Pre-existing file was touched: %q, %v", data, err)
	}
}
