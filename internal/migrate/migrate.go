// Package migrate drives the fetch-then-export pipeline: every list is
// fetched and fully exported before the next one begins.
package migrate

import (
	"context"
	"fmt"

	"github.com/yshiba/mstodo2md/internal/exporter"
	"github.com/yshiba/mstodo2md/internal/graph"
	"github.com/yshiba/mstodo2md/internal/logger"
)

// completedStatus is the one status value the skip filter matches.
const completedStatus = "completed"

// Options configure a migration run.
type Options struct {
	// SkipCompleted leaves completed tasks out of the export.
	SkipCompleted bool
}

// Summary reports what a run accomplished.
type Summary struct {
	Lists    int
	Migrated int
}

// Migrator exports every task of every list through an Exporter.
type Migrator struct {
	service  graph.Service
	exporter *exporter.Exporter
	opts     Options
}

// New creates a Migrator.
func New(service graph.Service, exp *exporter.Exporter, opts Options) *Migrator {
	return &Migrator{service: service, exporter: exp, opts: opts}
}

// Run fetches the list collection and exports each list's tasks. A failure
// fetching the list collection is fatal and returned; a failure fetching or
// exporting a single list or task is logged and the run continues.
func (m *Migrator) Run(ctx context.Context) (Summary, error) {
	logger.Info("Fetching source lists")
	lists, err := m.service.Lists(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to fetch source lists: %w", err)
	}

	summary := Summary{Lists: len(lists)}
	for _, list := range lists {
		logger.Info("Processing list", map[string]interface{}{
			"list":      list.DisplayName,
			"id":        list.ID,
			"wellknown": list.WellknownListName,
		})

		tasks, err := m.service.Tasks(ctx, list.ID)
		if err != nil {
			logger.Error("Failed to fetch tasks", err, map[string]interface{}{
				"list": list.DisplayName,
			})
			continue
		}
		logger.Info(fmt.Sprintf("Found %d tasks", len(tasks)), map[string]interface{}{
			"list": list.DisplayName,
		})

		folder := exporter.SanitizeListFolder(list.DisplayName)
		migrated := 0
		for _, task := range tasks {
			if m.opts.SkipCompleted && task.Status == completedStatus {
				continue
			}

			path, err := m.exporter.Export(task, folder)
			if err != nil {
				logger.Error("Failed to export task", err, map[string]interface{}{
					"list": list.DisplayName,
					"task": task.Title,
				})
				continue
			}
			migrated++
			logger.Info("Wrote task", map[string]interface{}{
				"task": task.Title,
				"path": path,
			})
		}

		logger.Info("Migrated list", map[string]interface{}{
			"list":     list.DisplayName,
			"migrated": migrated,
		})
		summary.Migrated += migrated
	}

	return summary, nil
}
