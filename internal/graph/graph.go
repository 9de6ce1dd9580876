package graph

import (
	"context"

	"github.com/yshiba/mstodo2md/internal/models"
)

//go:generate mockgen -source=graph.go -destination=mock_graph/mock_graph.go -package=mock_graph

// Service is the read-only view of a To Do account used by the migrator.
type Service interface {
	// Lists returns every task list in the account, in server order.
	Lists(ctx context.Context) ([]models.TaskList, error)

	// Tasks returns every task of the given list, in server order.
	Tasks(ctx context.Context, listID string) ([]models.Task, error)

	// Validate checks that the configured credential is accepted.
	Validate(ctx context.Context) error
}
