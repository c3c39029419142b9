package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskwise/taskwise-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// Every read and mutation is scoped to an owning user: implementations must
// conjoin the caller's identity with each predicate so that a task is never
// visible to, or mutable by, a non-owning caller. Methods taking both an id
// and a userID return ErrTaskNotFound when no task matches the combined
// predicate, without distinguishing "absent" from "not owned".
type TaskStore interface {
	// Create saves a new task to the store.
	// It handles domain validation internally.
	// Returns validation errors from the domain Task if data is invalid.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetForUser retrieves the task with the given ID if it is owned by userID.
	// Returns ErrTaskNotFound otherwise.
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)

	// FindByFilter retrieves all tasks owned by userID matching every
	// predicate set in the filter, ordered ascending by due date with
	// undated tasks last. An empty filter returns all owned tasks.
	// Returns an empty slice if nothing matches.
	FindByFilter(ctx context.Context, userID uuid.UUID, filter domain.TaskFilter) ([]*domain.Task, error)

	// FindByCategory retrieves all tasks owned by userID with the exact
	// category. Returns an empty slice if nothing matches.
	FindByCategory(ctx context.Context, userID uuid.UUID, category string) ([]*domain.Task, error)

	// Search retrieves all tasks owned by userID whose title or description
	// contains the query as a case-insensitive substring. The query is
	// treated as a literal: pattern metacharacters are escaped before
	// matching. Returns an empty slice if nothing matches.
	Search(ctx context.Context, userID uuid.UUID, query string) ([]*domain.Task, error)

	// Update saves changes to an existing task using the task's ID and
	// UserID as the combined predicate. Last write wins for concurrent
	// updates to the same task. Returns ErrTaskNotFound if no owned task
	// matches. Returns validation errors if the task data is invalid.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task with the given ID if it is owned by userID.
	// Returns ErrTaskNotFound otherwise.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// SetStatus atomically updates the status of the task matching id AND
	// userID in a single conditional store operation, and returns the
	// post-update record. Ownership check and mutation happen as one
	// round trip. Returns ErrTaskNotFound if no owned task matches.
	SetStatus(ctx context.Context, id, userID uuid.UUID, status domain.TaskStatus) (*domain.Task, error)
}
