// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/ and web/.
package ports

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/artpar/actionkit/domain/task"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}

// Hasher hashes and verifies secrets.
type Hasher interface {
	Hash(plaintext string) ([]byte, error)
	Compare(hash []byte, plaintext string) bool
}

// -----------------------------------------------------------------------------
// Request-Handling Ports
// -----------------------------------------------------------------------------

// Authenticator resolves the principal behind a request. A nil error
// means the request is authenticated; the returned actor is attached to
// the execution.
type Authenticator interface {
	Authenticate(r *http.Request) (actor any, err error)
}

// Authorizer decides whether an actor may run the named action.
type Authorizer interface {
	Authorize(ctx context.Context, actor any, action string) error
}

// PartialRenderer resolves a partial template to markup. The web layer
// ships a html/template backed implementation.
type PartialRenderer interface {
	RenderPartial(name string, locals map[string]any) (string, error)
}

// -----------------------------------------------------------------------------
// Demo Data Store Ports
// -----------------------------------------------------------------------------

// ErrNotFound is the sentinel every TaskStore implementation returns
// (possibly wrapped) when the requested entity does not exist. Callers
// match it with errors.Is.
var ErrNotFound = errors.New("not found")

// TaskStore persists tasks for the demo application.
type TaskStore interface {
	// Get retrieves a task by ID.
	Get(ctx context.Context, id string) (task.Task, error)

	// List returns tasks ordered by creation time, newest first.
	List(ctx context.Context, limit, offset int) ([]task.Task, error)

	// Create stores a new task.
	Create(ctx context.Context, t task.Task) error

	// Update replaces an existing task.
	Update(ctx context.Context, t task.Task) error

	// Delete removes a task.
	Delete(ctx context.Context, id string) error

	// Count returns the total number of tasks.
	Count(ctx context.Context) (int, error)
}
