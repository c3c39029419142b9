package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/taskwise/taskwise-api/internal/domain"
)

// mockDBTX is a store.DBTX that fails the test if any method is reached.
// Used to prove validation happens before any database round trip.
type mockDBTX struct {
	t *testing.T
}

func (m *mockDBTX) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	m.t.Fatal("unexpected ExecContext call")
	return nil, nil
}

func (m *mockDBTX) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	m.t.Fatal("unexpected PrepareContext call")
	return nil, nil
}

func (m *mockDBTX) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	m.t.Fatal("unexpected QueryContext call")
	return nil, nil
}

func (m *mockDBTX) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	m.t.Fatal("unexpected QueryRowContext call")
	return nil
}

func TestEscapeLikePattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "buy milk", "buy milk"},
		{"percent", "100%", `100\%`},
		{"underscore", "snake_case", `snake\_case`},
		{"backslash", `a\b`, `a\\b`},
		{"everything", `%_\`, `\%\_\\`},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, escapeLikePattern(tc.input))
		})
	}
}

func TestTaskStoreCreateValidatesBeforeDB(t *testing.T) {
	t.Parallel()

	s := NewPostgresTaskStore(&mockDBTX{t: t}, nil)

	invalid := &domain.Task{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Title:    "", // invalid: tasks must carry a title
		Status:   domain.TaskStatusPending,
		Category: "Personal",
	}

	err := s.Create(context.Background(), invalid)
	assert.ErrorIs(t, err, domain.ErrEmptyTaskTitle)
}

func TestTaskStoreUpdateValidatesBeforeDB(t *testing.T) {
	t.Parallel()

	s := NewPostgresTaskStore(&mockDBTX{t: t}, nil)

	invalid := &domain.Task{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		Title:    "ok",
		Status:   "archived", // not an allowed status
		Category: "Personal",
	}

	err := s.Update(context.Background(), invalid)
	assert.ErrorIs(t, err, domain.ErrInvalidTaskStatus)
}

func TestTaskStoreSetStatusValidatesBeforeDB(t *testing.T) {
	t.Parallel()

	s := NewPostgresTaskStore(&mockDBTX{t: t}, nil)

	_, err := s.SetStatus(context.Background(), uuid.New(), uuid.New(), "archived")
	assert.ErrorIs(t, err, domain.ErrInvalidTaskStatus)
}

func TestNewPostgresTaskStorePanicsOnNilDB(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewPostgresTaskStore(nil, nil)
	})
}
