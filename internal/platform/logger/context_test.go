package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	// Empty context falls back to the default logger.
	assert.Equal(t, slog.Default(), FromContext(context.Background()))

	// A logger stored via WithLogger round-trips.
	log := slog.Default().With(slog.String("component", "test"))
	ctx := WithLogger(context.Background(), log)
	assert.Same(t, log, FromContext(ctx))
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	fallback := slog.Default().With(slog.String("component", "fallback"))

	// No logger in context: the fallback wins.
	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))

	// Nil fallback: the process default wins.
	assert.Equal(t, slog.Default(), FromContextOrDefault(context.Background(), nil))

	// Context logger takes precedence over the fallback.
	log := slog.Default().With(slog.String("component", "ctx"))
	ctx := WithLogger(context.Background(), log)
	assert.Same(t, log, FromContextOrDefault(ctx, fallback))
}
