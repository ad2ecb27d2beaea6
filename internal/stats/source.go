package stats

import (
	"context"
)

// Source produces the current stats snapshot of an HAProxy process.
type Source interface {
	Fetch(ctx context.Context) ([]Row, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) ([]Row, error)

func (f SourceFunc) Fetch(ctx context.Context) ([]Row, error) {
	return f(ctx)
}
