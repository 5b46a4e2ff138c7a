package node

import (
	"context"
	"io"
)

type runner struct {
	ctx context.Context
	out io.Writer
}

// NewRunner returns a Runner backed by ctx and out.
func NewRunner(ctx context.Context, out io.Writer) Runner {
	return &runner{ctx: ctx, out: out}
}

func (r *runner) Context() context.Context { return r.ctx }
func (r *runner) Output() io.Writer        { return r.out }
