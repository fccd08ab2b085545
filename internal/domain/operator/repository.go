package operator

import "context"

type Repository interface {
	Create(ctx context.Context, op *Operator) error
	ByUsername(ctx context.Context, username string) (*Operator, error)
}
