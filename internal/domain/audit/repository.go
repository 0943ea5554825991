package audit

import "context"

type Repository interface {
	Create(ctx context.Context, entry Entry) error
}
