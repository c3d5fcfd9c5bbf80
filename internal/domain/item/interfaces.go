package item

import "context"

// Repository provides persistence for items.
type Repository interface {
	EnsureSchema(ctx context.Context) error
	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]Item, error)
	Create(ctx context.Context, in NewItem) (*Item, error)
	CreateMany(ctx context.Context, in []NewItem) error
	Delete(ctx context.Context, id int64) error
}
