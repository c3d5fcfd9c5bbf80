package mocks

import (
	"context"

	"github.com/rpggio/itemboard/internal/domain/item"
	"github.com/stretchr/testify/mock"
)

var _ item.Repository = (*ItemRepository)(nil)

// ItemRepository is a mock for item.Repository.
type ItemRepository struct {
	mock.Mock
}

func (m *ItemRepository) EnsureSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *ItemRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *ItemRepository) List(ctx context.Context) ([]item.Item, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]item.Item); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ItemRepository) Create(ctx context.Context, in item.NewItem) (*item.Item, error) {
	args := m.Called(ctx, in)
	if it, ok := args.Get(0).(*item.Item); ok {
		return it, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ItemRepository) CreateMany(ctx context.Context, in []item.NewItem) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

func (m *ItemRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
