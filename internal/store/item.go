package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rpggio/itemboard/internal/domain/item"
)

var _ item.Repository = (*ItemRepository)(nil)

// ItemRepository implements item.Repository on top of DB
type ItemRepository struct {
	db *DB
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// EnsureSchema creates the items table if it does not exist
func (r *ItemRepository) EnsureSchema(ctx context.Context) error {
	return r.db.RunMigrations(ctx)
}

// Count returns the number of stored items
func (r *ItemRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

// List returns all items ordered by id
func (r *ItemRepository) List(ctx context.Context) ([]item.Item, error) {
	query := `
		SELECT id, name, description, created_at
		FROM items
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := []item.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}

	return items, nil
}

// Create inserts an item and returns the stored row, including the id and
// created_at assigned by the database
func (r *ItemRepository) Create(ctx context.Context, in item.NewItem) (*item.Item, error) {
	query := r.db.rebind(`
		INSERT INTO items (name, description)
		VALUES (?, ?)
		RETURNING id, name, description, created_at
	`)

	created, err := scanItem(r.db.QueryRowContext(ctx, query, in.Name, in.Description))
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return created, nil
}

// CreateMany inserts all items with a single statement
func (r *ItemRepository) CreateMany(ctx context.Context, in []item.NewItem) error {
	if len(in) == 0 {
		return nil
	}

	values := make([]string, 0, len(in))
	args := make([]any, 0, 2*len(in))
	for _, it := range in {
		values = append(values, "(?, ?)")
		args = append(args, it.Name, it.Description)
	}

	query := r.db.rebind("INSERT INTO items (name, description) VALUES " + strings.Join(values, ", "))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert items: %w", err)
	}

	return nil
}

// Delete removes the item with the given id. No matching row is not an error.
func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, r.db.rebind(`DELETE FROM items WHERE id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*item.Item, error) {
	var it item.Item
	var description sql.NullString
	if err := row.Scan(
		&it.ID,
		&it.Name,
		&description,
		timestamp{&it.CreatedAt},
	); err != nil {
		return nil, err
	}
	if description.Valid {
		it.Description = &description.String
	}
	return &it, nil
}
