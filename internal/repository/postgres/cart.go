package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/scoly/backend/internal/entity"
	"github.com/scoly/backend/internal/repository"
)

type cartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new CartRepository backed by Postgres.
func NewCartRepository(db *sql.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) FetchForUser(ctx context.Context, userID string) ([]entity.CartViewItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ci.id, ci.product_id, ci.quantity,
		       p.id, p.name, p.description, p.price, p.image_url, p.category, p.stock
		FROM cart_items ci
		LEFT JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart for user %s: %w", userID, err)
	}
	defer rows.Close()

	var items []entity.CartViewItem
	for rows.Next() {
		var (
			item   entity.CartViewItem
			rowID  string
			pID    sql.NullString
			pName  sql.NullString
			pDesc  sql.NullString
			pPrice sql.NullFloat64
			pImage sql.NullString
			pCat   sql.NullString
			pStock sql.NullInt64
		)
		if err := rows.Scan(&rowID, &item.ProductID, &item.Quantity,
			&pID, &pName, &pDesc, &pPrice, &pImage, &pCat, &pStock); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		item.ID = entity.RemoteItemID(rowID)
		if pID.Valid {
			item.Product = &entity.Product{
				ID:          pID.String,
				Name:        pName.String,
				Description: pDesc.String,
				Price:       pPrice.Float64,
				ImageURL:    pImage.String,
				Category:    pCat.String,
				Stock:       int(pStock.Int64),
			}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart rows: %w", err)
	}
	return items, nil
}

func (r *cartRepository) ListForUser(ctx context.Context, userID string) ([]entity.CartItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, product_id, quantity, created_at FROM cart_items WHERE user_id = $1 ORDER BY created_at ASC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart rows for user %s: %w", userID, err)
	}
	defer rows.Close()

	var items []entity.CartItem
	for rows.Next() {
		var item entity.CartItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cart row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart rows: %w", err)
	}
	return items, nil
}

func (r *cartRepository) FindByUserAndProduct(ctx context.Context, userID, productID string) (*entity.CartItem, error) {
	var item entity.CartItem
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, product_id, quantity, created_at FROM cart_items WHERE user_id = $1 AND product_id = $2",
		userID, productID,
	).Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find cart row: %w", err)
	}
	return &item, nil
}

func (r *cartRepository) Insert(ctx context.Context, userID, productID string, quantity int) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO cart_items (id, user_id, product_id, quantity) VALUES ($1, $2, $3, $4)",
		id, userID, productID, quantity,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert cart row: %w", err)
	}
	return id, nil
}

func (r *cartRepository) UpsertAdd(ctx context.Context, userID, productID string, quantity int) (string, error) {
	// The uniqueness decision lives in the store: concurrent adds for the
	// same product both land here and the quantities accumulate.
	var id string
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (id, user_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING id`,
		uuid.NewString(), userID, productID, quantity,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to upsert cart row: %w", err)
	}
	return id, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, rowID string, quantity int) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE cart_items SET quantity = $1, updated_at = NOW() WHERE id = $2",
		quantity, rowID,
	)
	if err != nil {
		return fmt.Errorf("failed to update cart row quantity: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *cartRepository) DeleteRow(ctx context.Context, rowID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cart_items WHERE id = $1", rowID)
	if err != nil {
		return fmt.Errorf("failed to delete cart row: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *cartRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM cart_items WHERE user_id = $1", userID)
	if err != nil {
		return fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
	}
	return nil
}
