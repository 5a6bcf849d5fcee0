package store

import (
	"context"
	"errors"
	"fmt"

	perrors "github.com/avdeev/catalog-service/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `id, name, quantity, unit_price, supplier_id, date_of_creation, date_of_last_update`

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) FindByID(ctx context.Context, id int64) (*Product, error) {
	row := p.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return product, nil
}

// Save persists the product. A product without an ID is inserted and gets one
// assigned by the database; a product with an ID replaces the stored record.
func (p *PgStore) Save(ctx context.Context, product *Product) (*Product, error) {
	stored := *product
	if stored.ID == nil {
		row := p.db.QueryRow(ctx,
			`INSERT INTO products (name, quantity, unit_price, supplier_id, date_of_creation, date_of_last_update)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id`,
			stored.Name, stored.Quantity, stored.UnitPrice, stored.SupplierID, stored.DateOfCreation, stored.DateOfLastUpdate)
		var id int64
		if err := row.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to insert product: %w", err)
		}
		stored.ID = &id
		return &stored, nil
	}

	tag, err := p.db.Exec(ctx,
		`UPDATE products
		 SET name = $2, quantity = $3, unit_price = $4, supplier_id = $5, date_of_creation = $6, date_of_last_update = $7
		 WHERE id = $1`,
		*stored.ID, stored.Name, stored.Quantity, stored.UnitPrice, stored.SupplierID, stored.DateOfCreation, stored.DateOfLastUpdate)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, perrors.ErrProductNotFound
	}
	return &stored, nil
}

// Delete removes the product from the store.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) Delete(ctx context.Context, product *Product) error {
	if product.ID == nil {
		return perrors.ErrProductNotFound
	}
	tag, err := p.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, *product.ID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return perrors.ErrProductNotFound
	}
	return nil
}

// FindPage retrieves one zero-based page of products ordered by ID.
// The returned page may be empty; the caller decides what that means.
func (p *PgStore) FindPage(ctx context.Context, pageIndex, pageSize int32) (*Page, error) {
	var total int64
	if err := p.db.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	offset := int64(pageIndex) * int64(pageSize)
	rows, err := p.db.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY id LIMIT $1 OFFSET $2`,
		pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to find product page: %w", err)
	}
	defer rows.Close()

	items := make([]Product, 0, pageSize)
	for rows.Next() {
		product, scanErr := scanProduct(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", scanErr)
		}
		items = append(items, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product rows: %w", err)
	}

	return &Page{
		Items:         items,
		PageIndex:     pageIndex,
		PageSize:      pageSize,
		TotalElements: total,
	}, nil
}

func scanProduct(row pgx.Row) (*Product, error) {
	var product Product
	var id int64
	if err := row.Scan(&id, &product.Name, &product.Quantity, &product.UnitPrice,
		&product.SupplierID, &product.DateOfCreation, &product.DateOfLastUpdate); err != nil {
		return nil, err
	}
	product.ID = &id
	return &product, nil
}
