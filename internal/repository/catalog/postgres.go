package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kleanly/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) ReadWriter {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListItems(ctx context.Context, category domain.Category) ([]domain.CatalogItem, error) {
	const q = `
SELECT id, name, price_ksh, category
FROM catalog_items
WHERE ($1 = '' OR category = $1)
ORDER BY category, price_ksh DESC, id
`
	rows, err := r.pool.Query(ctx, q, string(category))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CatalogItem
	for rows.Next() {
		var it domain.CatalogItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.Category); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *postgresRepo) ListBags(ctx context.Context, category domain.Category) ([]domain.BagService, error) {
	const q = `
SELECT id, name, description, price_ksh, category
FROM bag_services
WHERE ($1 = '' OR category = $1)
ORDER BY category, price_ksh DESC, id
`
	rows, err := r.pool.Query(ctx, q, string(category))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bags []domain.BagService
	for rows.Next() {
		var b domain.BagService
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Price, &b.Category); err != nil {
			return nil, err
		}
		bags = append(bags, b)
	}
	return bags, rows.Err()
}

func (r *postgresRepo) GetItem(ctx context.Context, id string) (*domain.CatalogItem, error) {
	const q = `SELECT id, name, price_ksh, category FROM catalog_items WHERE id = $1`
	var it domain.CatalogItem
	if err := r.pool.QueryRow(ctx, q, id).Scan(&it.ID, &it.Name, &it.Price, &it.Category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

func (r *postgresRepo) GetBag(ctx context.Context, id string) (*domain.BagService, error) {
	const q = `SELECT id, name, description, price_ksh, category FROM bag_services WHERE id = $1`
	var b domain.BagService
	if err := r.pool.QueryRow(ctx, q, id).Scan(&b.ID, &b.Name, &b.Description, &b.Price, &b.Category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepo) UpsertItem(ctx context.Context, item domain.CatalogItem) error {
	const q = `
INSERT INTO catalog_items (id, name, price_ksh, category)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, price_ksh = EXCLUDED.price_ksh, category = EXCLUDED.category
`
	_, err := r.pool.Exec(ctx, q, item.ID, item.Name, item.Price, string(item.Category))
	return err
}

func (r *postgresRepo) UpsertBag(ctx context.Context, bag domain.BagService) error {
	const q = `
INSERT INTO bag_services (id, name, description, price_ksh, category)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description, price_ksh = EXCLUDED.price_ksh, category = EXCLUDED.category
`
	_, err := r.pool.Exec(ctx, q, bag.ID, bag.Name, bag.Description, bag.Price, string(bag.Category))
	return err
}
