package repositories

import (
	"context"
	"fmt"

	"github.com/BradenHooton/storefront/internal/database"
	"github.com/BradenHooton/storefront/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type ProductRepository struct {
	db *database.DB
}

func NewProductRepository(db *database.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productSelect = `
	SELECT DISTINCT
		p.id, p.name, p.description_summary, p.image_url,
		p.price_amount, p.price_currency, p.is_available,
		c.id, c.name
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
`

const productCount = `
	SELECT COUNT(DISTINCT p.id)
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
`

// ListAvailable returns one page of available products matching q together
// with the total number of matches. q must already be normalized.
// The count and the page are read concurrently on separate pool connections,
// outside any transaction.
func (r *ProductRepository) ListAvailable(ctx context.Context, q models.ProductQuery) ([]models.Product, int64, error) {
	filter := newProductFilter(q)
	where := filter.where()

	limitParam := filter.nextParam()
	pageQuery := fmt.Sprintf("%s %s %s LIMIT $%d OFFSET $%d",
		productSelect, where, orderBy(q.Sort), limitParam, limitParam+1)
	pageArgs := append(append([]any{}, filter.args...), q.PageSize, q.Offset())

	countQuery := productCount + " " + where

	var (
		products []models.Product
		total    int64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := r.db.Pool.QueryRow(gctx, countQuery, filter.args...).Scan(&total); err != nil {
			return fmt.Errorf("failed to count products: %w", database.MapPostgresError(err))
		}
		return nil
	})

	g.Go(func() error {
		var err error
		products, err = r.queryProducts(gctx, pageQuery, pageArgs)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args []any) ([]models.Product, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", database.MapPostgresError(err))
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		p, err := scanProductRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return products, nil
}

func scanProductRow(scanner rowScanner) (models.Product, error) {
	var (
		p            models.Product
		amount       decimal.NullDecimal
		currency     *string
		categoryID   *string
		categoryName *string
	)

	err := scanner.Scan(
		&p.ID, &p.Name, &p.DescriptionSummary, &p.ImageURL,
		&amount, &currency, &p.IsAvailable,
		&categoryID, &categoryName,
	)
	if err != nil {
		return models.Product{}, database.MapPostgresError(err)
	}

	if amount.Valid && currency != nil {
		p.Price = &models.Money{Amount: amount.Decimal, Currency: *currency}
	}
	if categoryID != nil {
		p.Category = &models.Category{ID: *categoryID}
		if categoryName != nil {
			p.Category.Name = *categoryName
		}
	}

	return p, nil
}
