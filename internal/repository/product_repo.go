package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const productColumns = `id, name, slug, description, price, original_price, image_url, images, category_id, stock, featured, active, created_at`

type postgresProductRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresProductRepository(db *sql.DB, logger *logrus.Logger) domain.ProductRepository {
	return &postgresProductRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresProductRepository) CreateProduct(product *domain.Product) (*domain.Product, error) {
	query := `
        INSERT INTO products (name, slug, description, price, original_price, image_url, images, category_id, stock, featured, active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id, created_at`

	var categoryID sql.NullInt64
	if product.CategoryID != 0 {
		categoryID = sql.NullInt64{Int64: int64(product.CategoryID), Valid: true}
	}
	var stock sql.NullInt64
	if product.Stock != nil {
		stock = sql.NullInt64{Int64: int64(*product.Stock), Valid: true}
	}
	var originalPrice sql.NullString
	if product.OriginalPrice != nil {
		originalPrice = sql.NullString{String: product.OriginalPrice.String(), Valid: true}
	}

	err := r.db.QueryRow(query,
		product.Name,
		product.Slug,
		nullString(product.Description),
		product.Price.String(),
		originalPrice,
		nullString(product.ImageURL),
		pq.Array(product.Images),
		categoryID,
		stock,
		product.Featured,
		product.Active,
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				r.log.Warnf("Attempted to create product with duplicate slug '%s'", product.Slug)
				return nil, fmt.Errorf("product with slug '%s' already exists", product.Slug)
			case "23503":
				r.log.Warnf("Attempted to create product with non-existent category ID: %d", product.CategoryID)
				return nil, fmt.Errorf("category with id %d does not exist", product.CategoryID)
			case "23514":
				r.log.Warnf("Check constraint violation for product '%s': %s", product.Name, pqErr.Message)
				return nil, fmt.Errorf("product data constraint violation: %s", pqErr.Message)
			}
		}
		r.log.Errorf("Failed to create product '%s': %v", product.Name, err)
		return nil, fmt.Errorf("could not create product: %w", err)
	}
	r.log.Infof("Product created successfully with ID: %d, Name: %s", product.ID, product.Name)
	return product, nil
}

func (r *postgresProductRepository) GetProductByID(id int) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanProduct(r.db.QueryRow(query, id), fmt.Sprintf("id %d", id))
}

func (r *postgresProductRepository) GetProductBySlug(slug string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`
	return r.scanProduct(r.db.QueryRow(query, slug), fmt.Sprintf("slug '%s'", slug))
}

func (r *postgresProductRepository) scanProduct(row *sql.Row, ref string) (*domain.Product, error) {
	product := &domain.Product{}
	var description, originalPrice, imageURL sql.NullString
	var price string
	var categoryID, stock sql.NullInt64

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Slug,
		&description,
		&price,
		&originalPrice,
		&imageURL,
		pq.Array(&product.Images),
		&categoryID,
		&stock,
		&product.Featured,
		&product.Active,
		&product.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Product with %s not found", ref)
			return nil, fmt.Errorf("product with %s not found", ref)
		}
		r.log.Errorf("Failed to get product by %s: %v", ref, err)
		return nil, fmt.Errorf("could not get product: %w", err)
	}

	if err := applyProductNullables(product, description, price, originalPrice, imageURL, categoryID, stock); err != nil {
		r.log.Errorf("Failed to parse product data for %s: %v", ref, err)
		return nil, err
	}
	return product, nil
}

func applyProductNullables(product *domain.Product, description sql.NullString, price string, originalPrice, imageURL sql.NullString, categoryID, stock sql.NullInt64) error {
	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return fmt.Errorf("invalid price value in database: %w", err)
	}
	product.Price = parsed

	product.Description = description.String
	product.ImageURL = imageURL.String

	if originalPrice.Valid {
		op, err := decimal.NewFromString(originalPrice.String)
		if err != nil {
			return fmt.Errorf("invalid original price value in database: %w", err)
		}
		product.OriginalPrice = &op
	}
	if categoryID.Valid {
		product.CategoryID = int(categoryID.Int64)
	}
	if stock.Valid {
		s := int(stock.Int64)
		product.Stock = &s
	}
	return nil
}

func (r *postgresProductRepository) UpdateProduct(id int, updates map[string]interface{}) (*domain.Product, error) {
	if len(updates) == 0 {
		r.log.Infof("Repository: No fields provided for product update ID %d. Returning current product.", id)
		return r.GetProductByID(id)
	}

	setClauses := []string{}
	args := []interface{}{}
	argCounter := 1

	for key, value := range updates {
		switch key {
		case "name", "slug", "description", "image_url", "featured", "active":
			setClauses = append(setClauses, fmt.Sprintf("%s = $%d", key, argCounter))
			args = append(args, value)
		case "price", "original_price":
			d, ok := value.(decimal.Decimal)
			if !ok {
				r.log.Errorf("Repository: Invalid type received for %s for product ID %d: %T", key, id, value)
				return nil, fmt.Errorf("internal error: invalid type for %s in repository", key)
			}
			setClauses = append(setClauses, fmt.Sprintf("%s = $%d", key, argCounter))
			args = append(args, d.String())
		case "images":
			imgs, ok := value.([]string)
			if !ok {
				return nil, fmt.Errorf("internal error: invalid type for images in repository")
			}
			setClauses = append(setClauses, fmt.Sprintf("images = $%d", argCounter))
			args = append(args, pq.Array(imgs))
		case "category_id":
			catID, ok := value.(int)
			if !ok {
				r.log.Errorf("Repository: Invalid type received for category_id for product ID %d: %T", id, value)
				return nil, fmt.Errorf("internal error: invalid type for category_id in repository")
			}
			setClauses = append(setClauses, fmt.Sprintf("category_id = $%d", argCounter))
			if catID == 0 {
				args = append(args, nil)
			} else {
				args = append(args, catID)
			}
		case "stock":
			setClauses = append(setClauses, fmt.Sprintf("stock = $%d", argCounter))
			args = append(args, value)
		default:
			r.log.Warnf("Repository: Skipping unknown field '%s' provided for product update ID %d", key, id)
			continue
		}
		argCounter++
	}

	if len(setClauses) == 0 {
		r.log.Warnf("Repository: No valid known fields provided for product update ID %d. Returning current product.", id)
		return r.GetProductByID(id)
	}

	query := "UPDATE products SET " + strings.Join(setClauses, ", ") + fmt.Sprintf(" WHERE id = $%d", argCounter)
	args = append(args, id)

	r.log.Debugf("Repository: Executing partial update query for ID %d: %s", id, query)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return nil, fmt.Errorf("product slug already exists")
			case "23503":
				return nil, fmt.Errorf("referenced category does not exist")
			case "23514":
				r.log.Warnf("Repository: Check constraint violation for product update ID %d: %s", id, pqErr.Message)
				return nil, fmt.Errorf("product data constraint violation: %s", pqErr.Message)
			}
		}
		r.log.Errorf("Repository: Failed to execute partial update for product ID %d: %v", id, err)
		return nil, fmt.Errorf("could not partially update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Repository: Failed to get rows affected after partial update for ID %d: %v", id, err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: Product with ID %d not found for update (0 rows affected)", id)
		return nil, fmt.Errorf("product with id %d not found", id)
	}

	return r.GetProductByID(id)
}

func (r *postgresProductRepository) DeleteProduct(id int) error {
	result, err := r.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.log.Errorf("Failed to delete product ID %d: %v", id, err)
		return fmt.Errorf("could not delete product: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Failed to get rows affected after deleting product ID %d: %v", id, err)
		return fmt.Errorf("could not confirm product deletion: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Attempted to delete non-existent product ID %d", id)
		return fmt.Errorf("product with id %d not found", id)
	}
	r.log.Infof("Product deleted successfully with ID: %d", id)
	return nil
}

func (r *postgresProductRepository) ListProducts(onlyActive bool, limit, offset int) ([]domain.Product, error) {
	limit, offset = normalizePage(limit, offset)

	query := `SELECT ` + productColumns + ` FROM products`
	if onlyActive {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	return r.queryProducts(query, limit, offset)
}

func (r *postgresProductRepository) ListProductsByCategory(categoryID, limit, offset int) ([]domain.Product, error) {
	limit, offset = normalizePage(limit, offset)

	query := `SELECT ` + productColumns + ` FROM products
        WHERE category_id = $1 AND active = TRUE
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`

	return r.queryProducts(query, categoryID, limit, offset)
}

func (r *postgresProductRepository) ListFeaturedProducts(limit int) ([]domain.Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	query := `SELECT ` + productColumns + ` FROM products
        WHERE featured = TRUE AND active = TRUE
        ORDER BY created_at DESC
        LIMIT $1`

	return r.queryProducts(query, limit)
}

func (r *postgresProductRepository) queryProducts(query string, args ...interface{}) ([]domain.Product, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.log.Errorf("Failed to list products: %v", err)
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var product domain.Product
		var description, originalPrice, imageURL sql.NullString
		var price string
		var categoryID, stock sql.NullInt64

		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Slug,
			&description,
			&price,
			&originalPrice,
			&imageURL,
			pq.Array(&product.Images),
			&categoryID,
			&stock,
			&product.Featured,
			&product.Active,
			&product.CreatedAt,
		); err != nil {
			r.log.Errorf("Failed to scan product row: %v", err)
			return nil, fmt.Errorf("error scanning product data: %w", err)
		}
		if err := applyProductNullables(&product, description, price, originalPrice, imageURL, categoryID, stock); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during products list iteration: %v", err)
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	r.log.Infof("Retrieved %d products", len(products))
	return products, nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
