package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresCategoryRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresCategoryRepository(db *sql.DB, logger *logrus.Logger) domain.CategoryRepository {
	return &postgresCategoryRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresCategoryRepository) CreateCategory(category *domain.Category) (*domain.Category, error) {
	query := `
        INSERT INTO categories (name, slug, description, image_url)
        VALUES ($1, $2, $3, $4)
        RETURNING id`
	err := r.db.QueryRow(query,
		category.Name,
		category.Slug,
		nullString(category.Description),
		nullString(category.ImageURL),
	).Scan(&category.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			r.log.Warnf("Attempted to create category with duplicate slug '%s'", category.Slug)
			return nil, fmt.Errorf("category with slug '%s' already exists", category.Slug)
		}
		r.log.Errorf("Failed to create category '%s': %v", category.Name, err)
		return nil, fmt.Errorf("could not create category: %w", err)
	}
	r.log.Infof("Category created successfully with ID: %d, Name: %s", category.ID, category.Name)
	return category, nil
}

func (r *postgresCategoryRepository) GetCategoryByID(id int) (*domain.Category, error) {
	query := `
        SELECT id, name, slug, description, image_url
        FROM categories
        WHERE id = $1`
	return r.scanCategory(r.db.QueryRow(query, id), fmt.Sprintf("id %d", id))
}

func (r *postgresCategoryRepository) GetCategoryBySlug(slug string) (*domain.Category, error) {
	query := `
        SELECT id, name, slug, description, image_url
        FROM categories
        WHERE slug = $1`
	return r.scanCategory(r.db.QueryRow(query, slug), fmt.Sprintf("slug '%s'", slug))
}

func (r *postgresCategoryRepository) scanCategory(row *sql.Row, ref string) (*domain.Category, error) {
	category := &domain.Category{}
	var description, imageURL sql.NullString

	err := row.Scan(&category.ID, &category.Name, &category.Slug, &description, &imageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Category with %s not found", ref)
			return nil, fmt.Errorf("category with %s not found", ref)
		}
		r.log.Errorf("Failed to get category by %s: %v", ref, err)
		return nil, fmt.Errorf("could not get category: %w", err)
	}

	category.Description = description.String
	category.ImageURL = imageURL.String
	return category, nil
}

func (r *postgresCategoryRepository) UpdateCategory(id int, updates map[string]interface{}) (*domain.Category, error) {
	if len(updates) == 0 {
		return r.GetCategoryByID(id)
	}

	setClauses := []string{}
	args := []interface{}{}
	argCounter := 1

	for key, value := range updates {
		switch key {
		case "name", "slug", "description", "image_url":
			setClauses = append(setClauses, fmt.Sprintf("%s = $%d", key, argCounter))
			args = append(args, value)
			argCounter++
		default:
			r.log.Warnf("Repository: Skipping unknown field '%s' provided for category update ID %d", key, id)
		}
	}

	if len(setClauses) == 0 {
		return r.GetCategoryByID(id)
	}

	query := "UPDATE categories SET " + strings.Join(setClauses, ", ") + fmt.Sprintf(" WHERE id = $%d", argCounter)
	args = append(args, id)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, fmt.Errorf("category slug already exists")
		}
		r.log.Errorf("Failed to update category ID %d: %v", id, err)
		return nil, fmt.Errorf("could not update category: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		r.log.Warnf("Category with ID %d not found for update", id)
		return nil, fmt.Errorf("category with id %d not found", id)
	}

	return r.GetCategoryByID(id)
}

func (r *postgresCategoryRepository) DeleteCategory(id int) error {
	result, err := r.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.log.Errorf("Failed to delete category ID %d: %v", id, err)
		return fmt.Errorf("could not delete category: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not confirm category deletion: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Attempted to delete non-existent category ID %d", id)
		return fmt.Errorf("category with id %d not found", id)
	}
	r.log.Infof("Category deleted successfully with ID: %d", id)
	return nil
}

func (r *postgresCategoryRepository) ListCategories() ([]domain.Category, error) {
	query := `
        SELECT id, name, slug, description, image_url
        FROM categories
        ORDER BY name ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		r.log.Errorf("Failed to list categories: %v", err)
		return nil, fmt.Errorf("could not list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var category domain.Category
		var description, imageURL sql.NullString
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &description, &imageURL); err != nil {
			r.log.Errorf("Failed to scan category row: %v", err)
			return nil, fmt.Errorf("error scanning category data: %w", err)
		}
		category.Description = description.String
		category.ImageURL = imageURL.String
		categories = append(categories, category)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during categories list iteration: %v", err)
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	r.log.Infof("Retrieved %d categories", len(categories))
	return categories, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
