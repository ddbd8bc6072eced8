package usecase

import (
	"errors"
	"strconv"
	"strings"

	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
)

var _ domain.CategoryUseCase = (*categoryUseCase)(nil)

type categoryUseCase struct {
	categoryRepo domain.CategoryRepository
	log          *logrus.Logger
}

func NewCategoryUseCase(repo domain.CategoryRepository, logger *logrus.Logger) domain.CategoryUseCase {
	return &categoryUseCase{
		categoryRepo: repo,
		log:          logger,
	}
}

func (uc *categoryUseCase) CreateCategory(req *domain.CreateCategoryRequest) (*domain.Category, error) {
	if err := req.Validate(); err != nil {
		uc.log.Warnf("Use Case: Category validation failed: %v", err)
		return nil, err
	}

	category := &domain.Category{
		Name:        strings.TrimSpace(req.Name),
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}

	uc.log.Infof("Use Case: Attempting to create category '%s'", category.Name)
	created, err := uc.categoryRepo.CreateCategory(category)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create category '%s': %v", category.Name, err)
		return nil, err
	}
	return created, nil
}

// GetCategory resolves a path parameter as a numeric id first, falling back
// to slug lookup.
func (uc *categoryUseCase) GetCategory(idOrSlug string) (*domain.Category, error) {
	if id, err := strconv.Atoi(idOrSlug); err == nil {
		if id <= 0 {
			return nil, errors.New("invalid category ID")
		}
		return uc.categoryRepo.GetCategoryByID(id)
	}
	return uc.categoryRepo.GetCategoryBySlug(idOrSlug)
}

func (uc *categoryUseCase) UpdateCategory(id int, updates map[string]interface{}) (*domain.Category, error) {
	if id <= 0 {
		return nil, errors.New("invalid category ID for update")
	}
	if len(updates) == 0 {
		return uc.categoryRepo.GetCategoryByID(id)
	}

	validUpdates := make(map[string]interface{})
	for key, value := range updates {
		switch key {
		case "name":
			name, ok := value.(string)
			if !ok || strings.TrimSpace(name) == "" {
				return nil, domain.NewValidationError("name", "name cannot be empty if provided for update")
			}
			validUpdates["name"] = strings.TrimSpace(name)
		case "slug":
			slug, ok := value.(string)
			if !ok {
				return nil, domain.NewValidationError("slug", "slug must be a string")
			}
			probe := domain.CreateCategoryRequest{Name: "x", Slug: slug}
			if err := probe.Validate(); err != nil {
				return nil, err
			}
			validUpdates["slug"] = slug
		case "description":
			desc, ok := value.(string)
			if !ok {
				return nil, domain.NewValidationError("description", "description must be a string")
			}
			validUpdates["description"] = desc
		case "imageUrl":
			url, ok := value.(string)
			if !ok {
				return nil, domain.NewValidationError("imageUrl", "imageUrl must be a string")
			}
			validUpdates["image_url"] = url
		default:
			uc.log.Warnf("Use Case: Skipping unknown field '%s' in category update for ID %d", key, id)
		}
	}

	uc.log.Infof("Use Case: Updating category ID %d with %d fields", id, len(validUpdates))
	return uc.categoryRepo.UpdateCategory(id, validUpdates)
}

func (uc *categoryUseCase) DeleteCategory(id int) error {
	if id <= 0 {
		return errors.New("invalid category ID for deletion")
	}
	uc.log.Infof("Use Case: Attempting to delete category with ID %d", id)
	return uc.categoryRepo.DeleteCategory(id)
}

func (uc *categoryUseCase) ListCategories() ([]domain.Category, error) {
	categories, err := uc.categoryRepo.ListCategories()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list categories: %v", err)
		return nil, err
	}
	return categories, nil
}
