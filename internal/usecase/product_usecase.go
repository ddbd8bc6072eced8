package usecase

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var _ domain.ProductUseCase = (*productUseCase)(nil)

type productUseCase struct {
	productRepo  domain.ProductRepository
	categoryRepo domain.CategoryRepository
	log          *logrus.Logger
}

func NewProductUseCase(pRepo domain.ProductRepository, cRepo domain.CategoryRepository, logger *logrus.Logger) domain.ProductUseCase {
	return &productUseCase{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		log:          logger,
	}
}

func (uc *productUseCase) CreateProduct(req *domain.CreateProductRequest) (*domain.Product, error) {
	if err := req.Validate(); err != nil {
		uc.log.Warnf("Use Case: Product validation failed: %v", err)
		return nil, err
	}

	if req.CategoryID != 0 {
		if _, err := uc.categoryRepo.GetCategoryByID(req.CategoryID); err != nil {
			uc.log.Warnf("Use Case: Category ID %d not found during product creation: %v", req.CategoryID, err)
			return nil, fmt.Errorf("category with id %d does not exist", req.CategoryID)
		}
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	product := &domain.Product{
		Name:          strings.TrimSpace(req.Name),
		Slug:          req.Slug,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		ImageURL:      req.ImageURL,
		Images:        req.Images,
		CategoryID:    req.CategoryID,
		Stock:         req.Stock,
		Featured:      req.Featured,
		Active:        active,
	}

	uc.log.Infof("Use Case: Attempting to create product '%s'", product.Name)
	created, err := uc.productRepo.CreateProduct(product)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create product '%s': %v", product.Name, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product '%s' created successfully with ID %d", created.Name, created.ID)
	return created, nil
}

// GetProduct resolves a path parameter as a numeric id first, falling back
// to slug lookup.
func (uc *productUseCase) GetProduct(idOrSlug string) (*domain.Product, error) {
	if id, err := strconv.Atoi(idOrSlug); err == nil {
		if id <= 0 {
			return nil, errors.New("invalid product ID")
		}
		return uc.productRepo.GetProductByID(id)
	}
	return uc.productRepo.GetProductBySlug(idOrSlug)
}

func (uc *productUseCase) UpdateProduct(id int, updates map[string]interface{}) (*domain.Product, error) {
	if id <= 0 {
		return nil, errors.New("invalid product ID for update")
	}
	if len(updates) == 0 {
		return uc.productRepo.GetProductByID(id)
	}

	if _, err := uc.productRepo.GetProductByID(id); err != nil {
		uc.log.Warnf("Use Case: Product ID %d not found for update: %v", id, err)
		return nil, err
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
			probe := domain.CreateProductRequest{Name: "x", Slug: slug}
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
		case "price", "originalPrice":
			price, err := decimalFromJSON(value)
			if err != nil || price.IsNegative() {
				return nil, domain.NewValidationError(key, key+" must be a non-negative number")
			}
			column := "price"
			if key == "originalPrice" {
				column = "original_price"
			}
			validUpdates[column] = price
		case "imageUrl":
			url, ok := value.(string)
			if !ok {
				return nil, domain.NewValidationError("imageUrl", "imageUrl must be a string")
			}
			validUpdates["image_url"] = url
		case "images":
			raw, ok := value.([]interface{})
			if !ok {
				return nil, domain.NewValidationError("images", "images must be a list of strings")
			}
			images := make([]string, 0, len(raw))
			for _, entry := range raw {
				img, ok := entry.(string)
				if !ok {
					return nil, domain.NewValidationError("images", "images must be a list of strings")
				}
				images = append(images, img)
			}
			validUpdates["images"] = images
		case "categoryId":
			catID, err := intFromJSON(value)
			if err != nil || catID < 0 {
				return nil, domain.NewValidationError("categoryId", "categoryId must be a non-negative integer")
			}
			if catID != 0 {
				if _, err := uc.categoryRepo.GetCategoryByID(catID); err != nil {
					return nil, fmt.Errorf("category with id %d does not exist", catID)
				}
			}
			validUpdates["category_id"] = catID
		case "stock":
			if value == nil {
				validUpdates["stock"] = nil
				continue
			}
			stock, err := intFromJSON(value)
			if err != nil || stock < 0 {
				return nil, domain.NewValidationError("stock", "stock must be a non-negative integer or null")
			}
			validUpdates["stock"] = stock
		case "featured", "active":
			flag, ok := value.(bool)
			if !ok {
				return nil, domain.NewValidationError(key, key+" must be a boolean")
			}
			validUpdates[key] = flag
		default:
			uc.log.Warnf("Use Case: Skipping unknown field '%s' in product update for ID %d", key, id)
		}
	}

	uc.log.Infof("Use Case: Updating product ID %d with %d fields", id, len(validUpdates))
	return uc.productRepo.UpdateProduct(id, validUpdates)
}

func (uc *productUseCase) DeleteProduct(id int) error {
	if id <= 0 {
		return errors.New("invalid product ID for deletion")
	}
	uc.log.Infof("Use Case: Attempting to delete product with ID %d", id)
	return uc.productRepo.DeleteProduct(id)
}

func (uc *productUseCase) ListProducts(includeInactive bool, limit, offset int) ([]domain.Product, error) {
	return uc.productRepo.ListProducts(!includeInactive, limit, offset)
}

func (uc *productUseCase) ListProductsByCategory(categoryID, limit, offset int) ([]domain.Product, error) {
	if categoryID <= 0 {
		return nil, errors.New("invalid category ID")
	}
	return uc.productRepo.ListProductsByCategory(categoryID, limit, offset)
}

func (uc *productUseCase) ListFeaturedProducts(limit int) ([]domain.Product, error) {
	return uc.productRepo.ListFeaturedProducts(limit)
}

// decimalFromJSON accepts the number and numeric-string encodings produced
// by JSON clients.
func decimalFromJSON(value interface{}) (decimal.Decimal, error) {
	switch v := value.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		return decimal.NewFromString(v)
	default:
		return decimal.Zero, fmt.Errorf("unsupported numeric type %T", value)
	}
}

func intFromJSON(value interface{}) (int, error) {
	f, ok := value.(float64)
	if !ok {
		return 0, fmt.Errorf("unsupported integer type %T", value)
	}
	i := int(f)
	if float64(i) != f {
		return 0, fmt.Errorf("value %v is not an integer", f)
	}
	return i, nil
}
