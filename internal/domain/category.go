package domain

type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type CategoryRepository interface {
	CreateCategory(category *Category) (*Category, error)
	GetCategoryByID(id int) (*Category, error)
	GetCategoryBySlug(slug string) (*Category, error)
	UpdateCategory(id int, updates map[string]interface{}) (*Category, error)
	DeleteCategory(id int) error
	ListCategories() ([]Category, error)
}

type CategoryUseCase interface {
	CreateCategory(req *CreateCategoryRequest) (*Category, error)
	GetCategory(idOrSlug string) (*Category, error)
	UpdateCategory(id int, updates map[string]interface{}) (*Category, error)
	DeleteCategory(id int) error
	ListCategories() ([]Category, error)
}
