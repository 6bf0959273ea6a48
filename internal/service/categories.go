package service

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/inkpress/inkctl/internal/adapter/outbound/rest"
	"github.com/inkpress/inkctl/internal/domain/query"
	"github.com/inkpress/inkctl/internal/domain/validation"
)

// Category is a catalog category as returned by the backend.
type Category struct {
	ID               string    `json:"_id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	Description      string    `json:"description,omitempty"`
	Image            string    `json:"image,omitempty"`
	AdditionalImages []string  `json:"additionalImages,omitempty"`
	ParentCategory   string    `json:"parentCategory,omitempty"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CategoryList is one page of categories.
type CategoryList struct {
	Categories []Category `json:"categories"`
	Pagination Pagination `json:"pagination"`
}

// CategoryListParams narrow a category listing.
type CategoryListParams struct {
	Page           int
	Limit          int
	IsActive       *bool
	ParentCategory string
}

// CategoriesService manages the category catalog.
type CategoriesService struct {
	client *rest.Client
	cache  *query.Cache
}

// NewCategoriesService creates a CategoriesService. The cache is
// optional; without one every read goes to the network.
func NewCategoriesService(client *rest.Client, cache *query.Cache) *CategoriesService {
	return &CategoriesService{client: client, cache: cache}
}

// List fetches one page of categories.
func (s *CategoriesService) List(ctx context.Context, params CategoryListParams) (*CategoryList, error) {
	keyParams := map[string]string{}
	values := url.Values{}
	if params.Page > 0 {
		keyParams["page"] = strconv.Itoa(params.Page)
		values.Set("page", keyParams["page"])
	}
	if params.Limit > 0 {
		keyParams["limit"] = strconv.Itoa(params.Limit)
		values.Set("limit", keyParams["limit"])
	}
	if params.IsActive != nil {
		keyParams["isActive"] = strconv.FormatBool(*params.IsActive)
		values.Set("isActive", keyParams["isActive"])
	}
	if params.ParentCategory != "" {
		keyParams["parentCategory"] = params.ParentCategory
		values.Set("parentCategory", params.ParentCategory)
	}

	fetch := func(ctx context.Context) (*CategoryList, error) {
		var out CategoryList
		if err := s.client.Get(ctx, epCategories, values, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	if s.cache == nil {
		return fetch(ctx)
	}
	return query.Fetch(ctx, s.cache, epCategories, keyParams, fetch)
}

// Get fetches a single category by ID.
func (s *CategoriesService) Get(ctx context.Context, id string) (*Category, error) {
	endpoint := epCategories + "/" + id
	fetch := func(ctx context.Context) (*Category, error) {
		var out struct {
			Category *Category `json:"category"`
		}
		if err := s.client.Get(ctx, endpoint, nil, &out); err != nil {
			return nil, err
		}
		return out.Category, nil
	}
	if s.cache == nil {
		return fetch(ctx)
	}
	return query.Fetch(ctx, s.cache, endpoint, nil, fetch)
}

// Create adds a category. The payload is validated locally first.
func (s *CategoriesService) Create(ctx context.Context, in validation.CategoryInput) (*Category, error) {
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	var out struct {
		Category *Category `json:"category"`
	}
	if err := s.client.Post(ctx, epCategories, in, &out); err != nil {
		return nil, err
	}
	s.invalidate()
	return out.Category, nil
}

// Update replaces a category's fields.
func (s *CategoriesService) Update(ctx context.Context, id string, in validation.CategoryInput) (*Category, error) {
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	var out struct {
		Category *Category `json:"category"`
	}
	if err := s.client.Put(ctx, epCategories+"/"+id, in, &out); err != nil {
		return nil, err
	}
	s.invalidate()
	return out.Category, nil
}

// Delete removes a category.
func (s *CategoriesService) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, epCategories+"/"+id, nil); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *CategoriesService) invalidate() {
	if s.cache != nil {
		s.cache.Invalidate(epCategories)
	}
}
