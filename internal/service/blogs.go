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

// Blog is a blog post as returned by the backend. Author holds the
// author's ID, not an embedded record.
type Blog struct {
	ID         string    `json:"_id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Content    string    `json:"content"`
	MainImage  string    `json:"mainImage"`
	CoverImage string    `json:"coverImage"`
	Author     string    `json:"author"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BlogList is one page of blog posts.
type BlogList struct {
	Blogs      []Blog     `json:"blogs"`
	Pagination Pagination `json:"pagination"`
}

// BlogListParams narrow a blog listing.
type BlogListParams struct {
	Page   int
	Limit  int
	Search string
}

// BlogsService manages blog posts.
type BlogsService struct {
	client *rest.Client
	cache  *query.Cache
}

// NewBlogsService creates a BlogsService. The cache is optional.
func NewBlogsService(client *rest.Client, cache *query.Cache) *BlogsService {
	return &BlogsService{client: client, cache: cache}
}

// List fetches one page of blog posts.
func (s *BlogsService) List(ctx context.Context, params BlogListParams) (*BlogList, error) {
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
	if params.Search != "" {
		keyParams["search"] = params.Search
		values.Set("search", params.Search)
	}

	fetch := func(ctx context.Context) (*BlogList, error) {
		var out BlogList
		if err := s.client.Get(ctx, epBlogs, values, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	if s.cache == nil {
		return fetch(ctx)
	}
	return query.Fetch(ctx, s.cache, epBlogs, keyParams, fetch)
}

// Get fetches a single blog post by ID.
func (s *BlogsService) Get(ctx context.Context, id string) (*Blog, error) {
	endpoint := epBlogs + "/" + id
	fetch := func(ctx context.Context) (*Blog, error) {
		var out struct {
			Blog *Blog `json:"blog"`
		}
		if err := s.client.Get(ctx, endpoint, nil, &out); err != nil {
			return nil, err
		}
		return out.Blog, nil
	}
	if s.cache == nil {
		return fetch(ctx)
	}
	return query.Fetch(ctx, s.cache, endpoint, nil, fetch)
}

// Create adds a blog post. The payload is validated locally first.
func (s *BlogsService) Create(ctx context.Context, in validation.BlogInput) (*Blog, error) {
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	var out struct {
		Blog *Blog `json:"blog"`
	}
	if err := s.client.Post(ctx, epBlogs, in, &out); err != nil {
		return nil, err
	}
	s.invalidate()
	return out.Blog, nil
}

// Update replaces a blog post's fields.
func (s *BlogsService) Update(ctx context.Context, id string, in validation.BlogInput) (*Blog, error) {
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	var out struct {
		Blog *Blog `json:"blog"`
	}
	if err := s.client.Put(ctx, epBlogs+"/"+id, in, &out); err != nil {
		return nil, err
	}
	s.invalidate()
	return out.Blog, nil
}

// Delete removes a blog post.
func (s *BlogsService) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, epBlogs+"/"+id, nil); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *BlogsService) invalidate() {
	if s.cache != nil {
		s.cache.Invalidate(epBlogs)
	}
}
