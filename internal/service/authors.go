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

// Author is a blog author as returned by the backend.
type Author struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthorList is one page of authors.
type AuthorList struct {
	Authors    []Author   `json:"authors"`
	Pagination Pagination `json:"pagination"`
}

// AuthorListParams narrow an author listing.
type AuthorListParams struct {
	Page   int
	Limit  int
	Search string
}

// AuthorsService manages the author catalog.
type AuthorsService struct {
	client *rest.Client
	cache  *query.Cache
}

// NewAuthorsService creates an AuthorsService. The cache is optional.
func NewAuthorsService(client *rest.Client, cache *query.Cache) *AuthorsService {
	return &AuthorsService{client: client, cache: cache}
}

// List fetches one page of authors.
func (s *AuthorsService) List(ctx context.Context, params AuthorListParams) (*AuthorList, error) {
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

	fetch := func(ctx context.Context) (*AuthorList, error) {
		var out AuthorList
		if err := s.client.Get(ctx, epAuthors, values, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	if s.cache == nil {
		return fetch(ctx)
	}
	return query.Fetch(ctx, s.cache, epAuthors, keyParams, fetch)
}

// Get fetches a single author by ID.
func (s *AuthorsService) Get(ctx context.Context, id string) (*Author, error) {
	endpoint := epAuthors + "/" + id
	fetch := func(ctx context.Context) (*Author, error) {
		var out struct {
			Author *Author `json:"author"`
		}
		if err := s.client.Get(ctx, endpoint, nil, &out); err != nil {
			return nil, err
		}
		return out.Author, nil
	}
	if s.cache == nil {
		return fetch(ctx)
	}
	return query.Fetch(ctx, s.cache, endpoint, nil, fetch)
}

// Create adds an author. The payload is validated locally first.
func (s *AuthorsService) Create(ctx context.Context, in validation.AuthorInput) (*Author, error) {
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	var out struct {
		Author *Author `json:"author"`
	}
	if err := s.client.Post(ctx, epAuthors, in, &out); err != nil {
		return nil, err
	}
	s.invalidate()
	return out.Author, nil
}

// Update replaces an author's fields.
func (s *AuthorsService) Update(ctx context.Context, id string, in validation.AuthorInput) (*Author, error) {
	if err := validation.Check(in); err != nil {
		return nil, err
	}
	var out struct {
		Author *Author `json:"author"`
	}
	if err := s.client.Put(ctx, epAuthors+"/"+id, in, &out); err != nil {
		return nil, err
	}
	s.invalidate()
	return out.Author, nil
}

// Delete removes an author.
func (s *AuthorsService) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, epAuthors+"/"+id, nil); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *AuthorsService) invalidate() {
	if s.cache != nil {
		s.cache.Invalidate(epAuthors)
	}
}
