package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/inkpress/inkctl/internal/domain/query"
	"github.com/inkpress/inkctl/internal/domain/validation"
)

func categoriesBackend(t *testing.T, listCalls *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/categories":
			listCalls.Add(1)
			w.Write([]byte(`{
				"success": true,
				"data": {
					"categories": [{"_id": "68a1", "name": "Tech", "slug": "tech", "isActive": true}],
					"pagination": {"currentPage": 1, "totalPages": 3, "total": 25, "limit": 10}
				}
			}`))
		case r.Method == http.MethodGet:
			w.Write([]byte(`{"success": true, "data": {"category": {"_id": "68a1", "name": "Tech"}}}`))
		case r.Method == http.MethodPost || r.Method == http.MethodPut:
			var in validation.CategoryInput
			json.NewDecoder(r.Body).Decode(&in)
			w.Write([]byte(`{"success": true, "data": {"category": {"_id": "68a2", "name": "` + in.Name + `"}}}`))
		case r.Method == http.MethodDelete:
			w.Write([]byte(`{"success": true, "message": "Category deleted"}`))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
}

// TestCategoriesService_List verifies decoding of the list payload and
// its pagination block, plus the query parameter encoding.
func TestCategoriesService_List(t *testing.T) {
	var listCalls atomic.Int64
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		listCalls.Add(1)
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{
			"success": true,
			"data": {
				"categories": [{"_id": "68a1", "name": "Tech", "isActive": true}],
				"pagination": {"currentPage": 2, "totalPages": 3, "total": 25, "limit": 10}
			}
		}`))
	}))
	defer srv.Close()

	svc := NewCategoriesService(testClient(srv), nil)
	active := true
	list, err := svc.List(context.Background(), CategoryListParams{Page: 2, Limit: 10, IsActive: &active})
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}

	if len(list.Categories) != 1 || list.Categories[0].Name != "Tech" {
		t.Errorf("Categories = %+v", list.Categories)
	}
	if list.Pagination.CurrentPage != 2 || list.Pagination.Total != 25 {
		t.Errorf("Pagination = %+v", list.Pagination)
	}
	if gotQuery != "isActive=true&limit=10&page=2" {
		t.Errorf("query = %q", gotQuery)
	}
}

// TestCategoriesService_ListCached verifies that repeated identical
// lists hit the cache and that a mutation invalidates it.
func TestCategoriesService_ListCached(t *testing.T) {
	var listCalls atomic.Int64
	srv := categoriesBackend(t, &listCalls)
	defer srv.Close()

	svc := NewCategoriesService(testClient(srv), query.NewCache())

	for i := 0; i < 3; i++ {
		if _, err := svc.List(context.Background(), CategoryListParams{Page: 1}); err != nil {
			t.Fatalf("List() failed: %v", err)
		}
	}
	if got := listCalls.Load(); got != 1 {
		t.Fatalf("backend saw %d list calls, want 1", got)
	}

	// A write invalidates the cached pages; the next read refetches.
	if _, err := svc.Create(context.Background(), validation.CategoryInput{Name: "Food"}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if _, err := svc.List(context.Background(), CategoryListParams{Page: 1}); err != nil {
		t.Fatalf("List() after create failed: %v", err)
	}
	if got := listCalls.Load(); got != 2 {
		t.Errorf("backend saw %d list calls after invalidation, want 2", got)
	}
}

// TestCategoriesService_CreateValidatesFirst verifies that an invalid
// payload is rejected locally and never reaches the backend.
func TestCategoriesService_CreateValidatesFirst(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	svc := NewCategoriesService(testClient(srv), nil)
	_, err := svc.Create(context.Background(), validation.CategoryInput{Name: "x"})
	if !errors.Is(err, validation.ErrValidation) {
		t.Fatalf("Create() error = %v, want validation error", err)
	}
	if hits.Load() != 0 {
		t.Errorf("backend hit %d times for invalid payload", hits.Load())
	}
}

// TestCategoriesService_GetUpdateDelete exercises the item paths.
func TestCategoriesService_GetUpdateDelete(t *testing.T) {
	var listCalls atomic.Int64
	srv := categoriesBackend(t, &listCalls)
	defer srv.Close()

	svc := NewCategoriesService(testClient(srv), nil)

	cat, err := svc.Get(context.Background(), "68a1")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if cat.ID != "68a1" {
		t.Errorf("ID = %q, want 68a1", cat.ID)
	}

	updated, err := svc.Update(context.Background(), "68a1", validation.CategoryInput{Name: "Science"})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if updated.Name != "Science" {
		t.Errorf("Name = %q, want Science", updated.Name)
	}

	if err := svc.Delete(context.Background(), "68a1"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
}
