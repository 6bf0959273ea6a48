// Package service provides the typed wrappers over the REST client, one
// per backend resource. Each wrapper owns its endpoint paths, validates
// payloads before transmission, and keeps the read cache coherent by
// invalidating after mutations.
package service

// Auth endpoints.
const (
	epAuthLogin     = "/admin/auth/login"
	epAuthLogout    = "/admin/auth/logout"
	epAuthProfile   = "/admin/auth/profile"
	epAuthLogoutAll = "/admin/auth/logout-all"
)

// Resource collection endpoints. Item endpoints are collection + "/" + id.
const (
	epCategories = "/categories"
	epAuthors    = "/authors"
	epBlogs      = "/blogs"
)

// Upload endpoints.
const (
	epUploadSingle   = "/uploads/single"
	epUploadMultiple = "/uploads/multiple"
)

// Pagination is the canonical list-page descriptor returned by every
// collection endpoint.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Total       int `json:"total"`
	Limit       int `json:"limit"`
}
