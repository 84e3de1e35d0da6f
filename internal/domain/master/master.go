// Package master holds types shared by the reference data packages
// (division, vertical, brand, unit, product, outlet).
package master

import (
	"fmt"
	"strings"

	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/validator"
)

const (
	DefaultListLimit = 5
	MaxListLimit     = 20
	SearchPageSize   = 10
)

type ListFilter struct {
	Name         *string `json:"name,omitempty"`
	Abbreviation *string `json:"abbreviation,omitempty"`
	DivisionID   *string `json:"division_id,omitempty"`
	VerticalID   *string `json:"vertical_id,omitempty"`
	BrandID      *string `json:"brand_id,omitempty"`
	UnitID       *string `json:"unit_id,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // name, created_at, updated_at, anything else sorts by id
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}

	if !validator.IsInSlice(f.SortBy, []string{"name", "created_at", "updated_at"}) {
		f.SortBy = "id"
	}
	f.SortOrder = strings.ToLower(f.SortOrder)
	if f.SortOrder == "" {
		f.SortOrder = "asc"
	}
	if f.SortOrder != "asc" && f.SortOrder != "desc" {
		errs.Add("sort_order", "sort_order must be either 'asc' or 'desc'")
	}

	for field, id := range map[string]*string{
		"division_id": f.DivisionID,
		"vertical_id": f.VerticalID,
		"brand_id":    f.BrandID,
		"unit_id":     f.UnitID,
	} {
		if id != nil && !validator.IsValidUUID(*id) {
			errs.Add(field, field+" must be a valid UUID")
		}
	}

	return errs.OrNil()
}

// Offset returns the row offset for the current page.
func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type SearchFilter struct {
	Term string `json:"term"`
	Page int    `json:"page"`
}

func (f *SearchFilter) Validate() error {
	var errs validator.ValidationErrors
	f.Term = strings.TrimSpace(f.Term)
	if f.Page < 1 {
		f.Page = 1
	}
	if len(f.Term) > 100 {
		errs.Add("term", "term must not exceed 100 characters")
	}
	return errs.OrNil()
}

func (f SearchFilter) Offset() int {
	return (f.Page - 1) * SearchPageSize
}

// LookupItem is the id/name pair used by dropdowns and search.
type LookupItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SearchResponse struct {
	Items   []LookupItem `json:"items"`
	Page    int          `json:"page"`
	HasMore bool         `json:"has_more"`
}

// NewSearchResponse expects items fetched with one extra row beyond SearchPageSize.
func NewSearchResponse(items []LookupItem, page int) SearchResponse {
	hasMore := len(items) > SearchPageSize
	if hasMore {
		items = items[:SearchPageSize]
	}
	if items == nil {
		items = []LookupItem{}
	}
	return SearchResponse{Items: items, Page: page, HasMore: hasMore}
}

type ListMeta struct {
	TotalCount int64  `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
	Showing    string `json:"showing"`
}

func NewListMeta(total int64, page, limit, count int) ListMeta {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	start := (page-1)*limit + 1
	end := start + count - 1
	if count == 0 {
		start, end = 0, 0
	}
	return ListMeta{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		Showing:    fmt.Sprintf("%d-%d of %d", start, end, total),
	}
}

// ValidateName is the shared rule for reference data names.
func ValidateName(errs *validator.ValidationErrors, name string) {
	if validator.IsEmpty(name) {
		errs.Add("name", "name is required")
	} else if len(name) > 150 {
		errs.Add("name", "name must not exceed 150 characters")
	}
}

// ValidateRef checks a required foreign key.
func ValidateRef(errs *validator.ValidationErrors, field, id string) {
	if validator.IsEmpty(id) {
		errs.Add(field, field+" is required")
	} else if !validator.IsValidUUID(id) {
		errs.Add(field, field+" must be a valid UUID")
	}
}

// MissingRef is the validation error returned when a referenced row does not exist.
func MissingRef(field string) error {
	return validator.ValidationErrors{{Field: field, Message: field + " does not exist"}}
}
