package helpers

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 0 // pages are 0-based
)

// PageRequest carries validated pagination and sorting parameters.
type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// Offset returns the SQL offset for the request.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// OrderClause renders "field dir" against a whitelist of sortable columns.
// Unknown fields fall back to the first whitelisted column so user input
// never reaches the SQL string.
func (p PageRequest) OrderClause(allowed map[string]string, fallback string) string {
	col, ok := allowed[p.SortBy]
	if !ok {
		col = fallback
	}
	dir := "DESC"
	if strings.EqualFold(p.SortDir, "asc") {
		dir = "ASC"
	}
	return col + " " + dir
}

// PaginationInfo describes a page of results in responses.
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"0"`
	TotalPages  int   `json:"totalPages" example:"5"`
	PageSize    int   `json:"pageSize" example:"10"`
	TotalItems  int64 `json:"totalItems" example:"42"`
}

// NewPaginationInfo creates a standard PaginationInfo.
func NewPaginationInfo(totalItems int64, page, size int) PaginationInfo {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 0 {
		page = DefaultPage
	}

	totalPages := 0
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(size)))
	}

	return PaginationInfo{
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
}

// ParsePageRequest extracts pagination and sort parameters from the request.
func ParsePageRequest(c *gin.Context, defaultSortBy string) PageRequest {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = DefaultPage
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(DefaultPageSize)))
	if err != nil || size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}

	return PageRequest{
		Page:    page,
		Size:    size,
		SortBy:  c.DefaultQuery("sortBy", defaultSortBy),
		SortDir: c.DefaultQuery("sortDir", "desc"),
	}
}
