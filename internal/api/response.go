package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/remote-jobs/internal/domain"
)

const (
	codeNotFound     = "NOT_FOUND"
	codeValidation   = "VALIDATION_ERROR"
	codeUnauthorized = "UNAUTHORIZED"
	codeForbidden    = "FORBIDDEN"
	codeInternal     = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every non-2xx answer
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Pagination describes the page a list response carries
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// JobsResponse is returned by the list and search endpoints
type JobsResponse struct {
	Jobs       []domain.Job `json:"jobs"`
	Pagination Pagination   `json:"pagination"`
	Sources    []string     `json:"sources"`
	Fallback   bool         `json:"fallback"`
}

// CountResponse is returned when count=true
type CountResponse struct {
	Count int `json:"count"`
}

// CategoryResponse is returned by /api/categories/:slug
type CategoryResponse struct {
	Category   domain.CategoryRef `json:"category"`
	Jobs       []domain.Job       `json:"jobs"`
	Count      int                `json:"count"`
	Pagination Pagination         `json:"pagination"`
}

// LocationResponse is returned by /api/locations/:slug
type LocationResponse struct {
	Location   domain.LocationRef `json:"location"`
	Jobs       []domain.Job       `json:"jobs"`
	Count      int                `json:"count"`
	Pagination Pagination         `json:"pagination"`
}

func newPagination(res domain.SearchResult, params domain.SearchParams) Pagination {
	return Pagination{
		Total:      res.TotalCount,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: domain.PageCount(res.TotalCount, params.Limit),
	}
}

func newJobsResponse(res domain.SearchResult, params domain.SearchParams) JobsResponse {
	jobs := res.Jobs
	if jobs == nil {
		jobs = []domain.Job{}
	}
	sources := res.Sources
	if sources == nil {
		sources = []string{}
	}
	return JobsResponse{
		Jobs:       jobs,
		Pagination: newPagination(res, params),
		Sources:    sources,
		Fallback:   res.Fallback,
	}
}

func abortWithError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg, Code: code})
}

func notFound(c *gin.Context, msg string) {
	abortWithError(c, http.StatusNotFound, codeNotFound, msg)
}

func badRequest(c *gin.Context, msg string) {
	abortWithError(c, http.StatusBadRequest, codeValidation, msg)
}

// internalError records err on the context so the access log carries it
func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	abortWithError(c, http.StatusInternalServerError, codeInternal, "internal server error")
}
