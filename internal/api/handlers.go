package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/remote-jobs/internal/domain"
	"github.com/honeycarbs/remote-jobs/internal/domain/job"
	"github.com/honeycarbs/remote-jobs/internal/domain/job/normalize"
	"github.com/honeycarbs/remote-jobs/pkg/logging"
)

// Handler serves the public job endpoints
type Handler struct {
	jobs   job.Service
	logger *logging.Logger
}

// NewHandler creates a Handler
func NewHandler(jobs job.Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{jobs: jobs, logger: logger}
}

// ListJobs handles GET /api/jobs
func (h *Handler) ListJobs(c *gin.Context) {
	h.search(c, parseSearchParams(c))
}

// Search handles GET /api/search. The query is required.
func (h *Handler) Search(c *gin.Context) {
	params := parseSearchParams(c)
	if params.Query == "" {
		badRequest(c, "search query is required")
		return
	}
	h.search(c, params)
}

func (h *Handler) search(c *gin.Context, params domain.SearchParams) {
	res, err := h.jobs.Search(c.Request.Context(), params)
	if err != nil {
		h.logger.Error("search failed", "err", err, "query", params.Query)
		internalError(c, err)
		return
	}

	if countOnly(c) {
		c.JSON(http.StatusOK, CountResponse{Count: res.TotalCount})
		return
	}
	c.JSON(http.StatusOK, newJobsResponse(res, params))
}

// GetJob handles GET /api/jobs/:id for both local and composite ids
func (h *Handler) GetJob(c *gin.Context) {
	j, err := h.jobs.GetJobDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("job lookup failed", "err", err, "id", c.Param("id"))
		internalError(c, err)
		return
	}
	if j == nil {
		notFound(c, "job not found")
		return
	}
	c.JSON(http.StatusOK, j)
}

// JobsByCategory handles GET /api/categories/:slug
func (h *Handler) JobsByCategory(c *gin.Context) {
	category, ok := normalize.CategoryBySlug(c.Param("slug"))
	if !ok {
		notFound(c, "category not found")
		return
	}

	params := parseSearchParams(c)
	params.Category = category.Slug

	res, err := h.jobs.Search(c.Request.Context(), params)
	if err != nil {
		h.logger.Error("category search failed", "err", err, "category", category.Slug)
		internalError(c, err)
		return
	}

	page := newJobsResponse(res, params)
	c.JSON(http.StatusOK, CategoryResponse{
		Category:   category,
		Jobs:       page.Jobs,
		Count:      res.TotalCount,
		Pagination: page.Pagination,
	})
}

// JobsByLocation handles GET /api/locations/:slug. Slugs outside the known
// list are still searched and only 404 when nothing matches.
func (h *Handler) JobsByLocation(c *gin.Context) {
	slug := normalize.Slugify(c.Param("slug"))
	location, known := normalize.LocationBySlug(slug)

	params := parseSearchParams(c)
	params.Location = slug

	res, err := h.jobs.Search(c.Request.Context(), params)
	if err != nil {
		h.logger.Error("location search failed", "err", err, "location", slug)
		internalError(c, err)
		return
	}

	if !known {
		if res.TotalCount == 0 || len(res.Jobs) == 0 {
			notFound(c, "location not found")
			return
		}
		location = res.Jobs[0].Location
	}

	page := newJobsResponse(res, params)
	c.JSON(http.StatusOK, LocationResponse{
		Location:   location,
		Jobs:       page.Jobs,
		Count:      res.TotalCount,
		Pagination: page.Pagination,
	})
}

// Health handles GET /healthz
func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
