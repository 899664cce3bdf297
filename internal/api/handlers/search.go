// internal/api/handlers/search.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/avolkova/reviewbrain/internal/models"
	"github.com/avolkova/reviewbrain/internal/repository"
	"github.com/avolkova/reviewbrain/internal/services"
	"github.com/avolkova/reviewbrain/pkg/utils"
)

// SearchHandler serves the programmatic JSON search endpoint.
type SearchHandler struct {
	answers  *services.AnswerService
	queryLog repository.QueryLogRepository
	logger   *logrus.Logger
}

func NewSearchHandler(
	answers *services.AnswerService,
	queryLog repository.QueryLogRepository,
	logger *logrus.Logger,
) *SearchHandler {
	return &SearchHandler{
		answers:  answers,
		queryLog: queryLog,
		logger:   logger,
	}
}

// HandleSearch runs a review search with caller-supplied limits.
// Malformed or out-of-range input is a 400; retrieval failures are a
// 502 since the store is an upstream dependency.
func (h *SearchHandler) HandleSearch(c *gin.Context) {
	startTime := time.Now()

	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Debug("Invalid search request")
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	filter := h.answers.NewFilter(req.Query)
	if req.Keyword != "" {
		filter.Keyword = req.Keyword
	}
	if req.MinScore != nil {
		filter.MinScore = *req.MinScore
	}
	if req.MaxResults != nil {
		filter.MaxResults = *req.MaxResults
	}

	records, err := h.answers.Search(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, models.ErrInvalidFilter) {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.WithError(err).Error("Review search failed")
		utils.ErrorResponse(c, http.StatusBadGateway, "search failed")
		return
	}

	go h.trackQuery(req.Query, len(records), time.Since(startTime))

	h.logger.WithFields(logrus.Fields{
		"query":   req.Query,
		"results": len(records),
	}).Info("Search completed")

	utils.ResultsResponse(c, records)
}

// HandleRecentQueries lists the latest tracked queries, newest first.
func (h *SearchHandler) HandleRecentQueries(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			utils.ErrorResponse(c, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	entries, err := h.queryLog.GetRecent(limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list recent queries")
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to list queries")
		return
	}
	if entries == nil {
		entries = []models.QueryLog{}
	}

	c.JSON(http.StatusOK, gin.H{"queries": entries})
}

func (h *SearchHandler) trackQuery(query string, resultsCount int, responseTime time.Duration) {
	entry := &models.QueryLog{
		QueryText:      query,
		Source:         "api",
		ResultsCount:   resultsCount,
		ResponseTimeMs: int(responseTime.Milliseconds()),
	}
	if err := h.queryLog.Create(entry); err != nil {
		h.logger.WithError(err).Error("Failed to track query")
	}
}
