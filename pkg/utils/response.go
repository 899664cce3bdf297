package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avolkova/reviewbrain/internal/models"
)

// ResultsResponse writes the search wire shape: {"results": [...]}.
// A nil slice is normalized so clients always get an array.
func ResultsResponse(c *gin.Context, records []models.ReviewRecord) {
	if records == nil {
		records = []models.ReviewRecord{}
	}
	c.JSON(http.StatusOK, models.SearchResponse{Results: records})
}

// ErrorResponse writes the error wire shape: {"error": "..."}.
func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, models.ErrorResponse{Error: message})
}
