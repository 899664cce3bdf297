// internal/api/handlers/ask.go
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/avolkova/reviewbrain/internal/models"
	"github.com/avolkova/reviewbrain/internal/repository"
	"github.com/avolkova/reviewbrain/internal/services"
)

// AskHandler serves the HTML form flow: index page, favicon and the
// question submission.
type AskHandler struct {
	answers  *services.AnswerService
	queryLog repository.QueryLogRepository
	logger   *logrus.Logger
}

func NewAskHandler(
	answers *services.AnswerService,
	queryLog repository.QueryLogRepository,
	logger *logrus.Logger,
) *AskHandler {
	return &AskHandler{
		answers:  answers,
		queryLog: queryLog,
		logger:   logger,
	}
}

func (h *AskHandler) HandleIndex(c *gin.Context) {
	h.logger.Debug("Request for index page received")
	c.HTML(http.StatusOK, "index.html", nil)
}

func (h *AskHandler) HandleFavicon(c *gin.Context) {
	c.File("./static/favicon.ico")
}

// HandleAsk processes the question form. A blank query redirects back
// to the index; a model failure renders the error page.
func (h *AskHandler) HandleAsk(c *gin.Context) {
	startTime := time.Now()

	query := strings.TrimSpace(c.PostForm("req"))
	if query == "" {
		h.logger.Info("Blank query received, redirecting to index")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	h.logger.WithField("query", query).Info("Processing question")

	answer, err := h.answers.Ask(c.Request.Context(), query)
	if err != nil {
		h.logger.WithError(err).Error("Failed to answer question")
		c.HTML(http.StatusBadGateway, "error.html", gin.H{"error": err.Error()})
		return
	}

	go h.trackQuery(query, "form", time.Since(startTime))

	c.HTML(http.StatusOK, "hello.html", gin.H{"req": answer})
}

func (h *AskHandler) trackQuery(query, source string, responseTime time.Duration) {
	entry := &models.QueryLog{
		QueryText:      query,
		Source:         source,
		ResponseTimeMs: int(responseTime.Milliseconds()),
	}
	if err := h.queryLog.Create(entry); err != nil {
		h.logger.WithError(err).Error("Failed to track query")
	}
}
