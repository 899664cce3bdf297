// internal/services/answer.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/avolkova/reviewbrain/internal/models"
)

var (
	// ErrEmptyQuery is returned before any collaborator is called; the
	// web layer redirects back to the form on it.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrModelInvocation marks completion failures. Unlike retrieval
	// failures these are fatal to the request.
	ErrModelInvocation = errors.New("model invocation failed")
)

const answerPromptTemplate = `Based on the following information:

%s

Answer the user's question: %s`

// Retriever fetches reviews matching a filter, best match first.
type Retriever interface {
	Search(ctx context.Context, filter models.SearchFilter) ([]models.ReviewRecord, error)
}

// Completer turns a prompt into a completion.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AnswerService ties retrieval, context assembly and model invocation
// together. Retrieval failures degrade to an uncontextualized answer;
// model failures are surfaced.
type AnswerService struct {
	retriever      Retriever
	llm            Completer
	logger         *logrus.Logger
	contextResults int
	defaultResults int
}

func NewAnswerService(retriever Retriever, llm Completer, logger *logrus.Logger, contextResults, defaultResults int) *AnswerService {
	if contextResults <= 0 {
		contextResults = 3
	}
	if defaultResults <= 0 {
		defaultResults = models.DefaultMaxResults
	}
	return &AnswerService{
		retriever:      retriever,
		llm:            llm,
		logger:         logger,
		contextResults: contextResults,
		defaultResults: defaultResults,
	}
}

// NewFilter returns a default filter for the programmatic search path,
// using the service's configured result cap.
func (s *AnswerService) NewFilter(query string) models.SearchFilter {
	filter := models.NewSearchFilter(query)
	filter.MaxResults = s.defaultResults
	return filter
}

// Ask answers a raw user query, augmenting the prompt with retrieved
// review context when retrieval succeeds and yields records.
func (s *AnswerService) Ask(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}

	filter := models.NewSearchFilter(query)
	filter.MaxResults = s.contextResults

	prompt := query
	records, err := s.retriever.Search(ctx, filter)
	if err != nil {
		s.logger.WithError(err).Warn("Context retrieval failed, answering without review context")
	} else if block, ok := BuildContextBlock(records); ok {
		prompt = fmt.Sprintf(answerPromptTemplate, block, query)
	}

	answer, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrModelInvocation, err)
	}

	return answer, nil
}

// Search is the programmatic retrieval entry point. The filter is
// validated first; out-of-range values are rejected, not clamped.
func (s *AnswerService) Search(ctx context.Context, filter models.SearchFilter) ([]models.ReviewRecord, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.retriever.Search(ctx, filter)
}
