package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkova/reviewbrain/internal/models"
	"github.com/avolkova/reviewbrain/internal/services"
)

type fakeRetriever struct {
	records []models.ReviewRecord
	err     error
}

func (f *fakeRetriever) Search(context.Context, models.SearchFilter) ([]models.ReviewRecord, error) {
	return f.records, f.err
}

type fakeCompleter struct {
	answer string
	err    error
}

func (f *fakeCompleter) Complete(context.Context, string) (string, error) {
	return f.answer, f.err
}

type fakeQueryLog struct{}

func (fakeQueryLog) Create(*models.QueryLog) error            { return nil }
func (fakeQueryLog) GetRecent(int) ([]models.QueryLog, error) { return nil, nil }

func newSearchRouter(retriever *fakeRetriever) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewAnswerService(retriever, &fakeCompleter{}, logrus.New(), 3, 5)
	handler := NewSearchHandler(svc, fakeQueryLog{}, logrus.New())

	router := gin.New()
	router.POST("/api/search", handler.HandleSearch)
	router.GET("/api/queries/recent", handler.HandleRecentQueries)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleSearch_Success(t *testing.T) {
	retriever := &fakeRetriever{records: []models.ReviewRecord{
		{Score: 5, Summary: "Great", Text: "Great dark roast", Distance: 0.12,
			ReviewLength: models.ReviewLengthShort, ScoreCategory: models.ScoreCategoryHigh},
	}}
	router := newSearchRouter(retriever)

	w := postJSON(t, router, "/api/search", gin.H{"query": "best coffee"})

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 5, resp.Results[0].Score)
	assert.Equal(t, "High Score", resp.Results[0].ScoreCategory)
}

func TestHandleSearch_EmptyResultsIsArray(t *testing.T) {
	router := newSearchRouter(&fakeRetriever{})

	w := postJSON(t, router, "/api/search", gin.H{"query": "best coffee"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"results": []}`, w.Body.String())
}

func TestHandleSearch_MissingQuery(t *testing.T) {
	router := newSearchRouter(&fakeRetriever{})

	w := postJSON(t, router, "/api/search", gin.H{"keyword": "espresso"})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestHandleSearch_OutOfRangeValuesRejected(t *testing.T) {
	router := newSearchRouter(&fakeRetriever{})

	cases := []gin.H{
		{"query": "q", "min_score": 9},
		{"query": "q", "min_score": -1},
		{"query": "q", "max_results": 0},
		{"query": "q", "max_results": -5},
	}
	for i, body := range cases {
		w := postJSON(t, router, "/api/search", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "case %d", i)
	}
}

func TestHandleSearch_ExplicitZeroMinScoreAllowed(t *testing.T) {
	router := newSearchRouter(&fakeRetriever{})

	w := postJSON(t, router, "/api/search", gin.H{"query": "q", "min_score": 0})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleRecentQueries_EmptyIsArray(t *testing.T) {
	router := newSearchRouter(&fakeRetriever{})

	req := httptest.NewRequest(http.MethodGet, "/api/queries/recent", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"queries": []}`, w.Body.String())
}

func TestHandleRecentQueries_InvalidLimit(t *testing.T) {
	router := newSearchRouter(&fakeRetriever{})

	for _, limit := range []string{"0", "-3", "101", "ten"} {
		req := httptest.NewRequest(http.MethodGet, "/api/queries/recent?limit="+limit, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "limit %q", limit)
	}
}

func TestHandleSearch_RetrievalFailure(t *testing.T) {
	router := newSearchRouter(&fakeRetriever{err: errors.New("connection reset")})

	w := postJSON(t, router, "/api/search", gin.H{"query": "best coffee"})

	require.Equal(t, http.StatusBadGateway, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "search failed", resp.Error)
}
