package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkova/reviewbrain/internal/services"
)

const askTemplates = `
{{define "index.html"}}index{{end}}
{{define "hello.html"}}Answer: {{.req}}{{end}}
{{define "error.html"}}Error: {{.error}}{{end}}
`

func newAskRouter(retriever *fakeRetriever, completer *fakeCompleter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewAnswerService(retriever, completer, logrus.New(), 3, 5)
	handler := NewAskHandler(svc, fakeQueryLog{}, logrus.New())

	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.New("").Parse(askTemplates)))
	router.GET("/", handler.HandleIndex)
	router.POST("/hello", handler.HandleAsk)
	return router
}

func postForm(router *gin.Engine, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/hello", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleAsk_BlankQueryRedirects(t *testing.T) {
	retriever := &fakeRetriever{}
	router := newAskRouter(retriever, &fakeCompleter{answer: "unused"})

	w := postForm(router, url.Values{"req": {"   "}})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestHandleAsk_RendersAnswer(t *testing.T) {
	retriever := &fakeRetriever{}
	completer := &fakeCompleter{answer: "try the dark roast"}
	router := newAskRouter(retriever, completer)

	w := postForm(router, url.Values{"req": {"best coffee"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Answer: try the dark roast")
}

func TestHandleAsk_ModelFailureRendersErrorPage(t *testing.T) {
	retriever := &fakeRetriever{}
	completer := &fakeCompleter{err: errors.New("quota exceeded")}
	router := newAskRouter(retriever, completer)

	w := postForm(router, url.Values{"req": {"best coffee"}})

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "quota exceeded")
}

func TestHandleAsk_RetrievalFailureStillAnswers(t *testing.T) {
	retriever := &fakeRetriever{err: errors.New("db down")}
	completer := &fakeCompleter{answer: "best effort answer"}
	router := newAskRouter(retriever, completer)

	w := postForm(router, url.Values{"req": {"best coffee"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "best effort answer")
}

func TestHandleIndex(t *testing.T) {
	router := newAskRouter(&fakeRetriever{}, &fakeCompleter{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "index")
}
