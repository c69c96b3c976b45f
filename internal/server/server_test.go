package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/talenthub/internal/attempt"
	"github.com/abhisek/talenthub/internal/paper"
	"github.com/abhisek/talenthub/internal/render"
)

func newTestServer() *Server {
	return New(Options{Version: "1.2.3", Render: render.DefaultOptions()})
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(v))
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got HealthResponse
	decodeBody(t, rec, &got)
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, "1.2.3", got.Version)
	assert.False(t, got.Timestamp.IsZero())
}

func TestTypes(t *testing.T) {
	s := newTestServer()
	rec := do(t, s, http.MethodGet, "/v1/types", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []TypeInfo
	decodeBody(t, rec, &got)
	require.NotEmpty(t, got)
	assert.Equal(t, "addition", string(got[0].Type))
	assert.Equal(t, "Addition", got[0].Name)
	require.Len(t, got[0].Fields, 3)
	assert.Equal(t, "count", string(got[0].Fields[0].Field))
	assert.Equal(t, "digits", string(got[0].Fields[1].Field))
	require.NotNil(t, got[0].Fields[1].Default)
	assert.Equal(t, 2, *got[0].Fields[1].Default)

	rec = do(t, s, http.MethodGet, "/v1/types/lcm", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, "/v1/types/juggling", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTitle(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodPost, "/v1/title", `{"type":"addition","count":10,"constraints":{"digits":2,"rows":3}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var got TitleResponse
	decodeBody(t, rec, &got)
	assert.Equal(t, "Addition 2D 3R", got.Title)

	rec = do(t, s, http.MethodPost, "/v1/title", `{"type":"juggling"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, s, http.MethodPost, "/v1/title", `{"type":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidate(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodPost, "/v1/validate", `{"level":"Custom","title":"x","blocks":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var got ValidateResponse
	decodeBody(t, rec, &got)
	assert.False(t, got.Valid)
	assert.Equal(t, paper.ErrNoBlocks.Error(), got.Message)

	body := `{"level":"Custom","blocks":[{"id":"b1","type":"addition","count":10,"constraints":{"digits":99,"rows":3}}]}`
	rec = do(t, s, http.MethodPost, "/v1/validate", body)
	got = ValidateResponse{}
	decodeBody(t, rec, &got)
	assert.False(t, got.Valid)
	assert.Equal(t, "Maximum value for Digits is 10", got.Errors["b1"]["digits"])

	body = `{"level":"Custom","blocks":[{"id":"b1","type":"addition","count":10,"constraints":{"digits":3,"rows":3}}]}`
	rec = do(t, s, http.MethodPost, "/v1/validate", body)
	got = ValidateResponse{}
	decodeBody(t, rec, &got)
	assert.True(t, got.Valid)
	assert.Empty(t, got.Errors)
}

func TestResolve(t *testing.T) {
	s := newTestServer()

	body := `{"level":"Custom","title":"","blocks":[{"id":"b1","type":"addition","count":10,"constraints":{"digits":3,"rows":-1}}]}`
	rec := do(t, s, http.MethodPost, "/v1/resolve", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var got paper.Config
	decodeBody(t, rec, &got)
	assert.Equal(t, paper.DefaultTitle, got.Title)
	assert.Equal(t, "20", got.TotalQuestions)
	require.Len(t, got.Blocks, 1)
	_, hasRows := got.Blocks[0].Constraints["rows"]
	assert.False(t, hasRows)

	rec = do(t, s, http.MethodPost, "/v1/resolve", `{"level":"Custom","blocks":[]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRender(t *testing.T) {
	s := newTestServer()

	body := `{"showAnswer":true,"questions":[
		{"id":1,"operands":[123,45],"operator":"±","operators":["+"],"answer":16.8,"isVertical":true},
		{"id":2,"text":"√144 =","operands":[144],"operator":"√","answer":12}
	]}`
	rec := do(t, s, http.MethodPost, "/v1/render", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var got RenderResponse
	decodeBody(t, rec, &got)
	require.Len(t, got.Questions, 2)

	assert.Equal(t, render.KindDecimalColumn.String(), got.Questions[0].Kind)
	assert.Equal(t, []string{"12.3", "+ 4.5"}, got.Questions[0].Lines)
	assert.Equal(t, "16.8", got.Questions[0].Answer)

	assert.Equal(t, render.KindText.String(), got.Questions[1].Kind)
	assert.Equal(t, "12", got.Questions[1].Answer)
}

func TestRenderHidesAnswers(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/render",
		`{"questions":[{"id":1,"operands":[3,4],"operator":"+","answer":7}]}`)
	var got RenderResponse
	decodeBody(t, rec, &got)
	require.Len(t, got.Questions, 1)
	assert.Empty(t, got.Questions[0].Answer)
}

func TestScoreAndMetrics(t *testing.T) {
	s := newTestServer()

	body := `{"questions":[{"id":1,"answer":5},{"id":2,"answer":7},{"id":3,"answer":2.5}],
		"answers":{"1":" 5 ","2":"seven","3":"2.505"}}`
	rec := do(t, s, http.MethodPost, "/v1/score", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var got attempt.Result
	decodeBody(t, rec, &got)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 2, got.Correct)
	assert.Equal(t, 1, got.Wrong)
	assert.Equal(t, 20, got.Score)
	require.Len(t, got.PerQuestion, 3)
	assert.False(t, got.PerQuestion[1].Answered)

	rec = do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	text := rec.Body.String()
	assert.Contains(t, text, "talenthub_attempts_scored_total 1")
	assert.Contains(t, text, `talenthub_answers_scored_total{verdict="correct"} 2`)
	assert.Contains(t, text, `talenthub_http_requests_total{method="POST",route="/v1/score",status="200"} 1`)
}

// brokenWriter accepts headers but fails every body write.
type brokenWriter struct{ *httptest.ResponseRecorder }

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestWriteJSONLogsFailedWrites(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s := New(Options{Logger: zap.New(core)})

	s.writeJSON(brokenWriter{httptest.NewRecorder()}, http.StatusOK, TitleResponse{Title: "Addition 2D 3R"})

	entries := logs.FilterMessage("write response failed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.Equal(t, "connection reset", fields["error"])
}
