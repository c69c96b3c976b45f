package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/abhisek/talenthub/internal/attempt"
	"github.com/abhisek/talenthub/internal/blocks"
	"github.com/abhisek/talenthub/internal/paper"
	"github.com/abhisek/talenthub/internal/render"
)

const maxBodyBytes = 1 << 20

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// FieldInfo describes one editable field of a type.
type FieldInfo struct {
	Field    blocks.Field `json:"field"`
	Label    string       `json:"label"`
	Min      int          `json:"min"`
	Max      int          `json:"max"`
	Default  *int         `json:"default,omitempty"`
	Optional bool         `json:"optional,omitempty"`
}

// TypeInfo is one registry entry.
type TypeInfo struct {
	Type   blocks.OpType `json:"type"`
	Name   string        `json:"name"`
	Vedic  bool          `json:"vedic"`
	Fields []FieldInfo   `json:"fields"`
}

// TitleResponse is the body of /v1/title.
type TitleResponse struct {
	Title string `json:"title"`
}

// ValidateResponse is the body of /v1/validate.
type ValidateResponse struct {
	Valid   bool                               `json:"valid"`
	Message string                             `json:"message,omitempty"`
	Errors  map[string]map[blocks.Field]string `json:"errors,omitempty"`
}

// RenderRequest is the body accepted by /v1/render.
type RenderRequest struct {
	Questions  []paper.Question `json:"questions"`
	ShowAnswer bool             `json:"showAnswer"`
}

// RenderedQuestion is one laid-out question.
type RenderedQuestion struct {
	ID     int      `json:"id"`
	Kind   string   `json:"kind"`
	Lines  []string `json:"lines"`
	Answer string   `json:"answer,omitempty"`
	Text   string   `json:"text"`
}

// RenderResponse is the body of /v1/render.
type RenderResponse struct {
	Questions []RenderedQuestion `json:"questions"`
}

// ScoreRequest is the body accepted by /v1/score. Answers are raw text
// keyed by question id; text that is not a number counts as unanswered.
type ScoreRequest struct {
	Questions []paper.Question `json:"questions"`
	Answers   map[int]string   `json:"answers"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   s.version,
	})
}

func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	out := make([]TypeInfo, 0, len(blocks.AllTypes()))
	for _, t := range blocks.AllTypes() {
		if info, ok := typeInfo(t); ok {
			out = append(out, info)
		}
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleType(w http.ResponseWriter, r *http.Request) {
	info, ok := typeInfo(blocks.OpType(chi.URLParam(r, "type")))
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown operation type")
		return
	}
	s.writeJSON(w, http.StatusOK, info)
}

func typeInfo(t blocks.OpType) (TypeInfo, bool) {
	spec, ok := blocks.Lookup(t)
	if !ok {
		return TypeInfo{}, false
	}
	info := TypeInfo{Type: t, Name: spec.Name, Vedic: t.IsVedic()}
	for _, fs := range spec.Editable() {
		fi := FieldInfo{Field: fs.Field, Label: fs.Label, Min: fs.Min, Max: fs.Max, Optional: fs.Optional}
		if fs.HasDefault() {
			d := fs.Default
			fi.Default = &d
		}
		info.Fields = append(info.Fields, fi)
	}
	return info, true
}

func (s *Server) handleTitle(w http.ResponseWriter, r *http.Request) {
	var b blocks.Block
	if !s.decode(w, r, &b) {
		return
	}
	if !b.Type.Valid() {
		s.writeError(w, http.StatusUnprocessableEntity, "unknown operation type")
		return
	}
	s.writeJSON(w, http.StatusOK, TitleResponse{Title: blocks.DeriveTitle(b)})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var c paper.Config
	if !s.decode(w, r, &c) {
		return
	}
	st, err := paper.Validate(c)
	resp := ValidateResponse{Valid: err == nil}
	if err != nil {
		resp.Message = err.Error()
		for _, b := range st.Blocks() {
			if fe := st.FieldErrors(b.ID); len(fe) > 0 {
				if resp.Errors == nil {
					resp.Errors = map[string]map[blocks.Field]string{}
				}
				resp.Errors[b.ID] = fe
			}
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var c paper.Config
	if !s.decode(w, r, &c) {
		return
	}
	if _, err := paper.Validate(c); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, paper.ResolveForSubmit(c))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if !s.decode(w, r, &req) {
		return
	}
	opts := s.render
	opts.ShowAnswer = req.ShowAnswer

	out := RenderResponse{Questions: make([]RenderedQuestion, 0, len(req.Questions))}
	for _, q := range req.Questions {
		l := render.Render(q, opts)
		rq := RenderedQuestion{ID: q.ID, Kind: l.Kind.String(), Text: l.String()}
		for _, line := range l.Lines {
			rq.Lines = append(rq.Lines, line.String())
		}
		if req.ShowAnswer {
			rq.Answer = l.Answer
		}
		out.Questions = append(out.Questions, rq)
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if !s.decode(w, r, &req) {
		return
	}
	answers := make(map[int]float64, len(req.Answers))
	for id, raw := range req.Answers {
		if v, ok := attempt.ParseAnswer(raw); ok {
			answers[id] = v
		}
	}
	res := attempt.Score(req.Questions, answers)
	s.metrics.ObserveResult(res)
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		s.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warn("write response failed", zap.Int("status", statusCode), zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSON(w, statusCode, errorResponse{Error: message})
}
