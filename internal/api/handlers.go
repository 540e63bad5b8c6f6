package api

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/vocal-technique/vocaltrans"
	"github.com/vocal-technique/vocaltrans/internal/feedback"
	"github.com/vocal-technique/vocaltrans/internal/observability"
	"github.com/vocal-technique/vocaltrans/internal/sanitize"
)

// ---- JSON types ---------------------------------------------------------

type translateRequest struct {
	Text      string   `json:"text"`
	Intensity *float64 `json:"intensity"`
	Hyphenate *bool    `json:"hyphenate"`
	Uppercase *bool    `json:"uppercase"`
}

type translateResponse struct {
	Result    string  `json:"result"`
	Intensity float64 `json:"intensity"`
	Level     int     `json:"level"`
	LevelName string  `json:"levelName"`
}

type wordJSON struct {
	Original  string   `json:"original"`
	Result    string   `json:"result"`
	Syllables []string `json:"syllables"`
	Exception bool     `json:"exception"`
}

type translateWordsResponse struct {
	Level     int        `json:"level"`
	LevelName string     `json:"levelName"`
	Words     []wordJSON `json:"words"`
}

type syllableJSON struct {
	Text    string `json:"text"`
	Kind    string `json:"kind"`
	Onset   string `json:"onset,omitempty"`
	Nucleus string `json:"nucleus,omitempty"`
	Coda    string `json:"coda,omitempty"`
	SilentE bool   `json:"silentE,omitempty"`
}

type syllablesResponse struct {
	Word      string         `json:"word"`
	Prefix    string         `json:"prefix,omitempty"`
	Root      string         `json:"root"`
	Suffix    string         `json:"suffix,omitempty"`
	Compound  bool           `json:"compound"`
	Syllables []syllableJSON `json:"syllables"`
}

type intensityResponse struct {
	Value     float64 `json:"value"`
	Level     int     `json:"level"`
	LevelName string  `json:"levelName"`
}

type feedbackResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// ---- handlers -----------------------------------------------------------

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readTranslateRequest decodes and cleans a translate body. On failure the
// error response has already been written.
func (s *server) readTranslateRequest(w http.ResponseWriter, r *http.Request) (string, float64, vocaltrans.Options, bool) {
	var body translateRequest
	if err := decodeJSON(w, r, s.maxBody, &body); err != nil {
		writeDecodeError(w, err)
		return "", 0, vocaltrans.Options{}, false
	}
	text := sanitize.Text(body.Text)
	if strings.TrimSpace(text) == "" {
		writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'text' field")
		return "", 0, vocaltrans.Options{}, false
	}
	if len(text) > s.maxText {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("text exceeds %d bytes", s.maxText))
		return "", 0, vocaltrans.Options{}, false
	}

	intensity := s.intensity
	if body.Intensity != nil {
		intensity = *body.Intensity
	}
	opts := s.defaults
	if body.Hyphenate != nil {
		opts.Hyphenate = *body.Hyphenate
	}
	if body.Uppercase != nil {
		opts.Uppercase = *body.Uppercase
	}
	return text, intensity, opts, true
}

func (s *server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	text, intensity, opts, ok := s.readTranslateRequest(w, r)
	if !ok {
		return
	}
	res := s.tr.Analyze(text, intensity, opts)
	writeJSON(w, http.StatusOK, translateResponse{
		Result:    res.String(),
		Intensity: intensity,
		Level:     int(res.Level),
		LevelName: res.Level.String(),
	})
}

func (s *server) handleTranslateWords(w http.ResponseWriter, r *http.Request) {
	text, intensity, opts, ok := s.readTranslateRequest(w, r)
	if !ok {
		return
	}
	res := s.tr.Analyze(text, intensity, opts)
	words := res.Words()
	out := make([]wordJSON, 0, len(words))
	for _, wr := range words {
		out = append(out, wordJSON{
			Original:  wr.Original,
			Result:    wr.Text(opts.Hyphenate),
			Syllables: wr.Syllables,
			Exception: wr.Exception,
		})
	}
	writeJSON(w, http.StatusOK, translateWordsResponse{
		Level:     int(res.Level),
		LevelName: res.Level.String(),
		Words:     out,
	})
}

func (s *server) handleSyllables(w http.ResponseWriter, r *http.Request) {
	word := strings.TrimSpace(sanitize.Line(r.URL.Query().Get("word")))
	if word == "" {
		writeError(w, http.StatusBadRequest, "missing 'word' query parameter")
		return
	}
	m, syls := s.tr.Breakdown(word)
	if len(syls) == 0 {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("%q has no syllables to show", word))
		return
	}
	out := make([]syllableJSON, 0, len(syls))
	for _, syl := range syls {
		out = append(out, syllableJSON{
			Text:    syl.Text,
			Kind:    syl.Kind.String(),
			Onset:   syl.Onset,
			Nucleus: syl.Nucleus,
			Coda:    syl.Coda,
			SilentE: syl.SilentE,
		})
	}
	writeJSON(w, http.StatusOK, syllablesResponse{
		Word:      word,
		Prefix:    m.Prefix,
		Root:      m.Root,
		Suffix:    m.Suffix,
		Compound:  m.Compound,
		Syllables: out,
	})
}

func (s *server) handleIntensity(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("value")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "missing 'value' query parameter")
		return
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("'value' must be a number, got %q", raw))
		return
	}
	level := vocaltrans.ResolveIntensity(v)
	writeJSON(w, http.StatusOK, intensityResponse{Value: v, Level: int(level), LevelName: level.String()})
}

func (s *server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if s.feedback == nil {
		writeError(w, http.StatusNotFound, "feedback is disabled")
		return
	}
	var fb feedback.Feedback
	if err := decodeJSON(w, r, s.maxBody, &fb); err != nil {
		writeDecodeError(w, err)
		return
	}
	fb.UserAgent = r.UserAgent()
	fb.IP = clientIP(r)

	saved, err := s.feedback.Submit(r.Context(), fb)
	if err != nil {
		var verr *feedback.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid feedback", Fields: verr.Fields})
			return
		}
		observability.FromContext(r.Context()).Error("feedback save failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to submit feedback")
		return
	}
	writeJSON(w, http.StatusOK, feedbackResponse{Success: true, ID: saved.ID})
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
