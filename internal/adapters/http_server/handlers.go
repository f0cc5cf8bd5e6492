package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_recs/internal/adapters/observability"
	"hotel_recs/internal/app"
	"hotel_recs/internal/domain"
	"hotel_recs/internal/recommend"
)

type Handlers struct {
	R       *app.RecommendService
	C       *app.ChatEngine
	ChatRPS int
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/hotels", h.listHotels)
	s.mux.Get("/v1/cities", h.listCities)
	s.mux.Get("/v1/recommend", h.recommendForm)
	s.mux.Post("/v1/recommend", h.recommendForm)
	s.mux.With(RateLimit(h.ChatRPS)).Post("/v1/chat", h.chat)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.R.Hotels(r.Context())
	if err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "No Data", "hotel data not available")
		return
	}

	etag, body := calcETagAndBody(hotels)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write listHotels body")
	}
}

func (h *Handlers) listCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.R.Cities(r.Context())
	if err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "No Data", "hotel data not available")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cities": cities})
}

// recommendForm serves the structured search: form fields (POST) or query
// parameters (GET) with the same names. Checkbox amenities are hard
// constraints on this path.
func (h *Handlers) recommendForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Form", "could not parse form input")
		return
	}

	pref := recommend.PreferenceFromForm(
		r.Form.Get("location"),
		r.Form.Get("budget"),
		r.Form.Get("stars"),
		r.Form["amenities"],
		r.Form.Get("size"),
	)

	res, err := h.R.RecommendStrict(r.Context(), pref)
	if err != nil {
		if errors.Is(err, domain.ErrNoData) {
			writeProblem(w, http.StatusServiceUnavailable, "No Data", "hotel data not available")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "recommendation pass failed")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	app.ChatReply
}

func (h *Handlers) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "body must be JSON with a message field")
		return
	}
	if req.SessionID == "" {
		req.SessionID = fmt.Sprintf("user_%d", time.Now().UnixNano())
	}

	reply, err := h.C.Handle(r.Context(), req.SessionID, req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrNoData) {
			writeProblem(w, http.StatusServiceUnavailable, "No Data", "hotel data not available")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "chat turn failed")
		return
	}
	observability.ObserveChatTurn(reply.Stage)

	writeJSON(w, http.StatusOK, chatResponse{SessionID: req.SessionID, ChatReply: reply})
}
