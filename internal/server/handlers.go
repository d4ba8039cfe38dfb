package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/marco/movieDeck/internal/browse"
	"github.com/marco/movieDeck/internal/catalog"
	"github.com/marco/movieDeck/internal/pagination"
	"github.com/marco/movieDeck/internal/view"
)

type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes data with the given status
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("failed to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		s.logger.Debug("failed to write response", "error", err)
	}
}

// respondError maps err to a status and a localized message. The cause is
// logged, never sent.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, upstreamMsg string) {
	msgs := s.svc.Messages()
	status, msg := http.StatusBadGateway, upstreamMsg

	switch {
	case errors.Is(err, catalog.ErrUnknownCategory):
		status, msg = http.StatusNotFound, msgs.UnknownCategory
	case errors.Is(err, catalog.ErrNotFound):
		status, msg = http.StatusNotFound, msgs.NotFound
	case errors.Is(err, errBadRequest), errors.Is(err, pagination.ErrOutOfRange):
		status, msg = http.StatusBadRequest, msgs.InvalidRequest
	}

	level := s.logger.Warn
	if status < http.StatusInternalServerError {
		level = s.logger.Debug
	}
	level("request failed",
		"request_id", chimiddleware.GetReqID(r.Context()),
		"path", r.URL.Path,
		"status", status,
		"error", err,
	)
	s.respondJSON(w, status, errorResponse{Error: msg})
}

var errBadRequest = errors.New("bad request")

func parseKind(r *http.Request) (catalog.Kind, error) {
	kind, err := catalog.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		return "", errors.Join(errBadRequest, err)
	}
	return kind, nil
}

func parsePositive(raw, name string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.Join(errBadRequest, errors.New("invalid "+name+" "+strconv.Quote(raw)))
	}
	return n, nil
}

func parseItemKey(r *http.Request) (browse.ItemKey, error) {
	kind, err := parseKind(r)
	if err != nil {
		return browse.ItemKey{}, err
	}
	id, err := parsePositive(chi.URLParam(r, "id"), "id")
	if err != nil {
		return browse.ItemKey{}, err
	}
	return browse.ItemKey{Kind: kind, ID: id}, nil
}

// parsePage reads ?page=, defaulting to 1 and rejecting pages past browse.MaxPages.
func parsePage(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := parsePositive(raw, "page")
	if err != nil {
		return 0, err
	}
	if page > browse.MaxPages {
		return 0, errors.Join(errBadRequest, pagination.ErrOutOfRange)
	}
	return page, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenres(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.svc.Genres())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		s.respondJSON(w, http.StatusOK, []view.SearchHit{})
		return
	}
	hits, err := s.svc.Search(r.Context(), q)
	if err != nil {
		s.respondError(w, r, err, s.svc.Messages().SearchFailed)
		return
	}
	s.respondJSON(w, http.StatusOK, hits)
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	kind, err := parseKind(r)
	if err != nil {
		s.respondError(w, r, err, "")
		return
	}
	cards, err := s.svc.Trending(r.Context(), kind)
	if err != nil {
		s.respondError(w, r, err, s.svc.Messages().GridFailed)
		return
	}
	s.respondJSON(w, http.StatusOK, cards)
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	kind, err := parseKind(r)
	if err != nil {
		s.respondError(w, r, err, "")
		return
	}
	page, err := parsePage(r)
	if err != nil {
		s.respondError(w, r, err, "")
		return
	}
	grid, err := s.svc.Category(r.Context(), browse.PageKey{
		Kind:     kind,
		Category: chi.URLParam(r, "category"),
		Page:     page,
	})
	if err != nil {
		s.respondError(w, r, err, s.svc.Messages().GridFailed)
		return
	}
	s.respondJSON(w, http.StatusOK, grid)
}

func (s *Server) handleGenre(w http.ResponseWriter, r *http.Request) {
	kind, err := parseKind(r)
	if err != nil {
		s.respondError(w, r, err, "")
		return
	}
	genreID, err := parsePositive(chi.URLParam(r, "genreID"), "genre")
	if err != nil {
		s.respondError(w, r, err, "")
		return
	}
	page, err := parsePage(r)
	if err != nil {
		s.respondError(w, r, err, "")
		return
	}
	grid, err := s.svc.Genre(r.Context(), browse.GenreKey{Kind: kind, GenreID: genreID, Page: page})
	if err != nil {
		s.respondError(w, r, err, s.svc.Messages().GridFailed)
		return
	}
	s.respondJSON(w, http.StatusOK, grid)
}

func (s *Server) handleHero(w http.ResponseWriter, r *http.Request) {
	key, err := parseItemKey(r)
	if err != nil {
		s.respondError(w, r, err, "")
		return
	}
	hero, err := s.svc.Hero(r.Context(), key)
	if err != nil {
		s.respondError(w, r, err, s.svc.Messages().HeroFailed)
		return
	}
	s.respondJSON(w, http.StatusOK, hero)
}

func (s *Server) handleCredits(w http.ResponseWriter, r *http.Request) {
	key, err := parseItemKey(r)
	if err != nil {
		s.respondError(w, r, err, "")
		return
	}
	credits, err := s.svc.Credits(r.Context(), key)
	if err != nil {
		s.respondError(w, r, err, s.svc.Messages().CreditsFailed)
		return
	}
	s.respondJSON(w, http.StatusOK, credits)
}

func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	key, err := parseItemKey(r)
	if err != nil {
		s.respondError(w, r, err, "")
		return
	}
	meta, err := s.svc.Metadata(r.Context(), key)
	if err != nil {
		s.respondError(w, r, err, s.svc.Messages().MetadataFailed)
		return
	}
	s.respondJSON(w, http.StatusOK, meta)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	key, err := parseItemKey(r)
	if err != nil {
		s.respondError(w, r, err, "")
		return
	}
	cards, err := s.svc.Recommendations(r.Context(), key)
	if err != nil {
		s.respondError(w, r, err, s.svc.Messages().RecommendationsFailed)
		return
	}
	s.respondJSON(w, http.StatusOK, cards)
}
