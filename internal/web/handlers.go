package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/JonMunkholm/dashboard/internal/core"
	"github.com/go-chi/chi/v5"
)

const healthTimeout = 2 * time.Second

var (
	routeNotFound = core.UserMessage{
		Message: "No such resource",
		Action:  "Check the path against the published list of routes",
		Code:    "HTTP404",
	}
	methodNotAllowed = core.UserMessage{
		Message: "Only GET is supported",
		Action:  "Retry the request with GET",
		Code:    "HTTP405",
	}
)

// handleList serves every row of res matching the query string filters.
func (s *Server) handleList(res core.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := core.ParseFilter(res, r.URL.Query())
		if err != nil {
			respondError(w, r, err, http.StatusBadRequest)
			return
		}

		records, err := s.service.List(r.Context(), res, f, s.locator(r))
		if err != nil {
			respondError(w, r, err, statusFor(err))
			return
		}

		writeJSON(w, http.StatusOK, records)
	}
}

// handleCountry serves one country by id. An unknown id yields null.
func (s *Server) handleCountry(res core.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := core.ParseCountryID(chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, r, err, http.StatusBadRequest)
			return
		}

		record, err := s.service.Country(r.Context(), res, id, s.locator(r))
		if errors.Is(err, core.ErrNotFound) {
			writeJSON(w, http.StatusOK, nil)
			return
		}
		if err != nil {
			respondError(w, r, err, statusFor(err))
			return
		}

		writeJSON(w, http.StatusOK, record)
	}
}

// handleHealth reports whether the store answers a ping.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		respondError(w, r, &core.StoreUnavailableError{Op: "ping", Err: err}, http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	respondErrorJSON(w, routeNotFound, http.StatusNotFound)
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodGet)
	respondErrorJSON(w, methodNotAllowed, http.StatusMethodNotAllowed)
}

// locator returns the base used for country and sibling links. A configured
// base URL wins; otherwise it is derived from the request as seen by the
// client.
func (s *Server) locator(r *http.Request) core.Locator {
	if s.cfg.API.BaseURL != "" {
		return core.NewLocator(s.cfg.API.BaseURL)
	}
	return core.NewLocator(requestScheme(r) + "://" + r.Host + s.cfg.API.Prefix)
}

func requestScheme(r *http.Request) string {
	if r.URL.Scheme != "" {
		return r.URL.Scheme
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
