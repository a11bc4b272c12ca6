package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// generation waits on an external model, so it gets more time than plain store I/O.
const suggestTimeout = 60 * time.Second

// handleSuggest returns the farm's crop suggestion, generating it on first request.
func (a *App) handleSuggest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), suggestTimeout)
	defer cancel()

	sug, err := a.suggestions.Suggest(ctx, chi.URLParam(r, "id"), mustUserID(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sug)
}

func (a *App) handleGetSuggestion(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := a.timeout(r.Context())
	defer cancel()

	sug, err := a.suggestions.Get(ctx, chi.URLParam(r, "id"), mustUserID(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sug)
}
