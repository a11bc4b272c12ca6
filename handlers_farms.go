package main

import (
	"net/http"

	"agrilink/farms"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// pathID parses the {id} URL param, answering 400 itself when malformed.
func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "bad id")
		return primitive.NilObjectID, false
	}
	return oid, true
}

func (a *App) handleCreateFarm(w http.ResponseWriter, r *http.Request) {
	var in farms.Input
	if !decodeJSON(w, r, &in) {
		return
	}
	ctx, cancel := a.timeout(r.Context())
	defer cancel()

	f, err := a.farms.Create(ctx, mustUserID(r), in)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

// handleListFarms returns the current farmer's farms, newest first.
func (a *App) handleListFarms(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := a.timeout(r.Context())
	defer cancel()

	out, err := a.farms.List(ctx, mustUserID(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *App) handleGetFarm(w http.ResponseWriter, r *http.Request) {
	oid, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx, cancel := a.timeout(r.Context())
	defer cancel()

	f, err := a.farms.Get(ctx, oid, mustUserID(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// handleUpdateFarm applies the provided fields only.
func (a *App) handleUpdateFarm(w http.ResponseWriter, r *http.Request) {
	oid, ok := pathID(w, r)
	if !ok {
		return
	}
	var in farms.Input
	if !decodeJSON(w, r, &in) {
		return
	}
	ctx, cancel := a.timeout(r.Context())
	defer cancel()

	f, err := a.farms.Update(ctx, oid, mustUserID(r), in)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (a *App) handleDeleteFarm(w http.ResponseWriter, r *http.Request) {
	oid, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx, cancel := a.timeout(r.Context())
	defer cancel()

	if err := a.farms.Delete(ctx, oid, mustUserID(r)); err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bson.M{"ok": true})
}
