package main

import (
	"net/http"
	"strconv"

	"agrilink/conditions"
	"agrilink/models"

	"go.mongodb.org/mongo-driver/bson"
)

// handleCreateReport records a field observation and returns it with its recommendation.
func (a *App) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	var req createReportReq
	if !decodeJSON(w, r, &req) {
		return
	}
	ctx, cancel := a.timeout(r.Context())
	defer cancel()

	rep, err := a.reports.Create(ctx, mustUserID(r), conditions.CreateInput{
		FarmID: req.Farm,
		Photo:  req.Photo,
		Observation: models.Observation{
			WeatherType:     req.WeatherType,
			SoilType:        req.SoilType,
			PlantStatus:     req.PlantStatus,
			AdditionalNotes: req.AdditionalNotes,
		},
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rep)
}

// handleListReports supports ?status=&page=&limit=.
func (a *App) handleListReports(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)

	ctx, cancel := a.timeout(r.Context())
	defer cancel()

	out, err := a.reports.List(ctx, mustUserID(r), models.ReportStatus(q.Get("status")), page, limit)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *App) handleGetReport(w http.ResponseWriter, r *http.Request) {
	oid, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx, cancel := a.timeout(r.Context())
	defer cancel()

	rep, err := a.reports.Get(ctx, oid, mustUserID(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (a *App) handleUpdateReportStatus(w http.ResponseWriter, r *http.Request) {
	oid, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateStatusReq
	if !decodeJSON(w, r, &req) {
		return
	}
	ctx, cancel := a.timeout(r.Context())
	defer cancel()

	rep, err := a.reports.UpdateStatus(ctx, oid, mustUserID(r), req.Status)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (a *App) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	oid, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx, cancel := a.timeout(r.Context())
	defer cancel()

	if err := a.reports.Delete(ctx, oid, mustUserID(r)); err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bson.M{"ok": true})
}

func (a *App) handleReportStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := a.timeout(r.Context())
	defer cancel()

	st, err := a.reports.Stats(ctx, mustUserID(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
