package main

import (
	"net/http"

	"agrilink/models"
)

// handleAskQuestion stores a farmer's question for the admins.
func (a *App) handleAskQuestion(w http.ResponseWriter, r *http.Request) {
	var req askQuestionReq
	if !decodeJSON(w, r, &req) {
		return
	}
	ctx, cancel := a.timeout(r.Context())
	defer cancel()

	q, err := a.questions.Ask(ctx, mustUserID(r), req.Subject, req.Body)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

func (a *App) handleListMyQuestions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := a.timeout(r.Context())
	defer cancel()

	out, err := a.questions.ListMine(ctx, mustUserID(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// handleListQuestions lists every question for admins, optionally ?status=open|answered.
func (a *App) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := a.timeout(r.Context())
	defer cancel()

	out, err := a.questions.ListAll(ctx, models.QuestionStatus(r.URL.Query().Get("status")))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// handleAnswerQuestion records an admin's answer and closes the question.
func (a *App) handleAnswerQuestion(w http.ResponseWriter, r *http.Request) {
	oid, ok := pathID(w, r)
	if !ok {
		return
	}
	var req answerQuestionReq
	if !decodeJSON(w, r, &req) {
		return
	}
	ctx, cancel := a.timeout(r.Context())
	defer cancel()

	q, err := a.questions.Answer(ctx, oid, mustUserID(r), req.Answer)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}
