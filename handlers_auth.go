package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"agrilink/apperr"
	"agrilink/models"

	"golang.org/x/crypto/bcrypt"
)

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// handleRegister creates a new farmer or buyer with bcrypt-hashed password and returns the user.
// Admin accounts are provisioned out of band.
func (a *App) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "username, email, password are required")
		return
	}
	role := req.Role
	if role == "" {
		role = models.RoleFarmer
	}
	if role != models.RoleFarmer && role != models.RoleBuyer {
		writeMessage(w, http.StatusBadRequest, "role must be farmer or buyer")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "hash error")
		return
	}
	u := models.User{
		Username:     req.Username,
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	ctx, cancel := a.timeout(r.Context())
	defer cancel()
	if err := a.users.Insert(ctx, &u); err != nil {
		if errors.Is(err, errEmailTaken) {
			a.writeError(w, r, apperr.Conflict("email already registered"))
			return
		}
		a.writeError(w, r, apperr.Internal("insert user", err))
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// handleLogin verifies credentials and returns a JWT token.
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if !decodeJSON(w, r, &req) {
		return
	}
	ctx, cancel := a.timeout(r.Context())
	defer cancel()

	u, err := a.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		a.writeError(w, r, apperr.Internal("load user", err))
		return
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		writeMessage(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	tok, err := signJWT(a.cfg.JWTSecret, u.ID, u.Role)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "jwt error")
		return
	}
	writeJSON(w, http.StatusOK, tokenResp{Token: tok, Role: u.Role})
}

// handleMe returns the current user's profile (the hash is never serialized).
func (a *App) handleMe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := a.timeout(r.Context())
	defer cancel()

	u, err := a.users.FindByID(ctx, mustUserID(r))
	if err != nil {
		a.writeError(w, r, apperr.Internal("load user", err))
		return
	}
	if u == nil {
		writeMessage(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}
