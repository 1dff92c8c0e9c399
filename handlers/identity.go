// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/forkcast/identity"
	"github.com/danielhkuo/forkcast/middleware"
	"github.com/danielhkuo/forkcast/models"
)

type IdentityHandler struct {
	ids *identity.Provider
}

func NewIdentityHandler(ids *identity.Provider) *IdentityHandler {
	return &IdentityHandler{ids: ids}
}

// Issue handles POST /identity
func (h *IdentityHandler) Issue(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusCreated, models.IdentityResponse{
		UserID: h.ids.Issue(),
	})
}

// requireUser pulls the caller identity from the X-User-ID header.
// Writes a 401 and returns false when it is missing or malformed.
func requireUser(w http.ResponseWriter, r *http.Request, ids *identity.Provider) (string, bool) {
	id := r.Header.Get("X-User-ID")
	if id == "" || ids.Validate(id) != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "valid X-User-ID header required")
		return "", false
	}
	return id, true
}
