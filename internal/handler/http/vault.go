// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrAuthRequired)
		return
	}

	_, _ = utils.WriteJSON(w, models.MeResponse{User: identity}, http.StatusOK)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.services.VaultService.List(ctx, utils.GetTokenFromContext(ctx))
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.VaultListResponse{Data: items}, http.StatusOK)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := utils.GetTokenFromContext(ctx)

	body, err := decodeItemRequest(r)
	if err != nil {
		// auth failures take precedence over body errors
		if _, authErr := h.services.AuthService.RequireAuth(ctx, token); authErr != nil {
			writeError(w, r, authErr)
			return
		}
		h.writeDecodeError(w, r, err)
		return
	}

	item, err := h.services.VaultService.Create(ctx, token, body.Payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.VaultItemResponse{Message: app.MsgItemCreated, Data: &item}, http.StatusCreated)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	item, err := h.services.VaultService.Get(ctx, utils.GetTokenFromContext(ctx), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.VaultItemResponse{Data: &item}, http.StatusOK)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := utils.GetTokenFromContext(ctx)

	body, err := decodeItemRequest(r)
	if err != nil {
		if _, authErr := h.services.AuthService.RequireAuth(ctx, token); authErr != nil {
			writeError(w, r, authErr)
			return
		}
		h.writeDecodeError(w, r, err)
		return
	}

	item, err := h.services.VaultService.Update(ctx, token, chi.URLParam(r, "id"), body.Payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.VaultItemResponse{Message: app.MsgItemUpdated, Data: &item}, http.StatusOK)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.services.VaultService.Delete(ctx, utils.GetTokenFromContext(ctx), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, app.MsgItemDeleted, http.StatusOK)
}

func (h *Handler) getSalt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	salt, err := h.services.SaltService.GetSalt(ctx, utils.GetTokenFromContext(ctx))
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.SaltResponse{Salt: hex.EncodeToString(salt)}, http.StatusOK)
}

func decodeItemRequest(r *http.Request) (models.VaultItemRequest, error) {
	var body models.VaultItemRequest
	err := utils.DecodeJSON(r.Body, &body)
	return body, err
}

func (h *Handler) writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, utils.ErrEmptyBody) || errors.Is(err, utils.ErrBodyTooLarge) {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Err(err).Msg(app.MsgInvalidJSON)
	writeMessage(w, app.MsgInvalidJSON, http.StatusBadRequest)
}
