// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/rs/zerolog"
)

// tokenCookieName is the cookie carrying the session token.
const tokenCookieName = "token"

// withSessionToken stores the raw session token in the request context. When
// the token verifies, the identity is stored as well and the request logger
// gains an owner_id field. Requests are never rejected here.
func (h *Handler) withSessionToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token := tokenFromRequest(r)
		ctx = utils.ContextWithToken(ctx, token)

		if identity, ok := h.services.AuthService.VerifyToken(ctx, token); ok {
			ctx = utils.ContextWithIdentity(ctx, identity)

			l := logger.FromContext(ctx).GetChildLogger()
			l.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("owner_id", identity.SubjectID)
			})
			ctx = l.WithContext(ctx)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenFromRequest reads the "token" cookie and falls back to an
// "Authorization: Bearer" header. It returns "" if neither is usable.
func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(tokenCookieName); err == nil {
		if v := strings.TrimSpace(c.Value); v != "" {
			return v
		}
	}

	if header := r.Header.Get("Authorization"); header != "" {
		if token, err := utils.ParseBearerToken(header); err == nil {
			return token
		}
	}

	return ""
}
