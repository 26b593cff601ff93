// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/app"
)

// routeNotFound is registered both as the router's NotFound and
// MethodNotAllowed handler, so an unsupported method on a known path is
// indistinguishable from an unknown path.
func routeNotFound(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, app.MsgRouteNotFound, http.StatusNotFound)
}
