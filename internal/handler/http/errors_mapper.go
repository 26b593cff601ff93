package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/app"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

type errorResponse struct {
	status  int
	message string
}

var errorStatusMap = map[error]errorResponse{
	service.ErrAuthRequired:    {http.StatusUnauthorized, app.MsgAuthRequired},
	service.ErrNotFound:        {http.StatusNotFound, app.MsgItemNotFound},
	service.ErrEmptyPayload:    {http.StatusBadRequest, app.MsgPayloadRequired},
	service.ErrPayloadTooLarge: {http.StatusRequestEntityTooLarge, app.MsgPayloadTooLarge},
	utils.ErrEmptyBody:         {http.StatusBadRequest, app.MsgPayloadRequired},
	utils.ErrBodyTooLarge:      {http.StatusRequestEntityTooLarge, app.MsgPayloadTooLarge},
}

func statusFromError(err error) errorResponse {
	for target, resp := range errorStatusMap {
		if errors.Is(err, target) {
			return resp
		}
	}
	return errorResponse{http.StatusInternalServerError, app.MsgServerError}
}

// writeError maps err to a status and a fixed message. The error text itself
// never reaches the client. Only 5xx responses are logged at error level.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := statusFromError(err)

	log := logger.FromRequest(r)
	if resp.status >= http.StatusInternalServerError {
		log.Err(err).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", resp.status).Msg("request rejected")
	}

	writeMessage(w, resp.message, resp.status)
}

func writeMessage(w http.ResponseWriter, message string, status int) {
	_, _ = utils.WriteJSON(w, models.MessageResponse{Message: message}, status)
}
