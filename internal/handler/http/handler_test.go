package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/internal/validators"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/stretchr/testify/require"
)

var (
	alice = models.Identity{SubjectID: "u-alice", Email: "alice@example.com"}
	bob   = models.Identity{SubjectID: "u-bob", Email: "bob@example.com"}
)

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:  "handler-test-key",
		TokenIssuer:   "go-pass-vault",
		TokenDuration: time.Hour,
		Version:       "1.2.3",
	}
}

// newTestServices wires real services over the given vault storage.
func newTestServices(t *testing.T, vaultStorage store.VaultStorage) *service.Services {
	t.Helper()
	cfg := testAppConfig()
	auth := service.NewAuthService(cfg, logger.Nop())

	appInfo, err := service.NewAppInfoService(cfg, models.NewAppBuildInfo("", "", ""), logger.Nop())
	require.NoError(t, err)

	return &service.Services{
		AuthService:    auth,
		VaultService:   service.NewVaultService(auth, vaultStorage, validators.NewVaultItemValidator(), utils.NewUUIDGenerator(), logger.Nop()),
		SaltService:    service.NewSaltService(auth, store.NewMemoryStorage(), crypto.NewKeyDeriver(), logger.Nop()),
		AppInfoService: appInfo,
	}
}

func newTestRouter(t *testing.T) (http.Handler, *service.Services) {
	t.Helper()
	services := newTestServices(t, store.NewMemoryStorage())
	return NewHandler(services, logger.Nop()).Init(), services
}

func tokenFor(t *testing.T, services *service.Services, identity models.Identity) string {
	t.Helper()
	token, err := services.AuthService.CreateToken(context.Background(), identity)
	require.NoError(t, err)
	return token.SignedString
}

type request struct {
	method string
	path   string
	body   string
	bearer string
	cookie string
}

func do(t *testing.T, h http.Handler, req request) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if req.body != "" {
		body = bytes.NewBufferString(req.body)
	}
	r := httptest.NewRequest(req.method, req.path, body)
	if req.body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	if req.bearer != "" {
		r.Header.Set("Authorization", "Bearer "+req.bearer)
	}
	if req.cookie != "" {
		r.AddCookie(&http.Cookie{Name: tokenCookieName, Value: req.cookie})
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}
