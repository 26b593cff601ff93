package adapter

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/go-resty/resty/v2"
)

const (
	pathMe      = "/api/auth/me"
	pathVault   = "/api/vault"
	pathItem    = "/api/vault/{id}"
	pathSalt    = "/api/vault/salt"
	pathVersion = "/api/version"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP implementation of [ServerAdapter].
// The base URL is taken from cfg.HTTPAddress; a missing scheme defaults to
// http. cfg.Token, when set, becomes the initial session token.
func NewHTTPServerAdapter(cfg config.ClientAdapter, log *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	a := &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: log,
	}
	a.SetToken(cfg.Token)

	a.client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		a.logger.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Dur("duration", resp.Time()).
			Msg("server response")
		return nil
	})

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.Identity, error) {
	var me models.MeResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&me).
		Get(pathMe)
	if err != nil {
		return models.Identity{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Identity{}, err
	}

	return me.User, nil
}

func (h *httpServerAdapter) GetSalt(ctx context.Context) ([]byte, error) {
	var sr models.SaltResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&sr).
		Get(pathSalt)
	if err != nil {
		return nil, fmt.Errorf("salt request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	salt, err := hex.DecodeString(sr.Salt)
	if err != nil || len(salt) == 0 {
		return nil, fmt.Errorf("%w: salt is not valid hex", ErrInvalidResponse)
	}

	return salt, nil
}

func (h *httpServerAdapter) ListItems(ctx context.Context) ([]models.VaultItem, error) {
	var list models.VaultListResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&list).
		Get(pathVault)
	if err != nil {
		return nil, fmt.Errorf("list request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return list.Data, nil
}

func (h *httpServerAdapter) GetItem(ctx context.Context, id string) (models.VaultItem, error) {
	var ir models.VaultItemResponse

	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id).
		SetResult(&ir).
		Get(pathItem)
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("get item request: %w", err)
	}

	return itemFromResponse(resp, ir)
}

func (h *httpServerAdapter) CreateItem(ctx context.Context, payload models.EncryptedBlob) (models.VaultItem, error) {
	var ir models.VaultItemResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.VaultItemRequest{Payload: payload}).
		SetResult(&ir).
		Post(pathVault)
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("create item request: %w", err)
	}

	return itemFromResponse(resp, ir)
}

func (h *httpServerAdapter) UpdateItem(ctx context.Context, id string, payload models.EncryptedBlob) (models.VaultItem, error) {
	var ir models.VaultItemResponse

	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id).
		SetHeader("Content-Type", "application/json").
		SetBody(models.VaultItemRequest{Payload: payload}).
		SetResult(&ir).
		Put(pathItem)
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("update item request: %w", err)
	}

	return itemFromResponse(resp, ir)
}

func (h *httpServerAdapter) DeleteItem(ctx context.Context, id string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id).
		Delete(pathItem)
	if err != nil {
		return fmt.Errorf("delete item request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get(pathVersion)
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(string(resp.Body())), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func itemFromResponse(resp *resty.Response, ir models.VaultItemResponse) (models.VaultItem, error) {
	if err := mapHTTPError(resp); err != nil {
		return models.VaultItem{}, err
	}
	if ir.Data == nil {
		return models.VaultItem{}, fmt.Errorf("%w: missing item", ErrInvalidResponse)
	}
	return *ir.Data, nil
}
