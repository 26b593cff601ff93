package client

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/mock"
	"github.com/MKhiriev/go-pass-vault/internal/passgen"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testMaster     = "correct-horse-battery"
	testIterations = 1000
)

var testSalt = []byte("0123456789abcdef")

// ── fixtures ──

type queuePrompter struct {
	secrets []string
	calls   int
}

func (p *queuePrompter) ReadSecret(string) (string, error) {
	p.calls++
	if len(p.secrets) == 0 {
		return "", errors.New("unexpected prompt")
	}
	s := p.secrets[0]
	p.secrets = p.secrets[1:]
	return s, nil
}

type memClipboard struct {
	mu      sync.Mutex
	content string
}

func (c *memClipboard) ReadAll() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.content, nil
}

func (c *memClipboard) WriteAll(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.content = text
	return nil
}

type testApp struct {
	server    *mock.MockServerAdapter
	prompter  *queuePrompter
	clipboard *memClipboard
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
}

func newTestApp(t *testing.T, secrets ...string) *testApp {
	t.Helper()
	ctrl := gomock.NewController(t)
	return &testApp{
		server:    mock.NewMockServerAdapter(ctrl),
		prompter:  &queuePrompter{secrets: secrets},
		clipboard: &memClipboard{},
		stdout:    &bytes.Buffer{},
		stderr:    &bytes.Buffer{},
	}
}

func (ta *testApp) run(args ...string) error {
	app := NewApp(
		WithArgs(args),
		WithOutput(ta.stdout, ta.stderr),
		WithPrompter(ta.prompter),
		WithClipboard(ta.clipboard, 10*time.Millisecond),
		WithBuildInfo(models.NewAppBuildInfo("v1.0.0", "2026-10-01", "abc123")),
		WithServicesFactory(func(cfg *config.ClientConfig, log *logger.Logger) (*service.ClientServices, error) {
			return &service.ClientServices{
				VaultService: service.NewClientVaultService(
					ta.server,
					crypto.NewKeyDeriver(crypto.WithIterations(testIterations)),
					crypto.NewRecordCipher(),
					cfg.App.KDFTimeout,
					log,
				),
				Server: ta.server,
			}, nil
		}),
	)
	return app.Run()
}

func (ta *testApp) expectUnlock() {
	ta.server.EXPECT().GetSalt(gomock.Any()).Return(testSalt, nil)
}

func testKey(t *testing.T) []byte {
	t.Helper()
	key, err := crypto.NewKeyDeriver(crypto.WithIterations(testIterations)).DeriveKey(testMaster, testSalt)
	require.NoError(t, err)
	return key
}

func seal(t *testing.T, rec models.VaultRecord) models.EncryptedBlob {
	t.Helper()
	blob, err := crypto.NewRecordCipher().EncryptRecord(rec, testKey(t))
	require.NoError(t, err)
	return blob
}

func open(t *testing.T, blob models.EncryptedBlob) models.VaultRecord {
	t.Helper()
	rec, err := crypto.NewRecordCipher().DecryptRecord(blob, testKey(t))
	require.NoError(t, err)
	return rec
}

var gmail = models.VaultRecord{
	Title:    "Gmail",
	Username: "alice@gmail.com",
	Password: "hunter2",
	URL:      "https://mail.google.com",
	Notes:    "recovery codes in the safe",
}

// ── generate / strength ──

func TestApp_Generate(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.run("generate", "--length", "20", "--no-symbols"))

	password := strings.SplitN(ta.stdout.String(), "\n", 2)[0]
	assert.Len(t, password, 20)
	assert.False(t, strings.ContainsAny(password, "!@#$%^&*()_+-=[]{}|;:,.<>?"))
	assert.Contains(t, ta.stdout.String(), "Strength:")
}

func TestApp_Generate_NoCharset(t *testing.T) {
	ta := newTestApp(t)

	err := ta.run("generate", "--no-upper", "--no-lower", "--no-digits", "--no-symbols")
	assert.ErrorIs(t, err, passgen.ErrNoCharset)
}

func TestApp_Generate_Copy(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.run("generate", "--copy"))

	assert.Contains(t, ta.stdout.String(), "copied to clipboard")
	content, _ := ta.clipboard.ReadAll()
	assert.Empty(t, content, "clipboard must be wiped after the ttl")
}

func TestApp_Strength(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		secrets []string
		want    string
	}{
		{name: "argument", args: []string{"strength", "Abcdefgh1!"}, want: "(90/100)"},
		{name: "prompted", args: []string{"strength"}, secrets: []string{"abc"}, want: "(20/100)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t, tt.secrets...)
			require.NoError(t, ta.run(tt.args...))
			assert.Contains(t, ta.stdout.String(), tt.want)
		})
	}
}

// ── unlock ──

func TestApp_Unlock(t *testing.T) {
	ta := newTestApp(t, testMaster)
	ta.expectUnlock()
	ta.server.EXPECT().ListItems(gomock.Any()).Return([]models.VaultItem{
		{ID: "item-1", Payload: seal(t, gmail)},
	}, nil)

	require.NoError(t, ta.run("unlock"))
	assert.Contains(t, ta.stdout.String(), "vault unlocked, 1 items")
}

func TestApp_Unlock_WrongMaster(t *testing.T) {
	ta := newTestApp(t, "not-the-password")
	ta.expectUnlock()
	ta.server.EXPECT().ListItems(gomock.Any()).Return([]models.VaultItem{
		{ID: "item-1", Payload: seal(t, gmail)},
	}, nil)

	require.NoError(t, ta.run("check"))
	assert.Contains(t, ta.stdout.String(), "1 of 1 items cannot be decrypted")
}

func TestApp_Unlock_Errors(t *testing.T) {
	t.Run("empty master", func(t *testing.T) {
		ta := newTestApp(t, "")
		assert.ErrorIs(t, ta.run("list"), ErrEmptyMaster)
	})

	t.Run("no token", func(t *testing.T) {
		ta := newTestApp(t, testMaster)
		ta.server.EXPECT().GetSalt(gomock.Any()).Return(nil, adapter.ErrUnauthorized)

		err := ta.run("list")
		assert.ErrorIs(t, err, service.ErrAuthRequired)
		assert.Contains(t, err.Error(), "not signed in")
	})
}

// ── items ──

func TestApp_Add(t *testing.T) {
	ta := newTestApp(t, testMaster)
	ta.expectUnlock()
	ta.server.EXPECT().CreateItem(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, payload models.EncryptedBlob) (models.VaultItem, error) {
			assert.Equal(t, models.VaultRecord{Title: "Gmail", Username: "alice", Password: "hunter2"}, open(t, payload))
			return models.VaultItem{ID: "item-1", Payload: payload}, nil
		})

	require.NoError(t, ta.run("add", "--title", "Gmail", "--username", "alice", "--password", "hunter2"))
	assert.Contains(t, ta.stdout.String(), "added item-1")
}

func TestApp_Add_PromptsForPassword(t *testing.T) {
	ta := newTestApp(t, testMaster, "prompted-secret")
	ta.expectUnlock()
	ta.server.EXPECT().CreateItem(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, payload models.EncryptedBlob) (models.VaultItem, error) {
			assert.Equal(t, "prompted-secret", open(t, payload).Password)
			return models.VaultItem{ID: "item-2"}, nil
		})

	require.NoError(t, ta.run("add", "-t", "Bank"))
	assert.Equal(t, 2, ta.prompter.calls)
}

func TestApp_Add_Generated(t *testing.T) {
	ta := newTestApp(t, testMaster)
	ta.expectUnlock()
	ta.server.EXPECT().CreateItem(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, payload models.EncryptedBlob) (models.VaultItem, error) {
			assert.Len(t, open(t, payload).Password, passgen.DefaultLength)
			return models.VaultItem{ID: "item-3"}, nil
		})

	require.NoError(t, ta.run("add", "--title", "Shop", "--generate"))
	assert.Contains(t, ta.stdout.String(), "Strength:")
}

func TestApp_Add_RequiresTitle(t *testing.T) {
	ta := newTestApp(t)
	assert.Error(t, ta.run("add", "--password", "x"))
	assert.Zero(t, ta.prompter.calls)
}

func TestApp_List(t *testing.T) {
	ta := newTestApp(t, testMaster)
	ta.expectUnlock()
	ta.server.EXPECT().ListItems(gomock.Any()).Return([]models.VaultItem{
		{ID: "item-2", Payload: "bm90LWEtYmxvYg=="},
		{ID: "item-1", Payload: seal(t, gmail)},
	}, nil)

	require.NoError(t, ta.run("list"))

	out := ta.stdout.String()
	assert.Contains(t, out, "Gmail")
	assert.Contains(t, out, "alice@gmail.com")
	assert.Contains(t, out, "cannot decrypt")
	assert.NotContains(t, out, gmail.Password)
}

func TestApp_List_Empty(t *testing.T) {
	ta := newTestApp(t, testMaster)
	ta.expectUnlock()
	ta.server.EXPECT().ListItems(gomock.Any()).Return([]models.VaultItem{}, nil)

	require.NoError(t, ta.run("ls"))
	assert.Contains(t, ta.stdout.String(), "vault is empty")
}

func TestApp_List_Search(t *testing.T) {
	bank := models.VaultRecord{Title: "Bank", Username: "alice", URL: "https://bank.example"}

	tests := []struct {
		name    string
		term    string
		want    []string
		notWant []string
	}{
		{name: "by title", term: "gmail", want: []string{"Gmail"}, notWant: []string{"Bank"}},
		{name: "case-insensitive url", term: "BANK.EXAMPLE", want: []string{"Bank"}, notWant: []string{"Gmail"}},
		{name: "by notes", term: "recovery", want: []string{"Gmail"}, notWant: []string{"Bank"}},
		{name: "no match", term: "nope", want: []string{`no items match "nope"`}, notWant: []string{"Gmail", "Bank"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t, testMaster)
			ta.expectUnlock()
			ta.server.EXPECT().ListItems(gomock.Any()).Return([]models.VaultItem{
				{ID: "item-2", Payload: seal(t, bank)},
				{ID: "item-1", Payload: seal(t, gmail)},
			}, nil)

			require.NoError(t, ta.run("list", tt.term))

			out := ta.stdout.String()
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, out, w)
			}
		})
	}
}

func TestApp_Show(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantPass   bool
		wantCopied bool
	}{
		{name: "masked", args: []string{"show", "item-1"}},
		{name: "revealed", args: []string{"show", "item-1", "--reveal"}, wantPass: true},
		{name: "copied", args: []string{"show", "item-1", "--copy"}, wantCopied: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t, testMaster)
			ta.expectUnlock()
			ta.server.EXPECT().GetItem(gomock.Any(), "item-1").
				Return(models.VaultItem{ID: "item-1", Payload: seal(t, gmail)}, nil)

			require.NoError(t, ta.run(tt.args...))

			out := ta.stdout.String()
			assert.Contains(t, out, "Gmail")
			assert.Contains(t, out, "recovery codes in the safe")
			assert.Equal(t, tt.wantPass, strings.Contains(out, gmail.Password))
			assert.Equal(t, tt.wantCopied, strings.Contains(out, "copied to clipboard"))

			content, _ := ta.clipboard.ReadAll()
			assert.Empty(t, content)
		})
	}
}

func TestApp_Show_NotFound(t *testing.T) {
	ta := newTestApp(t, testMaster)
	ta.expectUnlock()
	ta.server.EXPECT().GetItem(gomock.Any(), "foreign").Return(models.VaultItem{}, adapter.ErrNotFound)

	err := ta.run("show", "foreign")
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Equal(t, "item not found", err.Error())
}

func TestApp_Edit(t *testing.T) {
	ta := newTestApp(t, testMaster)
	ta.expectUnlock()
	ta.server.EXPECT().GetItem(gomock.Any(), "item-1").
		Return(models.VaultItem{ID: "item-1", Payload: seal(t, gmail)}, nil)
	ta.server.EXPECT().UpdateItem(gomock.Any(), "item-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, id string, payload models.EncryptedBlob) (models.VaultItem, error) {
			want := gmail
			want.Title = "Google Mail"
			assert.Equal(t, want, open(t, payload))
			return models.VaultItem{ID: id}, nil
		})

	require.NoError(t, ta.run("edit", "item-1", "--title", "Google Mail"))
	assert.Contains(t, ta.stdout.String(), "updated item-1")
}

func TestApp_Edit_NothingToChange(t *testing.T) {
	ta := newTestApp(t, testMaster)
	ta.expectUnlock()
	ta.server.EXPECT().GetItem(gomock.Any(), "item-1").
		Return(models.VaultItem{ID: "item-1", Payload: seal(t, gmail)}, nil)

	assert.ErrorIs(t, ta.run("edit", "item-1"), ErrNothingToEdit)
}

func TestApp_Delete(t *testing.T) {
	ta := newTestApp(t)
	gomock.InOrder(
		ta.server.EXPECT().DeleteItem(gomock.Any(), "item-1").Return(nil),
		ta.server.EXPECT().DeleteItem(gomock.Any(), "item-1").Return(adapter.ErrNotFound),
	)

	require.NoError(t, ta.run("delete", "item-1"))
	assert.Contains(t, ta.stdout.String(), "deleted item-1")

	assert.ErrorIs(t, ta.run("rm", "item-1"), service.ErrNotFound)
	assert.Zero(t, ta.prompter.calls, "delete needs no master password")
}

// ── whoami / version ──

func TestApp_Whoami(t *testing.T) {
	ta := newTestApp(t)
	ta.server.EXPECT().Me(gomock.Any()).Return(models.Identity{SubjectID: "user-alice", Email: "alice@example.com"}, nil)

	require.NoError(t, ta.run("whoami"))
	assert.Equal(t, "alice@example.com (user-alice)\n", ta.stdout.String())
}

func TestApp_Version(t *testing.T) {
	tests := []struct {
		name      string
		serverErr error
		want      string
	}{
		{name: "server reachable", want: "Server version: 2.0.0"},
		{name: "server down", serverErr: errors.New("connection refused"), want: "Server version: N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t)
			ta.server.EXPECT().Version(gomock.Any()).Return("2.0.0", tt.serverErr)

			require.NoError(t, ta.run("version"))
			assert.Contains(t, ta.stdout.String(), "Build version: v1.0.0")
			assert.Contains(t, ta.stdout.String(), tt.want)
		})
	}
}

// ── friendlyError ──

func TestFriendlyError(t *testing.T) {
	other := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil},
		{name: "auth", err: service.ErrAuthRequired, want: "not signed in: pass --token or set ADAPTER_TOKEN"},
		{name: "timeout", err: crypto.ErrDerivationTimeout, want: "key derivation took too long; raise --kdf-timeout"},
		{name: "decrypt", err: crypto.ErrDecryptFailed, want: "cannot decrypt: wrong master password or damaged item"},
		{name: "unknown", err: other, want: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := friendlyError(tt.err)
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}
			assert.Equal(t, tt.want, got.Error())
			assert.ErrorIs(t, got, tt.err)
		})
	}
}
