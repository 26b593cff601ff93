// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/mock"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testSalt = []byte("0123456789abcdef")

func gmailRecord() models.VaultRecord {
	return models.VaultRecord{
		Title:    "Gmail",
		Username: "alice@gmail.com",
		Password: "hunter2",
		URL:      "https://mail.google.com",
	}
}

// newTestClientVault wires the service to a mocked adapter and real crypto
// with a low iteration count.
func newTestClientVault(t *testing.T, ctrl *gomock.Controller) (VaultClientService, *mock.MockServerAdapter) {
	t.Helper()
	serverAdapter := mock.NewMockServerAdapter(ctrl)
	svc := NewClientVaultService(
		serverAdapter,
		crypto.NewKeyDeriver(crypto.WithIterations(1000)),
		crypto.NewRecordCipher(),
		5*time.Second,
		logger.Nop(),
	)
	return svc, serverAdapter
}

func unlocked(t *testing.T, ctrl *gomock.Controller) (VaultClientService, *mock.MockServerAdapter) {
	t.Helper()
	svc, serverAdapter := newTestClientVault(t, ctrl)
	serverAdapter.EXPECT().GetSalt(gomock.Any()).Return(testSalt, nil)
	require.NoError(t, svc.Unlock(context.Background(), "correct-horse-battery"))
	return svc, serverAdapter
}

// ── Unlock / Lock ────────────────────────────────────────────────────────────

func TestClientVault_LockedByDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestClientVault(t, ctrl)
	assert.False(t, svc.IsUnlocked())

	_, err := svc.Add(context.Background(), gmailRecord())
	assert.ErrorIs(t, err, ErrVaultLocked)

	_, err = svc.List(context.Background())
	assert.ErrorIs(t, err, ErrVaultLocked)

	_, err = svc.Show(context.Background(), "item-1")
	assert.ErrorIs(t, err, ErrVaultLocked)

	_, err = svc.Edit(context.Background(), "item-1", gmailRecord())
	assert.ErrorIs(t, err, ErrVaultLocked)
}

func TestClientVault_UnlockThenLock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := unlocked(t, ctrl)
	assert.True(t, svc.IsUnlocked())

	svc.Lock()
	assert.False(t, svc.IsUnlocked())

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, ErrVaultLocked)
}

func TestClientVault_Unlock_SaltUnauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, serverAdapter := newTestClientVault(t, ctrl)
	serverAdapter.EXPECT().GetSalt(gomock.Any()).Return(nil, fmt.Errorf("%w: Authentication required", adapter.ErrUnauthorized))

	err := svc.Unlock(context.Background(), "pw")
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
	assert.False(t, svc.IsUnlocked())
}

func TestClientVault_Unlock_EmptySecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, serverAdapter := newTestClientVault(t, ctrl)
	serverAdapter.EXPECT().GetSalt(gomock.Any()).Return(testSalt, nil)

	err := svc.Unlock(context.Background(), "")
	assert.ErrorIs(t, err, crypto.ErrDerivationFailed)
	assert.False(t, svc.IsUnlocked())
}

func TestClientVault_Unlock_DerivationTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	serverAdapter := mock.NewMockServerAdapter(ctrl)
	deriver := mock.NewMockKeyDeriver(ctrl)
	svc := NewClientVaultService(serverAdapter, deriver, crypto.NewRecordCipher(), 10*time.Millisecond, logger.Nop())

	serverAdapter.EXPECT().GetSalt(gomock.Any()).Return(testSalt, nil)
	deriver.EXPECT().
		DeriveKeyContext(gomock.Any(), "pw", testSalt).
		DoAndReturn(func(ctx context.Context, _ string, _ []byte) ([]byte, error) {
			_, ok := ctx.Deadline()
			assert.True(t, ok, "derivation must be bounded")
			<-ctx.Done()
			return nil, fmt.Errorf("%w: %w", crypto.ErrDerivationTimeout, ctx.Err())
		})

	err := svc.Unlock(context.Background(), "pw")
	assert.ErrorIs(t, err, crypto.ErrDerivationTimeout)
	assert.False(t, svc.IsUnlocked())
}

// ── Add / Show ───────────────────────────────────────────────────────────────

func TestClientVault_AddShipsCiphertextOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, serverAdapter := unlocked(t, ctrl)

	var stored models.EncryptedBlob
	serverAdapter.EXPECT().
		CreateItem(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, blob models.EncryptedBlob) (models.VaultItem, error) {
			assert.NotContains(t, string(blob), "hunter2")
			assert.NotContains(t, string(blob), "Gmail")
			stored = blob
			return models.VaultItem{ID: "item-1", Payload: blob}, nil
		})

	item, err := svc.Add(context.Background(), gmailRecord())
	require.NoError(t, err)
	assert.Equal(t, "item-1", item.ID)

	serverAdapter.EXPECT().GetItem(gomock.Any(), "item-1").Return(models.VaultItem{ID: "item-1", Payload: stored}, nil)

	shown, err := svc.Show(context.Background(), "item-1")
	require.NoError(t, err)
	assert.Equal(t, gmailRecord(), shown.Record)
	assert.NoError(t, shown.Err)
}

func TestClientVault_Show_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, serverAdapter := unlocked(t, ctrl)
	serverAdapter.EXPECT().GetItem(gomock.Any(), "gone").Return(models.VaultItem{}, fmt.Errorf("%w: Item not found", adapter.ErrNotFound))

	_, err := svc.Show(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientVault_Show_WrongKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	otherKey, err := crypto.NewKeyDeriver(crypto.WithIterations(1000)).DeriveKey("another-secret", testSalt)
	require.NoError(t, err)
	foreign, err := crypto.EncryptRecord(gmailRecord(), otherKey)
	require.NoError(t, err)

	svc, serverAdapter := unlocked(t, ctrl)
	serverAdapter.EXPECT().GetItem(gomock.Any(), "item-1").Return(models.VaultItem{ID: "item-1", Payload: foreign}, nil)

	_, err = svc.Show(context.Background(), "item-1")
	assert.ErrorIs(t, err, crypto.ErrDecryptFailed)
}

// ── List ─────────────────────────────────────────────────────────────────────

func TestClientVault_List_PerItemFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, serverAdapter := unlocked(t, ctrl)

	var good models.EncryptedBlob
	serverAdapter.EXPECT().
		CreateItem(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, blob models.EncryptedBlob) (models.VaultItem, error) {
			good = blob
			return models.VaultItem{ID: "good"}, nil
		})
	_, err := svc.Add(context.Background(), gmailRecord())
	require.NoError(t, err)

	serverAdapter.EXPECT().ListItems(gomock.Any()).Return([]models.VaultItem{
		{ID: "good", Payload: good},
		{ID: "corrupt", Payload: "not-a-blob"},
	}, nil)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "good", items[0].ID)
	assert.NoError(t, items[0].Err)
	assert.Equal(t, "Gmail", items[0].Record.Title)

	assert.Equal(t, "corrupt", items[1].ID)
	assert.ErrorIs(t, items[1].Err, crypto.ErrDecryptFailed)
	assert.Equal(t, models.VaultRecord{}, items[1].Record)
}

func TestClientVault_List_TransportError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, serverAdapter := unlocked(t, ctrl)
	boom := errors.New("dial tcp: connection refused")
	serverAdapter.EXPECT().ListItems(gomock.Any()).Return(nil, boom)

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestClientVault_Search(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, serverAdapter := unlocked(t, ctrl)

	records := map[string]models.VaultRecord{
		"gmail": gmailRecord(),
		"bank":  {Title: "Bank", Username: "alice", Password: "gmail-is-not-here", URL: "https://bank.example"},
		"notes": {Title: "Router", Notes: "admin login is on the GMAIL sticker"},
	}
	var stored []models.VaultItem
	for _, id := range []string{"gmail", "bank", "notes"} {
		serverAdapter.EXPECT().
			CreateItem(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, blob models.EncryptedBlob) (models.VaultItem, error) {
				stored = append(stored, models.VaultItem{ID: id, Payload: blob})
				return models.VaultItem{ID: id}, nil
			})
		_, err := svc.Add(context.Background(), records[id])
		require.NoError(t, err)
	}
	stored = append(stored, models.VaultItem{ID: "corrupt", Payload: "not-a-blob"})

	tests := []struct {
		term    string
		wantIDs []string
	}{
		{term: "", wantIDs: []string{"gmail", "bank", "notes", "corrupt"}},
		{term: "gmail", wantIDs: []string{"gmail", "notes"}},
		{term: "ALICE", wantIDs: []string{"gmail", "bank"}},
		{term: "bank.example", wantIDs: []string{"bank"}},
		{term: "hunter2", wantIDs: []string{}},
		{term: "nothing like this", wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			serverAdapter.EXPECT().ListItems(gomock.Any()).Return(stored, nil)

			items, err := svc.Search(context.Background(), tt.term)
			require.NoError(t, err)

			ids := make([]string, 0, len(items))
			for _, it := range items {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestClientVault_Search_Locked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestClientVault(t, ctrl)
	_, err := svc.Search(context.Background(), "gmail")
	assert.ErrorIs(t, err, ErrVaultLocked)
}

// ── Edit / Delete ────────────────────────────────────────────────────────────

func TestClientVault_Edit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, serverAdapter := unlocked(t, ctrl)
	serverAdapter.EXPECT().
		UpdateItem(gomock.Any(), "item-1", gomock.Any()).
		Return(models.VaultItem{ID: "item-1"}, nil)

	rec := gmailRecord()
	rec.Password = "new-password"
	item, err := svc.Edit(context.Background(), "item-1", rec)
	require.NoError(t, err)
	assert.Equal(t, "item-1", item.ID)
}

func TestClientVault_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, serverAdapter := newTestClientVault(t, ctrl)
	serverAdapter.EXPECT().DeleteItem(gomock.Any(), "item-1").Return(nil)
	serverAdapter.EXPECT().DeleteItem(gomock.Any(), "item-1").Return(fmt.Errorf("%w: Item not found", adapter.ErrNotFound))

	// deleting does not need the key
	require.NoError(t, svc.Delete(context.Background(), "item-1"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "item-1"), ErrNotFound)
}

func TestClientVault_Whoami(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, serverAdapter := newTestClientVault(t, ctrl)
	alice := models.Identity{SubjectID: "user-alice", Email: "alice@example.com"}

	serverAdapter.EXPECT().Me(gomock.Any()).Return(alice, nil)
	got, err := svc.Whoami(context.Background())
	require.NoError(t, err)
	assert.Equal(t, alice, got)

	serverAdapter.EXPECT().Me(gomock.Any()).Return(models.Identity{}, adapter.ErrUnauthorized)
	_, err = svc.Whoami(context.Background())
	assert.ErrorIs(t, err, ErrAuthRequired)
}

// ── key hygiene ──────────────────────────────────────────────────────────────

func TestClientVault_KeyCopiesAreWiped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	serverAdapter := mock.NewMockServerAdapter(ctrl)
	deriver := mock.NewMockKeyDeriver(ctrl)
	cipher := mock.NewMockRecordCipher(ctrl)
	svc := NewClientVaultService(serverAdapter, deriver, cipher, time.Second, logger.Nop())

	derived := bytes.Repeat([]byte{0x42}, crypto.KeySize)
	serverAdapter.EXPECT().GetSalt(gomock.Any()).Return(testSalt, nil)
	deriver.EXPECT().DeriveKeyContext(gomock.Any(), "master", testSalt).Return(derived, nil)
	require.NoError(t, svc.Unlock(context.Background(), "master"))

	// every key handed to the cipher must be the live key at call time
	// and all zeros once the operation returns
	var seen [][]byte
	capture := func(key []byte) {
		assert.Equal(t, bytes.Repeat([]byte{0x42}, crypto.KeySize), key)
		seen = append(seen, key)
	}
	cipher.EXPECT().EncryptRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ models.VaultRecord, key []byte) (models.EncryptedBlob, error) {
			capture(key)
			return "blob", nil
		}).Times(2)
	cipher.EXPECT().DecryptRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ models.EncryptedBlob, key []byte) (models.VaultRecord, error) {
			capture(key)
			return gmailRecord(), nil
		}).Times(2)

	serverAdapter.EXPECT().CreateItem(gomock.Any(), models.EncryptedBlob("blob")).Return(models.VaultItem{ID: "item-1"}, nil)
	serverAdapter.EXPECT().UpdateItem(gomock.Any(), "item-1", models.EncryptedBlob("blob")).Return(models.VaultItem{ID: "item-1"}, nil)
	serverAdapter.EXPECT().ListItems(gomock.Any()).Return([]models.VaultItem{{ID: "item-1", Payload: "blob"}}, nil)
	serverAdapter.EXPECT().GetItem(gomock.Any(), "item-1").Return(models.VaultItem{ID: "item-1", Payload: "blob"}, nil)

	ctx := context.Background()
	_, err := svc.Add(ctx, gmailRecord())
	require.NoError(t, err)
	_, err = svc.Edit(ctx, "item-1", gmailRecord())
	require.NoError(t, err)
	_, err = svc.List(ctx)
	require.NoError(t, err)
	_, err = svc.Show(ctx, "item-1")
	require.NoError(t, err)

	require.Len(t, seen, 4)
	for i, key := range seen {
		assert.Equal(t, make([]byte, crypto.KeySize), key, "key copy %d was not wiped", i)
	}
	assert.True(t, svc.IsUnlocked(), "wiping copies must leave the vault key intact")

	svc.Lock()
	assert.Equal(t, make([]byte, crypto.KeySize), derived, "Lock wipes the derived key")
}

// ── mapAdapterError ──────────────────────────────────────────────────────────

func TestMapAdapterError(t *testing.T) {
	other := errors.New("other")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "unauthorized", in: fmt.Errorf("%w: x", adapter.ErrUnauthorized), want: ErrAuthRequired},
		{name: "not found", in: fmt.Errorf("%w: x", adapter.ErrNotFound), want: ErrNotFound},
		{name: "bad request", in: fmt.Errorf("%w: x", adapter.ErrBadRequest), want: ErrEmptyPayload},
		{name: "passthrough", in: other, want: other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapAdapterError(tt.in)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.in)
		})
	}

	assert.NoError(t, mapAdapterError(nil))
}
