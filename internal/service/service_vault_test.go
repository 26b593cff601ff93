// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/mock"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/validators"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type seqIDs struct{ n int }

func (s *seqIDs) Generate() string {
	s.n++
	return fmt.Sprintf("item-%d", s.n)
}

// steppingClock advances by one second on every call so that items created
// in sequence have distinct timestamps.
func steppingClock() func() time.Time {
	t := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newMemoryGate(t *testing.T) (VaultService, AuthService) {
	t.Helper()
	auth := newTestAuth()
	svc := NewVaultService(
		auth,
		store.NewMemoryStorage(),
		validators.NewVaultItemValidator(),
		&seqIDs{},
		logger.Nop(),
		WithClock(steppingClock()),
	)
	return svc, auth
}

func newMockGate(t *testing.T, ctrl *gomock.Controller) (VaultService, *mock.MockVaultStorage, string) {
	t.Helper()
	auth := newTestAuth()
	storage := mock.NewMockVaultStorage(ctrl)
	svc := NewVaultService(auth, storage, validators.NewVaultItemValidator(), &seqIDs{}, logger.Nop(), WithClock(steppingClock()))
	return svc, storage, mustToken(t, auth, alice)
}

// ── Authentication ───────────────────────────────────────────────────────────

func TestVaultService_RequiresAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no storage call is expected for any of these
	svc, _, _ := newMockGate(t, ctrl)
	ctx := context.Background()

	for _, token := range []string{"", "garbage"} {
		_, err := svc.List(ctx, token)
		assert.ErrorIs(t, err, ErrAuthRequired)

		_, err = svc.Get(ctx, token, "item-1")
		assert.ErrorIs(t, err, ErrAuthRequired)

		_, err = svc.Create(ctx, token, "blob")
		assert.ErrorIs(t, err, ErrAuthRequired)

		_, err = svc.Update(ctx, token, "item-1", "blob")
		assert.ErrorIs(t, err, ErrAuthRequired)

		assert.ErrorIs(t, svc.Delete(ctx, token, "item-1"), ErrAuthRequired)
	}
}

func TestVaultService_AuthCheckedBeforePayload(t *testing.T) {
	svc, _ := newMemoryGate(t)

	_, err := svc.Create(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.NotErrorIs(t, err, ErrEmptyPayload)

	_, err = svc.Update(context.Background(), "", "item-1", "")
	assert.ErrorIs(t, err, ErrAuthRequired)
}

// ── Owner scoping ────────────────────────────────────────────────────────────

func TestVaultService_OwnerScopedLifecycle(t *testing.T) {
	svc, auth := newMemoryGate(t)
	ctx := context.Background()
	aliceToken := mustToken(t, auth, alice)
	bobToken := mustToken(t, auth, bob)

	first, err := svc.Create(ctx, aliceToken, "blob-1")
	require.NoError(t, err)
	assert.Equal(t, alice.SubjectID, first.OwnerID)
	assert.Equal(t, models.EncryptedBlob("blob-1"), first.Payload)
	assert.NotEmpty(t, first.ID)

	second, err := svc.Create(ctx, aliceToken, "blob-2")
	require.NoError(t, err)

	// newest first
	items, err := svc.List(ctx, aliceToken)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)

	// bob sees nothing of alice's
	bobItems, err := svc.List(ctx, bobToken)
	require.NoError(t, err)
	assert.NotNil(t, bobItems)
	assert.Empty(t, bobItems)

	_, err = svc.Get(ctx, bobToken, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(ctx, bobToken, first.ID, "stolen")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, bobToken, first.ID), ErrNotFound)

	// alice's item is untouched by bob's attempts
	got, err := svc.Get(ctx, aliceToken, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EncryptedBlob("blob-1"), got.Payload)

	updated, err := svc.Update(ctx, aliceToken, first.ID, "blob-1b")
	require.NoError(t, err)
	assert.Equal(t, models.EncryptedBlob("blob-1b"), updated.Payload)
	assert.True(t, updated.UpdatedAt.After(first.UpdatedAt))
	assert.True(t, updated.CreatedAt.Equal(first.CreatedAt))

	require.NoError(t, svc.Delete(ctx, aliceToken, first.ID))
	assert.ErrorIs(t, svc.Delete(ctx, aliceToken, first.ID), ErrNotFound)

	_, err = svc.Get(ctx, aliceToken, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	items, err = svc.List(ctx, aliceToken)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, second.ID, items[0].ID)
}

func TestVaultService_PayloadNotInspected(t *testing.T) {
	svc, auth := newMemoryGate(t)
	token := mustToken(t, auth, alice)

	item, err := svc.Create(context.Background(), token, "definitely not ciphertext")
	require.NoError(t, err)
	assert.Equal(t, models.EncryptedBlob("definitely not ciphertext"), item.Payload)
}

// ── Validation ───────────────────────────────────────────────────────────────

func TestVaultService_EmptyPayload(t *testing.T) {
	svc, auth := newMemoryGate(t)
	ctx := context.Background()
	token := mustToken(t, auth, alice)

	_, err := svc.Create(ctx, token, "")
	assert.ErrorIs(t, err, ErrEmptyPayload)

	item, err := svc.Create(ctx, token, "blob")
	require.NoError(t, err)

	_, err = svc.Update(ctx, token, item.ID, "")
	assert.ErrorIs(t, err, ErrEmptyPayload)
}

func TestVaultService_PayloadTooLarge(t *testing.T) {
	svc, auth := newMemoryGate(t)

	big := models.EncryptedBlob(strings.Repeat("a", validators.MaxPayloadSize+1))
	_, err := svc.Create(context.Background(), mustToken(t, auth, alice), big)
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestVaultService_MalformedIDIsNotFound(t *testing.T) {
	svc, auth := newMemoryGate(t)
	ctx := context.Background()
	token := mustToken(t, auth, alice)

	for _, id := range []string{"", "a b", strings.Repeat("x", validators.MaxItemIDLength+1)} {
		_, err := svc.Get(ctx, token, id)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = svc.Update(ctx, token, id, "blob")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, svc.Delete(ctx, token, id), ErrNotFound)
	}
}

// ── Storage collaboration ────────────────────────────────────────────────────

func TestVaultService_Create_StorageArguments(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, storage, token := newMockGate(t, ctrl)

	storage.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, item models.VaultItem) (models.VaultItem, error) {
			assert.Equal(t, "item-1", item.ID)
			assert.Equal(t, alice.SubjectID, item.OwnerID)
			assert.Equal(t, models.EncryptedBlob("blob"), item.Payload)
			assert.Equal(t, time.UTC, item.CreatedAt.Location())
			assert.True(t, item.CreatedAt.Equal(item.UpdatedAt))
			return item, nil
		})

	_, err := svc.Create(context.Background(), token, "blob")
	require.NoError(t, err)
}

func TestVaultService_Update_ScopedByOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, storage, token := newMockGate(t, ctrl)

	storage.EXPECT().
		UpdateByIDAndOwner(gomock.Any(), "item-9", alice.SubjectID, models.EncryptedBlob("new"), gomock.Any()).
		Return(models.VaultItem{ID: "item-9", OwnerID: alice.SubjectID, Payload: "new"}, nil)

	got, err := svc.Update(context.Background(), token, "item-9", "new")
	require.NoError(t, err)
	assert.Equal(t, "item-9", got.ID)
}

func TestVaultService_StorageNotFoundMapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, storage, token := newMockGate(t, ctrl)
	wrapped := fmt.Errorf("query: %w", store.ErrVaultItemNotFound)

	storage.EXPECT().FindByIDAndOwner(gomock.Any(), "item-1", alice.SubjectID).Return(models.VaultItem{}, wrapped)
	storage.EXPECT().DeleteByIDAndOwner(gomock.Any(), "item-1", alice.SubjectID).Return(wrapped)

	_, err := svc.Get(context.Background(), token, "item-1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), token, "item-1"), ErrNotFound)
}

func TestVaultService_StorageFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, storage, token := newMockGate(t, ctrl)
	boom := errors.New("connection reset")

	storage.EXPECT().FindByOwner(gomock.Any(), alice.SubjectID).Return(nil, boom)
	storage.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(models.VaultItem{}, boom)

	_, err := svc.List(context.Background(), token)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(context.Background(), token, "blob")
	assert.ErrorIs(t, err, boom)
}

func TestVaultService_List_NilBecomesEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, storage, token := newMockGate(t, ctrl)
	storage.EXPECT().FindByOwner(gomock.Any(), alice.SubjectID).Return(nil, nil)

	items, err := svc.List(context.Background(), token)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
