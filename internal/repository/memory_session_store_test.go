package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/course-api/internal/models"
)

func TestMemorySessionStoreLifecycle(t *testing.T) {
	store := NewMemorySessionStore(time.Hour)
	ctx := context.Background()

	session := &models.Session{Token: "tok", UserID: 1, UserName: "Ada", Role: models.RoleAdmin, IssuedAt: time.Now()}
	require.NoError(t, store.Create(ctx, session))

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.UserID)
	assert.Equal(t, models.RoleAdmin, got.Role)

	require.NoError(t, store.Delete(ctx, "tok"))
	got, err = store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Nil(t, got)

	// deleting again stays a no-op
	require.NoError(t, store.Delete(ctx, "tok"))
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	store := NewMemorySessionStore(time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &models.Session{Token: "tok", UserID: 1}))
	time.Sleep(5 * time.Millisecond)

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemorySessionStoreUnknownToken(t *testing.T) {
	store := NewMemorySessionStore(time.Hour)

	got, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}
