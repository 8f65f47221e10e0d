package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/course-api/internal/models"
	"github.com/campushq/course-api/internal/repository"
	"github.com/campushq/course-api/pkg/signer"
)

func newGuardedRouter(t *testing.T, store *repository.MemorySessionStore, s *signer.Signer) (*gin.Engine, *bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handlerRan := false
	router := gin.New()
	router.Use(Session(store, s, DefaultCookieName))
	router.GET("/protected", func(c *gin.Context) {
		handlerRan = true
		session := c.MustGet(ContextUserKey).(*models.Session)
		c.JSON(http.StatusOK, gin.H{"user_id": session.UserID})
	})
	return router, &handlerRan
}

func TestSessionGuardMissingToken(t *testing.T) {
	store := repository.NewMemorySessionStore(time.Hour)
	router, handlerRan := newGuardedRouter(t, store, signer.New("secret"))

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, *handlerRan)
}

func TestSessionGuardForgedToken(t *testing.T) {
	store := repository.NewMemorySessionStore(time.Hour)
	require.NoError(t, store.Create(context.Background(), &models.Session{Token: "tok", UserID: 5}))

	// signed with a different secret, so the tag does not verify
	router, handlerRan := newGuardedRouter(t, store, signer.New("secret"))
	forged := signer.New("other").Sign("tok")

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: forged})
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, *handlerRan)
}

func TestSessionGuardUnknownToken(t *testing.T) {
	store := repository.NewMemorySessionStore(time.Hour)
	tokenSigner := signer.New("secret")
	router, handlerRan := newGuardedRouter(t, store, tokenSigner)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: tokenSigner.Sign("ended")})
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, *handlerRan)
}

func TestSessionGuardValidCookie(t *testing.T) {
	store := repository.NewMemorySessionStore(time.Hour)
	tokenSigner := signer.New("secret")
	require.NoError(t, store.Create(context.Background(), &models.Session{Token: "tok", UserID: 5, Role: models.RoleStudent}))

	router, handlerRan := newGuardedRouter(t, store, tokenSigner)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: tokenSigner.Sign("tok")})
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, *handlerRan)
	assert.Contains(t, recorder.Body.String(), `"user_id":5`)
}

func TestSessionGuardBearerFallback(t *testing.T) {
	store := repository.NewMemorySessionStore(time.Hour)
	tokenSigner := signer.New("secret")
	require.NoError(t, store.Create(context.Background(), &models.Session{Token: "tok", UserID: 5, Role: models.RoleAdmin}))

	router, handlerRan := newGuardedRouter(t, store, tokenSigner)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenSigner.Sign("tok"))
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, *handlerRan)
}
