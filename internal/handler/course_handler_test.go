package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/course-api/internal/middleware"
	"github.com/campushq/course-api/internal/models"
	"github.com/campushq/course-api/internal/service"
)

type courseRepoStub struct {
	created *models.Course
	all     []models.Course
	owned   []models.Course
}

func (s *courseRepoStub) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return false, nil
}

func (s *courseRepoStub) Create(ctx context.Context, course *models.Course) error {
	course.ID = 1
	s.created = course
	return nil
}

func (s *courseRepoStub) ListAll(ctx context.Context) ([]models.Course, error) {
	return s.all, nil
}

func (s *courseRepoStub) ListByInstructor(ctx context.Context, instructorID int64) ([]models.Course, error) {
	return s.owned, nil
}

func TestCourseHandlerCreateIgnoresPayloadInstructor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &courseRepoStub{}
	h := NewCourseHandler(service.NewCourseService(repo, nil, nil, nil))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"title":"Algorithms","code":"CS201","instructor_id":999}`
	req, _ := http.NewRequest(http.MethodPost, "/course/create", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.Session{UserID: 9, Role: models.RoleInstructor})

	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, repo.created)
	assert.Equal(t, int64(9), repo.created.InstructorID)
}

func TestCourseHandlerCreateWithoutSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewCourseHandler(service.NewCourseService(&courseRepoStub{}, nil, nil, nil))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/course/create", bytes.NewBufferString(`{"title":"Algorithms","code":"CS201"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Create(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCourseHandlerListForInstructor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &courseRepoStub{
		all:   []models.Course{{ID: 1}, {ID: 2}},
		owned: []models.Course{{ID: 2, Code: "CS201"}},
	}
	h := NewCourseHandler(service.NewCourseService(repo, nil, nil, nil))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/courses", nil)
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.Session{UserID: 9, Role: models.RoleInstructor})

	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CS201")
	assert.NotContains(t, w.Body.String(), `"id":1`)
}
