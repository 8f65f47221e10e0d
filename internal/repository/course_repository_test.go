package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/course-api/internal/models"
	appErrors "github.com/campushq/course-api/pkg/errors"
)

func TestCourseCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO courses").
		WithArgs("Algorithms", "CS201", "Sorting and graphs", 3, int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(4), now))

	course := &models.Course{Title: "Algorithms", Code: "CS201", Description: "Sorting and graphs", Credits: 3, InstructorID: 9}
	err := repo.Create(context.Background(), course)
	require.NoError(t, err)
	assert.Equal(t, int64(4), course.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseCreateDuplicateCode(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery("INSERT INTO courses").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "courses_code_key"})

	course := &models.Course{Title: "Algorithms", Code: "CS201", Credits: 3, InstructorID: 9}
	err := repo.Create(context.Background(), course)
	assert.ErrorIs(t, err, appErrors.ErrCodeTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseCreateUnknownInstructor(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery("INSERT INTO courses").
		WillReturnError(&pq.Error{Code: "23503", Constraint: "courses_instructor_id_fkey"})

	course := &models.Course{Title: "Algorithms", Code: "CS201", Credits: 3, InstructorID: 404}
	err := repo.Create(context.Background(), course)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseListByInstructor(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "code", "description", "credits", "instructor_id", "created_at"}).
		AddRow(int64(1), "Algorithms", "CS201", "", 3, int64(9), now).
		AddRow(int64(2), "Databases", "CS305", "", 4, int64(9), now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, code, description, credits, instructor_id, created_at FROM courses WHERE instructor_id = $1 ORDER BY created_at DESC")).
		WithArgs(int64(9)).
		WillReturnRows(rows)

	courses, err := repo.ListByInstructor(context.Background(), 9)
	require.NoError(t, err)
	assert.Len(t, courses, 2)
	assert.Equal(t, "CS305", courses[1].Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseCountByInstructor(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM courses WHERE instructor_id = $1")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	total, err := repo.CountByInstructor(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
