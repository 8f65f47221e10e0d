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

func TestStudentCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO students").
		WithArgs("Grace", "grace@example.com", "S1001", "CS").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), now))

	student := &models.Student{Name: "Grace", Email: "grace@example.com", StudentID: "S1001", Major: "CS"}
	err := repo.Create(context.Background(), student)
	require.NoError(t, err)
	assert.Equal(t, int64(3), student.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentCreateDuplicateConstraints(t *testing.T) {
	cases := []struct {
		name       string
		constraint string
		want       error
	}{
		{"email", "students_email_key", appErrors.ErrEmailTaken},
		{"student id", "students_student_id_key", appErrors.ErrStudentIDTaken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, cleanup := newMock(t)
			defer cleanup()
			repo := NewStudentRepository(db)

			mock.ExpectQuery("INSERT INTO students").
				WillReturnError(&pq.Error{Code: "23505", Constraint: tc.constraint})

			student := &models.Student{Name: "Grace", Email: "grace@example.com", StudentID: "S1001"}
			err := repo.Create(context.Background(), student)
			assert.ErrorIs(t, err, tc.want)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStudentFindByEmail(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "student_id", "major", "created_at"}).
		AddRow(int64(3), "Grace", "grace@example.com", "S1001", "CS", now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, student_id, major, created_at FROM students WHERE email = $1 LIMIT 1")).
		WithArgs("grace@example.com").
		WillReturnRows(rows)

	student, err := repo.FindByEmail(context.Background(), "grace@example.com")
	require.NoError(t, err)
	assert.Equal(t, "S1001", student.StudentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentListAll(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "student_id", "major", "created_at"}).
		AddRow(int64(1), "Grace", "grace@example.com", "S1001", "CS", now).
		AddRow(int64(2), "Alan", "alan@example.com", "S1002", "Math", now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, student_id, major, created_at FROM students ORDER BY created_at DESC")).
		WillReturnRows(rows)

	students, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, students, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
