package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/campushq/course-api/internal/models"
	appErrors "github.com/campushq/course-api/pkg/errors"
)

// EnrollmentRepository handles persistence of enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Exists checks whether the (student, course) pair is already enrolled.
func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, courseID int64) (bool, error) {
	const query = `SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, studentID, courseID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return true, nil
}

// CountByStudent returns the number of enrollments held by a student.
func (r *EnrollmentRepository) CountByStudent(ctx context.Context, studentID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM enrollments WHERE student_id = $1`
	var total int
	if err := r.db.GetContext(ctx, &total, query, studentID); err != nil {
		return 0, fmt.Errorf("count student enrollments: %w", err)
	}
	return total, nil
}

// Create persists a new enrollment. The composite unique index and both
// foreign keys are the authoritative checks; the violated constraint decides
// the surfaced error.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	const query = `INSERT INTO enrollments (student_id, course_id)
        VALUES ($1, $2)
        RETURNING id, enrolled_at`
	err := r.db.QueryRowxContext(ctx, query, enrollment.StudentID, enrollment.CourseID).
		Scan(&enrollment.ID, &enrollment.EnrolledAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch string(pqErr.Code) {
			case pgUniqueViolation:
				return appErrors.ErrAlreadyEnrolled
			case pgForeignKeyViolation:
				if strings.Contains(pqErr.Constraint, "course") {
					return appErrors.ErrCourseNotFound
				}
				return appErrors.ErrStudentNotFound
			}
		}
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}
