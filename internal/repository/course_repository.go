package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/campushq/course-api/internal/models"
	appErrors "github.com/campushq/course-api/pkg/errors"
)

// CourseRepository handles persistence of courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// FindByID returns a course by identifier.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	const query = `SELECT id, title, code, description, credits, instructor_id, created_at FROM courses WHERE id = $1 LIMIT 1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find course by id: %w", err)
	}
	return &course, nil
}

// ExistsByCode reports whether a course with the code already exists.
func (r *CourseRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	const query = `SELECT 1 FROM courses WHERE code = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, code); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check course code: %w", err)
	}
	return true, nil
}

// ListAll returns every course ordered by creation time.
func (r *CourseRepository) ListAll(ctx context.Context) ([]models.Course, error) {
	const query = `SELECT id, title, code, description, credits, instructor_id, created_at FROM courses ORDER BY created_at DESC`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// ListByInstructor returns courses owned by the given instructor.
func (r *CourseRepository) ListByInstructor(ctx context.Context, instructorID int64) ([]models.Course, error) {
	const query = `SELECT id, title, code, description, credits, instructor_id, created_at FROM courses WHERE instructor_id = $1 ORDER BY created_at DESC`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, instructorID); err != nil {
		return nil, fmt.Errorf("list instructor courses: %w", err)
	}
	return courses, nil
}

// CountAll returns the total number of courses.
func (r *CourseRepository) CountAll(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM courses`
	var total int
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return total, nil
}

// CountByInstructor returns the number of courses owned by an instructor.
func (r *CourseRepository) CountByInstructor(ctx context.Context, instructorID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM courses WHERE instructor_id = $1`
	var total int
	if err := r.db.GetContext(ctx, &total, query, instructorID); err != nil {
		return 0, fmt.Errorf("count instructor courses: %w", err)
	}
	return total, nil
}

// Create inserts a new course. The unique index on code and the instructor
// foreign key are the authoritative constraint checks.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	const query = `INSERT INTO courses (title, code, description, credits, instructor_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	err := r.db.QueryRowxContext(ctx, query, course.Title, course.Code, course.Description, course.Credits, course.InstructorID).
		Scan(&course.ID, &course.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch string(pqErr.Code) {
			case pgUniqueViolation:
				return appErrors.ErrCodeTaken
			case pgForeignKeyViolation:
				return appErrors.Clone(appErrors.ErrValidation, "instructor does not exist")
			}
		}
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}
