package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushq/course-api/internal/dto"
	"github.com/campushq/course-api/internal/models"
	"github.com/campushq/course-api/internal/repository"
	appErrors "github.com/campushq/course-api/pkg/errors"
)

type enrollmentRepository interface {
	Exists(ctx context.Context, studentID, courseID int64) (bool, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
}

type enrollmentStudentRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	ListAll(ctx context.Context) ([]models.Student, error)
}

type enrollmentCourseRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	ListAll(ctx context.Context) ([]models.Course, error)
}

// EnrollRequest holds the payload for enrolling a student in a course.
type EnrollRequest struct {
	StudentID int64 `json:"student_id" validate:"required,gt=0"`
	CourseID  int64 `json:"course_id" validate:"required,gt=0"`
}

// EnrollmentService handles enrollment use cases.
type EnrollmentService struct {
	repo      enrollmentRepository
	students  enrollmentStudentRepository
	courses   enrollmentCourseRepository
	cache     *repository.CacheRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs the enrollment service.
func NewEnrollmentService(repo enrollmentRepository, students enrollmentStudentRepository, courses enrollmentCourseRepository, cache *repository.CacheRepository, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = repository.NewCacheRepository(nil, logger)
	}
	return &EnrollmentService{repo: repo, students: students, courses: courses, cache: cache, validator: validate, logger: logger}
}

// Enroll records a student's registration in a course. Both references must
// resolve and the pair must not already exist.
func (s *EnrollmentService) Enroll(ctx context.Context, req EnrollRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}

	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrStudentNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if _, err := s.courses.FindByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrCourseNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	exists, err := s.repo.Exists(ctx, req.StudentID, req.CourseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment")
	}
	if exists {
		return nil, appErrors.ErrAlreadyEnrolled
	}

	enrollment := &models.Enrollment{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
	}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		appErr := appErrors.FromError(err)
		switch appErr.Code {
		case appErrors.ErrAlreadyEnrolled.Code, appErrors.ErrStudentNotFound.Code, appErrors.ErrCourseNotFound.Code:
			return nil, err
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enrollment")
	}

	if err := s.cache.DeleteByPattern(ctx, dashboardCachePattern); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}

	s.logger.Info("student enrolled", zap.Int64("student_id", req.StudentID), zap.Int64("course_id", req.CourseID))
	return enrollment, nil
}

// FormData returns the roster and catalogue used by the enroll form.
func (s *EnrollmentService) FormData(ctx context.Context) (*dto.EnrollmentForm, error) {
	students, err := s.students.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	courses, err := s.courses.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return &dto.EnrollmentForm{Students: students, Courses: courses}, nil
}
