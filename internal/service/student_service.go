package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushq/course-api/internal/models"
	"github.com/campushq/course-api/internal/repository"
	appErrors "github.com/campushq/course-api/pkg/errors"
)

type studentRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByStudentID(ctx context.Context, studentID string) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	ListAll(ctx context.Context) ([]models.Student, error)
}

// CreateStudentRequest holds the payload for adding a roster record.
type CreateStudentRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	StudentID string `json:"student_id" validate:"required"`
	Major     string `json:"major"`
}

// StudentService handles roster use cases.
type StudentService struct {
	repo      studentRepository
	cache     *repository.CacheRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, cache *repository.CacheRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = repository.NewCacheRepository(nil, logger)
	}
	return &StudentService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// Create adds a student to the roster. Email and student id uniqueness are
// checked independently so the caller can tell the two conflicts apart.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	emailTaken, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate email")
	}
	if emailTaken {
		return nil, appErrors.ErrEmailTaken
	}

	idTaken, err := s.repo.ExistsByStudentID(ctx, req.StudentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate student id")
	}
	if idTaken {
		return nil, appErrors.ErrStudentIDTaken
	}

	student := &models.Student{
		Name:      req.Name,
		Email:     req.Email,
		StudentID: req.StudentID,
		Major:     req.Major,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		appErr := appErrors.FromError(err)
		if appErr.Code == appErrors.ErrEmailTaken.Code || appErr.Code == appErrors.ErrStudentIDTaken.Code {
			return nil, err
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}

	if err := s.cache.DeleteByPattern(ctx, dashboardCachePattern); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}

	s.logger.Info("student created", zap.Int64("id", student.ID), zap.String("student_id", student.StudentID))
	return student, nil
}

// List returns the full roster.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, nil
}
