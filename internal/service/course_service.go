package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushq/course-api/internal/models"
	"github.com/campushq/course-api/internal/repository"
	appErrors "github.com/campushq/course-api/pkg/errors"
)

type courseRepository interface {
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, course *models.Course) error
	ListAll(ctx context.Context) ([]models.Course, error)
	ListByInstructor(ctx context.Context, instructorID int64) ([]models.Course, error)
}

// CreateCourseRequest holds the payload for creating a course. The owner is
// never part of the payload; it always comes from the caller's session.
type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required"`
	Code        string `json:"code" validate:"required"`
	Description string `json:"description"`
	Credits     int    `json:"credits" validate:"omitempty,gt=0"`
}

// CourseService handles course use cases.
type CourseService struct {
	repo      courseRepository
	cache     *repository.CacheRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(repo courseRepository, cache *repository.CacheRepository, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = repository.NewCacheRepository(nil, logger)
	}
	return &CourseService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// Create registers a new course owned by the calling instructor.
func (s *CourseService) Create(ctx context.Context, identity *models.Session, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	exists, err := s.repo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate course code")
	}
	if exists {
		return nil, appErrors.ErrCodeTaken
	}

	credits := req.Credits
	if credits == 0 {
		credits = models.DefaultCredits
	}

	course := &models.Course{
		Title:        req.Title,
		Code:         req.Code,
		Description:  req.Description,
		Credits:      credits,
		InstructorID: identity.UserID,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		if appErr := appErrors.FromError(err); appErr.Code == appErrors.ErrCodeTaken.Code {
			return nil, err
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}

	if err := s.cache.DeleteByPattern(ctx, dashboardCachePattern); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}

	s.logger.Info("course created", zap.Int64("course_id", course.ID), zap.Int64("instructor_id", course.InstructorID))
	return course, nil
}

// List returns courses visible to the caller: instructors see only their own,
// every other role sees the whole catalogue.
func (s *CourseService) List(ctx context.Context, identity *models.Session) ([]models.Course, error) {
	var (
		courses []models.Course
		err     error
	)
	if identity.Role == models.RoleInstructor {
		courses, err = s.repo.ListByInstructor(ctx, identity.UserID)
	} else {
		courses, err = s.repo.ListAll(ctx)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}
