package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/campushq/course-api/internal/dto"
	"github.com/campushq/course-api/internal/models"
	"github.com/campushq/course-api/internal/repository"
	appErrors "github.com/campushq/course-api/pkg/errors"
)

// dashboardCachePattern matches every cached dashboard payload. Creating a
// course, student or enrollment invalidates the whole set.
const dashboardCachePattern = "dashboard:*"

type dashboardCourseRepository interface {
	CountAll(ctx context.Context) (int, error)
	CountByInstructor(ctx context.Context, instructorID int64) (int, error)
}

type dashboardStudentRepository interface {
	CountAll(ctx context.Context) (int, error)
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
}

type dashboardEnrollmentRepository interface {
	CountByStudent(ctx context.Context, studentID int64) (int, error)
}

// DashboardService aggregates the per-role landing page stats.
type DashboardService struct {
	courses     dashboardCourseRepository
	students    dashboardStudentRepository
	enrollments dashboardEnrollmentRepository
	cache       *repository.CacheRepository
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(courses dashboardCourseRepository, students dashboardStudentRepository, enrollments dashboardEnrollmentRepository, cache *repository.CacheRepository, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = repository.NewCacheRepository(nil, logger)
	}
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &DashboardService{courses: courses, students: students, enrollments: enrollments, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Stats computes the dashboard aggregate for the calling identity. MyCourses
// is courses owned for instructors and enrollment count for students; the
// student roster record is matched by the session email and missing roster
// records yield zero rather than an error.
func (s *DashboardService) Stats(ctx context.Context, identity *models.Session) (*dto.DashboardStats, error) {
	key := fmt.Sprintf("dashboard:%d", identity.UserID)

	var cached dto.DashboardStats
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if appErrors.FromError(err).Code != appErrors.ErrCacheMiss.Code {
		s.logger.Warn("dashboard cache lookup failed", zap.Error(err))
	}

	totalCourses, err := s.courses.CountAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count courses")
	}
	totalStudents, err := s.students.CountAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count students")
	}

	myCourses := 0
	switch identity.Role {
	case models.RoleInstructor:
		myCourses, err = s.courses.CountByInstructor(ctx, identity.UserID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count owned courses")
		}
	case models.RoleStudent:
		student, err := s.students.FindByEmail(ctx, identity.UserEmail)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to match roster record")
			}
		} else {
			myCourses, err = s.enrollments.CountByStudent(ctx, student.ID)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count enrollments")
			}
		}
	}

	stats := &dto.DashboardStats{
		TotalCourses:  totalCourses,
		TotalStudents: totalStudents,
		MyCourses:     myCourses,
	}

	if err := s.cache.Set(ctx, key, stats, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache dashboard stats", zap.Error(err))
	}

	return stats, nil
}
