package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushq/course-api/internal/models"
	appErrors "github.com/campushq/course-api/pkg/errors"
	"github.com/campushq/course-api/pkg/signer"
)

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
}

// SessionStore is the server-side mapping from opaque token to identity.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
}

// AuthService provides registration, login and logout use cases.
type AuthService struct {
	repo       authUserRepository
	sessions   SessionStore
	signer     *signer.Signer
	validator  *validator.Validate
	logger     *zap.Logger
	sessionTTL time.Duration
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, sessions SessionStore, tokenSigner *signer.Signer, validate *validator.Validate, logger *zap.Logger, sessionTTL time.Duration) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, sessions: sessions, signer: tokenSigner, validator: validate, logger: logger, sessionTTL: sessionTTL}
}

// SessionTTL exposes the configured session lifetime.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Register creates a user account. The password is bcrypt-hashed before the
// row is written; the raw password never reaches the repository.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.UserInfo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}
	if req.Password != req.ConfirmPassword {
		return nil, appErrors.Clone(appErrors.ErrValidation, "passwords do not match")
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate email")
	}
	if exists {
		return nil, appErrors.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if appErr := appErrors.FromError(err); appErr.Code == appErrors.ErrEmailTaken.Code {
			return nil, err
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	info := user.Info()
	return &info, nil
}

// Login verifies credentials and issues a server-held session. The returned
// token is opaque: identity lives only in the session store.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
	}

	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		Role:      user.Role,
		IssuedAt:  time.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}

	s.logger.Info("user logged in", zap.Int64("user_id", user.ID))

	return &models.LoginResponse{
		Token:     s.signer.Sign(session.Token),
		ExpiresIn: int64(s.sessionTTL.Seconds()),
		User:      user.Info(),
	}, nil
}

// Logout invalidates the session behind the signed token. Unknown, forged or
// already-ended tokens succeed: logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, signedToken string) error {
	token, ok := s.signer.Verify(signedToken)
	if !ok {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to end session")
	}
	return nil
}
