package services

import (
	"context"
	"errors"

	"github.com/mentorhub/mentorhub-web/internal/models"
	"github.com/mentorhub/mentorhub-web/pkg/logger"
	"github.com/mentorhub/mentorhub-web/pkg/metrics"
	"go.uber.org/zap"
)

// ErrUnknownRole is returned when the backend reports a role this
// application does not recognize. The caller must not establish a session.
var ErrUnknownRole = errors.New("unknown user role")

// AuthService exchanges credentials with the core backend and turns the
// result into a browser session.
type AuthService struct {
	api AuthAPI
}

// NewAuthService creates the auth service.
func NewAuthService(api AuthAPI) *AuthService {
	return &AuthService{api: api}
}

// Login authenticates against the core backend and builds the session to
// persist. The redirect target is the dashboard root for the user's role.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	result, err := s.api.Login(ctx, req.Email, req.Password)
	if err != nil {
		metrics.Logins.WithLabelValues("error").Inc()
		return nil, err
	}

	sess, err := s.sessionFrom(result)
	if err != nil {
		metrics.Logins.WithLabelValues("unknown_role").Inc()
		logger.Warn("Login returned unrecognized role",
			zap.String("user_id", result.UserID),
			zap.String("role", result.Role),
		)
		return nil, err
	}

	metrics.Logins.WithLabelValues("success").Inc()
	logger.Info("User logged in",
		zap.String("user_id", sess.UserID),
		zap.String("role", string(sess.Role)),
	)
	return sess, nil
}

// Register creates an account and logs the new user straight in.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.Session, error) {
	result, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessionFrom(result)
	if err != nil {
		return nil, err
	}

	logger.Info("User registered",
		zap.String("user_id", sess.UserID),
		zap.String("role", string(sess.Role)),
	)
	return sess, nil
}

func (s *AuthService) sessionFrom(result *models.AuthResult) (*models.Session, error) {
	role := models.ParseRole(result.Role)
	if !role.Valid() {
		return nil, ErrUnknownRole
	}
	return &models.Session{
		Token:  result.Token,
		UserID: result.UserID,
		Name:   result.Name,
		Role:   role,
	}, nil
}
