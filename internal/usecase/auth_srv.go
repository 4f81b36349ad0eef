package usecase

import (
	"context"
	"fmt"
	"time"

	"pet-rental/internal/data/entity"
	"pet-rental/internal/data/repository"
	"pet-rental/internal/dto/request"
	"pet-rental/internal/dto/response"
	"pet-rental/pkg/cache"
	"pet-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, userAgent, ip string) (*response.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	SendVerifyCode(ctx context.Context, req *request.SendVerifyCodeRequest) error
	VerifyEmail(ctx context.Context, req *request.VerifyEmailRequest) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	codes  *cache.CodeStore
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, codes *cache.CodeStore, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		codes:  codes,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, newErr(CodeValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if existing != nil {
		return nil, newErr(CodeConflict, "email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         entity.RoleUser,
		IsActive:     true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, userAgent, ip string) (*response.LoginResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newErr(CodeValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, newErr(CodeValidation, "invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.log.Warn("Login failed", zap.String("email", req.Email))
		return nil, newErr(CodeValidation, "invalid email or password")
	}

	now := time.Now().UTC()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    user.ID,
		Token:     uuid.New(),
		ExpiresAt: now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}
	if userAgent != "" {
		session.UserAgent = &userAgent
	}
	if ip != "" {
		session.IPAddress = &ip
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return &response.LoginResponse{
		Token:     session.Token.String(),
		ExpiresAt: session.ExpiresAt,
		User:      response.UserToResponse(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *authService) SendVerifyCode(ctx context.Context, req *request.SendVerifyCodeRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return newErr(CodeValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("send verify code: %w", err)
	}
	if user == nil {
		return newErr(CodeNotFound, "email not registered")
	}
	if user.EmailVerified {
		return newErr(CodeConflict, "email already verified")
	}

	code := utils.GenerateVerifyCode(s.config.Verify.CodeLength)
	if err := s.codes.Issue(ctx, req.Email, code); err != nil {
		if err == cache.ErrCodePending {
			return newErr(CodeConflict, "a verification code was already sent, try again later")
		}
		return fmt.Errorf("send verify code: %w", err)
	}

	// Mail delivery is out of scope here; the code lands in the log for
	// whatever transport picks it up.
	s.log.Info("Verification code issued",
		zap.String("email", req.Email),
		zap.String("code", code),
	)
	return nil
}

func (s *authService) VerifyEmail(ctx context.Context, req *request.VerifyEmailRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return newErr(CodeValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("verify email: %w", err)
	}
	if user == nil {
		return newErr(CodeNotFound, "email not registered")
	}

	if err := s.codes.Consume(ctx, req.Email, req.Code); err != nil {
		if err == cache.ErrCodeInvalid {
			return newErr(CodeValidation, "invalid or expired verification code")
		}
		return fmt.Errorf("verify email: %w", err)
	}

	if err := s.repo.User.MarkEmailVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("verify email: %w", err)
	}

	s.log.Info("Email verified", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, newErr(CodeNotFound, "user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}
