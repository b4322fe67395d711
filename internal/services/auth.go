package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/crestline/origination-backend/internal/config"
	"github.com/crestline/origination-backend/internal/data/repos"
	types "github.com/crestline/origination-backend/internal/domain"
	"github.com/crestline/origination-backend/internal/pkg/logger"
	"github.com/crestline/origination-backend/internal/requestdata"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *types.Staff, error)
	CreateStaff(ctx context.Context, email, password, displayName, role string) (*types.Staff, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	log       *logger.Logger
	staffRepo repos.StaffRepo
	secret    []byte
	tokenTTL  time.Duration
}

func NewAuthService(cfg config.AuthConfig, baseLog *logger.Logger, staffRepo repos.StaffRepo) AuthService {
	return &authService{
		log:       baseLog.With("service", "AuthService"),
		staffRepo: staffRepo,
		secret:    []byte(cfg.JWTSecret),
		tokenTTL:  time.Duration(cfg.AccessTokenTTLSecs) * time.Second,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *types.Staff, error) {
	staff, err := s.staffRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return "", nil, err
	}
	if staff == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   staff.ID.String(),
		"email": staff.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, staff, nil
}

func (s *authService) CreateStaff(ctx context.Context, email, password, displayName, role string) (*types.Staff, error) {
	fe := types.FieldErrors{}
	if email == "" {
		fe.Add("email", "required")
	}
	if len(password) < 8 {
		fe.Add("password", "must be at least 8 characters")
	}
	if displayName == "" {
		fe.Add("display_name", "required")
	}
	if !fe.Empty() {
		return nil, types.NewValidationError(fe)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if role == "" {
		role = "officer"
	}
	return s.staffRepo.Create(ctx, nil, &types.Staff{
		ID:          uuid.New(),
		Email:       email,
		Password:    string(hash),
		DisplayName: displayName,
		Role:        role,
	})
}

// SetContextFromToken verifies the bearer token and stamps the acting staff
// identity onto the context for downstream audit columns.
func (s *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return ctx, ErrInvalidCredentials
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx, ErrInvalidCredentials
	}
	sub, _ := claims["sub"].(string)
	staffID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, ErrInvalidCredentials
	}
	staff, err := s.staffRepo.GetByID(ctx, nil, staffID)
	if err != nil {
		return ctx, err
	}
	if staff == nil {
		return ctx, ErrInvalidCredentials
	}
	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString: tokenString,
		StaffID:     staff.ID,
		StaffEmail:  staff.Email,
	}), nil
}
