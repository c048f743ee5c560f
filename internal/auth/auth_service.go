package auth

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	autherrors "go-reqdesk/internal/auth/errors"
	"go-reqdesk/internal/employee"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error)
	GetMe(ctx context.Context, accountID uint) (AuthResponse, error)
}

type service struct {
	repo         Repository
	employeeRepo employee.Repository
	logger       *zap.Logger
}

func NewService(repo Repository, employeeRepo employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, employeeRepo: employeeRepo, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	acc, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(password)); err != nil {
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}

	if !acc.IsActive {
		return TokenResponse{}, autherrors.ErrAccountInactive
	}

	resp := AuthResponse{ID: acc.ID, Email: acc.Email, Role: acc.Role}

	// Not every account has an employee record (a pure admin does not)
	var employeeID string
	if emp, err := s.employeeRepo.FindByAccountID(ctx, acc.ID); err == nil {
		resp.EmployeeID = &emp.ID
		employeeID = strconv.FormatUint(uint64(emp.ID), 10)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return TokenResponse{}, err
	}

	accessToken, err := generateToken(acc.ID, employeeID, acc.Role, accessTokenTTL)
	if err != nil {
		return TokenResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := generateToken(acc.ID, employeeID, acc.Role, refreshTokenTTL)
	if err != nil {
		return TokenResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success",
		zap.Uint("account_id", acc.ID),
		zap.String("role", acc.Role),
	)

	return TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Account:      resp,
	}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenResponse{}, autherrors.ErrInvalidToken
	}

	accountIDStr, ok := claims["account_id"].(string)
	if !ok {
		return TokenResponse{}, autherrors.ErrInvalidToken
	}

	accountID, err := strconv.ParseUint(accountIDStr, 10, 64)
	if err != nil {
		return TokenResponse{}, autherrors.ErrInvalidAccountID
	}

	acc, err := s.repo.GetByID(ctx, uint(accountID))
	if err != nil {
		return TokenResponse{}, autherrors.ErrAccountNotFound
	}

	employeeID, _ := claims["employee_id"].(string)

	newAccessToken, err := generateToken(acc.ID, employeeID, acc.Role, accessTokenTTL)
	if err != nil {
		return TokenResponse{}, autherrors.ErrTokenGenerationFailed
	}
	newRefreshToken, err := generateToken(acc.ID, employeeID, acc.Role, refreshTokenTTL)
	if err != nil {
		return TokenResponse{}, autherrors.ErrTokenGenerationFailed
	}

	resp := AuthResponse{ID: acc.ID, Email: acc.Email, Role: acc.Role}
	if employeeID != "" {
		if v, err := strconv.ParseUint(employeeID, 10, 64); err == nil {
			id := uint(v)
			resp.EmployeeID = &id
		}
	}

	return TokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
		Account:      resp,
	}, nil
}

func (s *service) GetMe(ctx context.Context, accountID uint) (AuthResponse, error) {
	acc, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, autherrors.ErrAccountNotFound
		}
		return AuthResponse{}, err
	}

	resp := AuthResponse{ID: acc.ID, Email: acc.Email, Role: acc.Role}
	if emp, err := s.employeeRepo.FindByAccountID(ctx, acc.ID); err == nil {
		resp.EmployeeID = &emp.ID
	}

	return resp, nil
}

func generateToken(accountID uint, employeeID, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"account_id":  strconv.FormatUint(uint64(accountID), 10),
		"employee_id": employeeID,
		"role":        role,
		"exp":         time.Now().Add(ttl).Unix(),
		"iat":         time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
