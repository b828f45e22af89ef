package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/k3guard/attendance-backend-go/internal/domain/auth"
	"github.com/k3guard/attendance-backend-go/internal/domain/employee"
	"github.com/k3guard/attendance-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	employees  employee.EmployeeRepository
	jwtService jwt.Service
}

func NewAuthService(employees employee.EmployeeRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		employees:  employees,
		jwtService: jwtService,
	}
}

// Login implements auth.AuthService. A missing NIK and a wrong password
// produce the same error so the endpoint does not leak which NIKs exist.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	emp, err := s.employees.GetByNIK(ctx, req.NIK)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}
	if !emp.Active {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	resp, err := s.tokenPair(emp)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	slog.Info("employee logged in", "nik", emp.NIK)
	return resp, nil
}

// Refresh implements auth.AuthService. The employee row is re-read so a
// deactivation takes effect at the next refresh, not at token expiry.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.LoginResponse, error) {
	nik, err := s.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	emp, err := s.employees.GetByNIK(ctx, nik)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidToken
		}
		return auth.LoginResponse{}, err
	}
	if !emp.Active {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	return s.tokenPair(emp)
}

func (s *AuthServiceImpl) tokenPair(emp employee.Employee) (auth.LoginResponse, error) {
	accessToken, accessExp, err := s.jwtService.GenerateAccessToken(emp.NIK, emp.FullName, emp.Role)
	if err != nil {
		return auth.LoginResponse{}, err
	}
	refreshToken, refreshExp, err := s.jwtService.GenerateRefreshToken(emp.NIK)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		NIK:                   emp.NIK,
		FullName:              emp.FullName,
		Role:                  string(emp.Role),
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExp,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExp,
	}, nil
}
