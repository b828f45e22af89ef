package auth

import "github.com/k3guard/attendance-backend-go/internal/pkg/validator"

type LoginRequest struct {
	NIK      string `json:"nik"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidNIK(r.NIK) {
		errs = append(errs, validator.ValidationError{Field: "nik", Message: "must be a numeric employee ID"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginResponse struct {
	NIK                   string `json:"nik"`
	FullName              string `json:"full_name"`
	Role                  string `json:"role"`
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresAt  int64  `json:"access_token_expires_at"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresAt int64  `json:"refresh_token_expires_at"`
}
