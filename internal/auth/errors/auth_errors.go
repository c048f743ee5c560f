package autherrors

import (
	"net/http"

	"go-reqdesk/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"invalid email or password",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		"INVALID_TOKEN",
		"Invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		"TOKEN_EXPIRED",
		"Token has expired",
		http.StatusUnauthorized,
	)
	ErrInvalidRefreshToken = apperror.New(
		"INVALID_TOKEN",
		"Invalid refresh token",
		http.StatusUnauthorized,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"failed to generate token",
		http.StatusInternalServerError,
	)
	ErrAccountNotFound = apperror.New(
		apperror.CodeNotFound,
		"account not found",
		http.StatusNotFound,
	)
	ErrAccountInactive = apperror.New(
		apperror.CodeForbidden,
		"account is inactive",
		http.StatusForbidden,
	)
	ErrInvalidAccountID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid account id",
		http.StatusBadRequest,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)
)
