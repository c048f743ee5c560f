package requesterrors

import (
	"net/http"

	"go-reqdesk/internal/shared/apperror"
)

var (
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"request not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrRoleNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"only admin or staff may create requests",
		http.StatusForbidden,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"you may only access your own requests",
		http.StatusForbidden,
	)
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid request id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
)
