package employeeerrors

import (
	"net/http"

	"go-reqdesk/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"employee with this email already exists",
		http.StatusConflict,
	)
	ErrAccountAlreadyLinked = apperror.New(
		apperror.CodeConflict,
		"account is already linked to an employee",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
)
