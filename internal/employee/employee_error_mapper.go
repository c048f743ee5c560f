package employee

import (
	"errors"
	"strings"

	employeeerrors "go-reqdesk/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "account_id") {
				return employeeerrors.ErrAccountAlreadyLinked
			}
			return employeeerrors.ErrEmployeeAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		if strings.Contains(errMsg, "account_id") {
			return employeeerrors.ErrAccountAlreadyLinked
		}
		return employeeerrors.ErrEmployeeAlreadyExists
	}

	return err
}
