package request

import (
	"errors"

	requesterrors "go-reqdesk/internal/request/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return requesterrors.ErrRequestNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// FK violation on employee_id: the referenced employee vanished
		// between the lookup and the insert
		if pgErr.Code == "23503" {
			return requesterrors.ErrEmployeeNotFound
		}
	}

	return err
}
