package employee_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-reqdesk/internal/employee"
	employeeerrors "go-reqdesk/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	withTxFn          func(tx *sql.Tx) employee.Repository
	createFn          func(ctx context.Context, emp *employee.Employee) error
	findAllFn         func(ctx context.Context) ([]employee.Employee, error)
	findByIDFn        func(ctx context.Context, id uint) (*employee.Employee, error)
	findByAccountIDFn func(ctx context.Context, accountID uint) (*employee.Employee, error)
	updateFn          func(ctx context.Context, emp *employee.Employee) error
	deleteFn          func(ctx context.Context, id uint) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, emp *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, emp)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id uint) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByAccountID(ctx context.Context, accountID uint) (*employee.Employee, error) {
	if f.findByAccountIDFn != nil {
		return f.findByAccountIDFn(ctx, accountID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, emp *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, emp)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id uint) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type employeeServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service employee.Service
	repo    *fakeEmployeeRepository
}

func setupEmployeeServiceTest(t *testing.T) *employeeServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeEmployeeRepository{}
	svc := employee.NewService(db, repo)

	return &employeeServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := employee.CreateEmployeeRequest{
			AccountID: 5,
			FullName:  "Sari Wulandari",
			Email:     "sari@example.com",
			Phone:     "0812000111",
		}

		deps.repo.createFn = func(ctx context.Context, emp *employee.Employee) error {
			assert.Equal(t, uint(5), emp.AccountID)
			assert.Equal(t, "Sari Wulandari", emp.FullName)
			emp.ID = 12
			return nil
		}

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, uint(12), resp.ID)
		assert.Equal(t, "sari@example.com", resp.Email)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative duplicate email", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.createFn = func(ctx context.Context, emp *employee.Employee) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_employees_email"}
		}

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			AccountID: 5,
			FullName:  "Sari Wulandari",
			Email:     "sari@example.com",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative account already linked", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.createFn = func(ctx context.Context, emp *employee.Employee) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_employees_account_id"}
		}

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			AccountID: 5,
			FullName:  "Sari Wulandari",
			Email:     "sari2@example.com",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrAccountAlreadyLinked)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
			return []employee.Employee{
				{ID: 1, AccountID: 5, FullName: "Agus", Email: "agus@example.com"},
				{ID: 2, AccountID: 6, FullName: "Budi", Email: "budi@example.com"},
			}, nil
		}

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "Agus", resp[0].FullName)
	})

	t.Run("negative repo error", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context) ([]employee.Employee, error) {
			return nil, errors.New("db error")
		}

		resp, err := deps.service.GetAll(ctx)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id uint) (*employee.Employee, error) {
			assert.Equal(t, uint(12), id)
			return &employee.Employee{ID: 12, AccountID: 5, FullName: "Agus"}, nil
		}

		resp, err := deps.service.GetByID(ctx, 12)

		assert.NoError(t, err)
		assert.Equal(t, uint(12), resp.ID)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id uint) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.GetByID(ctx, 404)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id uint) (*employee.Employee, error) {
			return &employee.Employee{ID: 12, AccountID: 5, FullName: "Agus", Email: "agus@example.com"}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, emp *employee.Employee) error {
			assert.Equal(t, "Agus Santoso", emp.FullName)
			return nil
		}

		resp, err := deps.service.Update(ctx, 12, employee.UpdateEmployeeRequest{
			FullName: "Agus Santoso",
			Email:    "agus@example.com",
			Phone:    "0812999888",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Agus Santoso", resp.FullName)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id uint) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Update(ctx, 404, employee.UpdateEmployeeRequest{FullName: "X", Email: "x@example.com"})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id uint) (*employee.Employee, error) {
			return &employee.Employee{ID: 12}, nil
		}
		deps.repo.deleteFn = func(ctx context.Context, id uint) error {
			assert.Equal(t, uint(12), id)
			return nil
		}

		err := deps.service.Delete(ctx, 12)

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id uint) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		}

		err := deps.service.Delete(ctx, 404)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
