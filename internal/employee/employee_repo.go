package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, emp *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id uint) (*Employee, error)
	FindByAccountID(ctx context.Context, accountID uint) (*Employee, error)
	Update(ctx context.Context, emp *Employee) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn binds the session to the caller's transaction when one is set, so
// every statement issued through a WithTx'd repository commits or rolls
// back with it.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	if r.tx != nil {
		db := r.db.Session(&gorm.Session{Context: ctx, NewDB: true})
		db.Statement.ConnPool = r.tx
		return db
	}
	return r.db.WithContext(ctx)
}

func (r *repository) Create(ctx context.Context, emp *Employee) error {
	return r.conn(ctx).Create(emp).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var emps []Employee
	err := r.conn(ctx).
		Order("full_name ASC").
		Find(&emps).Error
	return emps, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Employee, error) {
	var emp Employee
	err := r.conn(ctx).
		First(&emp, "id = ?", id).Error
	return &emp, err
}

func (r *repository) FindByAccountID(ctx context.Context, accountID uint) (*Employee, error) {
	var emp Employee
	err := r.conn(ctx).
		First(&emp, "account_id = ?", accountID).Error
	return &emp, err
}

func (r *repository) Update(ctx context.Context, emp *Employee) error {
	return r.conn(ctx).Save(emp).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.conn(ctx).
		Delete(&Employee{}, "id = ?", id).Error
}
