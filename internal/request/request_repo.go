package request

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=request_repo.go -destination=mock/request_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *Request) error
	CreateItems(ctx context.Context, items []RequestItem) error
	FindAll(ctx context.Context) ([]Request, error)
	FindByID(ctx context.Context, id uint) (*Request, error)
	FindAllByEmployee(ctx context.Context, employeeID uint) ([]Request, error)
	Update(ctx context.Context, r *Request) error
	DeleteItemsByRequest(ctx context.Context, requestID uint) error
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

func (r *repository) Create(ctx context.Context, req *Request) error {
	// Omit associations: items are bulk-inserted separately so they can be
	// stamped and replaced through one code path
	return r.conn(ctx).Omit("Items", "Employee").Create(req).Error
}

func (r *repository) CreateItems(ctx context.Context, items []RequestItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&items).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Request, error) {
	var reqs []Request
	err := r.conn(ctx).
		Preload("Items").
		Preload("Employee").
		Preload("Employee.Account").
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Request, error) {
	var req Request
	err := r.conn(ctx).
		Preload("Items").
		Preload("Employee").
		Preload("Employee.Account").
		First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID uint) ([]Request, error) {
	var reqs []Request
	err := r.conn(ctx).
		Preload("Items").
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) Update(ctx context.Context, req *Request) error {
	return r.conn(ctx).Omit("Items", "Employee").Save(req).Error
}

func (r *repository) DeleteItemsByRequest(ctx context.Context, requestID uint) error {
	return r.conn(ctx).
		Delete(&RequestItem{}, "request_id = ?", requestID).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.conn(ctx).
		Delete(&Request{}, "id = ?", id).Error
}
