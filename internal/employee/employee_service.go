package employee

import (
	"context"
	"database/sql"

	"go-reqdesk/internal/shared/contextutil"

	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id uint) (EmployeeResponse, error)
	Update(ctx context.Context, id uint, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.Uint("account_id", req.AccountID),
		zap.String("email", req.Email),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp := &Employee{
		AccountID: req.AccountID,
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
	}

	if err := qtx.Create(ctx, emp); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Uint("employee_id", emp.ID),
	)

	return mapToResponse(*emp), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	emps, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(emps), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (EmployeeResponse, error) {
	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*emp), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.Uint("employee_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	emp.FullName = req.FullName
	emp.Email = req.Email
	emp.Phone = req.Phone

	if err := qtx.Update(ctx, emp); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("update employee success", zap.Uint("employee_id", id))

	return mapToResponse(*emp), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	s.logger.Debug("delete employee requested", zap.Uint("employee_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete employee success", zap.Uint("employee_id", id))
	return nil
}

func mapToResponse(emp Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        emp.ID,
		AccountID: emp.AccountID,
		FullName:  emp.FullName,
		Email:     emp.Email,
		Phone:     emp.Phone,
	}
}

func mapToListResponse(emps []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(emps))
	for i, e := range emps {
		res[i] = mapToResponse(e)
	}
	return res
}
