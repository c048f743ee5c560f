package request

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go-reqdesk/internal/account"
	"go-reqdesk/internal/employee"
	"go-reqdesk/internal/events"
	"go-reqdesk/internal/messaging/kafka"
	requesterrors "go-reqdesk/internal/request/errors"
	"go-reqdesk/internal/shared/contextutil"
	"go-reqdesk/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusClosed   = "CLOSED"
)

const RequestListKey = "requests:all"

//go:generate mockgen -source=request_service.go -destination=mock/request_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, role string, accountID uint, req CreateRequestRequest) (RequestResponse, error)
	GetAll(ctx context.Context) ([]RequestResponse, error)
	GetByID(ctx context.Context, role string, accountID uint, id uint) (RequestResponse, error)
	GetByEmployeeID(ctx context.Context, role string, accountID uint, employeeID uint) ([]RequestResponse, error)
	Update(ctx context.Context, id uint, req UpdateRequestRequest) (RequestResponse, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	counter   counter.Repository
	outbox    kafka.OutboxRepository
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	counterRepo counter.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, employees, counterRepo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("request.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		counter:   counterRepo,
		outbox:    outboxRepo,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, role string, accountID uint, req CreateRequestRequest) (RequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create request requested",
		zap.String("request_id", rid),
		zap.String("role", role),
		zap.Uint("account_id", accountID),
		zap.String("type", req.Type),
		zap.Int("items", len(req.Items)),
	)

	if !account.IsValidRole(role) {
		return RequestResponse{}, requesterrors.ErrRoleNotAllowed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create request begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Admins may create on behalf of any employee; everyone else is bound
	// to the employee linked to their own account, whatever the body says.
	var emp *employee.Employee
	if role == account.RoleAdmin && req.EmployeeID != nil {
		emp, err = s.employees.FindByID(ctx, *req.EmployeeID)
	} else {
		emp, err = s.employees.FindByAccountID(ctx, accountID)
	}
	if err != nil {
		if isRecordNotFound(err) {
			return RequestResponse{}, requesterrors.ErrEmployeeNotFound
		}
		s.logger.Error("create request employee lookup failed", zap.Error(err))
		return RequestResponse{}, err
	}

	nextVal, err := s.counter.GetNextValue(ctx, "request_number")
	if err != nil {
		s.logger.Error("create request generate number failed", zap.Error(err))
		return RequestResponse{}, err
	}

	r := &Request{
		Number:      fmt.Sprintf("REQ-%06d", nextVal),
		EmployeeID:  emp.ID,
		Type:        req.Type,
		Status:      StatusPending,
		Description: req.Description,
	}

	if err := qtx.Create(ctx, r); err != nil {
		s.logger.Error("create request persist failed", zap.Error(err))
		return RequestResponse{}, mapRepositoryError(err)
	}

	if len(req.Items) > 0 {
		items := buildItems(r.ID, req.Items)
		if err := qtx.CreateItems(ctx, items); err != nil {
			s.logger.Error("create request items persist failed", zap.Error(err))
			return RequestResponse{}, mapRepositoryError(err)
		}
	}

	if s.outbox != nil {
		event := events.RequestCreatedEvent{
			EventType:  "request_created",
			RequestID:  r.ID,
			Number:     r.Number,
			EmployeeID: r.EmployeeID,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return RequestResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			CorrelationID: rid,
			AggregateType: "request",
			AggregateID:   strconv.FormatUint(uint64(r.ID), 10),
			EventType:     event.EventType,
			Topic:         events.RequestCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create request outbox persist failed", zap.Error(err))
			return RequestResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create request commit failed", zap.Error(err))
		return RequestResponse{}, err
	}

	s.invalidateListCache(ctx)

	s.logger.Info("create request success",
		zap.String("request_id", rid),
		zap.Uint("id", r.ID),
		zap.String("number", r.Number),
		zap.Uint("employee_id", r.EmployeeID),
	)

	// The created response carries top-level fields only; items are
	// available through GetByID
	return mapToResponse(*r, false), nil
}

func (s *service) GetAll(ctx context.Context) ([]RequestResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, RequestListKey).Result(); err == nil {
			var resp []RequestResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(RequestListKey, func() (interface{}, error) {
		reqs, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(reqs, true)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, RequestListKey, jsonData, 5*time.Minute)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]RequestResponse), nil
}

func (s *service) GetByID(ctx context.Context, role string, accountID uint, id uint) (RequestResponse, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return RequestResponse{}, mapRepositoryError(err)
	}

	if role != account.RoleAdmin {
		if err := s.checkOwnership(ctx, accountID, r.EmployeeID); err != nil {
			return RequestResponse{}, err
		}
	}

	return mapToResponse(*r, true), nil
}

func (s *service) GetByEmployeeID(ctx context.Context, role string, accountID uint, employeeID uint) ([]RequestResponse, error) {
	if role != account.RoleAdmin {
		if err := s.checkOwnership(ctx, accountID, employeeID); err != nil {
			return nil, err
		}
	}

	reqs, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(reqs, true), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateRequestRequest) (RequestResponse, error) {
	s.logger.Debug("update request requested",
		zap.Uint("id", id),
		zap.String("actor_account_id", contextutil.GetAccountID(ctx)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update request begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	r, err := qtx.FindByID(ctx, id)
	if err != nil {
		return RequestResponse{}, mapRepositoryError(err)
	}

	if req.Type != nil {
		r.Type = *req.Type
	}
	if req.Status != nil {
		r.Status = *req.Status
	}
	if req.Description != nil {
		r.Description = *req.Description
	}

	if err := qtx.Update(ctx, r); err != nil {
		s.logger.Error("update request persist failed", zap.Uint("id", id), zap.Error(err))
		return RequestResponse{}, mapRepositoryError(err)
	}

	// Wholesale item replacement: the previous set is discarded, partial
	// merges are not supported
	if req.Items != nil {
		if err := qtx.DeleteItemsByRequest(ctx, r.ID); err != nil {
			s.logger.Error("update request delete items failed", zap.Uint("id", id), zap.Error(err))
			return RequestResponse{}, mapRepositoryError(err)
		}
		if len(*req.Items) > 0 {
			items := buildItems(r.ID, *req.Items)
			if err := qtx.CreateItems(ctx, items); err != nil {
				s.logger.Error("update request items persist failed", zap.Uint("id", id), zap.Error(err))
				return RequestResponse{}, mapRepositoryError(err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update request commit failed", zap.Uint("id", id), zap.Error(err))
		return RequestResponse{}, err
	}

	s.invalidateListCache(ctx)

	s.logger.Info("update request success", zap.Uint("id", id), zap.String("status", r.Status))

	return mapToResponse(*r, false), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	s.logger.Debug("delete request requested",
		zap.Uint("id", id),
		zap.String("actor_account_id", contextutil.GetAccountID(ctx)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	// Items go first; no cascade is assumed of the storage layer
	if err := qtx.DeleteItemsByRequest(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateListCache(ctx)

	s.logger.Info("delete request success", zap.Uint("id", id))
	return nil
}

// checkOwnership resolves the caller's employee record and compares it to
// the target. A caller with no employee record is forbidden rather than
// not-found: the resource exists, they just cannot see it.
func (s *service) checkOwnership(ctx context.Context, accountID, employeeID uint) error {
	emp, err := s.employees.FindByAccountID(ctx, accountID)
	if err != nil {
		if isRecordNotFound(err) {
			return requesterrors.ErrNotRequestOwner
		}
		return err
	}
	if emp.ID != employeeID {
		return requesterrors.ErrNotRequestOwner
	}
	return nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, RequestListKey).Err(); err != nil {
		s.logger.Error("failed to invalidate request list cache",
			zap.Error(err),
			zap.String("key", RequestListKey),
		)
	}
}

func buildItems(requestID uint, inputs []RequestItemInput) []RequestItem {
	items := make([]RequestItem, len(inputs))
	for i, in := range inputs {
		qty := in.Quantity
		if qty < 1 {
			qty = 1
		}
		items[i] = RequestItem{
			RequestID: requestID,
			Name:      in.Name,
			Quantity:  qty,
			Note:      in.Note,
		}
	}
	return items
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func mapToResponse(r Request, includeItems bool) RequestResponse {
	resp := RequestResponse{
		ID:          r.ID,
		Number:      r.Number,
		EmployeeID:  r.EmployeeID,
		Type:        r.Type,
		Status:      r.Status,
		Description: r.Description,
	}
	if !r.CreatedAt.IsZero() {
		resp.CreatedAt = r.CreatedAt.Format(time.RFC3339)
	}
	if includeItems {
		resp.Items = make([]RequestItemResponse, len(r.Items))
		for i, it := range r.Items {
			resp.Items[i] = RequestItemResponse{
				ID:       it.ID,
				Name:     it.Name,
				Quantity: it.Quantity,
				Note:     it.Note,
			}
		}
	}
	if r.Employee != nil {
		resp.Employee = &RequestEmployeeResponse{
			ID:        r.Employee.ID,
			AccountID: r.Employee.AccountID,
			FullName:  r.Employee.FullName,
		}
		if r.Employee.Account != nil {
			resp.Employee.Email = r.Employee.Account.Email
		}
	}
	return resp
}

func mapToListResponse(reqs []Request, includeItems bool) []RequestResponse {
	resp := make([]RequestResponse, len(reqs))
	for i, r := range reqs {
		resp[i] = mapToResponse(r, includeItems)
	}
	return resp
}
