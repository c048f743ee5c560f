package request

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	requesterrors "go-reqdesk/internal/request/errors"
	"go-reqdesk/internal/shared/apperror"
	"go-reqdesk/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("request.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("request operation failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// getActor pulls the authenticated caller out of the gin context. The auth
// middleware stores account_id as a string claim.
func getActor(c *gin.Context) (role string, accountID uint, ok bool) {
	role = c.GetString("role")
	rawID := c.GetString("account_id")
	id, err := strconv.ParseUint(rawID, 10, 64)
	if role == "" || err != nil {
		return "", 0, false
	}
	return role, uint(id), true
}

func parseUintParam(c *gin.Context, name string, invalid error) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, invalid
	}
	return uint(id), nil
}

func (h *Handler) Create(c *gin.Context) {
	role, accountID, ok := getActor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication required", nil)
		return
	}

	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create request validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), role, accountID, req)
	if err != nil {
		h.releaseIdempotencyLock(c)
		h.writeServiceError(c, err)
		return
	}

	h.finishIdempotency(c, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	role, accountID, ok := getActor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication required", nil)
		return
	}

	id, err := parseUintParam(c, "id", requesterrors.ErrInvalidRequestID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), role, accountID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByEmployeeId(c *gin.Context) {
	role, accountID, ok := getActor(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication required", nil)
		return
	}

	employeeID, err := parseUintParam(c, "employeeId", requesterrors.ErrInvalidEmployeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetByEmployeeID(c.Request.Context(), role, accountID, employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := parseUintParam(c, "id", requesterrors.ErrInvalidRequestID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req UpdateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update request validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := parseUintParam(c, "id", requesterrors.ErrInvalidRequestID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

// finishIdempotency caches the successful result under the key the
// idempotency middleware negotiated and releases its lock.
func (h *Handler) finishIdempotency(c *gin.Context, resp any) {
	if h.rdb == nil {
		return
	}
	cacheKey := c.GetString("idempotency_cache_key")
	lockKey := c.GetString("idempotency_lock_key")
	if cacheKey == "" {
		return
	}
	if payload, err := json.Marshal(resp); err == nil {
		h.rdb.Set(c.Request.Context(), cacheKey, payload, 24*time.Hour)
	}
	if lockKey != "" {
		h.rdb.Del(c.Request.Context(), lockKey)
	}
}

func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	if h.rdb == nil {
		return
	}
	if lockKey := c.GetString("idempotency_lock_key"); lockKey != "" {
		h.rdb.Del(c.Request.Context(), lockKey)
	}
}
