package rbac

import (
	"net/http"
	"strings"

	"go-reqdesk/internal/domain"
	"go-reqdesk/internal/shared/apperror"
	"go-reqdesk/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Enforce answers a dry-run policy question without touching any resource.
// Useful for UIs that hide actions the caller cannot perform.
func (h *Handler) Enforce(c *gin.Context) {
	var req domain.EnforceRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	req.Role = strings.TrimSpace(req.Role)
	req.Resource = strings.TrimSpace(req.Resource)
	req.Action = strings.TrimSpace(req.Action)

	if req.Role == "" || req.Resource == "" || req.Action == "" {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "role, resource, and action are required", nil)
		return
	}

	allowed, err := h.service.Enforce(req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}

	response.Success(c, http.StatusOK, domain.EnforceResponse{
		Allowed: allowed,
	}, nil)
}
