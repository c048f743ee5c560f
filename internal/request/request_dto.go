package request

type RequestItemInput struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity"`
	Note     string `json:"note"`
}

type CreateRequestRequest struct {
	// Only honored for admin callers; silently dropped otherwise
	EmployeeID  *uint              `json:"employee_id"`
	Type        string             `json:"type" binding:"required"`
	Description string             `json:"description"`
	Items       []RequestItemInput `json:"items" binding:"omitempty,dive"`
}

type UpdateRequestRequest struct {
	Type        *string             `json:"type"`
	Status      *string             `json:"status"`
	Description *string             `json:"description"`
	// When present, the existing item set is replaced wholesale
	Items *[]RequestItemInput `json:"items" binding:"omitempty,dive"`
}

type RequestItemResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Note     string `json:"note,omitempty"`
}

type RequestEmployeeResponse struct {
	ID        uint   `json:"id"`
	AccountID uint   `json:"account_id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email,omitempty"`
}

type RequestResponse struct {
	ID          uint                     `json:"id"`
	Number      string                   `json:"number"`
	EmployeeID  uint                     `json:"employee_id"`
	Type        string                   `json:"type"`
	Status      string                   `json:"status"`
	Description string                   `json:"description,omitempty"`
	CreatedAt   string                   `json:"created_at,omitempty"`
	Items       []RequestItemResponse    `json:"items,omitempty"`
	Employee    *RequestEmployeeResponse `json:"employee,omitempty"`
}
