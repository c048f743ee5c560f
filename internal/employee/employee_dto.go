package employee

type CreateEmployeeRequest struct {
	AccountID uint   `json:"account_id" binding:"required"`
	FullName  string `json:"full_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
}

type UpdateEmployeeRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
}

type EmployeeResponse struct {
	ID        uint   `json:"id"`
	AccountID uint   `json:"account_id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}
