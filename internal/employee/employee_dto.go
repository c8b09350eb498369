package employee

type CreateEmployeeRequest struct {
	Email          string `json:"email" binding:"required,email,max=255"`
	FirstName      string `json:"first_name" binding:"max=100"`
	LastName       string `json:"last_name" binding:"max=100"`
	Birthday       string `json:"birthday" binding:"omitempty,datetime=2006-01-02"`
	DepartmentName string `json:"department_name" binding:"required,max=255"`
}

// UpdateEmployeeRequest replaces the employee; only birthday may be omitted.
type UpdateEmployeeRequest struct {
	Email          string `json:"email" binding:"required,email,max=255"`
	FirstName      string `json:"first_name" binding:"required,max=100"`
	LastName       string `json:"last_name" binding:"required,max=100"`
	Birthday       string `json:"birthday" binding:"omitempty,datetime=2006-01-02"`
	DepartmentName string `json:"department_name" binding:"required,max=255"`
}

// PatchEmployeeRequest changes only the fields that are present.
type PatchEmployeeRequest struct {
	Email          *string `json:"email" binding:"omitempty,email,max=255"`
	FirstName      *string `json:"first_name" binding:"omitempty,max=100"`
	LastName       *string `json:"last_name" binding:"omitempty,max=100"`
	Birthday       *string `json:"birthday" binding:"omitempty,datetime=2006-01-02"`
	DepartmentName *string `json:"department_name" binding:"omitempty,max=255"`
}

type EmployeeDepartmentResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type EmployeeResponse struct {
	ID         string                      `json:"id"`
	Email      string                      `json:"email"`
	FirstName  string                      `json:"first_name,omitempty"`
	LastName   string                      `json:"last_name,omitempty"`
	Birthday   string                      `json:"birthday,omitempty"`
	Department *EmployeeDepartmentResponse `json:"department,omitempty"`
	CreatedAt  string                      `json:"created_at"`
	UpdatedAt  string                      `json:"updated_at"`
}
