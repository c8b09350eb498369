package employee

import (
	"strings"
	"time"

	"go-hris-audit/internal/department"

	"github.com/google/uuid"
)

type FullName struct {
	FirstName string `gorm:"column:first_name;size:100" json:"first_name"`
	LastName  string `gorm:"column:last_name;size:100" json:"last_name"`
}

func (n *FullName) IsBlank() bool {
	return n == nil || (strings.TrimSpace(n.FirstName) == "" && strings.TrimSpace(n.LastName) == "")
}

type Employee struct {
	ID           uuid.UUID              `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string                 `gorm:"size:255;not null;uniqueIndex:uq_employee_email" json:"email"`
	Name         *FullName              `gorm:"embedded" json:"name,omitempty"`
	Birthday     *time.Time             `gorm:"type:date" json:"birthday,omitempty"`
	DepartmentID uint                   `gorm:"not null;index" json:"department_id"`
	Department   *department.Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:RESTRICT" json:"department,omitempty"`
	CreatedAt    time.Time              `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time              `gorm:"autoUpdateTime" json:"updated_at"`
}

func (e Employee) DepartmentName() string {
	if e.Department == nil {
		return ""
	}
	return e.Department.Name
}
