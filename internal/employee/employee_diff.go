package employee

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-hris-audit/internal/department"
	employeeerrors "go-hris-audit/internal/employee/errors"

	"gorm.io/gorm"
)

// ChangeSet is a proposed mutation. Nil fields are not part of it.
type ChangeSet struct {
	Email          *string
	FirstName      *string
	LastName       *string
	Birthday       *time.Time
	DepartmentName *string
}

// DepartmentResolver looks a department up by its exact name.
type DepartmentResolver interface {
	FindByName(ctx context.Context, name string) (*department.Department, error)
}

// ApplyChanges applies every field of changes that differs from existing and
// reports whether anything changed. The department is resolved before any
// field is touched, so a failed lookup leaves existing as it was.
func ApplyChanges(
	ctx context.Context,
	existing *Employee,
	changes ChangeSet,
	departments DepartmentResolver,
) (bool, error) {
	dept, err := resolveDepartment(ctx, existing, changes.DepartmentName, departments)
	if err != nil {
		return false, err
	}

	changed := false

	if email := trimmed(changes.Email); email != "" && email != existing.Email {
		existing.Email = email
		changed = true
	}

	if applyName(existing, trimmed(changes.FirstName), trimmed(changes.LastName)) {
		changed = true
	}

	if changes.Birthday != nil {
		day := truncateDate(*changes.Birthday)
		if existing.Birthday == nil || !sameDate(*existing.Birthday, day) {
			existing.Birthday = &day
			changed = true
		}
	}

	if dept != nil {
		existing.DepartmentID = dept.ID
		existing.Department = dept
		changed = true
	}

	return changed, nil
}

func resolveDepartment(
	ctx context.Context,
	existing *Employee,
	requested *string,
	departments DepartmentResolver,
) (*department.Department, error) {
	name := trimmed(requested)
	if name == "" || name == existing.DepartmentName() {
		return nil, nil
	}

	dept, err := departments.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrDepartmentNotFound
		}
		return nil, err
	}
	if dept == nil {
		return nil, employeeerrors.ErrDepartmentNotFound
	}
	if existing.Department == nil && dept.ID == existing.DepartmentID {
		// Same department, association simply not loaded.
		existing.Department = dept
		return nil, nil
	}
	return dept, nil
}

func applyName(existing *Employee, first, last string) bool {
	if existing.Name == nil {
		if first == "" && last == "" {
			return false
		}
		existing.Name = &FullName{FirstName: first, LastName: last}
		return true
	}

	changed := false
	if first != "" && first != existing.Name.FirstName {
		existing.Name.FirstName = first
		changed = true
	}
	if last != "" && last != existing.Name.LastName {
		existing.Name.LastName = last
		changed = true
	}
	return changed
}

func trimmed(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
