package department

import (
	"strings"
	"time"
)

type Department struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:uq_department_name" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Rename sets the trimmed name when it is non-blank and differs from the
// current one, and reports whether it did.
func (d *Department) Rename(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || name == d.Name {
		return false
	}
	d.Name = name
	return true
}
