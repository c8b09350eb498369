package revision

import "time"

// SequenceName is the shared counter every revision number is drawn from,
// across all audited entity types.
const SequenceName = "revision"

type Kind string

const (
	KindInsert Kind = "INSERT"
	KindUpdate Kind = "UPDATE"
	KindDelete Kind = "DELETE"
)

type EntityType string

const (
	EntityEmployee   EntityType = "employee"
	EntityDepartment EntityType = "department"
)

// Revision is an immutable snapshot of an entity after a committed mutation.
type Revision struct {
	Rev        int64      `gorm:"primaryKey;autoIncrement:false"`
	EntityType EntityType `gorm:"size:32;not null;index:idx_revisions_entity,priority:1"`
	EntityID   string     `gorm:"size:64;not null;index:idx_revisions_entity,priority:2"`
	Kind       Kind       `gorm:"size:16;not null"`
	RevisedAt  time.Time  `gorm:"not null"`
	Snapshot   []byte     `gorm:"type:jsonb;not null"`
}

func (Revision) TableName() string {
	return "revisions"
}
