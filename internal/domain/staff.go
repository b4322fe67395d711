package domain

import (
	"time"

	"github.com/google/uuid"
)

// Staff is a back-office operator. Staff identity stamps stage history and
// funding calculation audit rows.
type Staff struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password    string    `gorm:"not null;column:password" json:"-"`
	DisplayName string    `gorm:"column:display_name;not null" json:"display_name"`
	Role        string    `gorm:"column:role;not null;default:'officer'" json:"role"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Staff) TableName() string { return "staff" }
