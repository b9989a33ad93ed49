// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Username     string     `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	ExternalUID  string     `json:"external_uid,omitempty" gorm:"uniqueIndex;size:128"`
	PasswordHash string     `json:"-" gorm:"size:255"`
	Role         UserRole   `json:"role" gorm:"type:varchar(20);default:'user';not null"`
	Status       UserStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
	AvatarURL    string     `json:"avatar_url" gorm:"size:512"`
	AvatarKey    string     `json:"-" gorm:"size:255"`
	ProfileData  JSONB      `json:"profile_data" gorm:"type:jsonb"`
	LastLoginAt  *time.Time `json:"last_login_at"`

	// Relationships
	Orders           []Order          `json:"orders,omitempty" gorm:"foreignKey:UserID"`
	OrderListEntries []OrderListEntry `json:"order_list_entries,omitempty" gorm:"foreignKey:UserID"`
	Reviews          []Review         `json:"reviews,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
