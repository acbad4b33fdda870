package models

// Moderator is an admin user allowed to manage registrations.
type Moderator struct {
	BaseUUIDModel
	Name     string `gorm:"type:varchar(128)"                      json:"name"`
	Email    string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Password string `gorm:"type:varchar(128);not null"             json:"-"`
}

func (Moderator) TableName() string {
	return "moderators"
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
