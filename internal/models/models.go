package models

import "time"

// Sim is one inventory row. Column names match the legacy sims table so an
// existing database keeps working after the cutover.
type Sim struct {
	ID                 uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MEID               string `gorm:"column:meid;uniqueIndex;not null" json:"meid"`
	ProjectName        string `gorm:"column:project_name;not null;default:''" json:"project_name"`
	Brand              string `gorm:"column:brand;not null;default:''" json:"brand"`
	ICCID              string `gorm:"column:iccid;not null;default:''" json:"iccid"`
	AddedFeatures      string `gorm:"column:added_features;not null;default:''" json:"added_features"`
	BanToActivateOn    string `gorm:"column:ban_to_activate_on;not null;default:''" json:"ban_to_activate_on"`
	LengthOfActivation string `gorm:"column:length_of_activation;not null;default:''" json:"length_of_activation"`
	MDN                string `gorm:"column:mdn;not null;default:''" json:"mdn"`
	MSID               string `gorm:"column:msid;not null;default:''" json:"msid"`
	MSL                string `gorm:"column:msl;not null;default:''" json:"msl"`
	RequestOn          string `gorm:"column:request_on;not null;default:''" json:"request_on"`
	// ExpiresOn is free-form; the UI enters MM/DD/YYYY but old rows carry
	// other shapes, so it is parsed leniently at read time.
	ExpiresOn string `gorm:"column:expires_on;not null;default:''" json:"expires_on"`
	Comments  string `gorm:"column:comments;not null;default:''" json:"comments"`
	// CreateDate is stamped once at insert and never updated.
	CreateDate string `gorm:"column:create_date" json:"create_date"`
	// DaysLeft is derived per read, never persisted. nil means no expiry
	// configured (or unparseable); -1 means expired.
	DaysLeft *int `gorm:"-" json:"days_left,omitempty"`
}

type User struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName    string    `gorm:"not null;default:''" json:"firstName"`
	LastName     string    `gorm:"not null;default:''" json:"lastName"`
	PasswordHash string    `gorm:"not null" json:"-"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"isAdmin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Session struct {
	JTI       string     `gorm:"primaryKey;size:64" json:"jti"`
	UserID    string     `gorm:"index;not null" json:"user_id"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
