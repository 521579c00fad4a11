package models

// PendingMessage is a contact-form submission awaiting email verification.
// A row exists only between "form submitted" and "verified or abandoned":
// the submission workflow creates it, the confirmation workflow reads and
// destroys it. There is no update path.
type PendingMessage struct {
	BaseModel

	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"not null;index" json:"email"`
	Subject string `gorm:"not null" json:"subject"`
	Message string `gorm:"type:text;not null" json:"message"`

	// Token is the single-use credential proving ownership of the
	// submitter's address. Unique: tokens are never reused.
	Token string `gorm:"uniqueIndex;not null" json:"-"`
}

// TableName keeps the storage layout of the original deployment.
func (PendingMessage) TableName() string {
	return "user_messages"
}
