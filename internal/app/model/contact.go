package model

import (
	"time"

	"gorm.io/gorm"
)

type ContactStatus string
type ContactSubject string

const (
	ContactStatusNew        ContactStatus = "new"
	ContactStatusInProgress ContactStatus = "in_progress"
	ContactStatusResolved   ContactStatus = "resolved"
	ContactStatusClosed     ContactStatus = "closed"

	ContactSubjectAdoption  ContactSubject = "adoption"
	ContactSubjectVolunteer ContactSubject = "volunteer"
	ContactSubjectDonation  ContactSubject = "donation"
	ContactSubjectLostPet   ContactSubject = "lost-pet"
	ContactSubjectGeneral   ContactSubject = "general"
	ContactSubjectOther     ContactSubject = "other"
)

// Valid reports whether the value is a known contact status
func (s ContactStatus) Valid() bool {
	switch s {
	case ContactStatusNew, ContactStatusInProgress, ContactStatusResolved, ContactStatusClosed:
		return true
	}
	return false
}

// Contact is a message from the public contact form
type Contact struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Email     string         `gorm:"not null" json:"email"`
	Phone     string         `gorm:"size:30" json:"phone"`
	Subject   ContactSubject `gorm:"type:varchar(30);not null" json:"subject"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	Status    ContactStatus  `gorm:"type:varchar(20);default:'new'" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Contact) TableName() string {
	return "contacts"
}
