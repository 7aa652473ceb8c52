package service

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/internal/app/repository"
	"github.com/pawstore/pawstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrContactNotFound      = errors.New("contact message not found")
	ErrInvalidContactStatus = errors.New("invalid contact status")
	ErrContactNameTooShort  = errors.New("name must be at least 2 characters")
	ErrContactMessageShort  = errors.New("message must be at least 10 characters")
	ErrContactPhoneInvalid  = errors.New("phone must be at least 10 digits")
	ErrInvalidSubject       = errors.New("invalid contact subject")
)

type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Subject model.ContactSubject
	Message string
}

type ContactService interface {
	Create(input ContactInput) (*model.Contact, error)
	List(filter repository.ContactFilter) ([]model.Contact, error)
	Get(id uint) (*model.Contact, error)
	UpdateStatus(id uint, status model.ContactStatus) (*model.Contact, error)
	Delete(id uint) error
	Stats() (*repository.ContactStats, error)
}

type contactService struct {
	contactRepo repository.ContactRepository
}

func NewContactService(contactRepo repository.ContactRepository) ContactService {
	return &contactService{contactRepo: contactRepo}
}

func validSubject(subject model.ContactSubject) bool {
	switch subject {
	case model.ContactSubjectAdoption, model.ContactSubjectVolunteer, model.ContactSubjectDonation,
		model.ContactSubjectLostPet, model.ContactSubjectGeneral, model.ContactSubjectOther:
		return true
	}
	return false
}

// Create validates and stores a public contact form submission
func (s *contactService) Create(input ContactInput) (*model.Contact, error) {
	logger.Info("Creating contact message", map[string]interface{}{
		"email":   input.Email,
		"subject": input.Subject,
	})

	name := strings.TrimSpace(input.Name)
	if utf8.RuneCountInString(name) < 2 {
		return nil, ErrContactNameTooShort
	}
	if utf8.RuneCountInString(strings.TrimSpace(input.Message)) < 10 {
		return nil, ErrContactMessageShort
	}
	if input.Phone != "" {
		digits := 0
		for _, r := range input.Phone {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits < 10 {
			return nil, ErrContactPhoneInvalid
		}
	}
	if !validSubject(input.Subject) {
		return nil, ErrInvalidSubject
	}

	contact := &model.Contact{
		Name:    name,
		Email:   input.Email,
		Phone:   input.Phone,
		Subject: input.Subject,
		Message: input.Message,
		Status:  model.ContactStatusNew,
	}
	if err := s.contactRepo.Create(contact); err != nil {
		return nil, err
	}

	logger.Info("Contact message created", map[string]interface{}{
		"contact_id": contact.ID,
		"subject":    contact.Subject,
	})
	return contact, nil
}

func (s *contactService) List(filter repository.ContactFilter) ([]model.Contact, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, ErrInvalidContactStatus
	}
	return s.contactRepo.FindAll(filter)
}

func (s *contactService) Get(id uint) (*model.Contact, error) {
	contact, err := s.contactRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return contact, nil
}

func (s *contactService) UpdateStatus(id uint, status model.ContactStatus) (*model.Contact, error) {
	logger.Info("Updating contact message status", map[string]interface{}{
		"contact_id": id,
		"status":     status,
	})

	if !status.Valid() {
		return nil, ErrInvalidContactStatus
	}

	contact, err := s.contactRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}

	contact.Status = status
	if err := s.contactRepo.Update(contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *contactService) Delete(id uint) error {
	if _, err := s.contactRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		return err
	}
	return s.contactRepo.Delete(id)
}

func (s *contactService) Stats() (*repository.ContactStats, error) {
	return s.contactRepo.Stats()
}
