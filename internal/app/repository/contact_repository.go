package repository

import (
	"time"

	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/pkg/logger"
	"gorm.io/gorm"
)

// ContactFilter narrows contact message listings. Empty fields are ignored.
type ContactFilter struct {
	Status  model.ContactStatus
	Subject model.ContactSubject
	Search  string
}

// ContactStats are the counters for the admin stats endpoint
type ContactStats struct {
	Total      int64                          `json:"total"`
	New        int64                          `json:"new"`
	InProgress int64                          `json:"in_progress"`
	Resolved   int64                          `json:"resolved"`
	Closed     int64                          `json:"closed"`
	LastWeek   int64                          `json:"last_week"`
	BySubject  map[model.ContactSubject]int64 `json:"by_subject"`
}

type ContactRepository interface {
	Create(contact *model.Contact) error
	FindAll(filter ContactFilter) ([]model.Contact, error)
	FindByID(id uint) (*model.Contact, error)
	Update(contact *model.Contact) error
	Delete(id uint) error
	Stats() (*ContactStats, error)
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(contact *model.Contact) error {
	logger.Debug("Creating contact message in database", map[string]interface{}{
		"email":   contact.Email,
		"subject": contact.Subject,
	})

	if err := r.db.Create(contact).Error; err != nil {
		logger.Error("Failed to create contact message in database", err, map[string]interface{}{
			"email": contact.Email,
		})
		return err
	}
	return nil
}

func (r *contactRepository) FindAll(filter ContactFilter) ([]model.Contact, error) {
	query := r.db.Model(&model.Contact{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Subject != "" {
		query = query.Where("subject = ?", filter.Subject)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR message LIKE ?", pattern, pattern, pattern)
	}

	var contacts []model.Contact
	if err := query.Order("created_at DESC").Find(&contacts).Error; err != nil {
		logger.Error("Failed to find contact messages in database", err, nil)
		return nil, err
	}
	return contacts, nil
}

func (r *contactRepository) FindByID(id uint) (*model.Contact, error) {
	var contact model.Contact
	if err := r.db.First(&contact, id).Error; err != nil {
		logger.Error("Failed to find contact message by ID in database", err, map[string]interface{}{
			"contact_id": id,
		})
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) Update(contact *model.Contact) error {
	logger.Debug("Updating contact message in database", map[string]interface{}{
		"contact_id": contact.ID,
		"status":     contact.Status,
	})

	if err := r.db.Save(contact).Error; err != nil {
		logger.Error("Failed to update contact message in database", err, map[string]interface{}{
			"contact_id": contact.ID,
		})
		return err
	}
	return nil
}

func (r *contactRepository) Delete(id uint) error {
	logger.Debug("Deleting contact message from database", map[string]interface{}{
		"contact_id": id,
	})

	if err := r.db.Delete(&model.Contact{}, id).Error; err != nil {
		logger.Error("Failed to delete contact message from database", err, map[string]interface{}{
			"contact_id": id,
		})
		return err
	}
	return nil
}

func (r *contactRepository) Stats() (*ContactStats, error) {
	stats := &ContactStats{}

	if err := r.db.Model(&model.Contact{}).Count(&stats.Total).Error; err != nil {
		logger.Error("Failed to count contact messages", err, nil)
		return nil, err
	}

	counts := []struct {
		status model.ContactStatus
		dest   *int64
	}{
		{model.ContactStatusNew, &stats.New},
		{model.ContactStatusInProgress, &stats.InProgress},
		{model.ContactStatusResolved, &stats.Resolved},
		{model.ContactStatusClosed, &stats.Closed},
	}
	for _, c := range counts {
		if err := r.db.Model(&model.Contact{}).Where("status = ?", c.status).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	err := r.db.Model(&model.Contact{}).Where("created_at >= ?", weekAgo).Count(&stats.LastWeek).Error
	if err != nil {
		logger.Error("Failed to count recent contact messages", err, nil)
		return nil, err
	}

	var bySubject []struct {
		Subject model.ContactSubject
		Count   int64
	}
	err = r.db.Model(&model.Contact{}).
		Select("subject, COUNT(*) AS count").
		Group("subject").
		Scan(&bySubject).Error
	if err != nil {
		logger.Error("Failed to count contact messages by subject", err, nil)
		return nil, err
	}
	stats.BySubject = make(map[model.ContactSubject]int64, len(bySubject))
	for _, row := range bySubject {
		stats.BySubject[row.Subject] = row.Count
	}

	return stats, nil
}
