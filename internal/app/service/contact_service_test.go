package service

import (
	"testing"

	"github.com/pawstore/pawstore-backend/internal/app/model"
	"github.com/pawstore/pawstore-backend/internal/app/repository"
	"github.com/pawstore/pawstore-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupContactServiceTest(t *testing.T) (*gorm.DB, ContactService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	return testDB, NewContactService(repository.NewContactRepository(testDB))
}

func contactInput() ContactInput {
	return ContactInput{
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Phone:   "+91 98765 43210",
		Subject: model.ContactSubjectAdoption,
		Message: "I would like to know more about Bruno.",
	}
}

func TestContactService_Create(t *testing.T) {
	testDB, contactService := setupContactServiceTest(t)
	defer db.CleanupTestDB(testDB)

	contact, err := contactService.Create(contactInput())
	assert.NoError(t, err)
	assert.Equal(t, model.ContactStatusNew, contact.Status)
}

func TestContactService_Create_Validation(t *testing.T) {
	testDB, contactService := setupContactServiceTest(t)
	defer db.CleanupTestDB(testDB)

	tests := []struct {
		name    string
		mutate  func(*ContactInput)
		wantErr error
	}{
		{
			name:    "name too short",
			mutate:  func(i *ContactInput) { i.Name = "A" },
			wantErr: ErrContactNameTooShort,
		},
		{
			name:    "whitespace name",
			mutate:  func(i *ContactInput) { i.Name = "  A  " },
			wantErr: ErrContactNameTooShort,
		},
		{
			name:    "single multibyte rune name",
			mutate:  func(i *ContactInput) { i.Name = "अ" },
			wantErr: ErrContactNameTooShort,
		},
		{
			name:    "message too short",
			mutate:  func(i *ContactInput) { i.Message = "hi" },
			wantErr: ErrContactMessageShort,
		},
		{
			name:    "phone too short",
			mutate:  func(i *ContactInput) { i.Phone = "12345" },
			wantErr: ErrContactPhoneInvalid,
		},
		{
			name:    "unknown subject",
			mutate:  func(i *ContactInput) { i.Subject = model.ContactSubject("billing") },
			wantErr: ErrInvalidSubject,
		},
		{
			name:    "subject outside the form choices",
			mutate:  func(i *ContactInput) { i.Subject = model.ContactSubject("support") },
			wantErr: ErrInvalidSubject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := contactInput()
			tt.mutate(&input)
			_, err := contactService.Create(input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestContactService_Create_PhoneOptional(t *testing.T) {
	testDB, contactService := setupContactServiceTest(t)
	defer db.CleanupTestDB(testDB)

	input := contactInput()
	input.Phone = ""
	_, err := contactService.Create(input)
	assert.NoError(t, err)
}

func TestContactService_UpdateStatus(t *testing.T) {
	testDB, contactService := setupContactServiceTest(t)
	defer db.CleanupTestDB(testDB)

	contact, err := contactService.Create(contactInput())
	require.NoError(t, err)

	updated, err := contactService.UpdateStatus(contact.ID, model.ContactStatusResolved)
	assert.NoError(t, err)
	assert.Equal(t, model.ContactStatusResolved, updated.Status)

	_, err = contactService.UpdateStatus(contact.ID, model.ContactStatus("bogus"))
	assert.ErrorIs(t, err, ErrInvalidContactStatus)

	_, err = contactService.UpdateStatus(9999, model.ContactStatusClosed)
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestContactService_List(t *testing.T) {
	testDB, contactService := setupContactServiceTest(t)
	defer db.CleanupTestDB(testDB)

	first, err := contactService.Create(contactInput())
	require.NoError(t, err)

	input := contactInput()
	input.Name = "Vikram Shah"
	input.Subject = model.ContactSubjectLostPet
	input.Message = "We found a stray puppy near Bandra station."
	_, err = contactService.Create(input)
	require.NoError(t, err)

	_, err = contactService.UpdateStatus(first.ID, model.ContactStatusResolved)
	require.NoError(t, err)

	all, err := contactService.List(repository.ContactFilter{})
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	resolved, err := contactService.List(repository.ContactFilter{Status: model.ContactStatusResolved})
	assert.NoError(t, err)
	assert.Len(t, resolved, 1)

	adoption, err := contactService.List(repository.ContactFilter{Subject: model.ContactSubjectAdoption})
	assert.NoError(t, err)
	assert.Len(t, adoption, 1)
}

func TestContactService_Delete(t *testing.T) {
	testDB, contactService := setupContactServiceTest(t)
	defer db.CleanupTestDB(testDB)

	contact, err := contactService.Create(contactInput())
	require.NoError(t, err)

	assert.NoError(t, contactService.Delete(contact.ID))

	_, err = contactService.Get(contact.ID)
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestContactService_Stats(t *testing.T) {
	testDB, contactService := setupContactServiceTest(t)
	defer db.CleanupTestDB(testDB)

	first, err := contactService.Create(contactInput())
	require.NoError(t, err)

	input := contactInput()
	input.Name = "Vikram Shah"
	input.Subject = model.ContactSubjectLostPet
	input.Message = "We found a stray puppy near Bandra station."
	_, err = contactService.Create(input)
	require.NoError(t, err)

	_, err = contactService.UpdateStatus(first.ID, model.ContactStatusResolved)
	require.NoError(t, err)

	stats, err := contactService.Stats()
	assert.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.New)
	assert.Equal(t, int64(1), stats.Resolved)
	assert.Equal(t, int64(2), stats.LastWeek)
	assert.Equal(t, int64(1), stats.BySubject[model.ContactSubjectAdoption])
	assert.Equal(t, int64(1), stats.BySubject[model.ContactSubjectLostPet])
}
