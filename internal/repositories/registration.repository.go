package repositories

import (
	"context"
	"errors"

	"rcsc-server/internal/database"
	"rcsc-server/internal/logger"
	. "rcsc-server/internal/models"
	"rcsc-server/internal/services"

	"gorm.io/gorm"
)

type RegistrationRepository interface {
	Create(ctx context.Context, registration *Registration) error
	GetAll(ctx context.Context) ([]Registration, error)
	GetByID(ctx context.Context, id int) (*Registration, error)
	Update(ctx context.Context, id int, changes map[string]any) (*Registration, error)
	Delete(ctx context.Context, id int) error
}

type registrationRepository struct {
	db  database.DB
	log logger.Logger
}

func NewRegistration(db database.DB) RegistrationRepository {
	return &registrationRepository{
		db:  db,
		log: logger.New("registrationRepository"),
	}
}

func (r *registrationRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

// Create inserts exactly one row. A collision on the transaction_id
// unique index surfaces as ErrDuplicateTransactionID.
func (r *registrationRepository) Create(ctx context.Context, registration *Registration) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(registration).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateTransactionID
		}
		return log.Err("failed to create registration", err,
			"transactionID", registration.TransactionID)
	}

	return nil
}

func (r *registrationRepository) GetAll(ctx context.Context) ([]Registration, error) {
	log := r.log.Function("GetAll")

	var registrations []Registration
	err := r.getDB(ctx).
		Order("created_at DESC").
		Find(&registrations).Error
	if err != nil {
		return nil, log.Err("failed to get registrations", err)
	}

	return registrations, nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id int) (*Registration, error) {
	log := r.log.Function("GetByID")

	var registration Registration
	if err := r.getDB(ctx).First(&registration, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to get registration", err, "id", id)
	}

	return &registration, nil
}

// Update applies the change map as one atomic statement and returns the
// row as persisted. The caller guarantees only mutable columns appear.
func (r *registrationRepository) Update(ctx context.Context, id int, changes map[string]any) (*Registration, error) {
	log := r.log.Function("Update")

	if len(changes) == 0 {
		return r.GetByID(ctx, id)
	}

	db := r.getDB(ctx)
	result := db.Model(&Registration{}).Where("id = ?", id).Updates(changes)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTransactionID
		}
		return nil, log.Err("failed to update registration", result.Error, "id", id)
	}

	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *registrationRepository) Delete(ctx context.Context, id int) error {
	log := r.log.Function("Delete")

	result := r.getDB(ctx).Delete(&Registration{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete registration", result.Error, "id", id)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
