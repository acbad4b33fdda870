package repositories

import (
	"context"
	"errors"

	"rcsc-server/internal/database"
	"rcsc-server/internal/logger"
	. "rcsc-server/internal/models"

	"gorm.io/gorm"
)

type ModeratorRepository interface {
	Create(ctx context.Context, moderator *Moderator) error
	GetByID(ctx context.Context, id string) (*Moderator, error)
	GetByEmail(ctx context.Context, email string) (*Moderator, error)
}

type moderatorRepository struct {
	db  database.DB
	log logger.Logger
}

func NewModerator(db database.DB) ModeratorRepository {
	return &moderatorRepository{
		db:  db,
		log: logger.New("moderatorRepository"),
	}
}

func (r *moderatorRepository) Create(ctx context.Context, moderator *Moderator) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(moderator).Error; err != nil {
		return log.Err("failed to create moderator", err, "email", moderator.Email)
	}

	return nil
}

func (r *moderatorRepository) GetByID(ctx context.Context, id string) (*Moderator, error) {
	log := r.log.Function("GetByID")

	var moderator Moderator
	if err := r.db.SQLWithContext(ctx).First(&moderator, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to get moderator", err, "id", id)
	}

	return &moderator, nil
}

func (r *moderatorRepository) GetByEmail(ctx context.Context, email string) (*Moderator, error) {
	log := r.log.Function("GetByEmail")

	var moderator Moderator
	if err := r.db.SQLWithContext(ctx).First(&moderator, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to get moderator", err, "email", email)
	}

	return &moderator, nil
}
