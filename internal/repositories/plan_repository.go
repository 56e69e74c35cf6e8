package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"navigo/internal/models/db_models"
)

type ITravelPlanRepository interface {
	SavePlan(ctx context.Context, record *db_models.TravelPlanRecord) error
	GetPlanByID(ctx context.Context, planID string) (*db_models.TravelPlanRecord, error)
	ListPlans(ctx context.Context, page, pageSize int) ([]db_models.TravelPlanRecord, error)
}

type TravelPlanRepository struct {
	db *gorm.DB
}

func NewTravelPlanRepository(db *gorm.DB) ITravelPlanRepository {
	return &TravelPlanRepository{db: db}
}

func (r TravelPlanRepository) SavePlan(ctx context.Context, record *db_models.TravelPlanRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r TravelPlanRepository) GetPlanByID(ctx context.Context, planID string) (*db_models.TravelPlanRecord, error) {

	var record db_models.TravelPlanRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", planID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &record, nil
}

func (r TravelPlanRepository) ListPlans(ctx context.Context, page, pageSize int) ([]db_models.TravelPlanRecord, error) {

	var records []db_models.TravelPlanRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error

	if err != nil {
		return nil, err
	}

	return records, nil
}
