package repository

import (
	"context"

	"gorm.io/gorm"

	"zigzax/internal/model"
)

type RateRepository interface {
	FindLatest(ctx context.Context) (*model.ExchangeRate, error)
	FindByDate(ctx context.Context, date string) (*model.ExchangeRate, error)
	Create(ctx context.Context, rate *model.ExchangeRate) error
	Update(ctx context.Context, rate *model.ExchangeRate) error
	History(ctx context.Context, limit int) ([]model.ExchangeRate, error)
}

type rateRepository struct {
	db *gorm.DB
}

func NewRateRepository(db *gorm.DB) RateRepository {
	return &rateRepository{db: db}
}

func (r *rateRepository) FindLatest(ctx context.Context) (*model.ExchangeRate, error) {
	var rate model.ExchangeRate
	if err := GetDB(ctx, r.db).Order("date desc").First(&rate).Error; err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *rateRepository) FindByDate(ctx context.Context, date string) (*model.ExchangeRate, error) {
	var rate model.ExchangeRate
	if err := GetDB(ctx, r.db).Where("date = ?", date).First(&rate).Error; err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *rateRepository) Create(ctx context.Context, rate *model.ExchangeRate) error {
	return GetDB(ctx, r.db).Create(rate).Error
}

func (r *rateRepository) Update(ctx context.Context, rate *model.ExchangeRate) error {
	return GetDB(ctx, r.db).Save(rate).Error
}

func (r *rateRepository) History(ctx context.Context, limit int) ([]model.ExchangeRate, error) {
	var rates []model.ExchangeRate
	if err := GetDB(ctx, r.db).Order("date desc").Limit(limit).Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}
