package repository

import (
	"time"

	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/constants"
	"github.com/sheddy174/E-Commerce-Lab-sub001/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardRepository aggregates back-office overview numbers.
type DashboardRepository interface {
	CountOrdersByStatus() (map[string]int64, error)
	CountCustomers() (int64, error)
	CountPendingArtisans() (int64, error)
	SumPaymentsSince(since time.Time) (decimal.Decimal, error)
}

// GormDashboardRepository is the GORM implementation.
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a dashboard repository.
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// CountOrdersByStatus returns order counts keyed by status.
func (r *GormDashboardRepository) CountOrdersByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := r.db.Model(&models.Order{}).
		Select("status, COUNT(*) as total").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// CountCustomers returns the total customer count.
func (r *GormDashboardRepository) CountCustomers() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Customer{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountPendingArtisans returns the number of applications awaiting review.
func (r *GormDashboardRepository) CountPendingArtisans() (int64, error) {
	var count int64
	err := r.db.Model(&models.ArtisanProfile{}).
		Where("status = ?", constants.ArtisanStatusPending).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// SumPaymentsSince totals confirmed payments recorded on or after the cutoff.
func (r *GormDashboardRepository) SumPaymentsSince(since time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.NullDecimal
	}
	err := r.db.Model(&models.Payment{}).
		Select("SUM(amount) as total").
		Where("payment_date >= ?", since).
		Take(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !row.Total.Valid {
		return decimal.Zero, nil
	}
	return row.Total.Decimal, nil
}
