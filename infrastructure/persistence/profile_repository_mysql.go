package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pulse-metrics/domain/model"
)

// userProfileRecord is the gorm mapping of the billing projection row
type userProfileRecord struct {
	UserID             string    `gorm:"column:user_id;primaryKey"`
	StripeCustomerID   string    `gorm:"column:stripe_customer_id;index"`
	Plan               string    `gorm:"column:plan"`
	SubscriptionStatus string    `gorm:"column:subscription_status"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (userProfileRecord) TableName() string { return "user_profiles" }

// ProfileRepositoryMySQL is the MySQL variant of the billing projection store
// used when DB_VENDOR=mysql
type ProfileRepositoryMySQL struct{ db *gorm.DB }

func NewProfileRepositoryMySQL(db *gorm.DB) *ProfileRepositoryMySQL {
	return &ProfileRepositoryMySQL{db: db}
}

// EnsureProfileSchemaMySQL migrates the billing projection table
func EnsureProfileSchemaMySQL(db *gorm.DB) error {
	return db.AutoMigrate(&userProfileRecord{})
}

func (r *ProfileRepositoryMySQL) GetByUserID(ctx context.Context, userID string) (*model.UserProfileRow, error) {
	if r.db == nil {
		return nil, nil
	}
	var rec userProfileRecord
	err := r.db.WithContext(ctx).First(&rec, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &model.UserProfileRow{
		UserID:             rec.UserID,
		StripeCustomerID:   rec.StripeCustomerID,
		Plan:               rec.Plan,
		SubscriptionStatus: rec.SubscriptionStatus,
		UpdatedAt:          rec.UpdatedAt,
	}, nil
}

func (r *ProfileRepositoryMySQL) AttachCustomer(ctx context.Context, userID, customerID string) error {
	if r.db == nil {
		return nil
	}
	rec := userProfileRecord{
		UserID:             userID,
		StripeCustomerID:   customerID,
		Plan:               model.PlanFree,
		SubscriptionStatus: "active",
		UpdatedAt:          time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"stripe_customer_id", "updated_at"}),
	}).Create(&rec).Error
}

func (r *ProfileRepositoryMySQL) UpdatePlanByUserID(ctx context.Context, userID, plan, status string) error {
	if r.db == nil {
		return nil
	}
	rec := userProfileRecord{
		UserID:             userID,
		Plan:               plan,
		SubscriptionStatus: status,
		UpdatedAt:          time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"plan", "subscription_status", "updated_at"}),
	}).Create(&rec).Error
}

func (r *ProfileRepositoryMySQL) UpdatePlanByCustomerID(ctx context.Context, customerID, plan, status string) error {
	if r.db == nil {
		return nil
	}
	return r.db.WithContext(ctx).Model(&userProfileRecord{}).
		Where("stripe_customer_id = ?", customerID).
		Updates(map[string]interface{}{
			"plan":                plan,
			"subscription_status": status,
			"updated_at":          time.Now().UTC(),
		}).Error
}

func (r *ProfileRepositoryMySQL) UpdateStatusByCustomerID(ctx context.Context, customerID, status string) error {
	if r.db == nil {
		return nil
	}
	return r.db.WithContext(ctx).Model(&userProfileRecord{}).
		Where("stripe_customer_id = ?", customerID).
		Updates(map[string]interface{}{
			"subscription_status": status,
			"updated_at":          time.Now().UTC(),
		}).Error
}
