package persistence

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"pulse-metrics/domain/model"
)

func TestProfileRepository_GetByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewProfileRepository(db)

	updatedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT user_id, COALESCE(stripe_customer_id, ''), plan, subscription_status, updated_at
		 FROM user_profiles WHERE user_id=$1`)).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "stripe_customer_id", "plan", "subscription_status", "updated_at"}).
			AddRow("user-1", "cus_123", "pro", "active", updatedAt))

	row, err := repository.GetByUserID(context.Background(), "user-1")

	require.NoError(t, err)
	require.Equal(t, &model.UserProfileRow{
		UserID:             "user-1",
		StripeCustomerID:   "cus_123",
		Plan:               "pro",
		SubscriptionStatus: "active",
		UpdatedAt:          updatedAt,
	}, row)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_GetByUserID_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewProfileRepository(db)

	mock.ExpectQuery("SELECT user_id").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "stripe_customer_id", "plan", "subscription_status", "updated_at"}))

	row, err := repository.GetByUserID(context.Background(), "user-1")

	require.NoError(t, err)
	require.Nil(t, row)
}

func TestProfileRepository_AttachCustomer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewProfileRepository(db)

	mock.ExpectExec("INSERT INTO user_profiles").
		WithArgs("user-1", "cus_123", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repository.AttachCustomer(context.Background(), "user-1", "cus_123"))
	require.NoError(t, mock.ExpectationsWereMet())
}

// A subscription deletion at the provider lands as free/cancelled keyed by
// customer id
func TestProfileRepository_SubscriptionDeleted(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewProfileRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE user_profiles SET plan=$1, subscription_status=$2, updated_at=$3 WHERE stripe_customer_id=$4`)).
		WithArgs("free", "cancelled", sqlmock.AnyArg(), "cus_123").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repository.UpdatePlanByCustomerID(context.Background(), "cus_123", "free", "cancelled"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_UpdateStatusByCustomerID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repository := NewProfileRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE user_profiles SET subscription_status=$1, updated_at=$2 WHERE stripe_customer_id=$3`)).
		WithArgs("past_due", sqlmock.AnyArg(), "cus_123").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repository.UpdateStatusByCustomerID(context.Background(), "cus_123", "past_due"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_NilDB(t *testing.T) {
	repository := NewProfileRepository(nil)

	row, err := repository.GetByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	require.Nil(t, row)

	require.NoError(t, repository.UpdatePlanByUserID(context.Background(), "user-1", "pro", "active"))
}
