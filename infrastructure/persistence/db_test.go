package persistence

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestNewPostgreSQLDB(t *testing.T) {
	db, err := NewPostgreSQLDB()
	if err != nil {
		t.Logf("connection failed in test env (expected without a database): %v", err)
		return
	}
	defer db.Close()
	assert.NotNil(t, db)
}

func TestGormWithMockConnection(t *testing.T) {
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	gormDB, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})

	require.NoError(t, err)
	assert.NotNil(t, gormDB)
}
