package database

import (
	"log"

	"github.com/manmeet1049/bizzler/internal/domain/billing"
	"github.com/manmeet1049/bizzler/internal/domain/business"
	"github.com/manmeet1049/bizzler/internal/domain/plans"
	"github.com/manmeet1049/bizzler/internal/domain/subscribers"
	"github.com/manmeet1049/bizzler/internal/domain/subscriptions"
	"github.com/manmeet1049/bizzler/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// GormConfig is shared by every dialect. TranslateError turns unique index
// violations into gorm.ErrDuplicatedKey so they can surface as conflicts.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}
}

func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), GormConfig())
}

// Migrate creates or updates every table. Parents come before children so the
// foreign keys resolve.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&business.Business{},
		&business.Membership{},
		&plans.Plan{},
		&subscribers.Subscriber{},
		&billing.Transaction{},
		&subscriptions.Subscription{},
	)
}

func InitDB(dsn string) *gorm.DB {
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := Open(dsn)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatal("AutoMigrate error: ", err)
	}

	DB = db
	return db
}
