package db

import (
	"log"
	"time"

	domainApp "loanflow-backend/internal/domain/application"
	domainContract "loanflow-backend/internal/domain/contract"
	domainDoc "loanflow-backend/internal/domain/document"
	domainLoan "loanflow-backend/internal/domain/loan"
	domainUser "loanflow-backend/internal/domain/user"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn))
}

func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.Println("gorm: connected")
	return db, nil
}

// Migrate creates/updates the schema for every persisted entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domainUser.User{},
		&domainDoc.Document{},
		&domainApp.Application{},
		&domainApp.Event{},
		&domainLoan.Loan{},
		&domainLoan.Event{},
		&domainContract.Contract{},
	)
}
