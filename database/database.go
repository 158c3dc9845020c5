package database

import (
	"elearn/config"
	"elearn/logger"
	"elearn/models"
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb opens the configured database, runs migrations and stores the
// connection in Database.
func ConnectDb() error {
	cfg := config.AppConfig

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return err
	}

	db, err := Open(dialector, cfg.AppEnv != "production")
	if err != nil {
		return errors.Wrapf(err, "failed to connect to %s", cfg.DBDriver)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get database instance")
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	if err := Migrate(db); err != nil {
		return err
	}

	Database = DbInstance{Db: db}
	return nil
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres", "":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
		)
		return postgres.Open(dsn), nil
	case "mysql":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
		)
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.DBPath), nil
	}
	return nil, errors.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

// Open connects with uniqueness violations translated to gorm.ErrDuplicatedKey.
func Open(dialector gorm.Dialector, verbose bool) (*gorm.DB, error) {
	level := gormlogger.Warn
	if !verbose {
		level = gormlogger.Error
	}
	return gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	})
}

// Migrate performs database migrations
func Migrate(db *gorm.DB) error {
	logger.Log.Info("Running migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Topic{},
		&models.Lesson{},
		&models.Enrollment{},
		&models.LessonProgress{},
		&models.Certificate{},
		&models.Order{},
	)
	if err != nil {
		return errors.Wrap(err, "migration failed")
	}

	logger.Log.Info("Migrations completed successfully.")
	return nil
}
