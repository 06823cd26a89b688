package database

import (
	"fmt"

	"attrition-go/internal/config"
	logging "attrition-go/internal/logging"
	"attrition-go/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init connects using the global configuration and runs migrations. Any
// failure is fatal.
func Init(log *zap.Logger) {
	db, err := Connect(config.Conf.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connection established successfully.", zap.String("driver", config.Conf.Database.Driver))

	if err := Migrate(db, log); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	DB = db
}

// Connect opens a GORM handle for the configured driver.
func Connect(dbConf config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch dbConf.Driver {
	case "", "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dbConf.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", dbConf.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logging.NewGormZapLogger(log, dbConf.LogLevel),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	// AutoMigrate creates tables and columns but not the custom index below.
	err := db.AutoMigrate(
		&models.User{},
		&models.SurveyResponse{},
		&models.Recommendation{},
	)
	if err != nil {
		return err
	}
	log.Info("Database migrations completed successfully.")

	nameIndex := `CREATE INDEX IF NOT EXISTS idx_survey_responses_name ON survey_responses (lower(name));`
	if err := db.Exec(nameIndex).Error; err != nil {
		return fmt.Errorf("create name index: %w", err)
	}
	log.Info("Custom indexes ensured successfully.")
	return nil
}
