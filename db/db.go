package db

import (
	"asset_perf_tool/models"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	err = Migrate(DB)
	if err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return DB
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Asset{},
		&models.AssetAssignment{},
		&models.PerformanceCycle{},
		&models.Objective{},
		&models.KeyResult{},
		&models.Project{},
		&models.ReviewSession{},
		&models.ReviewAnswer{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	// At most one open assignment per asset.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_open_per_asset
	  ON %s (asset_id)
	  WHERE returned_at IS NULL;
	`, models.AssignmentTable, models.AssignmentTable)).Error; err != nil {
		return err
	}

	// Current-holder lookups hit the open rows only.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_open_asset_assigned_desc
	  ON %s (asset_id, assigned_at DESC)
	  WHERE returned_at IS NULL;
	`, models.AssignmentTable, models.AssignmentTable)).Error; err != nil {
		return err
	}

	return nil
}
