package db

import (
	"testing"

	"asset_perf_tool/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepo(conn)
}

func seedUser(t *testing.T, r *Repo, username string) *models.User {
	t.Helper()
	u := &models.User{ID: uuid.NewString(), Username: username, DisplayName: username}
	if err := r.DB.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// seedAsset writes an asset row directly so tests can start from any
// lifecycle status.
func seedAsset(t *testing.T, r *Repo, a models.Asset) *models.Asset {
	t.Helper()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Tag == "" {
		a.Tag = "AS-" + a.ID[:8]
	}
	if a.Name == "" {
		a.Name = "test asset"
	}
	if a.Type == "" {
		a.Type = models.AssetHardware
	}
	if a.Status == "" {
		a.Status = models.StatusInStock
	}
	if a.DepreciationYears == 0 {
		a.DepreciationYears = 3
	}
	if err := r.DB.Create(&a).Error; err != nil {
		t.Fatalf("seed asset: %v", err)
	}
	return &a
}
