// app/bootstrap.go
package app

import (
	"context"
	"errors"

	"asset_perf_tool/db"
	"asset_perf_tool/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BootstrapFirstAdmin seeds the configured username as an admin
// directory user on first boot. Safe to call every start.
func BootstrapFirstAdmin(ctx context.Context, cfg Config, repo *db.Repo, log *zap.Logger) {
	if cfg.BootstrapAdmin == "" {
		return
	}
	if _, err := repo.FindUserByUsername(ctx, cfg.BootstrapAdmin); err == nil {
		return
	} else if !errors.Is(err, db.ErrNotFound) {
		log.Warn("bootstrap admin lookup failed", zap.Error(err))
		return
	}

	u := &models.User{
		ID:          uuid.NewString(),
		Username:    cfg.BootstrapAdmin,
		DisplayName: cfg.BootstrapAdmin,
		IsAdmin:     true,
	}
	if err := repo.CreateUser(ctx, u); err != nil {
		log.Warn("bootstrap admin create failed", zap.Error(err))
		return
	}
	log.Info("seeded bootstrap admin", zap.String("username", u.Username))
}
