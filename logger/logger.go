package logger

import (
	"go.uber.org/zap"
)

// New builds the process logger. Production encoding when APP_ENV
// says so, the friendlier development encoder otherwise.
func New(env string) (*zap.Logger, error) {
	switch env {
	case "prod", "production":
		return zap.NewProduction()
	default:
		return zap.NewDevelopment()
	}
}
