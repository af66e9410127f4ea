package main

import (
	"asset_perf_tool/app"
	"asset_perf_tool/config"
	"asset_perf_tool/controllers"
	"asset_perf_tool/routes"
	"context"
	"os"

	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()

	application := app.MustNew()
	defer application.Close()

	r := application.Router

	// Health
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })

	s := controllers.GetSrv(application)
	app.BootstrapFirstAdmin(context.Background(), application.Config, s.Repo, application.Log)

	routes.RegisterRoutes(r, application)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	application.Log.Info("listening", zap.String("port", port))
	_ = r.Run(":" + port)
}
