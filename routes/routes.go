package routes

import (
	"asset_perf_tool/app"
	"asset_perf_tool/controllers"
	"time"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	authCtl := controllers.NewAuthController(s)
	userCtl := controllers.NewUserController(s)
	assetCtl := controllers.NewAssetController(s)
	perfCtl := controllers.NewPerfController(s)

	authMW := app.AuthRequired(s.AppSess, s.Repo)
	adminMW := app.AdminOnly()
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	// ------------------------------
	// Session plumbing
	// ------------------------------
	auth := r.Group("/auth")
	{
		auth.POST("/login", authCtl.Login)
		auth.POST("/logout", authMW, authCtl.Logout)
		auth.GET("/whoami", authMW, authCtl.WhoAmI)
	}

	// ------------------------------
	// Directory (admin)
	// ------------------------------
	users := r.Group("/api/users", authMW, adminMW)
	{
		users.GET("", userCtl.ListUsers) // ?q=&page=&size=
		users.GET("/:id", userCtl.GetUser)
		users.POST("", userCtl.CreateUser)
		users.DELETE("/:id", userCtl.DeleteUser)
	}

	// ------------------------------
	// Asset lifecycle
	// ------------------------------
	assetsAdmin := r.Group("/api/assets", authMW, adminMW)
	{
		assetsAdmin.POST("", assetCtl.CreateAsset)
		assetsAdmin.GET("/admin", assetCtl.ListAssetsAdmin) // ?q=&status=&page=&size=
		assetsAdmin.POST("/depreciation/run", assetCtl.RunDepreciation)
		assetsAdmin.POST("/audit/scan", assetCtl.VisualAudit)
		assetsAdmin.GET("/audit/log", assetCtl.ListAuditLog)
	}

	assets := r.Group("/api/assets", authMW, seenMW)
	{
		assets.GET("", assetCtl.ListAssets)
		assets.POST("/:id/checkout", assetCtl.Checkout)
		assets.POST("/:id/checkin", assetCtl.CheckIn)
		assets.GET("/assignments", assetCtl.ListAssignments) // ?status=open|returned&userId=&assetId=
	}

	// ------------------------------
	// Performance
	// ------------------------------
	perf := r.Group("/api", authMW, seenMW)
	{
		perf.GET("/cycles/active", perfCtl.GetActiveCycle)
		perf.GET("/objectives", perfCtl.ListObjectives) // ?userId=&cycleId=
		perf.POST("/objectives", perfCtl.SaveObjective)
		perf.POST("/key-results/:id/sync", perfCtl.SyncKeyResult)
		perf.GET("/reviews", perfCtl.ListReviews) // ?reviewerId=&cycleId=
		perf.POST("/reviews/:id/submit", perfCtl.SubmitReview)
		perf.POST("/reviews/draft", perfCtl.DraftReview)
	}
}
