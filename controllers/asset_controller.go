// controllers/asset_controller.go
package controllers

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"time"

	"asset_perf_tool/app"
	"asset_perf_tool/db"
	"asset_perf_tool/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AssetController struct{ *Srv }

func NewAssetController(s *Srv) *AssetController { return &AssetController{Srv: s} }

// Admin registers a new asset at acquisition.
func (ac *AssetController) CreateAsset(c *gin.Context) {
	var in struct {
		Tag               string     `json:"tag" binding:"required"`
		Name              string     `json:"name" binding:"required"`
		Type              string     `json:"type" binding:"required,oneof=HARDWARE SOFTWARE LICENSE"`
		Location          string     `json:"location"`
		PurchaseDate      *time.Time `json:"purchaseDate"`
		Cost              float64    `json:"cost" binding:"required"`
		SalvageValue      float64    `json:"salvageValue"`
		DepreciationYears int        `json:"depreciationYears" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	a := &models.Asset{
		Tag:               in.Tag,
		Name:              in.Name,
		Type:              in.Type,
		Location:          in.Location,
		PurchaseDate:      in.PurchaseDate,
		Cost:              in.Cost,
		SalvageValue:      in.SalvageValue,
		DepreciationYears: in.DepreciationYears,
	}
	if err := ac.Repo.CreateAsset(c.Request.Context(), a); err != nil {
		ac.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (ac *AssetController) ListAssets(c *gin.Context) {
	assets, err := ac.Repo.ListAssets(c.Request.Context())
	if err != nil {
		ac.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": assets})
}

// Admin listing with the current holder joined in.
func (ac *AssetController) ListAssetsAdmin(c *gin.Context) {
	q := db.AdminAssetsQuery{
		Q:      c.Query("q"),
		Status: c.Query("status"),
	}
	if v := c.DefaultQuery("page", "1"); v != "" {
		q.Page, _ = strconv.Atoi(v)
	}
	if v := c.DefaultQuery("size", "20"); v != "" {
		q.Size, _ = strconv.Atoi(v)
	}

	res, err := ac.Repo.ListAssetsWithHolder(c.Request.Context(), q)
	if err != nil {
		ac.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true, "items": res})
}

// Checkout: IN_STOCK → ASSIGNED
func (ac *AssetController) Checkout(c *gin.Context) {
	assetID := c.Param("id")
	if assetID == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing asset id"})
		return
	}
	var in struct {
		UserID     string     `json:"userId" binding:"required"`
		ExpectedAt *time.Time `json:"expectedAt"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	approver := currentUserID(c)
	asset, err := ac.Repo.CheckoutAsset(c.Request.Context(), assetID, in.UserID, approver, in.ExpectedAt)
	if err != nil {
		ac.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, asset)
}

// CheckIn: ASSIGNED → IN_STOCK (GOOD) or REPAIR (DAMAGED)
func (ac *AssetController) CheckIn(c *gin.Context) {
	assetID := c.Param("id")
	if assetID == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing asset id"})
		return
	}
	var in struct {
		Condition string `json:"condition" binding:"required,oneof=GOOD DAMAGED"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	res, err := ac.Repo.CheckInAsset(c.Request.Context(), assetID, currentUserID(c), in.Condition)
	if err != nil {
		ac.fail(c, err)
		return
	}
	if res.Assignment == nil {
		ac.Log.Warn("check-in with no open assignment", zap.String("asset", assetID))
	}
	c.JSON(http.StatusOK, res)
}

func (ac *AssetController) ListAssignments(c *gin.Context) {
	rows, err := ac.Repo.ListAssignments(c.Request.Context(),
		c.Query("assetId"), c.Query("userId"), c.Query("status"))
	if err != nil {
		ac.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": rows})
}

// RunDepreciation advances every eligible asset by one period. The
// redis guard keeps a calendar month from being depreciated twice;
// the engine itself stays period-unaware.
func (ac *AssetController) RunDepreciation(c *gin.Context) {
	ctx := c.Request.Context()
	now := time.Now()

	ok, err := ac.DeprGuard.TryAcquire(ctx, now)
	if err != nil {
		ac.fail(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusConflict, app.H{"error": "depreciation already ran this period"})
		return
	}

	res, err := ac.Repo.RunDepreciation(ctx)
	if err != nil {
		// nothing was deducted; free the period for a retry
		_ = ac.DeprGuard.Release(ctx, now)
		ac.fail(c, err)
		return
	}

	actor := currentUserID(c)
	_ = ac.Repo.AppendAudit(ctx, actor, "depreciation", "asset", nil,
		"processed "+strconv.Itoa(res.Processed)+" assets")
	ac.Log.Info("depreciation run",
		zap.Int("processed", res.Processed),
		zap.Float64("totalDeducted", res.TotalDeducted),
		zap.Int("failed", len(res.FailedAssetIDs)))
	c.JSON(http.StatusOK, res)
}

// VisualAudit reconciles a scan against the asset register. Callers
// either send the recognizer's tag list directly or upload image data
// for the external recognizer to interpret.
func (ac *AssetController) VisualAudit(c *gin.Context) {
	var in struct {
		Tags      []string `json:"tags"`
		ImageData string   `json:"imageData"` // base64
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	tags := in.Tags
	if len(tags) == 0 {
		if in.ImageData == "" {
			c.JSON(http.StatusBadRequest, app.H{"error": "tags or imageData required"})
			return
		}
		raw, err := base64.StdEncoding.DecodeString(in.ImageData)
		if err != nil {
			c.JSON(http.StatusBadRequest, app.H{"error": "imageData is not valid base64"})
			return
		}
		tags, err = ac.Recognizer.RecognizeTags(c.Request.Context(), raw)
		if err != nil {
			ac.fail(c, err)
			return
		}
	}

	res, err := ac.Repo.ReconcileScan(c.Request.Context(), currentUserID(c), tags)
	if err != nil {
		ac.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ac *AssetController) ListAuditLog(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	rows, err := ac.Repo.ListAuditLog(c.Request.Context(), limit)
	if err != nil {
		ac.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": rows})
}
