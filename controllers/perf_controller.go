// controllers/perf_controller.go
package controllers

import (
	"net/http"

	"asset_perf_tool/app"
	"asset_perf_tool/models"

	"github.com/gin-gonic/gin"
)

type PerfController struct{ *Srv }

func NewPerfController(s *Srv) *PerfController { return &PerfController{Srv: s} }

func (pc *PerfController) GetActiveCycle(c *gin.Context) {
	cy, err := pc.Repo.GetActiveCycle(c.Request.Context())
	if err != nil {
		pc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cy)
}

func (pc *PerfController) ListObjectives(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		userID = currentUserID(c)
	}
	objs, err := pc.Repo.ListObjectives(c.Request.Context(), userID, c.Query("cycleId"))
	if err != nil {
		pc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": objs})
}

type keyResultIn struct {
	ID              string  `json:"id"`
	Title           string  `json:"title" binding:"required"`
	MetricType      string  `json:"metricType" binding:"required,oneof=NUMBER PERCENTAGE"`
	StartVal        float64 `json:"startVal"`
	TargetVal       float64 `json:"targetVal"`
	CurrentVal      float64 `json:"currentVal"`
	LinkedProjectID *string `json:"linkedProjectId"`
}

// SaveObjective upserts an objective; progress always comes out of
// the recalculation, never out of the request body.
func (pc *PerfController) SaveObjective(c *gin.Context) {
	var in struct {
		ID         string        `json:"id"`
		CycleID    string        `json:"cycleId" binding:"required"`
		Title      string        `json:"title" binding:"required"`
		Weight     int           `json:"weight" binding:"min=0,max=100"`
		KeyResults []keyResultIn `json:"keyResults" binding:"dive"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	obj := &models.Objective{
		ID:      in.ID,
		UserID:  currentUserID(c),
		CycleID: in.CycleID,
		Title:   in.Title,
		Weight:  in.Weight,
	}
	for _, kr := range in.KeyResults {
		obj.KeyResults = append(obj.KeyResults, models.KeyResult{
			ID:              kr.ID,
			Title:           kr.Title,
			MetricType:      kr.MetricType,
			StartVal:        kr.StartVal,
			TargetVal:       kr.TargetVal,
			CurrentVal:      kr.CurrentVal,
			LinkedProjectID: kr.LinkedProjectID,
		})
	}

	if err := pc.Repo.SaveObjective(c.Request.Context(), obj); err != nil {
		pc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, obj)
}

func (pc *PerfController) SyncKeyResult(c *gin.Context) {
	krID := c.Param("id")
	if krID == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing key result id"})
		return
	}
	res, err := pc.Repo.SyncKeyResult(c.Request.Context(), krID)
	if err != nil {
		pc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (pc *PerfController) ListReviews(c *gin.Context) {
	reviewer := c.Query("reviewerId")
	if reviewer == "" {
		reviewer = currentUserID(c)
	}
	ss, err := pc.Repo.ListReviewSessions(c.Request.Context(), reviewer, c.Query("cycleId"))
	if err != nil {
		pc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"items": ss})
}

func (pc *PerfController) SubmitReview(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing session id"})
		return
	}
	var in struct {
		Answers []struct {
			QuestionID string `json:"questionId" binding:"required"`
			Rating     int    `json:"rating" binding:"required,min=1,max=5"`
			Comment    string `json:"comment"`
		} `json:"answers" binding:"dive"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	answers := make([]models.ReviewAnswer, 0, len(in.Answers))
	for _, a := range in.Answers {
		answers = append(answers, models.ReviewAnswer{
			QuestionID: a.QuestionID,
			Rating:     a.Rating,
			Comment:    a.Comment,
		})
	}

	s, err := pc.Repo.SubmitReview(c.Request.Context(), sessionID, answers)
	if err != nil {
		pc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// DraftReview asks the text-generation collaborator for a starting
// comment. Advisory only; failures surface as 503 without retries.
func (pc *PerfController) DraftReview(c *gin.Context) {
	var in struct {
		TargetUserID string `json:"targetUserId" binding:"required"`
		CycleID      string `json:"cycleId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	text, err := pc.TextGen.GenerateReviewDraft(c.Request.Context(), in.TargetUserID, in.CycleID)
	if err != nil {
		pc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"text": text})
}
