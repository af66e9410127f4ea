// controllers/srv.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"asset_perf_tool/app"
	"asset_perf_tool/collab"
	"asset_perf_tool/db"
	"asset_perf_tool/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Srv struct {
	Repo       *db.Repo
	AppSess    *session.AppSessionStore
	DeprGuard  *session.PeriodGuard
	TextGen    collab.TextGenerator
	Recognizer collab.Recognizer
	Log        *zap.Logger
	WebOrigin  string
	Cfg        app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:       db.NewRepo(a.DB),
		AppSess:    a.AppSessions(),
		DeprGuard:  session.NewPeriodGuard(a.RDB, "apt:depr:run"),
		TextGen:    collab.NewHTTPTextGenerator(a.Config.TextGenURL),
		Recognizer: collab.NewHTTPRecognizer(a.Config.RecognizerURL),
		Log:        a.Log,
		WebOrigin:  a.Config.WebOrigin,
		Cfg:        a.Config,
	}
}

// --- helpers ---

// fail maps engine errors onto HTTP statuses in one place.
func (s *Srv) fail(c *gin.Context, err error) {
	var invalidState *db.InvalidStateError
	var invalidCfg *db.InvalidConfigError
	switch {
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": err.Error()})
	case errors.As(err, &invalidState):
		c.JSON(http.StatusConflict, app.H{
			"error":   err.Error(),
			"assetId": invalidState.AssetID,
			"status":  invalidState.Status,
		})
	case errors.Is(err, db.ErrAlreadySubmitted), errors.Is(err, db.ErrAlreadyAssigned):
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
	case errors.As(err, &invalidCfg), errors.Is(err, db.ErrNotLinked), errors.Is(err, db.ErrNoAnswers):
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
	case errors.Is(err, collab.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, app.H{"error": "collaborator unavailable"})
	default:
		s.Log.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}

func currentUserID(c *gin.Context) string {
	v, _ := c.Get("userID")
	uid, _ := v.(string)
	return uid
}

func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

// issueSession creates a session + stamps the login snapshot.
func (s *Srv) issueSession(ctx context.Context, w http.ResponseWriter, userID string) error {
	if err := s.Repo.TouchUserLogin(ctx, userID); err != nil {
		s.Log.Warn("touch login failed", zap.String("user", userID), zap.Error(err))
	}
	id := uuid.NewString()
	if err := s.AppSess.Create(ctx, id, userID); err != nil {
		return err
	}
	s.setAppCookie(w, id, s.Cfg.SessionTTL)
	return nil
}
