package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/homeplan/internal/analyzer"
	"github.com/julianstephens/homeplan/internal/insights"
	"github.com/julianstephens/homeplan/internal/logger"
	"github.com/julianstephens/homeplan/internal/models"
	"github.com/julianstephens/homeplan/internal/planner"
	"github.com/julianstephens/homeplan/internal/profile"
	"github.com/julianstephens/homeplan/internal/reminders"
	"github.com/julianstephens/homeplan/internal/scheduler"
	"github.com/julianstephens/homeplan/internal/storage"
	"github.com/julianstephens/homeplan/internal/validation"
)

// maxProfileBytes bounds the size of an uploaded profile document.
const maxProfileBytes = 1 << 20

type Handler struct {
	store   storage.Provider
	planner *planner.Service
}

func NewHandler(store storage.Provider) *Handler {
	return &Handler{store: store, planner: planner.New(store)}
}

// lookupFailed maps storage errors onto 404 or 500.
func lookupFailed(c *gin.Context, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	logger.Error("request failed", "path", c.FullPath(), "error", err)
	RespondError(c, http.StatusInternalServerError, "internal", err)
}

type profileResponse struct {
	Profile     models.UserProfile          `json:"profile"`
	Validation  validation.ValidationResult `json:"validation"`
	Suggestions []analyzer.SuggestedTherapy `json:"suggestions"`
}

// POST /api/profiles
func (h *Handler) SaveProfile(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxProfileBytes))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	f, err := profile.Parse(data)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_profile", err)
		return
	}

	if existing, err := h.store.GetProfile(f.ID); err == nil {
		f.CreatedAt = existing.CreatedAt
	}
	profile.Touch(&f.UserProfile, h.planner.Now())
	if err := h.store.SaveProfile(f.UserProfile); err != nil {
		lookupFailed(c, err)
		return
	}

	c.JSON(http.StatusCreated, profileResponse{
		Profile:     f.UserProfile,
		Validation:  validation.New().ValidateProfile(f.UserProfile),
		Suggestions: analyzer.Suggestions(analyzer.Analyze(f.UserProfile), f.UserProfile),
	})
}

// GET /api/profiles/:id
func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.store.GetProfile(c.Param("id"))
	if err != nil {
		lookupFailed(c, err)
		return
	}
	RespondOK(c, profileResponse{
		Profile:     p,
		Validation:  validation.New().ValidateProfile(p),
		Suggestions: analyzer.Suggestions(analyzer.Analyze(p), p),
	})
}

type generateRequest struct {
	Force bool `json:"force"`
}

// POST /api/profiles/:id/schedule
func (h *Handler) GenerateSchedule(c *gin.Context) {
	var req generateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "bad_request", err)
			return
		}
	}

	out, err := h.planner.Generate(c.Request.Context(), c.Param("id"), planner.Options{
		Force:       req.Force,
		Environment: "http",
	})
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, out.Result)
	case errors.Is(err, planner.ErrInvalidProfile):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      APIError{Message: err.Error(), Code: "invalid_profile"},
			"validation": out.Validation,
		})
	case errors.Is(err, scheduler.ErrNothingScheduled):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  APIError{Message: err.Error(), Code: "nothing_scheduled"},
			"result": out.Result,
		})
	default:
		lookupFailed(c, err)
	}
}

// GET /api/profiles/:id/schedule
func (h *Handler) GetSchedule(c *gin.Context) {
	result, _, err := h.planner.Latest(c.Param("id"))
	if err != nil {
		lookupFailed(c, err)
		return
	}
	RespondOK(c, result)
}

type insightsResponse struct {
	insights.Report
	Recommendations []insights.Recommendation `json:"recommendations"`
	Needs           []analyzer.Insight        `json:"needs"`
}

// GET /api/profiles/:id/insights
func (h *Handler) GetInsights(c *gin.Context) {
	result, p, err := h.planner.Latest(c.Param("id"))
	if err != nil {
		lookupFailed(c, err)
		return
	}
	settings, err := h.store.GetSettings()
	if err != nil {
		lookupFailed(c, err)
		return
	}
	RespondOK(c, insightsResponse{
		Report:          insights.Analyze(result.Schedule, p, settings),
		Recommendations: insights.Feasibility(p),
		Needs:           analyzer.Insights(analyzer.Analyze(p), p),
	})
}

// GET /api/profiles/:id/reminders
func (h *Handler) GetReminders(c *gin.Context) {
	result, p, err := h.planner.Latest(c.Param("id"))
	if err != nil {
		lookupFailed(c, err)
		return
	}
	settings, err := h.store.GetSettings()
	if err != nil {
		lookupFailed(c, err)
		return
	}
	RespondOK(c, reminders.Plan(result.Schedule, p, settings))
}
