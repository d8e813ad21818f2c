package subscription

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Store is the persistence boundary the handlers depend on.
type Store interface {
	List(ctx context.Context) ([]Subscription, error)
	GetByID(ctx context.Context, id int64) (Subscription, error)
	Create(ctx context.Context, sub Subscription) (Subscription, error)
	Update(ctx context.Context, id int64, sub Subscription) (Subscription, error)
	Delete(ctx context.Context, id int64) error
}

// Handler exposes HTTP handlers for subscription resources.
type Handler struct {
	store Store
	log   *slog.Logger
}

func NewHandler(store Store, log *slog.Logger) *Handler {
	return &Handler{store: store, log: log}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/subscriptions")
	group.GET("", h.list)
	group.GET("/summary", h.summary)
	group.POST("", h.create)
	group.GET("/:id", h.getByID)
	group.PATCH("/:id", h.update)
	group.DELETE("/:id", h.delete)
}

type createSubscriptionRequest struct {
	Name         string  `json:"name"`
	Cost         *int64  `json:"cost"`
	Cycle        string  `json:"cycle"`
	StartDate    string  `json:"startDate"`
	IsTrial      bool    `json:"isTrial"`
	TrialEndDate *string `json:"trialEndDate"`
	Status       string  `json:"status"`
	URL          *string `json:"url"`
}

// validateCreate enforces the create rules and defaults a blank cycle to
// monthly. The cycle default lives here, not in normalizeForCreate, so that
// everything after validation can rely on a usable cycle.
func validateCreate(req *createSubscriptionRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}
	if req.Cost == nil || *req.Cost < 0 {
		return errors.New("cost must be non-negative")
	}
	if strings.TrimSpace(req.Cycle) == "" {
		req.Cycle = CycleMonthly
	}
	return nil
}

func normalizeForCreate(req *createSubscriptionRequest) {
	if req.StartDate == "" {
		req.StartDate = time.Now().UTC().Format(time.RFC3339Nano)
	}
	if req.Status == "" {
		req.Status = StatusActive
	}
	if req.Cost == nil {
		// validateCreate already rejects a nil cost; this keeps
		// normalization safe to call on its own.
		zero := int64(0)
		req.Cost = &zero
	}
}

func (h *Handler) create(c *gin.Context) {
	var req createSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if err := validateCreate(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	normalizeForCreate(&req)

	created, err := h.store.Create(c.Request.Context(), Subscription{
		Name:         req.Name,
		Cost:         *req.Cost,
		Cycle:        req.Cycle,
		StartDate:    req.StartDate,
		IsTrial:      req.IsTrial,
		TrialEndDate: req.TrialEndDate,
		Status:       req.Status,
		URL:          req.URL,
	})
	if err != nil {
		h.storageError(c, "create subscription", err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) list(c *gin.Context) {
	subs, err := h.store.List(c.Request.Context())
	if err != nil {
		h.storageError(c, "list subscriptions", err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (h *Handler) summary(c *gin.Context) {
	subs, err := h.store.List(c.Request.Context())
	if err != nil {
		h.storageError(c, "summarize subscriptions", err)
		return
	}
	c.JSON(http.StatusOK, Summarize(subs))
}

func (h *Handler) getByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	sub, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			notFound(c)
			return
		}
		h.storageError(c, "get subscription", err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

type updateSubscriptionRequest struct {
	Name         *string `json:"name"`
	Cost         *int64  `json:"cost"`
	Cycle        *string `json:"cycle"`
	StartDate    *string `json:"startDate"`
	IsTrial      bool    `json:"isTrial"`
	TrialEndDate *string `json:"trialEndDate"`
	Status       *string `json:"status"`
	URL          *string `json:"url"`
}

// applyUpdate merges a partial payload into the current record. Pointer
// fields overwrite only when present in the payload. isTrial and
// trialEndDate are written verbatim on every update, so a payload that omits
// them clears the trial state.
func applyUpdate(sub *Subscription, req updateSubscriptionRequest) {
	if req.Name != nil {
		sub.Name = *req.Name
	}
	if req.Cost != nil {
		sub.Cost = *req.Cost
	}
	if req.Cycle != nil {
		sub.Cycle = *req.Cycle
	}
	if req.StartDate != nil {
		sub.StartDate = *req.StartDate
	}
	sub.IsTrial = req.IsTrial
	sub.TrialEndDate = req.TrialEndDate
	if req.Status != nil {
		sub.Status = *req.Status
	}
	if req.URL != nil {
		sub.URL = req.URL
	}
}

func (h *Handler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	// Read-merge-write with no version check: concurrent updates to the
	// same id are last-writer-wins.
	existing, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			notFound(c)
			return
		}
		h.storageError(c, "get subscription", err)
		return
	}

	applyUpdate(&existing, req)

	updated, err := h.store.Update(c.Request.Context(), id, existing)
	if err != nil {
		if err == sql.ErrNoRows {
			notFound(c)
			return
		}
		h.storageError(c, "update subscription", err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		if err == sql.ErrNoRows {
			notFound(c)
			return
		}
		h.storageError(c, "delete subscription", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return 0, false
	}
	return id, true
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Subscription not found"})
}

func (h *Handler) storageError(c *gin.Context, op string, err error) {
	h.log.Error(op, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
}
