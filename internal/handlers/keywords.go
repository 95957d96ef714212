package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gramshield/dashboard/internal/entity"
	"github.com/gramshield/dashboard/internal/realtime"
	"github.com/gramshield/dashboard/internal/store"
	"github.com/gramshield/dashboard/internal/view"
)

// ListKeywords serves the watchlist page along with its summary stats.
func (h *Handler) ListKeywords(c *gin.Context) {
	refresh := c.Query("refresh") == "true"
	keywords, err := loadCached(c.Request.Context(), h.caches.Keywords, refresh, h.stores.Keywords.GetAll)
	h.observe("keyword", "getAll", err)
	if err != nil {
		h.fail(c, "Failed to load keywords", err)
		return
	}

	q := view.KeywordQuery{
		Search:     c.Query("search"),
		Category:   entity.KeywordCategory(c.Query("category")),
		Severity:   entity.Severity(c.Query("severity")),
		ActiveOnly: c.Query("active") == "true",
	}
	out := view.FilterKeywords(keywords, q)
	c.JSON(http.StatusOK, gin.H{
		"keywords": out,
		"total":    len(out),
		"stats":    view.ComputeKeywordStats(keywords),
	})
}

// CreateKeyword adds a watchlist entry. Term, category and severity are
// required and the enums must be known values.
func (h *Handler) CreateKeyword(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}
	if err := validateKeywordFields(fields); err != nil {
		h.fail(c, "Failed to add keyword", err)
		return
	}

	ctx := c.Request.Context()
	created, err := h.stores.Keywords.Create(ctx, fields)
	h.observe("keyword", "create", err)
	if err != nil {
		h.fail(c, "Failed to add keyword", err)
		return
	}

	h.caches.Keywords.Append(created)
	h.notifier.Success(ctx, "Keyword added successfully")
	h.publishChange(ctx, realtime.EventEntityCreated, "keyword", created)
	c.JSON(http.StatusCreated, created)
}

// GetKeyword fetches one keyword by id.
func (h *Handler) GetKeyword(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	keyword, err := h.stores.Keywords.GetByID(c.Request.Context(), id)
	h.observe("keyword", "getById", err)
	if err != nil {
		h.fail(c, "Failed to load keyword", err)
		return
	}
	c.JSON(http.StatusOK, keyword)
}

// UpdateKeyword applies a partial field map to one keyword.
func (h *Handler) UpdateKeyword(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	updated, err := h.stores.Keywords.Update(ctx, id, fields)
	h.observe("keyword", "update", err)
	if err != nil {
		h.fail(c, "Failed to update keyword", err)
		return
	}

	h.caches.Keywords.Replace(updated)
	h.notifier.Success(ctx, "Keyword updated successfully")
	h.publishChange(ctx, realtime.EventEntityUpdated, "keyword", updated)
	c.JSON(http.StatusOK, updated)
}

// DeleteKeyword removes one keyword and returns the deleted record.
func (h *Handler) DeleteKeyword(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	deleted, err := h.stores.Keywords.Delete(ctx, id)
	h.observe("keyword", "delete", err)
	if err != nil {
		h.fail(c, "Failed to delete keyword", err)
		return
	}

	h.caches.Keywords.Remove(id)
	h.notifier.Success(ctx, "Keyword deleted successfully")
	h.publishChange(ctx, realtime.EventEntityDeleted, "keyword", deleted)
	c.JSON(http.StatusOK, deleted)
}

// ToggleKeyword flips the active flag of one keyword.
func (h *Handler) ToggleKeyword(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	toggled, err := h.stores.Keywords.ToggleActive(ctx, id)
	h.observe("keyword", "update", err)
	if err != nil {
		h.fail(c, "Failed to update keyword", err)
		return
	}

	h.caches.Keywords.Replace(toggled)
	msg := "Keyword deactivated"
	if toggled.IsActive {
		msg = "Keyword activated"
	}
	h.notifier.Success(ctx, msg)
	h.publishChange(ctx, realtime.EventEntityUpdated, "keyword", toggled)
	c.JSON(http.StatusOK, toggled)
}

func validateKeywordFields(fields map[string]any) error {
	term, _ := fields["term"].(string)
	if term == "" {
		return &store.ValidationError{Field: "term", Message: "required"}
	}
	category, _ := fields["category"].(string)
	if category == "" {
		return &store.ValidationError{Field: "category", Message: "required"}
	}
	if !entity.KeywordCategory(category).Valid() {
		return &store.ValidationError{Field: "category", Message: "unknown category " + category}
	}
	severity, _ := fields["severity"].(string)
	if severity == "" {
		return &store.ValidationError{Field: "severity", Message: "required"}
	}
	if !entity.Severity(severity).Valid() {
		return &store.ValidationError{Field: "severity", Message: "unknown severity " + severity}
	}
	return nil
}
