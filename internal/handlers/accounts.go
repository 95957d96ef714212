package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gramshield/dashboard/internal/realtime"
	"github.com/gramshield/dashboard/internal/view"
)

// ListAccounts serves the accounts page: cached snapshot filtered and
// sorted by the query.
func (h *Handler) ListAccounts(c *gin.Context) {
	refresh := c.Query("refresh") == "true"
	accounts, err := loadCached(c.Request.Context(), h.caches.Accounts, refresh, h.stores.Accounts.GetAll)
	h.observe("suspicious_account", "getAll", err)
	if err != nil {
		h.fail(c, "Failed to load accounts", err)
		return
	}

	q := view.AccountQuery{
		Search:      c.Query("search"),
		ThreatLevel: view.ThreatLevelBand(c.Query("threat_level")),
		Flag:        c.Query("flag"),
		SortKey:     view.AccountSortKey(c.Query("sort")),
	}
	out := view.FilterAccounts(accounts, q)
	c.JSON(http.StatusOK, gin.H{"accounts": out, "total": len(out)})
}

// CreateAccount flags a new suspicious account.
func (h *Handler) CreateAccount(c *gin.Context) {
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	created, err := h.stores.Accounts.Create(ctx, fields)
	h.observe("suspicious_account", "create", err)
	if err != nil {
		h.fail(c, "Failed to flag account", err)
		return
	}

	h.caches.Accounts.Append(created)
	h.notifier.Success(ctx, "Account flagged successfully")
	h.publishChange(ctx, realtime.EventEntityCreated, "suspicious_account", created)
	c.JSON(http.StatusCreated, created)
}

// GetAccount fetches one account by id.
func (h *Handler) GetAccount(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	account, err := h.stores.Accounts.GetByID(c.Request.Context(), id)
	h.observe("suspicious_account", "getById", err)
	if err != nil {
		h.fail(c, "Failed to load account", err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// UpdateAccount applies a partial field map to one account.
func (h *Handler) UpdateAccount(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	updated, err := h.stores.Accounts.Update(ctx, id, fields)
	h.observe("suspicious_account", "update", err)
	if err != nil {
		h.fail(c, "Failed to update account", err)
		return
	}

	h.caches.Accounts.Replace(updated)
	h.notifier.Success(ctx, "Account updated successfully")
	h.publishChange(ctx, realtime.EventEntityUpdated, "suspicious_account", updated)
	c.JSON(http.StatusOK, updated)
}

// DeleteAccount removes one account and returns the deleted record.
func (h *Handler) DeleteAccount(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	deleted, err := h.stores.Accounts.Delete(ctx, id)
	h.observe("suspicious_account", "delete", err)
	if err != nil {
		h.fail(c, "Failed to remove account", err)
		return
	}

	h.caches.Accounts.Remove(id)
	h.notifier.Success(ctx, "Account removed successfully")
	h.publishChange(ctx, realtime.EventEntityDeleted, "suspicious_account", deleted)
	c.JSON(http.StatusOK, deleted)
}

// GetAccountStats serves the summary strip under the accounts list.
func (h *Handler) GetAccountStats(c *gin.Context) {
	accounts, err := loadCached(c.Request.Context(), h.caches.Accounts, false, h.stores.Accounts.GetAll)
	h.observe("suspicious_account", "getAll", err)
	if err != nil {
		h.fail(c, "Failed to load accounts", err)
		return
	}
	c.JSON(http.StatusOK, view.ComputeAccountStats(accounts))
}
