package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ruslocale/mod-catalog/app/catalog"
	"github.com/ruslocale/mod-catalog/app/cfg"
	"github.com/ruslocale/mod-catalog/app/database"
	"github.com/ruslocale/mod-catalog/app/tasks"
)

func NewHandler(holder *catalog.Holder, stateRepo database.StateRepository,
	pageRepo database.PageRepository, cacheRepo database.CacheRepository,
	scheduler tasks.TaskSchedulerInterface, httpClient *http.Client) *Handler {
	return &Handler{
		holder:     holder,
		stateRepo:  stateRepo,
		pageRepo:   pageRepo,
		cacheRepo:  cacheRepo,
		generator:  NewGenerator(),
		scheduler:  scheduler,
		httpClient: httpClient,
	}
}

func (h *Handler) GetCatalog(c *gin.Context) {
	values := c.Request.URL.Query()

	// Explicit parameters always win; the persisted state is consulted only
	// for a bare request, so shared links stay reproducible.
	var state catalog.QueryState
	if catalog.HasStateParams(values) {
		state = catalog.StateFromValues(values)
		if err := h.stateRepo.SaveState(state); err != nil {
			slog.Warn("Failed to persist view state", "error", err)
		}
	} else if saved, ok, err := h.stateRepo.LoadState(); err == nil && ok {
		state = saved
	} else {
		if err != nil {
			slog.Warn("Failed to load persisted view state", "error", err)
		}
		state = catalog.DefaultQueryState()
	}

	items, stats, ok := h.holder.Snapshot()
	if !ok {
		h.renderUnavailable(c)
		return
	}

	view := catalog.View(items, state)

	responses := make([]ItemResponse, 0, len(view))
	for _, item := range view {
		responses = append(responses, newItemResponse(item))
	}

	c.JSON(http.StatusOK, CatalogResponse{
		State:          state,
		CanonicalQuery: state.Encode(),
		Stats:          stats,
		Count:          len(responses),
		Items:          responses,
	})
}

func (h *Handler) GetItem(c *gin.Context) {
	id := c.Param("id")

	items, _, ok := h.holder.Snapshot()
	if !ok {
		h.renderUnavailable(c)
		return
	}

	for _, item := range items {
		if item.ID != id {
			continue
		}

		_, pageAvailable, err := h.pageRepo.LoadPage(id)
		if err != nil {
			slog.Warn("Failed to check stored page content", "item", id, "error", err)
		}

		c.JSON(http.StatusOK, gin.H{
			"item":           newItemResponse(item),
			"page_available": pageAvailable,
		})
		return
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
}

func (h *Handler) GetItemPage(c *gin.Context) {
	id := c.Param("id")

	content, ok, err := h.pageRepo.LoadPage(id)
	if err != nil {
		slog.Error("Database error", "operation", "load_page", "item", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No page content for item"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(content))
}

func (h *Handler) GetCatalogRSS(c *gin.Context) {
	items, _, ok := h.holder.Snapshot()
	if !ok {
		h.renderUnavailable(c)
		return
	}

	view := catalog.View(items, catalog.DefaultQueryState())

	rss, err := h.generator.Run(view)
	if err != nil {
		slog.Error("RSS generation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.String(http.StatusOK, rss)
}

func (h *Handler) GetStats(c *gin.Context) {
	_, stats, ok := h.holder.Snapshot()
	if !ok {
		h.renderUnavailable(c)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetHealth(c *gin.Context) {
	state, source, updatedAt, count := h.holder.Info()

	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"state":     string(state),
		"items":     count,
		"version":   cfg.Get().Version,
	}

	if state == catalog.LoadReady {
		health["source"] = source
		health["updated_at"] = updatedAt.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) APIGetViewState(c *gin.Context) {
	state, ok, err := h.stateRepo.LoadState()
	if err != nil {
		slog.Warn("Failed to load persisted view state", "error", err)
	}
	if !ok {
		state = catalog.DefaultQueryState()
	}

	c.JSON(http.StatusOK, gin.H{
		"state":     state,
		"persisted": ok,
	})
}

func (h *Handler) APISaveViewState(c *gin.Context) {
	var state catalog.QueryState
	if err := c.ShouldBindJSON(&state); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid state payload"})
		return
	}

	if err := h.stateRepo.SaveState(state); err != nil {
		slog.Error("Failed to persist view state", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist state"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":     state,
		"persisted": true,
	})
}

func (h *Handler) APIGetTheme(c *gin.Context) {
	theme, ok, err := h.stateRepo.LoadTheme()
	if err != nil {
		slog.Warn("Failed to load theme preference", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"theme":     theme,
		"persisted": ok,
	})
}

func (h *Handler) APISaveTheme(c *gin.Context) {
	var payload struct {
		Theme string `json:"theme"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid theme payload"})
		return
	}

	if err := h.stateRepo.SaveTheme(payload.Theme); err != nil {
		slog.Error("Failed to persist theme preference", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist theme"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"theme":     payload.Theme,
		"persisted": true,
	})
}

func (h *Handler) APIRefreshCatalog(c *gin.Context) {
	appCfg := cfg.Get()

	task := tasks.NewRefreshCatalogTask(appCfg.CatalogURL, h.httpClient, h.holder, h.cacheRepo, appCfg.UserAgent)
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Error enqueueing refresh task", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue refresh task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Catalog refresh enqueued",
		"task": gin.H{
			"id":   task.ID,
			"type": task.Type,
		},
	})
}

// renderUnavailable reports the load-state machine without leaking raw error
// detail to clients.
func (h *Handler) renderUnavailable(c *gin.Context) {
	switch h.holder.State() {
	case catalog.LoadError:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Catalog is temporarily unavailable"})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
	}
}
