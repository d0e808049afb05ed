// Package control mounts the localhost HTTP API the GUI, bar widgets, and
// scripts drive the daemon with: toggling dictation, reading status,
// managing models, and editing settings.
package control

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/voxd/dictionary"
	apperrors "github.com/kbukum/voxd/errors"
	"github.com/kbukum/voxd/logger"
	"github.com/kbukum/voxd/model"
	"github.com/kbukum/voxd/pipeline"
	"github.com/kbukum/voxd/postproc"
	"github.com/kbukum/voxd/server"
	"github.com/kbukum/voxd/server/middleware"
	"github.com/kbukum/voxd/sse"
	"github.com/kbukum/voxd/status"
	"github.com/kbukum/voxd/trigger"
)

// Pipeline is the slice of the dictation pipeline the API drives.
type Pipeline interface {
	TryToggle(source string) error
	OpenSettings(source string)
	CurrentState() pipeline.State
}

// Settings is the read/write surface for the daemon configuration. The
// concrete implementation validates, saves atomically, and hot-applies.
type Settings interface {
	// Current returns the settings document served on GET.
	Current() (any, error)
	// Update validates and applies a new settings document, returning the
	// applied form.
	Update(ctx context.Context, raw []byte) (any, error)
	// Open hands the settings file to the desktop editor.
	Open(ctx context.Context) error
}

// API wires the control routes onto a gin engine.
type API struct {
	pipe         Pipeline
	trigger      *trigger.Debouncer
	status       *status.Publisher
	models       *model.Manager
	history      *postproc.History
	dict         *dictionary.Engine
	settings     Settings
	hub          *sse.Hub
	mutPerMinute int
	log          *logger.Logger
}

// Options collects the API's dependencies. Status, models, history, dict,
// settings, and hub may each be nil; the matching routes then respond 404.
type Options struct {
	Pipeline Pipeline
	Debounce *trigger.Debouncer
	Status   *status.Publisher
	Models   *model.Manager
	History  *postproc.History
	Dict     *dictionary.Engine
	Settings Settings
	Hub      *sse.Hub

	// MutationsPerMinute rate-limits the mutating routes. 0 uses the
	// middleware default.
	MutationsPerMinute int
}

// New creates the control API.
func New(opts Options, log *logger.Logger) *API {
	d := opts.Debounce
	if d == nil {
		d = trigger.NewDebouncer(0)
	}
	return &API{
		pipe:         opts.Pipeline,
		trigger:      d,
		status:       opts.Status,
		models:       opts.Models,
		history:      opts.History,
		dict:         opts.Dict,
		settings:     opts.Settings,
		hub:          opts.Hub,
		mutPerMinute: opts.MutationsPerMinute,
		log:          log.WithComponent("control"),
	}
}

// Register mounts the /v1 routes. Mutating routes share a rate limiter so a
// runaway script cannot spin the pipeline.
func (a *API) Register(engine *gin.Engine) {
	v1 := engine.Group("/v1")
	v1.GET("/status", a.getStatus)
	v1.GET("/settings", a.getSettings)
	v1.GET("/models", a.getModels)
	v1.GET("/history", a.getHistory)
	v1.GET("/events", a.getEvents)

	mut := v1.Group("")
	mut.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerMinute: a.mutPerMinute,
	}))
	mut.POST("/toggle", a.postToggle)
	mut.POST("/settings/open", a.postSettingsOpen)
	mut.PUT("/settings", a.putSettings)
	mut.POST("/models/:id/download", a.postModelDownload)
	mut.POST("/models/:id/cancel", a.postModelCancel)
	mut.DELETE("/models/:id", a.deleteModel)
	mut.POST("/dictionary/reload", a.postDictionaryReload)
}

func (a *API) getStatus(c *gin.Context) {
	if a.status == nil {
		c.Status(http.StatusNotFound)
		return
	}
	server.RespondOK(c, a.status.Current())
}

// postToggle flips the pipeline. A toggle landing inside the debounce
// window is acknowledged but not acted on, mirroring how a double-pressed
// hotkey behaves; a toggle during processing is a conflict.
func (a *API) postToggle(c *gin.Context) {
	if !a.trigger.Allow() {
		server.RespondOK(c, gin.H{"accepted": false, "reason": "debounced"})
		return
	}
	if err := a.pipe.TryToggle("api"); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, gin.H{"accepted": true, "state": a.pipe.CurrentState().String()})
}

func (a *API) postSettingsOpen(c *gin.Context) {
	a.pipe.OpenSettings("api")
	server.RespondAccepted(c, gin.H{"opening": true})
}

func (a *API) getSettings(c *gin.Context) {
	if a.settings == nil {
		c.Status(http.StatusNotFound)
		return
	}
	doc, err := a.settings.Current()
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, doc)
}

func (a *API) putSettings(c *gin.Context) {
	if a.settings == nil {
		c.Status(http.StatusNotFound)
		return
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		server.RespondWithError(c, apperrors.Validation("could not read request body"))
		return
	}
	doc, err := a.settings.Update(c.Request.Context(), raw)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	a.log.Info("Settings updated via API", nil)
	server.RespondOK(c, doc)
}

func (a *API) getModels(c *gin.Context) {
	if a.models == nil {
		c.Status(http.StatusNotFound)
		return
	}
	server.RespondOK(c, a.models.List())
}

func (a *API) postModelDownload(c *gin.Context) {
	if a.models == nil {
		c.Status(http.StatusNotFound)
		return
	}
	id := c.Param("id")
	if err := a.models.Download(id); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondAccepted(c, gin.H{"id": id, "downloading": true})
}

func (a *API) postModelCancel(c *gin.Context) {
	if a.models == nil {
		c.Status(http.StatusNotFound)
		return
	}
	id := c.Param("id")
	if err := a.models.Cancel(id); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, gin.H{"id": id, "cancelled": true})
}

func (a *API) deleteModel(c *gin.Context) {
	if a.models == nil {
		c.Status(http.StatusNotFound)
		return
	}
	if err := a.models.Delete(c.Param("id")); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondNoContent(c)
}

func (a *API) getHistory(c *gin.Context) {
	if a.history == nil {
		c.Status(http.StatusNotFound)
		return
	}
	entries, err := a.history.Entries()
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, entries)
}

func (a *API) postDictionaryReload(c *gin.Context) {
	if a.dict == nil {
		c.Status(http.StatusNotFound)
		return
	}
	if err := a.dict.Load(); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, gin.H{"rules": len(a.dict.Rules())})
}

// getEvents bridges status snapshots, download progress, and cycle results
// to SSE subscribers.
func (a *API) getEvents(c *gin.Context) {
	if a.hub == nil {
		c.Status(http.StatusNotFound)
		return
	}
	sse.ServeSSE(a.hub, c.Writer, c.Request, uuid.NewString())
}
