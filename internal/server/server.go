package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/active"
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/engine"
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/internal/logger"
	"github.com/AlexTregub/softwareEngineering-teamDelta-sub004/pkg/models"
)

const defaultListenAddr = ":8080"

// Server exposes a control API over a running engine: inspecting events and
// flags, triggering and completing events, and toggling the engine. The
// engine itself assumes single-threaded access, so the server is the
// concurrency boundary — every engine call, including the daemon's tick,
// goes through the server's lock.
type Server struct {
	cfg    *models.Config
	engine *engine.Engine
	mu     sync.Mutex
	router *gin.Engine
	srv    *http.Server
}

// New creates a control server around eng.
func New(cfg *models.Config, eng *engine.Engine) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{cfg: cfg, engine: eng, router: router}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/events", s.listEvents)
	s.router.GET("/active", s.listActive)
	s.router.GET("/events/:id", s.getEvent)
	s.router.GET("/events/:id/triggers", s.listTriggers)
	s.router.POST("/events/:id/trigger", s.triggerEvent)
	s.router.POST("/events/:id/complete", s.completeEvent)
	s.router.GET("/flags", s.listFlags)
	s.router.PUT("/flags/:name", s.setFlag)
	s.router.DELETE("/flags/:name", s.clearFlag)
	s.router.GET("/enabled", s.getEnabled)
	s.router.POST("/enabled", s.setEnabled)
	s.router.GET("/export", s.exportBundle)
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Update runs one engine tick under the server's lock. The daemon's frame
// loop calls this instead of touching the engine directly.
func (s *Server) Update() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Update()
}

// Start begins serving the control API in the background.
func (s *Server) Start() {
	addr := s.cfg.Application.ListenAddr
	if addr == "" {
		addr = defaultListenAddr
	}
	s.srv = &http.Server{Addr: addr, Handler: s.router}

	go func() {
		logger.L().Info("Control API listening", "addr", addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Error("Control API server failed", "error", err)
		}
	}()
}

// Stop shuts the control API down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	logger.L().Info("Stopping control API...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

// instanceView is the wire shape of an active event instance.
type instanceView struct {
	InstanceID string `json:"instanceId"`
	EventID    string `json:"eventId"`
	Type       string `json:"type"`
	Priority   *int   `json:"priority,omitempty"`
	Paused     bool   `json:"paused"`
}

func viewOf(inst *active.Instance) instanceView {
	return instanceView{
		InstanceID: inst.InstanceID,
		EventID:    inst.Def.ID,
		Type:       inst.Def.Type,
		Priority:   inst.Def.Priority,
		Paused:     inst.Paused,
	}
}

func (s *Server) listEvents(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var defs []models.EventDefinition
	if eventType := c.Query("type"); eventType != "" {
		defs = s.engine.GetEventsByType(eventType)
	} else {
		defs = s.engine.GetAllEvents()
	}
	c.JSON(http.StatusOK, gin.H{"events": defs})
}

func (s *Server) listActive(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]instanceView, 0)
	for _, inst := range s.engine.GetActiveEventsSorted() {
		views = append(views, viewOf(inst))
	}
	c.JSON(http.StatusOK, gin.H{"active": views})
}

func (s *Server) getEvent(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	def, ok := s.engine.GetEvent(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"event":  def,
		"active": s.engine.IsEventActive(def.ID),
	})
}

func (s *Server) listTriggers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	triggers := s.engine.GetTriggersForEvent(c.Param("id"))
	if triggers == nil {
		triggers = []models.TriggerDefinition{}
	}
	c.JSON(http.StatusOK, gin.H{"triggers": triggers})
}

func (s *Server) triggerEvent(c *gin.Context) {
	var req struct {
		Data any `json:"data"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	if !s.engine.TriggerEvent(id, req.Data) {
		c.JSON(http.StatusConflict, gin.H{"error": "event could not be triggered"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"triggered": id})
}

func (s *Server) completeEvent(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	if !s.engine.CompleteEvent(id) {
		c.JSON(http.StatusConflict, gin.H{"error": "event is not active"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": id})
}

func (s *Server) listFlags(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"flags": s.engine.GetAllFlags()})
}

func (s *Server) setFlag(c *gin.Context) {
	var req struct {
		Value     any      `json:"value"`
		Increment *float64 `json:"increment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name := c.Param("name")
	if req.Increment != nil {
		value, ok := s.engine.IncrementFlag(name, *req.Increment)
		if !ok {
			c.JSON(http.StatusConflict, gin.H{"error": "flag is not numeric"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"name": name, "value": value})
		return
	}

	s.engine.SetFlag(name, req.Value)
	c.JSON(http.StatusOK, gin.H{"name": name, "value": req.Value})
}

func (s *Server) clearFlag(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.ClearFlag(c.Param("name"))
	c.Status(http.StatusNoContent)
}

func (s *Server) getEnabled(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"enabled": s.engine.Enabled()})
}

func (s *Server) setEnabled(c *gin.Context) {
	var req struct {
		Enabled *bool `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be {\"enabled\": bool}"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetEnabled(*req.Enabled)
	c.JSON(http.StatusOK, gin.H{"enabled": s.engine.Enabled()})
}

func (s *Server) exportBundle(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.engine.ExportBundle())
}
