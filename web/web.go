// Package web provides the AgriSense web server: routing, templates,
// signed cookie sessions and background job scheduling.
package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net"
	"net/http"
	"strconv"

	"github.com/Rajeshwari-1K/AgriSense-AI/classifier"
	"github.com/Rajeshwari-1K/AgriSense-AI/config"
	"github.com/Rajeshwari-1K/AgriSense-AI/logger"
	"github.com/Rajeshwari-1K/AgriSense-AI/util/common"
	"github.com/Rajeshwari-1K/AgriSense-AI/util/random"
	"github.com/Rajeshwari-1K/AgriSense-AI/web/controller"
	"github.com/Rajeshwari-1K/AgriSense-AI/web/job"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

//go:embed assets
var assetsFS embed.FS

//go:embed html/*
var htmlFS embed.FS

// Server is the AgriSense web server with its controllers, classifier and
// scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index *controller.IndexController
	panel *controller.PanelController

	classifier *classifier.Classifier

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a server around the classifier artifact configured for
// this process. The artifact is loaded in Start.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		classifier: classifier.New(config.GetModelPath()),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// initRouter initializes Gin, registers sessions, templates, static assets
// and controllers, and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	secret := config.GetSecret()
	if secret == "" {
		// Sessions signed with a per-start secret do not survive restarts.
		secret = random.Seq(64)
		logger.Warning("AGRISENSE_SECRET not set, generated a one-off session secret")
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   config.GetSessionMaxAge() * 60,
		HttpOnly: true,
	})
	engine.Use(sessions.Sessions("agrisense", store))

	engine.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{"/delete-prediction/"}),
	))

	tpl, err := template.ParseFS(htmlFS, "html/*.html")
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tpl)

	assetsSub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		return nil, err
	}
	engine.StaticFS("/assets", http.FS(assetsSub))

	g := engine.Group("/")
	s.index = controller.NewIndexController(g)
	s.panel = controller.NewPanelController(g, s.classifier)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules the background jobs.
func (s *Server) startTask() {
	s.cron.AddJob("@every 1m", job.NewCheckModelJob(s.classifier))
	s.cron.AddJob("@daily", job.NewStatsJob())
}

// Start loads the classifier, binds the listener and serves requests. Only
// a bind failure is fatal; a missing or corrupt model artifact logs a
// warning and leaves the server in fallback mode.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	if loadErr := s.classifier.Load(); loadErr != nil {
		logger.Warningf("model artifact unavailable (%v), serving fallback predictions", loadErr)
	} else {
		logger.Info("model artifact loaded from", config.GetModelPath())
	}

	s.cron = cron.New()
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the web server and its jobs.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }
