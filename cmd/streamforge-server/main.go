package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/edirooss/streamforge/internal/chat"
	"github.com/edirooss/streamforge/internal/config"
	"github.com/edirooss/streamforge/internal/http/handler"
	mw "github.com/edirooss/streamforge/internal/http/middleware"
	"github.com/edirooss/streamforge/internal/repo"
	"github.com/edirooss/streamforge/internal/service"
	"github.com/edirooss/streamforge/pkg/jsonx"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the server config file")
	v := flag.Bool("v", false, "print version and exit")
	flag.BoolVar(v, "version", false, "print version and exit")
	flag.Parse()

	if *v {
		fmt.Printf("streamforge-server %s (commit %s, built %s)\n", config.Version, config.GitCommit, config.BuildDate)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := buildLogger()
	defer log.Sync()
	log = log.Named("main")

	if !cfg.IsDev {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = zap.NewStdLog(log.Named("gin")).Writer()
	r := gin.New()

	rc := repo.NewRedisClient(cfg.RedisAddr, cfg.RedisDB, log)
	defer rc.Close()
	repository := repo.NewRepository(log, rc)

	projectsvc := service.NewProjectService(log, rc.Client, service.ProjectServiceOptions{
		MaxOpen: cfg.Projects.MaxOpenStores,
		IdleTTL: cfg.Projects.StoreIdleTTL,
	})
	wssvc, err := service.NewWorkspaceSessionService(service.WorkspaceSessionOptions{
		IsDev:     cfg.IsDev,
		RedisAddr: cfg.RedisAddr,
		RedisDB:   cfg.RedisDB,
		Secret:    cfg.SessionSecret,
		Release:   projectsvc,
	})
	if err != nil {
		log.Fatal("workspace session service creation failed", zap.Error(err))
	}
	configsvc := service.NewConfigService(log, repository.Workspaces)
	chatsvc := service.NewChatService(log, buildGateway(log, cfg.Chat), cfg.Chat.Timeout)

	{
		r.Use(gin.Recovery()) // outermost
		r.Use(mw.RequestID())

		if cfg.IsDev { // CORS for local Vite dev
			origins := []string{"http://localhost:5173", "http://localhost:4173", "http://localhost:3000", "http://127.0.0.1:3000"}
			if cfg.PublicHost != "" {
				origins = append(origins, "https://"+cfg.PublicHost)
			}
			r.Use(cors.New(cors.Config{
				AllowOrigins:     origins,
				AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
				AllowHeaders:     []string{"X-Request-ID", "Content-Type", "X-CSRF-Token"},
				ExposeHeaders:    []string{"X-Request-ID", "X-Total-Count", "Content-Disposition", "X-Document-Language", "Location"},
				AllowCredentials: true,
				MaxAge:           12 * time.Hour,
			}))
		} else { // behind a TLS reverse proxy
			proxies := []string{"127.0.0.1"}
			if cfg.PublicHost != "" {
				proxies = append(proxies, cfg.PublicHost)
			}
			r.SetTrustedProxies(proxies)
			r.Use(secure.New(secure.Config{
				SSLProxyHeaders: map[string]string{
					"X-Forwarded-Proto": "https",
				},
				FrameDeny:          true,
				ContentTypeNosniff: true,
			}))
		}

		r.Use(wssvc.Middleware())
		r.Use(mw.AccessLog(log.Named("http")))

		r.Use(func(c *gin.Context) {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, jsonx.MaxBodyBytes)
			c.Next()
		})
	}

	{
		r.GET("/api/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })

		rndrhndlr := handler.NewRenderHandler(configsvc)
		r.GET("/api/config/defaults", rndrhndlr.Defaults)
		r.POST("/api/render", rndrhndlr.RenderAll) // stateless
		r.POST("/api/render/:doc", rndrhndlr.RenderOne)
		r.POST("/api/check", rndrhndlr.Check)

		sesshndlr := handler.NewSessionHandler(wssvc)
		r.GET("/api/csrf", sesshndlr.IssueSessionCSRF)

		// --- Workspace endpoints (session bound) ---
		ws := r.Group("", mw.Workspace(wssvc), mw.ValidateSessionCSRF)
		{
			ws.GET("/api/workspace", sesshndlr.Workspace)
			ws.POST("/api/workspace/reset", sesshndlr.Reset)

			cfghndlr := handler.NewConfigHandler(configsvc)
			ws.GET("/api/config", cfghndlr.GetConfig)
			ws.PUT("/api/config", cfghndlr.PutConfig)
			ws.GET("/api/settings", cfghndlr.GetSettings)
			ws.PUT("/api/settings", cfghndlr.PutSettings)
			ws.GET("/api/render/:doc", rndrhndlr.RenderSaved)

			chathndlr := handler.NewChatHandler(chatsvc)
			ws.GET("/api/chat/welcome", chathndlr.Welcome)
			ws.POST("/api/chat", mw.LimitConcurrentRequests(cfg.Chat.MaxConcurrent), chathndlr.Send)

			ws.POST("/api/bots/generate", handler.NewBotsHandler(configsvc).Generate)

			prjhndlr := handler.NewProjectsHandler(projectsvc)
			requireValidID := mw.RequireValidProjectID()
			ws.GET("/api/projects", prjhndlr.GetList)
			ws.POST("/api/projects", prjhndlr.Create)
			ws.GET("/api/projects/:id", requireValidID, prjhndlr.GetOne)
			ws.DELETE("/api/projects/:id", requireValidID, prjhndlr.Delete)
		}
	}

	httpsrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Chat.Timeout + 15*time.Second, // chat replies take seconds
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	log.Info("running HTTP server", zap.String("addr", httpsrv.Addr), zap.Bool("dev", cfg.IsDev))
	if err := httpsrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server failed", zap.Error(err))
	}
	log.Info("server closed")
}

// buildGateway picks Gemini when a key is configured, the offline answers
// otherwise.
func buildGateway(log *zap.Logger, c config.Chat) chat.Gateway {
	if c.Offline || c.APIKey == "" {
		log.Warn("chat running offline; set GEMINI_API_KEY to enable Gemini")
		return chat.OfflineGateway{Delay: 500 * time.Millisecond}
	}
	gw, err := chat.NewGeminiGateway(context.Background(), log, chat.GeminiConfig{
		APIKey:            c.APIKey,
		Model:             c.Model,
		SystemInstruction: c.SystemInstruction,
	})
	if err != nil {
		log.Fatal("gemini gateway creation failed", zap.Error(err))
	}
	return gw
}

func buildLogger() *zap.Logger {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.TimeKey = ""
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.DisableStacktrace = true
	logConfig.DisableCaller = true
	logConfig.Level.SetLevel(zap.DebugLevel)
	return zap.Must(logConfig.Build())
}
