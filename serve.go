package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pagecraft/auth"
	"pagecraft/config"
	"pagecraft/editor"
	"pagecraft/handlers/api"
	"pagecraft/handlers/web"
	"pagecraft/middleware"
	"pagecraft/site"
	"pagecraft/storage"
	"pagecraft/utils"
	assets "pagecraft/web"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the public site, the admin editor and the Site API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		app, closeFn, err := newServer(cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		utils.Log.Info("Starting server on port %d...", cfg.Server.Port)
		utils.Log.Info("Public site:  http://localhost:%d/", cfg.Server.Port)
		utils.Log.Info("Admin panel:  http://localhost:%d/admin", cfg.Server.Port)
		return app.Listen(fmt.Sprintf(":%d", cfg.Server.Port))
	},
}

// newServer wires storage, services and routes. The returned func stops the
// background workers and closes the site repository.
func newServer(cfg *config.Config) (*fiber.App, func() error, error) {
	if err := utils.InitI18n(assets.ContentFS, cfg.Locale.Default); err != nil {
		utils.Log.Error("Failed to initialize i18n: %v", err)
	}

	users := storage.NewUserStore(cfg.UsersFile())
	if err := users.Init(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize user store: %w", err)
	}

	repo, err := storage.OpenSite(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open site store: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	closeFn := func() error {
		cancel()
		return repo.Close()
	}

	tokens := auth.NewTokens(cfg)
	notifications := api.NewNotificationHandler()
	siteService := site.NewService(repo, auth.NewService(users, tokens), notifications)

	siteHandler := api.NewSiteHandler(siteService)
	editorHandler := api.NewEditorHandler(
		editor.NewStore(cfg.Editor.MaxSessions),
		site.Local{Service: siteService},
		cfg.Editor.StatusClearDelay,
	)
	i18nHandler := &api.I18nHandler{}
	publicHandler := web.NewPublicHandler(siteService)
	adminHandler := web.NewAdminHandler(cfg)

	app := fiber.New(fiber.Config{
		Views:                 assets.NewEngine(),
		ViewsLayout:           "layouts/main",
		ErrorHandler:          middleware.ErrorHandler,
		DisableStartupMessage: true,
	})

	// Add global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New(compress.Config{
		// streamed responses must not be buffered
		Next: func(c *fiber.Ctx) bool { return c.Path() == "/api/site/events" },
	}))
	app.Use(helmet.New(helmet.Config{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "SAMEORIGIN",
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline';",
	}))
	if cfg.Server.CORS {
		app.Use(cors.New(cors.Config{
			AllowHeaders: "Origin, Content-Type, Accept, " + cfg.Auth.Header,
		}))
	}
	app.Use(middleware.LocaleMiddleware(cfg.Locale.Default))

	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   http.FS(assets.Sub("static")),
		MaxAge: int((24 * time.Hour).Seconds()),
	}))

	requireToken := middleware.RequireAdminToken(cfg.Auth.Header, tokens)

	// Pages
	app.Get("/", publicHandler.ShowSite)
	app.Get("/admin", adminHandler.ShowEditor)
	app.Get("/admin.html", adminHandler.ShowEditor)

	// Site API
	apiRoutes := app.Group("/api")
	{
		apiRoutes.Post("/login", middleware.RateLimiter(ctx, cfg.RateLimit.LoginRequests, cfg.RateLimit.LoginWindow), siteHandler.Login)
		apiRoutes.Get("/site", siteHandler.GetSite)
		apiRoutes.Post("/site", requireToken, siteHandler.SaveSite)
		apiRoutes.Get("/site/events", notifications.HandleSSE)
		apiRoutes.Get("/i18n/:lang", i18nHandler.GetTranslations)
	}

	// Editor sessions
	editorRoutes := apiRoutes.Group("/editor", requireToken)
	{
		editorRoutes.Post("/sessions", editorHandler.CreateSession)
		editorRoutes.Get("/sessions/:id", editorHandler.GetSession)
		editorRoutes.Delete("/sessions/:id", editorHandler.CloseSession)
		editorRoutes.Post("/sessions/:id/select", editorHandler.Select)
		editorRoutes.Post("/sessions/:id/canvas", editorHandler.ClickCanvas)
		editorRoutes.Post("/sessions/:id/drag", editorHandler.BeginDrag)
		editorRoutes.Patch("/sessions/:id/drag", editorHandler.MoveDrag)
		editorRoutes.Delete("/sessions/:id/drag", editorHandler.EndDrag)
		editorRoutes.Patch("/sessions/:id/element", editorHandler.SetProperty)
		editorRoutes.Patch("/sessions/:id/settings", editorHandler.SetSetting)
		editorRoutes.Post("/sessions/:id/elements", editorHandler.AddElement)
		editorRoutes.Delete("/sessions/:id/elements/selected", editorHandler.DeleteSelected)
		editorRoutes.Post("/sessions/:id/save", editorHandler.Save)
	}

	// Live updates
	app.Use("/ws", api.UpgradeWebSocket)
	app.Get("/ws/site", websocket.New(notifications.HandleWebSocket))

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// 404 Handler for undefined routes
	app.Use(func(c *fiber.Ctx) error {
		localizer, _ := c.Locals("localizer").(*i18n.Localizer)
		return utils.NotFoundError(utils.T(localizer, "error_404"), nil)
	})

	return app, closeFn, nil
}
