package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"

	config "github.com/mentetech/blog-api/configs"
	"github.com/mentetech/blog-api/internal/api/handlers"
	"github.com/mentetech/blog-api/internal/api/middleware"
	"github.com/mentetech/blog-api/internal/content"
	job "github.com/mentetech/blog-api/internal/jobs"
	"github.com/mentetech/blog-api/internal/queue"
	"github.com/mentetech/blog-api/internal/repository"
	"github.com/mentetech/blog-api/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    20 * 1024 * 1024, // 20 MB, covers cover image uploads
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	newsletterRepo := repository.NewNewsletterRepository(db)
	contactRepo := repository.NewContactRepository(db)

	renderer := content.NewRenderer(cfg.Sanitizer)

	authService := service.NewAuthService(*cfg, userRepo)
	postService := service.NewPostService(postRepo, categoryRepo, renderer)
	categoryService := service.NewCategoryService(categoryRepo)
	publisher := service.NewPublisher(postRepo)
	newsletterService := service.NewNewsletterService(newsletterRepo)
	contactService := service.NewContactService(*cfg, contactRepo, newsletterService)
	mediaService := service.NewMediaService(*cfg)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Get("/login", auth.Login)
	app.Get("/login/callback", auth.LoginCallbackHandler)

	// public surface
	public := handlers.NewPublicHandler(postService, categoryService)
	app.Get("/health", public.Health)
	app.Get("/posts", public.ListPosts)
	app.Get("/posts/:slug", public.GetPostBySlug)
	app.Get("/categorias", public.ListCategories)

	newsletter := handlers.NewNewsletterHandler(newsletterService, authService)
	app.Post("/newsletter/subscribe", newsletter.Subscribe)

	contact := handlers.NewContactHandler(contactService, authService)
	app.Post("/contact", contact.Submit)

	// admin surface
	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	post := handlers.NewPostHandler(postService, authService, client)
	api.Post("/posts", post.CreatePost)
	api.Get("/posts", post.ListPosts)
	api.Get("/posts/:id", post.GetPost)
	api.Put("/posts/:id", post.UpdatePost)
	api.Delete("/posts/:id", post.RemovePost)
	api.Post("/posts/preview", post.PreviewPost)

	category := handlers.NewCategoryHandler(categoryService, authService)
	api.Get("/categorias", category.ListCategories)
	api.Post("/categorias", category.CreateCategory)
	api.Put("/categorias/:id", category.UpdateCategory)
	api.Delete("/categorias/:id", category.RemoveCategory)

	api.Get("/newsletter/subscribers", newsletter.ListSubscribers)
	api.Get("/contact/messages", contact.ListMessages)
	api.Put("/contact/messages/:id/status", contact.UpdateStatus)

	media := handlers.NewMediaHandler(mediaService)
	api.Post("/media/upload", media.UploadImage)

	publish := handlers.NewPublishHandler(publisher, authService)
	api.Post("/publish/run", publish.RunAutoPublish)

	// cron jobs
	autoPublishJob := job.NewAutoPublishJob(publisher)

	//queue
	queueW := queue.NewQueue(publisher)

	c := cron.New()
	c.AddFunc("@every 00h01m00s", autoPublishJob.Run)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishPost, queueW.HandlePublishPostTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
