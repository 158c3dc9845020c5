package main

import (
	"elearn/config"
	courseControllers "elearn/controllers/course"
	paymentControllers "elearn/controllers/payment"
	"elearn/database"
	"elearn/logger"
	"elearn/models"
	"elearn/routers"
	"elearn/services/notify"
	"elearn/services/payment"
	"elearn/services/scheduler"
	"elearn/utils"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	if err := logger.Init(cfg.LogMode); err != nil {
		panic(err)
	}
	log := logger.Log
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", "error", err)
	}

	if err := database.ConnectDb(); err != nil {
		log.Fatal("database connection failed", "driver", cfg.DBDriver, "error", err)
	}
	db := database.Database.Db

	paymentControllers.Reconciler = &payment.Reconciler{
		DB:          db,
		Gateway:     utils.NewPaystackClient(cfg.PaystackBaseURL, cfg.PaystackSecretKey),
		Currency:    cfg.PaymentCurrency,
		CallbackURL: cfg.PaystackCallbackURL,
	}

	cache, err := utils.NewCourseCache(cfg.RedisAddr, cfg.RedisPassword, cfg.CourseCacheTTL)
	if err != nil {
		log.Warn("course cache disabled", "error", err)
	}
	courseControllers.Cache = cache
	defer cache.Close()

	var jobs *scheduler.Scheduler
	if cfg.SchedulerEnabled {
		jobs = scheduler.New(db, cfg.PendingOrderTTL, func(cert models.Certificate) {
			notify.CertificateIssued(db, cert)
		})
		if err := jobs.Start(); err != nil {
			log.Fatal("scheduler start failed", "error", err)
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      "elearn",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization,X-Admin-Token",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(fiberLogger.New(fiberLogger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	routers.SetupRoutes(app)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if jobs != nil {
			jobs.Stop()
		}
		_ = app.Shutdown()
	}()

	log.Info("server is running", "port", cfg.Port, "env", cfg.AppEnv)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Something went wrong!"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	} else {
		logger.Log.Error("unhandled request error", "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(fiber.Map{"status": false, "message": message, "data": nil})
}
