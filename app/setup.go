package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/biosecret/go-todos/auth"
	"github.com/biosecret/go-todos/config"
	"github.com/biosecret/go-todos/database"
	"github.com/biosecret/go-todos/events"
	"github.com/biosecret/go-todos/handlers"
	"github.com/biosecret/go-todos/router"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

const shutdownTimeout = 10 * time.Second

// Store là phần lưu trữ mà ứng dụng cần: Repository cộng health check
type Store interface {
	database.Repository
	handlers.Pinger
}

// Deps là các thành phần đã khởi tạo sẵn để dựng ứng dụng
type Deps struct {
	Store     Store
	Passwords *auth.Passwords
	Tokens    *auth.Tokens
	Broker    *events.Broker
	// Publisher nhận mọi sự kiện thay đổi; nil thì dùng Broker (nếu có)
	Publisher events.Publisher
}

// New dựng ứng dụng Fiber với middleware và route, chưa lắng nghe
func New(cfg *config.Config, deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "todos-api",
		UnescapePath: true,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
	}))

	// Đính kèm middleware để xử lý lỗi và ghi log
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path} ${latency} ${locals:requestid}\n",
	}))

	publisher := deps.Publisher
	if publisher == nil && deps.Broker != nil {
		publisher = deps.Broker
	}

	h := handlers.New(deps.Store, deps.Passwords, deps.Tokens, publisher)

	// Swagger phải đăng ký trước "/:id"
	config.AddSwaggerRoutes(app)

	router.SetupRoutes(app, h, router.Options{
		Health:       deps.Store,
		Broker:       deps.Broker,
		AuthRequired: cfg.AuthRequired,
		Tokens:       deps.Tokens,
	})

	return app
}

// SetupAndRunApp khởi động ứng dụng Fiber
func SetupAndRunApp() error {
	// Load biến môi trường từ file .env
	if err := config.LoadENV(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := database.Open(ctx, cfg)
	cancel()
	if err != nil {
		return err
	}

	// Đảm bảo kết nối với cơ sở dữ liệu được đóng sau khi ứng dụng kết thúc
	defer store.Close()

	passwords, err := auth.NewPasswords(cfg.BcryptCost)
	if err != nil {
		return err
	}
	tokens, err := auth.NewTokens(cfg.JWTSecret)
	if err != nil {
		return err
	}

	broker := events.NewBroker()
	publishers := events.Multi{broker}

	if cfg.MQTTURL != "" {
		mqttPublisher, err := events.ConnectMQTT(cfg.MQTTClientID, cfg.MQTTURL)
		if err != nil {
			// MQTT là tuỳ chọn, API vẫn chạy khi broker không kết nối được
			log.Warnf("MQTT disabled: %v", err)
		} else {
			defer mqttPublisher.Close()
			publishers = append(publishers, mqttPublisher)
		}
	}

	app := New(cfg, Deps{
		Store:     store,
		Passwords: passwords,
		Tokens:    tokens,
		Broker:    broker,
		Publisher: publishers,
	})

	if !cfg.AuthRequired {
		log.Warn("AUTH_REQUIRED is off: todo routes accept requests without a token")
	}

	errCh := make(chan error, 1)
	go func() {
		// Lắng nghe trên cổng chỉ định
		errCh <- app.Listen(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Infof("received %s, shutting down", sig)
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
