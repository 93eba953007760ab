package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"go-splendor/catalog"
	"go-splendor/config"
	"go-splendor/controller"
	"go-splendor/logger"
	"go-splendor/middleware"
	"go-splendor/repository"
	"go-splendor/router"
	"go-splendor/service"
	"go-splendor/utils"
	"go-splendor/ws"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("❌ 服务异常退出", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := repository.NewRedis(ctx, cfg.Redis, log)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, rdb.Close()) }()

	db, err := repository.OpenMySQL(ctx, cfg.MySQL.DSN)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, db.Close()) }()
	log.Info("✅ MySQL 连接成功")

	cat, err := catalog.New(cfg.Rules.CatalogSeed)
	if err != nil {
		return err
	}

	store := repository.NewRedisSessionStore(rdb)
	rooms := repository.NewRoomStore(db)
	game := service.NewGameService(store, cat, rooms, cfg.Rules, log.Named("game"))
	roomSvc := service.NewRoomService(rooms, store, log.Named("room"))
	signer := utils.NewTokenSigner(cfg.Auth.JWTSecret, 0)

	if !cfg.Log.Dev {
		gin.SetMode(gin.ReleaseMode)
	}
	r := router.NewEngine(
		// 设置 CORS 中间件，允许所有域名、所有方法、所有 header
		cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:   []string{"Content-Length", middleware.RequestIDHeader},
			MaxAge:          12 * time.Hour,
		}),
		middleware.AccessLog(log.Named("http")),
	)
	router.InitRouter(r, router.Handlers{
		Rooms: controller.NewRoomController(roomSvc),
		Games: controller.NewGameController(game),
		Hub:   ws.NewHub(game, roomSvc, log.Named("ws")),
		Auth:  middleware.AuthMiddleware(signer, cfg.Server.AuthDisabled),
	})

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: r}
	errCh := make(chan error, 1)
	go func() {
		log.Info("🚀 服务启动", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("收到退出信号，开始关闭")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return multierr.Append(srv.Shutdown(shutdownCtx), <-errCh)
}
