package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/config"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/notification"
	appHTTP "github.com/cmlabs-hris/geoshift-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/geoshift-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/geoshift-backend-go/internal/service/auth"
	serviceCompany "github.com/cmlabs-hris/geoshift-backend-go/internal/service/company"
	leaveService "github.com/cmlabs-hris/geoshift-backend-go/internal/service/leave"
	notificationService "github.com/cmlabs-hris/geoshift-backend-go/internal/service/notification"
	planService "github.com/cmlabs-hris/geoshift-backend-go/internal/service/plan"
	reportService "github.com/cmlabs-hris/geoshift-backend-go/internal/service/report"
	userService "github.com/cmlabs-hris/geoshift-backend-go/internal/service/user"
	"github.com/cmlabs-hris/geoshift-backend-go/migrations"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dsn := cfg.DatabaseURL()
	if cfg.Database.MigrationsAuto {
		if err := database.Migrate(dsn, migrations.FS); err != nil {
			return err
		}
		slog.Info("Database migrations applied")
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	var locker lock.Locker = lock.NewKeyedMutex()
	if addr := cfg.RedisAddr(); addr != "" {
		client, err := lock.NewRedisClient(ctx, addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer client.Close()
		locker = lock.NewRedisLocker(client, "geoshift:clock:", cfg.Attendance.LockTTL)
		slog.Info("Using Redis for clock event locks", "addr", addr)
	}

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	planRepo := postgresql.NewPlanRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db, cfg.App.Timezone)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub[notification.SSEEvent](10)
	notifService := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{})

	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	companyService := serviceCompany.NewCompanyService(companyRepo, cfg.Attendance.DefaultRadiusMeters)
	userSvc := userService.NewUserService(userRepo, companyRepo, planRepo, cfg.Location())
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		userRepo,
		companyRepo,
		locker,
		cfg.Attendance,
		cfg.Location(),
	)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, userRepo, companyRepo, notifService)
	planSvc := planService.NewPlanService(planRepo)
	reportSvc := reportService.NewReportService(reportRepo, companyRepo, cfg.Location())

	scheduler := cron.NewScheduler()
	cron.NewReminderJobs(userRepo, notifService, cfg.Location()).RegisterJobs(scheduler)
	scheduler.Start()

	router := appHTTP.NewRouter(cfg, JWTService, userRepo, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(JWTService, authService),
		Company:      appHTTP.NewCompanyHandler(companyService),
		User:         appHTTP.NewUserHandler(userSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Plan:         appHTTP.NewPlanHandler(planSvc),
		Report:       appHTTP.NewReportHandler(reportSvc),
		Notification: appHTTP.NewNotificationHandler(notifService, JWTService),
	})

	// Request contexts derive from baseCtx so open event streams end on shutdown.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	server.RegisterOnShutdown(cancelBase)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			scheduler.Stop()
			notifService.Stop()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Warn("Graceful shutdown incomplete", "error", err)
	}
	scheduler.Stop()
	notifService.Stop()

	slog.Info("Server stopped")
	return nil
}
