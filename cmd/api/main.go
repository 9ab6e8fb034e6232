package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/stafftrack/timeclock-backend-go/internal/config"
	appHTTP "github.com/stafftrack/timeclock-backend-go/internal/handler/http"
	"github.com/stafftrack/timeclock-backend-go/internal/pkg/audit"
	"github.com/stafftrack/timeclock-backend-go/internal/pkg/cron"
	"github.com/stafftrack/timeclock-backend-go/internal/pkg/database"
	"github.com/stafftrack/timeclock-backend-go/internal/pkg/jwt"
	"github.com/stafftrack/timeclock-backend-go/internal/pkg/ldap"
	"github.com/stafftrack/timeclock-backend-go/internal/repository/postgresql"
	authService "github.com/stafftrack/timeclock-backend-go/internal/service/auth"
	clockService "github.com/stafftrack/timeclock-backend-go/internal/service/clock"
	"github.com/stafftrack/timeclock-backend-go/internal/service/directory"
	reportService "github.com/stafftrack/timeclock-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	teamRepo := postgresql.NewTeamRepository(db)
	clockRepo := postgresql.NewClockRecordRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var directorySvc *directory.Service
	if cfg.LDAP.URL != "" {
		ldapClient := ldap.NewClient(ldap.Config{
			URL:          cfg.LDAP.URL,
			StartTLS:     cfg.LDAP.StartTLS,
			BindDN:       cfg.LDAP.BindDN,
			BindPassword: cfg.LDAP.BindPassword,
			BaseDN:       cfg.LDAP.BaseDN,
			UserFilter:   cfg.LDAP.UserFilter,
			UsernameAttr: cfg.LDAP.UsernameAttr,
			NameAttr:     cfg.LDAP.NameAttr,
			MailAttr:     cfg.LDAP.MailAttr,
		})
		directorySvc = directory.NewService(ldapClient, userRepo)
	}

	auditLog := audit.NewSlogLogger(slog.Default())
	clockSvc := clockService.NewClockService(clockRepo, userRepo, auditLog, cfg.Clock.ExemptUserID)
	reportSvc := reportService.NewReportService(userRepo, teamRepo, clockRepo, clockSvc)

	var directoryAuth authService.DirectoryAuthenticator
	if directorySvc != nil {
		directoryAuth = directorySvc
	}
	authSvc := authService.NewAuthService(userRepo, directoryAuth, jwtService, authService.BootstrapAdmin{
		Username:     cfg.App.BootstrapAdminUser,
		PasswordHash: cfg.App.BootstrapAdminPasswordHash,
	})
	if err := authSvc.EnsureBootstrapAdmin(context.Background()); err != nil {
		log.Fatal("Failed to ensure bootstrap admin: ", err)
	}

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtService)
	clockHandler := appHTTP.NewClockHandler(clockSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	userHandler := appHTTP.NewUserHandler(userRepo)
	teamHandler := appHTTP.NewTeamHandler(teamRepo)
	syncHandler := appHTTP.NewSyncHandler(directorySvc)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		clockHandler,
		reportHandler,
		userHandler,
		teamHandler,
		syncHandler,
		cfg.App.FrontendURL,
		cfg.App.Env,
	)

	scheduler := cron.NewScheduler()
	cron.NewClockJobs(clockSvc, userRepo, directorySvc, cfg.Sync.Interval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
