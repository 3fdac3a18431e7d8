package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/jobfinder/jobfinder/internal/auth"
	"github.com/jobfinder/jobfinder/internal/board"
	"github.com/jobfinder/jobfinder/internal/config"
	"github.com/jobfinder/jobfinder/internal/gate"
	"github.com/jobfinder/jobfinder/internal/httpapi"
	"github.com/jobfinder/jobfinder/internal/notify"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	srv, dispatcher, err := buildServer(cfg, db)
	if err != nil {
		log.Fatalf("wiring: %v", err)
	}

	go func() {
		if err := srv.Listen(cfg.Server.Address); err != nil {
			log.Fatalf("server: %v", err)
		}
	}()

	log.Printf("listening on %s", cfg.Server.Address)

	waitExitSignal()

	if err := srv.Shutdown(); err != nil {
		log.Printf("shutdown: %v", err)
	}
	dispatcher.Flush()
}

func openDatabase(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if err := board.CreateSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func buildServer(cfg *config.Config, db *bun.DB) (*httpapi.Server, *notify.Dispatcher, error) {
	tokens := auth.NewTokenService(
		[]byte(cfg.Auth.GetSigningKey()),
		cfg.Auth.GetTokenExpiration(),
		cfg.Auth.GetIssuer(),
		cfg.Auth.GetAudience(),
		nil,
	)

	verifier, err := auth.NewVerifier(cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, tokens)
	if err != nil {
		return nil, nil, err
	}

	resolver := auth.NewResolver(tokens, cfg.Auth.GetCookieName())
	cookies := auth.NewCookieManager(
		cfg.Auth.GetCookieName(),
		time.Duration(cfg.Auth.GetTokenExpiration())*time.Hour,
		cfg.Auth.GetSecureCookies(),
	)

	repos := board.NewRepositoryManager(db)
	if err := repos.Validate(); err != nil {
		return nil, nil, err
	}

	jobs := repos.Jobs()
	applications := repos.Applications()
	subscribers := repos.Subscribers()

	var sender notify.PushSender
	if cfg.Notify.Enabled {
		sender = logSender{}
	}
	dispatcher := notify.NewDispatcher(sender,
		notify.WithDispatchTimeout(cfg.Notify.DispatchTimeout.Std()))

	jobStore, _ := jobs.(board.JobStatusStore)
	appStore, _ := applications.(board.ApplicationStatusStore)

	srv := httpapi.New(httpapi.Deps{
		Verifier:     verifier,
		Resolver:     resolver,
		Cookies:      cookies,
		Gate:         gate.New(),
		Jobs:         jobs,
		Applications: applications,
		Subscribers:  subscribers,
		JobSM:        board.NewJobStateMachine(jobStore),
		AppSM:        board.NewApplicationStateMachine(appStore),
		Dispatcher:   dispatcher,
	})

	return srv, dispatcher, nil
}

// logSender stands in for a real push gateway: deliveries are logged,
// not sent. Swap in a concrete PushSender to go live.
type logSender struct{}

func (logSender) SendPushNotifications(_ context.Context, title, body string, data map[string]string) (notify.PushResult, error) {
	log.Printf("push: %s / %s %v", title, body, data)
	return notify.PushResult{Success: true, Sent: 0}, nil
}

func waitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
