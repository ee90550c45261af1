package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"soccer-league-app/internal/auth"
	"soccer-league-app/internal/store"
	"soccer-league-app/internal/web"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") == "" {
		_ = godotenv.Load(".env", ".env.local")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	var appStore store.Store
	if dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN")); dsn != "" {
		pgStore, err := store.NewPostgresStore(dsn, store.PostgresOptions{
			MigrationsDir: os.Getenv("POSTGRES_MIGRATIONS_DIR"),
		})
		if err != nil {
			logger.Fatal("postgres store", zap.Error(err))
		}
		appStore = pgStore
	} else if dbPath := strings.TrimSpace(os.Getenv("DB_PATH")); dbPath != "" {
		sqliteStore, err := store.NewSQLiteStore(dbPath, store.SQLiteOptions{
			MigrationsDir: os.Getenv("DB_MIGRATIONS_DIR"),
		})
		if err != nil {
			logger.Fatal("sqlite store", zap.Error(err))
		}
		appStore = sqliteStore
	} else {
		appStore = store.NewMemoryStore()
	}
	defer appStore.Close()

	authSvc := auth.NewService(appStore)
	bootstrapAdmin(appStore, authSvc)

	server := web.NewServer(appStore, authSvc)

	r := chi.NewRouter()
	r.Mount("/", server.Routes())

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		logger.Info("starting in lambda mode")
		adapter := httpadapter.New(r)
		lambda.Start(adapter.ProxyWithContext)
	} else {
		addr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
		if addr == "" {
			addr = ":8080"
		}
		logger.Info("listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, r); err != nil {
			logger.Fatal("serve", zap.Error(err))
		}
	}
}

// bootstrapAdmin seeds the first Admin account from the environment. Signup
// only ever creates Viewers, so a fresh database needs one admin to exist
// before anyone can manage the league.
func bootstrapAdmin(st store.Store, authSvc *auth.Service) {
	username := strings.TrimSpace(os.Getenv("ADMIN_USERNAME"))
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return
	}
	if st.CountAccounts() > 0 {
		return
	}
	if !authSvc.CreateAdmin(username, password, os.Getenv("ADMIN_EMAIL")) {
		zap.L().Warn("could not seed admin account", zap.String("username", username))
	}
}
