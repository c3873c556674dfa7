package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"interviewiq-backend/internal/interviews"
	"interviewiq-backend/internal/llm"
	"interviewiq-backend/internal/llm/gemini"
	"interviewiq-backend/internal/llm/openai"
	"interviewiq-backend/internal/resumes"
	"interviewiq-backend/internal/shared/config"
	"interviewiq-backend/internal/shared/server"
	"interviewiq-backend/internal/shared/storage/db"
	"interviewiq-backend/internal/shared/storage/object"
	localstore "interviewiq-backend/internal/shared/storage/object/local"
	s3store "interviewiq-backend/internal/shared/storage/object/s3"
	"interviewiq-backend/internal/users"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	LLM    llm.Client

	UsersRepo      users.Repo
	ResumesRepo    resumes.ResumesRepo
	InterviewsRepo interviews.InterviewsRepo

	UsersService      *users.Service
	ResumesService    *resumes.Service
	InterviewsService *interviews.Service

	UsersHandler      *users.Handler
	ResumesHandler    *resumes.Handler
	InterviewsHandler *interviews.Handler
}

// Build prepares all dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		LLM:    llmClient,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		UsersHandler:      app.UsersHandler,
		ResumesHandler:    app.ResumesHandler,
		InterviewsHandler: app.InterviewsHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "gemini":
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: GEMINI_API_KEY empty; LLM calls will fail soft")
				return llm.PlaceholderClient{}, nil
			}
			return nil, fmt.Errorf("GEMINI_API_KEY is required")
		}
		return gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	case "openai":
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	default:
		return llm.PlaceholderClient{}, nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
		app.InterviewsRepo = &interviews.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.ResumesRepo = resumes.NewMemoryRepo()
		app.InterviewsRepo = interviews.NewMemoryRepo()
	}

	app.UsersService = users.NewService(app.UsersRepo)
	app.ResumesService = &resumes.Service{
		Store: app.Store,
		Repo:  app.ResumesRepo,
		Users: app.UsersRepo,
		LLM:   app.LLM,
	}
	app.InterviewsService = &interviews.Service{
		Repo:    app.InterviewsRepo,
		Resumes: app.ResumesRepo,
		Users:   app.UsersRepo,
		Eval:    &interviews.Evaluator{LLM: app.LLM},
		LLM:     app.LLM,
	}

	app.UsersHandler = users.NewHandler(app.UsersService)
	app.ResumesHandler = resumes.NewHandler(app.ResumesService)
	app.InterviewsHandler = interviews.NewHandler(app.InterviewsService)
}
