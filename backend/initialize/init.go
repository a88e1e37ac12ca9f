package initialize

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"riseabove/backend/app/controllers"
	"riseabove/backend/app/db"
	jwtutil "riseabove/backend/app/jwt"
	"riseabove/backend/app/middleware"
	"riseabove/backend/app/repo"
	"riseabove/backend/app/services"
	"riseabove/backend/app/session"
	"riseabove/backend/app/view"
	"riseabove/backend/config"
	"riseabove/backend/global"
	"riseabove/backend/router"
)

const sweepInterval = 10 * time.Minute

type App struct {
	Cfg      *config.Config
	DB       *gorm.DB
	Router   http.Handler
	View     *view.Renderer
	Sessions session.Store
	Redis    *redis.Client
}

// Deps are the already constructed backends the handler chain runs on.
type Deps struct {
	DB       *gorm.DB
	Sessions session.Store
	Session  session.Options
	Signer   *jwtutil.Signer
	View     *view.Renderer
	// BcryptCost of 0 keeps the bcrypt default.
	BcryptCost int
}

// NewHandler wires repositories, services and controllers into the full
// middleware chain.
func NewHandler(d Deps) http.Handler {
	users := services.NewUserService(repo.NewUserRepository(d.DB))
	if d.BcryptCost > 0 {
		users.WithCost(d.BcryptCost)
	}
	skills := services.NewSkillService(repo.NewSkillRepository(d.DB))

	h := router.NewRouter(router.Controllers{
		HTTP:   controllers.NewHTTPController(),
		Auth:   controllers.NewAuthController(users, d.Signer, d.View),
		Pages:  controllers.NewPageController(skills, d.View),
		Skills: controllers.NewSkillController(skills),
	}, &middleware.Auth{Signer: d.Signer})

	sessions := session.NewManager(d.Sessions, d.Session)
	return middleware.Logging(middleware.Recover(sessions.Middleware(h)))
}

// OpenDB connects to the configured database without migrating it.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	gdb, err := db.Connect(db.Config{
		Driver:   cfg.DB.Driver,
		Path:     cfg.DB.Path,
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Pass,
		DBName:   cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	return gdb, nil
}

func Build(configPath string) (*App, error) {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	SetLogLevel(cfg.LogLevel)
	if cfg.JWT.Generated {
		global.Logger.Warn().Msg("backend.jwt.secret is not set; using a random secret, issued tokens end with this process")
	}

	// Connect DB
	gdb, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(gdb); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	app := &App{Cfg: cfg, DB: gdb}

	// Sessions
	switch cfg.Session.Store {
	case "redis":
		app.Redis = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Pass, DB: cfg.Redis.DB})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := app.Redis.Ping(ctx).Err()
		cancel()
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}
		app.Sessions = session.NewRedisStore(app.Redis, cfg.Redis.Prefix)
	default:
		app.Sessions = session.NewMemoryStore()
	}

	// Templates
	app.View, err = view.New(cfg.View.Dir)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("load templates: %w", err)
	}

	app.Router = NewHandler(Deps{
		DB:       gdb,
		Sessions: app.Sessions,
		Session:  session.Options{CookieName: cfg.Session.Cookie, TTL: cfg.Session.TTL, Secure: cfg.Session.Secure},
		Signer:   &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpMin: cfg.JWT.ExpMin},
		View:     app.View,
	})
	global.Logger.Info().
		Str("db", cfg.DB.Driver).
		Str("sessions", cfg.Session.Store).
		Msg("app initialized")
	return app, nil
}

// RunBackground starts the template watcher and the memory session sweeper;
// both stop with ctx.
func (a *App) RunBackground(ctx context.Context) {
	if a.Cfg.View.Reload && a.Cfg.View.Dir != "" {
		go func() {
			if err := a.View.Watch(ctx); err != nil {
				global.Logger.Error().Err(err).Msg("template watcher stopped")
			}
		}()
	}
	if ms, ok := a.Sessions.(*session.MemoryStore); ok {
		go ms.RunSweeper(ctx, sweepInterval)
	}
}

func (a *App) Close() error {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB == nil {
		return nil
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
