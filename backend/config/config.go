package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host string
	Port int
}

type DB struct {
	Driver  string
	Path    string
	Host    string
	Port    int
	User    string
	Pass    string
	Name    string
	SSLMode string
}

type Session struct {
	Store  string
	Cookie string
	TTL    time.Duration
	Secure bool
}

type Redis struct {
	Addr   string
	Pass   string
	DB     int
	Prefix string
}

type View struct {
	Dir    string
	Reload bool
}

type Config struct {
	HTTP    HTTP
	DB      DB
	Session Session
	Redis   Redis
	JWT     struct {
		Secret string
		Issuer string
		ExpMin int

		// Generated is set when no secret was configured and a random one
		// was made for this process; tokens do not survive a restart.
		Generated bool
	}
	View     View
	LogLevel string
}

// Load reads the YAML file at path (skipped when path is empty) on top of the
// defaults below. Every key can be overridden by RISEABOVE_<KEY> env vars,
// e.g. RISEABOVE_BACKEND_HTTP_PORT.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("riseabove")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("backend.http.host", "127.0.0.1")
	v.SetDefault("backend.http.port", 5000)
	v.SetDefault("backend.db.driver", "sqlite")
	v.SetDefault("backend.db.path", "riseabove.db")
	v.SetDefault("backend.db.host", "127.0.0.1")
	v.SetDefault("backend.db.port", 0)
	v.SetDefault("backend.db.user", "")
	v.SetDefault("backend.db.pass", "")
	v.SetDefault("backend.db.name", "riseabove")
	v.SetDefault("backend.db.sslmode", "disable")
	v.SetDefault("backend.session.store", "memory")
	v.SetDefault("backend.session.cookie", "session")
	v.SetDefault("backend.session.ttl_min", 1440)
	v.SetDefault("backend.session.secure", false)
	v.SetDefault("backend.redis.addr", "127.0.0.1:6379")
	v.SetDefault("backend.redis.pass", "")
	v.SetDefault("backend.redis.db", 0)
	v.SetDefault("backend.redis.prefix", "riseabove:session:")
	v.SetDefault("backend.jwt.secret", "")
	v.SetDefault("backend.jwt.issuer", "")
	v.SetDefault("backend.jwt.exp_min", 0)
	v.SetDefault("backend.view.dir", "")
	v.SetDefault("backend.view.reload", false)
	v.SetDefault("backend.log.level", "info")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		HTTP: HTTP{Host: v.GetString("backend.http.host"), Port: v.GetInt("backend.http.port")},
		DB: DB{
			Driver:  strings.ToLower(v.GetString("backend.db.driver")),
			Path:    v.GetString("backend.db.path"),
			Host:    v.GetString("backend.db.host"),
			Port:    v.GetInt("backend.db.port"),
			User:    v.GetString("backend.db.user"),
			Pass:    v.GetString("backend.db.pass"),
			Name:    v.GetString("backend.db.name"),
			SSLMode: v.GetString("backend.db.sslmode"),
		},
		Session: Session{
			Store:  strings.ToLower(v.GetString("backend.session.store")),
			Cookie: v.GetString("backend.session.cookie"),
			TTL:    time.Duration(v.GetInt("backend.session.ttl_min")) * time.Minute,
			Secure: v.GetBool("backend.session.secure"),
		},
		Redis: Redis{
			Addr:   v.GetString("backend.redis.addr"),
			Pass:   v.GetString("backend.redis.pass"),
			DB:     v.GetInt("backend.redis.db"),
			Prefix: v.GetString("backend.redis.prefix"),
		},
		View:     View{Dir: v.GetString("backend.view.dir"), Reload: v.GetBool("backend.view.reload")},
		LogLevel: v.GetString("backend.log.level"),
	}

	switch cfg.DB.Driver {
	case "sqlite", "mysql", "postgres":
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}
	if cfg.DB.Port == 0 {
		switch cfg.DB.Driver {
		case "mysql":
			cfg.DB.Port = 3306
		case "postgres":
			cfg.DB.Port = 5432
		}
	}

	switch cfg.Session.Store {
	case "memory", "redis":
	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.Session.Store)
	}
	if cfg.Session.Cookie == "" {
		cfg.Session.Cookie = "session"
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = 24 * time.Hour
	}

	cfg.JWT.Secret = v.GetString("backend.jwt.secret")
	if cfg.JWT.Secret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		cfg.JWT.Secret = secret
		cfg.JWT.Generated = true
	}
	cfg.JWT.Issuer = v.GetString("backend.jwt.issuer")
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "riseabove"
	}
	cfg.JWT.ExpMin = v.GetInt("backend.jwt.exp_min")
	if cfg.JWT.ExpMin <= 0 {
		cfg.JWT.ExpMin = 60
	}
	return cfg, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (h HTTP) Addr() string { return fmt.Sprintf("%s:%d", h.Host, h.Port) }
