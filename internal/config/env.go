package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

type Env struct {
	App      AppConfig      `yaml:"app"`
	DB       DBConfig       `yaml:"db"`
	Auth     AuthConfig     `yaml:"auth"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`
	Telegram TelegramConfig `yaml:"telegram"`
	Admin    AdminConfig    `yaml:"admin"`
}

type AppConfig struct {
	Addr            string        `yaml:"addr"             env:"APP_ADDR"             env-default:":8080" validate:"required"`
	GinMode         string        `yaml:"gin_mode"         env:"GIN_MODE"             env-default:"debug" validate:"oneof=debug release test"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"APP_READ_TIMEOUT"     env-default:"20s"   validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"APP_WRITE_TIMEOUT"    env-default:"20s"   validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"APP_IDLE_TIMEOUT"     env-default:"60s"   validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"APP_SHUTDOWN_TIMEOUT" env-default:"10s"   validate:"gt=0"`
}

type DBConfig struct {
	Driver          string        `yaml:"driver"            env:"DB_DRIVER"            env-default:"mysql"        validate:"oneof=mysql postgres"`
	Host            string        `yaml:"host"              env:"DB_HOST"              env-default:"127.0.0.1"    validate:"required"`
	Port            int           `yaml:"port"              env:"DB_PORT"              env-default:"3306"         validate:"min=1,max=65535"`
	User            string        `yaml:"user"              env:"DB_USER"              env-default:"root"         validate:"required"`
	Password        string        `yaml:"password"          env:"DB_PASSWORD"          env-default:""`
	Name            string        `yaml:"name"              env:"DB_NAME"              env-default:"hotel_booking" validate:"required"`
	SSLMode         string        `yaml:"sslmode"           env:"DB_SSLMODE"           env-default:"disable"      validate:"oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int           `yaml:"max_open_conns"    env:"DB_MAX_OPEN_CONNS"    env-default:"25"           validate:"min=1"`
	MaxIdleConns    int           `yaml:"max_idle_conns"    env:"DB_MAX_IDLE_CONNS"    env-default:"25"           validate:"min=1"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"10m"          validate:"gt=0"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle"     env:"DB_CONN_MAX_IDLE"     env-default:"5m"           validate:"gt=0"`
	Migrate         bool          `yaml:"migrate"           env:"DB_MIGRATE"           env-default:"true"`
}

type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"      env:"JWT_SECRET"           validate:"required,min=16"`
	TokenTTL      time.Duration `yaml:"token_ttl"       env:"JWT_TTL"              env-default:"24h"         validate:"gt=0"`
	Issuer        string        `yaml:"issuer"          env:"JWT_ISSUER"           env-default:"hotelbooking"`
	LiveRoleCheck bool          `yaml:"live_role_check" env:"AUTH_LIVE_ROLE_CHECK" env-default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text" validate:"oneof=text json"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN"`
	ChatID   int64  `yaml:"chat_id"   env:"TELEGRAM_CHAT_ID"`
}

// AdminConfig seeds one admin account at startup when Email is set.
type AdminConfig struct {
	Email    string `yaml:"email"    env:"ADMIN_EMAIL"    validate:"omitempty,email"`
	Password string `yaml:"password" env:"ADMIN_PASSWORD" validate:"required_with=Email"`
	Name     string `yaml:"name"     env:"ADMIN_NAME"     env-default:"Administrator"`
}

// LoadEnv reads CONFIG_PATH (yaml) when set, otherwise the environment only,
// and validates the result.
func LoadEnv() (Env, error) {
	var env Env
	var err error
	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		err = cleanenv.ReadConfig(path, &env)
	} else {
		err = cleanenv.ReadEnv(&env)
	}
	if err != nil {
		return Env{}, fmt.Errorf("read config: %w", err)
	}
	if err := validator.New().Struct(env); err != nil {
		return Env{}, fmt.Errorf("validate config: %w", err)
	}
	return env, nil
}

// MustLoadEnv is LoadEnv for main.
func MustLoadEnv() Env {
	env, err := LoadEnv()
	if err != nil {
		panic(err)
	}
	return env
}
