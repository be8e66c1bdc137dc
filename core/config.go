package core

import (
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env      string
		Debug    bool
		TestMode bool
		AppName  string
		Build    string

		SecretKey                 []byte
		DefaultFromEmail          mail.Address
		SendgridApiKey            string
		RollbarToken              string
		PasswordResetTimeoutDelta time.Duration

		// SessionKey is the fixed key the authenticated user record is
		// persisted under in the key-value store.
		SessionKey         string
		SessionReadTimeout time.Duration

		Server ServerConfig
		Redis  RedisConfig
	}

	ServerConfig struct {
		Host               string
		Address            string
		DebugHost          string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
	}

	RedisConfig struct {
		Addr     string
		Password string
		DB       int
	}
)

// NewConfig loads the app configuration from defaults, an optional
// config/.env.<env> file and environment variables (prefixed with ENV).
func NewConfig(build string) (*Config, error) {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Taskistry")
	conf.SetDefault("secretKey", "w#2+v)5m&0f^taskistry(dev-only!-4%x8@qz$e7y1u*b=rc")
	conf.SetDefault("defaultFromEmail", "noreply@esmt.sn")
	conf.SetDefault("sendgridApiKey", "")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("passwordResetTimeoutDelta", 3*24*time.Hour)
	conf.SetDefault("sessionKey", "taskistry:session:user")
	conf.SetDefault("sessionReadTimeout", 5*time.Second)
	conf.SetDefault("serverHost", "localhost")
	conf.SetDefault("serverAddress", ":8080")
	conf.SetDefault("serverDebugHost", "localhost:6060")
	conf.SetDefault("serverShutdownTimeout", 5*time.Second)
	conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("redisAddr", "localhost:6379")
	conf.SetDefault("redisPassword", "")
	conf.SetDefault("redisDB", 0)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:                       env,
		Debug:                     conf.GetBool("debug"),
		TestMode:                  conf.GetBool("testMode"),
		AppName:                   conf.GetString("appName"),
		Build:                     build,
		SecretKey:                 []byte(conf.GetString("secretKey")),
		DefaultFromEmail:          mail.Address{Name: conf.GetString("appName"), Address: conf.GetString("defaultFromEmail")},
		SendgridApiKey:            conf.GetString("sendgridApiKey"),
		RollbarToken:              conf.GetString("rollbarToken"),
		PasswordResetTimeoutDelta: conf.GetDuration("passwordResetTimeoutDelta"),
		SessionKey:                conf.GetString("sessionKey"),
		SessionReadTimeout:        conf.GetDuration("sessionReadTimeout"),
		Server: ServerConfig{
			Host:               conf.GetString("serverHost"),
			Address:            conf.GetString("serverAddress"),
			DebugHost:          conf.GetString("serverDebugHost"),
			ShutdownTimeout:    conf.GetDuration("serverShutdownTimeout"),
			JWTExpirationDelta: conf.GetDuration("jwtExpirationDelta"),
		},
		Redis: RedisConfig{
			Addr:     conf.GetString("redisAddr"),
			Password: conf.GetString("redisPassword"),
			DB:       conf.GetInt("redisDB"),
		},
	}, nil
}
