package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Conf holds the app-wide configuration, loaded once at startup.
var Conf Config

type Config struct {
	Debug        bool
	TestMode     bool
	Env          string
	AppName      string
	SecretKey    string
	Build        string
	FrontendURL  string
	RollbarToken string

	DefaultFromEmail string
	SendgridAPIKey   string

	Server struct {
		Host                      string
		Addr                      string
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
		ShutdownTimeout           time.Duration
	}

	Database struct {
		URL string
	}

	Assistant struct {
		MaxQueryLen  int
		MinTypingLag time.Duration
		MaxTypingLag time.Duration
		PolicyRules  string // optional path to a YAML policy pattern override
	}
}

func init() {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Mtihani")
	v.SetDefault("secretKey", "x2dm-hjk)wnb$+31=qa&poxh9(v!z)#*g7(#tr5u^$oplw8qwy")
	v.SetDefault("frontendUrl", "http://localhost:3000")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)
	v.SetDefault("serverShutdownTimeout", 20*time.Second)
	v.SetDefault("databaseUrl", "postgres://postgres:@localhost:5432/mtihani?sslmode=disable")
	v.SetDefault("assistantMaxQueryLen", 500)
	v.SetDefault("assistantMinTypingLag", 400*time.Millisecond)
	v.SetDefault("assistantMaxTypingLag", 700*time.Millisecond)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	Conf = Config{
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		Env:              env,
		AppName:          v.GetString("appName"),
		SecretKey:        v.GetString("secretKey"),
		Build:            v.GetString("build"),
		FrontendURL:      v.GetString("frontendUrl"),
		RollbarToken:     v.GetString("rollbarToken"),
		DefaultFromEmail: v.GetString("defaultFromEmail"),
		SendgridAPIKey:   v.GetString("sendgridApiKey"),
	}
	Conf.Server.Host, _ = os.Hostname()
	Conf.Server.Addr = v.GetString("serverAddr")
	Conf.Server.JWTExpirationDelta = v.GetDuration("jwtExpirationDelta")
	Conf.Server.JWTRefreshExpirationDelta = v.GetDuration("jwtRefreshExpirationDelta")
	Conf.Server.ShutdownTimeout = v.GetDuration("serverShutdownTimeout")
	Conf.Database.URL = v.GetString("databaseUrl")
	Conf.Assistant.MaxQueryLen = v.GetInt("assistantMaxQueryLen")
	Conf.Assistant.MinTypingLag = v.GetDuration("assistantMinTypingLag")
	Conf.Assistant.MaxTypingLag = v.GetDuration("assistantMaxTypingLag")
	Conf.Assistant.PolicyRules = v.GetString("assistantPolicyRules")
}
