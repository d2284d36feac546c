package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr  string `default:"" env:"APP_HOST"`
		Port        int    `default:"8080"  env:"APP_PORT"`
		BodyLimitMb int    `default:"50" env:"APP_BODY_LIMIT_MB"`
		CompanyName string `default:"Acme Talent" env:"APP_COMPANY_NAME"`
		LogLevel    string `default:"info" env:"APP_LOG_LEVEL"`
		LogBodies   *bool  `default:"false" env:"APP_LOG_BODIES"` // тела запросов и ответов в журнале api
	}
	Storage struct {
		Driver      string `default:"memory" env:"STORAGE_DRIVER"` // memory | postgres
		SeedOnStart *bool  `default:"true" env:"STORAGE_SEED_ON_START"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"hr-dashboard" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Smtp struct {
		User        string `default:"" env:"SMTP_USER"`
		Password    string `default:"" env:"SMTP_PASSWORD"`
		Host        string `default:"" env:"SMTP_HOST"`
		Port        string `default:"" env:"SMTP_PORT"`
		TLSEnabled  *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		SenderEmail string `default:"" env:"SMTP_SENDER_EMAIL"`
		SenderName  string `default:"Recruiting Team" env:"SMTP_SENDER_NAME"`
	}
	S3 struct {
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"cv-files" env:"S3_BUCKET_NAME"`
	}
	Auth struct {
		Enabled               *bool  `default:"false" env:"AUTH_ENABLED"`
		Login                 string `default:"recruiter" env:"AUTH_LOGIN"`
		Password              string `default:"" env:"AUTH_PASSWORD"`
		JWTSecret             string `default:"" env:"JWT_SECRET"`
		JWTExpireInSec        int64  `default:"86400" env:"JWT_EXPIRE_IN_SEC"`
		JWTRefreshExpireInSec int64  `default:"604800" env:"JWT_REFRESH_EXPIRE_IN_SEC"`
	}
	Pipeline struct {
		StrictTransitions       *bool `default:"false" env:"PIPELINE_STRICT_TRANSITIONS"`
		BlockedAfterDays        int   `default:"7" env:"PIPELINE_BLOCKED_AFTER_DAYS"`
		BlockedCheckIntervalSec int   `default:"3600" env:"PIPELINE_BLOCKED_CHECK_INTERVAL_SEC"`
	}
	Simulation struct {
		StepDelayMs     int     `default:"300" env:"SIMULATION_STEP_DELAY_MS"`
		Steps           int     `default:"10" env:"SIMULATION_STEPS"`
		Workers         int     `default:"4" env:"SIMULATION_WORKERS"`
		FlagStrategy    string  `default:"rules" env:"SIMULATION_FLAG_STRATEGY"` // rules | random
		Seed            int64   `default:"0" env:"SIMULATION_SEED"`
		DuplicateRate   float64 `default:"0.1" env:"SIMULATION_DUPLICATE_RATE"`
		MissingInfoRate float64 `default:"0.2" env:"SIMULATION_MISSING_INFO_RATE"`
	}
	Export struct {
		FontDir string `default:"static/font/" env:"EXPORT_FONT_DIR"` // Arial.ttf и Arial Bold.ttf для кириллицы в pdf
	}
	YandexGPT struct {
		IAMToken  string `default:"" env:"YAGPT_IAM_TOKEN"`
		CatalogID string `default:"" env:"YAGPT_CATALOG_ID"`
	}
}

func (c Configuration) IsPostgresStorage() bool {
	return c.Storage.Driver == "postgres"
}

func (c Configuration) IsAuthEnabled() bool {
	return c.Auth.Enabled != nil && *c.Auth.Enabled
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
