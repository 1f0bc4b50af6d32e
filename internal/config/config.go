package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	Store struct {
		// Backend selects the document blob store: memory, redis or postgres.
		Backend string `mapstructure:"backend"`
	} `mapstructure:"store"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	AI struct {
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"ai"`
	Export struct {
		Dir        string `mapstructure:"dir"`
		TplDir     string `mapstructure:"tpl_dir"`
		ChromePath string `mapstructure:"chrome_path"`
	} `mapstructure:"export"`
}

func LoadConfig() (cfg Config, err error) {
	if err = godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err = viper.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read env only. Error: %v", err)
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("app.port", "APP_PORT")
	viper.BindEnv("app.env", "ENV")
	viper.BindEnv("store.backend", "STORE_BACKEND")
	viper.BindEnv("db.dsn", "DATABASE_URL")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("ai.base_url", "AI_SERVICE_URL")
	viper.BindEnv("ai.timeout", "AI_TIMEOUT")
	viper.BindEnv("export.dir", "EXPORT_DIR")
	viper.BindEnv("export.tpl_dir", "TPL_DIR")
	viper.BindEnv("export.chrome_path", "CHROME_PATH")

	viper.SetDefault("app.port", "3000")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("store.backend", "memory")
	viper.SetDefault("ai.timeout", 60*time.Second)
	viper.SetDefault("export.dir", "resume-data")
	viper.SetDefault("export.tpl_dir", "templates")

	err = viper.Unmarshal(&cfg)
	return cfg, err
}
