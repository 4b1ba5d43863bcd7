package configuration

import (
	"fmt"
	"os"
	"strconv"

	"pulse-metrics/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	Database    Database    `json:"database"`
	App         App         `json:"app"`
	RedisClient RedisClient `json:"redisClient"`
	Logger      Logger      `json:"logger"`
	Stripe      Stripe      `json:"stripe"`
	RapidAPI    RapidAPI    `json:"rapidApi"`
	TikTok      TikTok      `json:"tiktok"`
}

type App struct {
	Port        int    `json:"port"`
	SecretKey   string `json:"secretKey"`
	TLSEnabled  bool   `json:"tlsEnabled"`
	TLSCertFile string `json:"tlsCertFile"`
	TLSKeyFile  string `json:"tlsKeyFile"`
	// FrontendURL is the dashboard origin used for billing redirects
	FrontendURL string `json:"frontendUrl"`
}

type Database struct {
	Vendor string `json:"vendor"` // postgres (default) or mysql
	Psql   Db     `json:"psql"`
	MySql  Db     `json:"mysql"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type RedisClient struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Password     string `json:"password"`
	DatabaseName string `json:"databaseName"`
	Username     string `json:"username"`
}

type Logger struct {
	Format string `json:"format"`
}

// Stripe holds the billing provider credentials. Empty SecretKey runs the
// service in local demo billing mode.
type Stripe struct {
	SecretKey     string       `json:"secretKey"`
	WebhookSecret string       `json:"webhookSecret"`
	Prices        StripePrices `json:"prices"`
}

// StripePrices maps the sellable plans to provider price ids. Unset entries
// fall back to placeholder ids so the demo pricing page still resolves plans.
type StripePrices struct {
	CreatorMonthly string `json:"creatorMonthly"`
	CreatorYearly  string `json:"creatorYearly"`
	ProMonthly     string `json:"proMonthly"`
	ProYearly      string `json:"proYearly"`
	AgencyMonthly  string `json:"agencyMonthly"`
	AgencyYearly   string `json:"agencyYearly"`
}

// RapidAPI holds the TikTok data provider credentials. Empty Key switches
// every provider call to deterministic mock data.
type RapidAPI struct {
	Key          string `json:"key"`
	Host         string `json:"host"`
	TrendingHost string `json:"trendingHost"`
	Mode         string `json:"mode"` // "mock" forces mock data even with a key
}

// TikTok holds the OAuth client for connecting creator accounts
type TikTok struct {
	ClientKey    string   `json:"clientKey"`
	ClientSecret string   `json:"clientSecret"`
	RedirectURI  string   `json:"redirectURI"`
	Scopes       []string `json:"scopes"`
}

var C Config

func init() {
	LoadConfig()
	initDatabase(&C)
	initApp(&C)
	initProviders(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initDatabase(C *Config) {
	if v := os.Getenv("DB_VENDOR"); v != "" {
		C.Database.Vendor = v
	}
	if C.Database.Vendor == "" {
		C.Database.Vendor = "postgres"
	}

	if C.Database.Psql.Name == "" {
		C.Database.Psql.Name = os.Getenv("DB_NAME")
	}
	if C.Database.Psql.Host == "" {
		C.Database.Psql.Host = os.Getenv("DB_HOST")
	}
	if C.Database.Psql.User == "" {
		C.Database.Psql.User = os.Getenv("DB_USER")
	}
	if C.Database.Psql.Password == "" {
		C.Database.Psql.Password = os.Getenv("DB_PASSWORD")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = os.Getenv("DB_PORT")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = "5432"
	}

	if C.Database.MySql.Name == "" {
		C.Database.MySql.Name = os.Getenv("MYSQL_DB_NAME")
	}
	if C.Database.MySql.Host == "" {
		C.Database.MySql.Host = os.Getenv("MYSQL_HOST")
	}
	if C.Database.MySql.User == "" {
		C.Database.MySql.User = os.Getenv("MYSQL_USER")
	}
	if C.Database.MySql.Password == "" {
		C.Database.MySql.Password = os.Getenv("MYSQL_PASSWORD")
	}
	if C.Database.MySql.Port == "" {
		if v := os.Getenv("MYSQL_PORT"); v != "" {
			C.Database.MySql.Port = v
		} else {
			C.Database.MySql.Port = "3306"
		}
	}
}

func initApp(C *Config) {
	// SECRET_KEY from environment overrides the config file when provided
	if v := os.Getenv("SECRET_KEY"); v != "" {
		C.App.SecretKey = v
	}
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10001
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10001
	}
	if v := os.Getenv("TLS_ENABLED"); v != "" {
		switch v {
		case "1", "true", "TRUE", "True":
			C.App.TLSEnabled = true
		case "0", "false", "FALSE", "False":
			C.App.TLSEnabled = false
		}
	}
	if C.App.TLSCertFile == "" {
		C.App.TLSCertFile = os.Getenv("TLS_CERT_FILE")
	}
	if C.App.TLSKeyFile == "" {
		C.App.TLSKeyFile = os.Getenv("TLS_KEY_FILE")
	}
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		C.App.FrontendURL = v
	}
	if C.App.FrontendURL == "" {
		C.App.FrontendURL = "http://localhost:3000"
	}
	if C.App.SecretKey == "" {
		logger.GetLogger().Warn("App.SecretKey not set; JWT authentication will fail. Provide SECRET_KEY via environment.")
	}
}

func initProviders(C *Config) {
	if v := os.Getenv("STRIPE_SECRET_KEY"); v != "" {
		C.Stripe.SecretKey = v
	}
	if v := os.Getenv("STRIPE_WEBHOOK_SECRET"); v != "" {
		C.Stripe.WebhookSecret = v
	}
	if C.Stripe.SecretKey == "" {
		logger.GetLogger().Warn("Stripe.SecretKey not set; billing runs in local demo mode")
	}
	initPriceID(&C.Stripe.Prices.CreatorMonthly, "STRIPE_PRICE_CREATOR_MONTHLY", "price_creator_monthly")
	initPriceID(&C.Stripe.Prices.CreatorYearly, "STRIPE_PRICE_CREATOR_YEARLY", "price_creator_yearly")
	initPriceID(&C.Stripe.Prices.ProMonthly, "STRIPE_PRICE_PRO_MONTHLY", "price_pro_monthly")
	initPriceID(&C.Stripe.Prices.ProYearly, "STRIPE_PRICE_PRO_YEARLY", "price_pro_yearly")
	initPriceID(&C.Stripe.Prices.AgencyMonthly, "STRIPE_PRICE_AGENCY_MONTHLY", "price_agency_monthly")
	initPriceID(&C.Stripe.Prices.AgencyYearly, "STRIPE_PRICE_AGENCY_YEARLY", "price_agency_yearly")

	if v := os.Getenv("RAPIDAPI_KEY"); v != "" {
		C.RapidAPI.Key = v
	}
	if v := os.Getenv("RAPIDAPI_HOST"); v != "" {
		C.RapidAPI.Host = v
	}
	if C.RapidAPI.Host == "" {
		C.RapidAPI.Host = "tiktok-scraper7.p.rapidapi.com"
	}
	if v := os.Getenv("RAPIDAPI_TRENDING_HOST"); v != "" {
		C.RapidAPI.TrendingHost = v
	}
	if C.RapidAPI.TrendingHost == "" {
		C.RapidAPI.TrendingHost = "tiktok-trending-data.p.rapidapi.com"
	}
	if v := os.Getenv("TIKTOK_MODE"); v != "" {
		C.RapidAPI.Mode = v
	}
	if C.RapidAPI.Key == "" {
		logger.GetLogger().Warn("RapidAPI.Key not set; provider serves mock data")
	}

	if v := os.Getenv("TIKTOK_CLIENT_KEY"); v != "" {
		C.TikTok.ClientKey = v
	}
	if v := os.Getenv("TIKTOK_CLIENT_SECRET"); v != "" {
		C.TikTok.ClientSecret = v
	}
	if v := os.Getenv("TIKTOK_REDIRECT_URI"); v != "" {
		C.TikTok.RedirectURI = v
	}
	if len(C.TikTok.Scopes) == 0 {
		C.TikTok.Scopes = []string{"user.info.basic", "video.list"}
	}
}

func initPriceID(target *string, envKey, fallback string) {
	if v := os.Getenv(envKey); v != "" {
		*target = v
		return
	}
	if *target == "" {
		*target = fallback
	}
}

// MockMode reports whether the provider should serve deterministic mock data
func (c *Config) MockMode() bool {
	return c.RapidAPI.Key == "" || c.RapidAPI.Mode == "mock"
}
