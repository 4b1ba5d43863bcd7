package configuration

import (
	"fmt"
	"os"
	"strings"
)

// TikTokOAuthConfig represents the TikTok OAuth client configuration
type TikTokOAuthConfig struct {
	ClientKey    string `mapstructure:"client_key"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
	Scopes       []string
}

// GetTikTokOAuthConfig returns the TikTok OAuth configuration from the JSON
// config with environment variable fallback
func GetTikTokOAuthConfig() (*TikTokOAuthConfig, error) {
	scheme := "http"
	if C.App.TLSEnabled {
		scheme = "https"
	}
	port := C.App.Port
	if port == 0 {
		port = 10001
	}
	defaultRedirect := fmt.Sprintf("%s://localhost:%d/auth/tiktok/callback", scheme, port)

	config := &TikTokOAuthConfig{
		ClientKey:    getConfigValue(C.TikTok.ClientKey, "TIKTOK_CLIENT_KEY", ""),
		ClientSecret: getConfigValue(C.TikTok.ClientSecret, "TIKTOK_CLIENT_SECRET", ""),
		RedirectURL:  getConfigValue(C.TikTok.RedirectURI, "TIKTOK_REDIRECT_URI", defaultRedirect),
		Scopes:       C.TikTok.Scopes,
	}
	if len(config.Scopes) == 0 {
		config.Scopes = []string{"user.info.basic", "video.list"}
	}

	// Missing credentials are tolerated; the connect endpoints report the
	// integration as unavailable instead.
	return config, nil
}

// Configured reports whether the OAuth client can start an authorization flow
func (c *TikTokOAuthConfig) Configured() bool {
	return c.ClientKey != "" && c.ClientSecret != ""
}

// getConfigValue gets value from config first, then environment variable, then default
func getConfigValue(configValue, envKey, defaultValue string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if configValue != "" && !strings.HasPrefix(configValue, "YOUR_") {
		return configValue
	}
	return defaultValue
}
