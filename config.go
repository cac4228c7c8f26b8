package main

import "errors"

// rootDomain is the fixed parent domain under which all managed
// subdomains are created.
const rootDomain = "joss.checker-ip.xyz"

type Config struct {
	BotToken    string `env:"BOT_TOKEN,required=true"`
	OwnerID     int64  `env:"OWNER_ID,required=true"`
	AccountID   string `env:"CF_ACCOUNT_ID,required=true"`
	ZoneID      string `env:"CF_ZONE_ID,required=true"`
	APIToken    string `env:"CF_API_TOKEN"`
	APIKey      string `env:"CF_API_KEY"`
	APIEmail    string `env:"CF_API_EMAIL"`
	APIBaseURL  string `env:"CF_API_URL,default=https://api.cloudflare.com/client/v4"`
	ServiceName string `env:"SERVICE_NAME,default=siren"`
	TelegramURL string `env:"TELEGRAM_API_URL,default=https://api.telegram.org"`
	ListenAddr  string `env:"LISTEN_ADDR,default=:8080"`
	WebhookPath string `env:"WEBHOOK_PATH,default=/webhook"`
}

// Validate checks that exactly one Cloudflare auth form is usable:
// either a bearer token or an API key/email pair.
func (c Config) Validate() error {
	if c.APIToken != "" {
		return nil
	}
	if c.APIKey != "" && c.APIEmail != "" {
		return nil
	}
	return errors.New("either CF_API_TOKEN or both CF_API_KEY and CF_API_EMAIL must be set")
}
