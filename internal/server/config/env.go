package config

import (
	"os"
	"strings"
	"time"
)

// parseEnv overlays Config fields from environment variables.
//
// Recognized variables:
//
//	PORT             listening port ("3000" becomes ":3000")
//	DATABASE_DSN     PostgreSQL DSN
//	JWT_SECRET       token-signing secret
//	TOKEN_VALIDITY   session token lifetime in Go duration syntax ("1h")
//	ALLOWED_ORIGINS  comma-separated origin allow-list
//
// Unset variables leave the current value untouched; a malformed
// TOKEN_VALIDITY is ignored rather than aborting startup.
func parseEnv(config *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if strings.Contains(v, ":") {
			config.EndpointAddr = v
		} else {
			config.EndpointAddr = ":" + v
		}
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		config.AllowedOrigins = origins
	}
}
