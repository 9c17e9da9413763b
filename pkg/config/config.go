package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	DefaultPhoneRegion string
	GCSBucket          string
	GCSCredentialsJSON string
	MsgGatewayURL      string
	MsgGatewayToken    string
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	dbURL := os.Getenv("PGSQL_URL")
	if dbURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", port)
	}

	isProdStr := os.Getenv("IS_PRODUCTION")
	isProd, err := strconv.ParseBool(isProdStr)
	if err != nil {
		isProd = false
		if isProdStr != "" {
			log.Printf("Warning: Invalid value for IS_PRODUCTION ('%s'). Defaulting to false.\n", isProdStr)
		}
	}

	phoneRegion := os.Getenv("DEFAULT_PHONE_REGION")
	if phoneRegion == "" {
		phoneRegion = "IN"
		log.Printf("Warning: DEFAULT_PHONE_REGION environment variable not set. Defaulting to %s\n", phoneRegion)
	}

	gcsBucket := os.Getenv("GCS_BUCKET")
	if gcsBucket == "" {
		log.Println("Warning: GCS_BUCKET not set. Document uploads are disabled.")
	}

	msgGatewayURL := os.Getenv("MSG_GATEWAY_URL")
	if msgGatewayURL == "" {
		log.Println("Warning: MSG_GATEWAY_URL not set. Outbound messages are disabled.")
	}

	return &Config{
		DatabaseURL:        dbURL,
		Port:               port,
		IsProduction:       isProd,
		DefaultPhoneRegion: phoneRegion,
		GCSBucket:          gcsBucket,
		GCSCredentialsJSON: os.Getenv("GCS_CREDENTIALS_JSON"),
		MsgGatewayURL:      msgGatewayURL,
		MsgGatewayToken:    os.Getenv("MSG_GATEWAY_TOKEN"),
	}, nil
}
