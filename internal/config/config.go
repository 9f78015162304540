package config

import "os"

// Config carries every externally supplied setting. It is loaded once in
// main and injected; nothing reads the environment after startup.
type Config struct {
	HTTPPort string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	RedisAddr string

	JWTSecret string

	KafkaBroker string

	MQTTBroker   string
	MQTTClientID string

	// External routing provider (map matching + directions).
	RoutingBaseURL string
	RoutingAPIKey  string

	// External reverse-geocoding provider.
	GeocodeBaseURL string
	GeocodeAPIKey  string
}

func Load() *Config {
	return &Config{
		HTTPPort: getEnv("PORT", "3000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "srcapp"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		KafkaBroker: os.Getenv("KAFKA_BROKER"),

		MQTTBroker:   getEnv("MQTT_BROKER", "tcp://localhost:1883"),
		MQTTClientID: getEnv("MQTT_CLIENT_ID", "srcapp-ingest"),

		RoutingBaseURL: getEnv("ROUTING_BASE_URL", "https://api.openrouteservice.org"),
		RoutingAPIKey:  os.Getenv("ROUTING_API_KEY"),

		GeocodeBaseURL: getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocodeAPIKey:  os.Getenv("GEOCODE_API_KEY"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
