package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	MongoURI                string
	Port                    string
	DBName                  string
	IncidentsCollection     string
	CommentsCollection      string
	NotificationsCollection string
	AuditLogsCollection     string
	UsersCollection         string
	JWTSecret               string
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
}

func LoadConfig() (*Config, error) {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	readTimeout := getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second)
	writeTimeout := getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second)

	cfg := &Config{
		MongoURI:                mongoURI,
		Port:                    port,
		DBName:                  getEnv("DB_NAME", "incidenthub"),
		IncidentsCollection:     getEnv("COLLECTION_INCIDENTS", "incidents"),
		CommentsCollection:      getEnv("COLLECTION_COMMENTS", "comments"),
		NotificationsCollection: getEnv("COLLECTION_NOTIFICATIONS", "notifications"),
		AuditLogsCollection:     getEnv("COLLECTION_AUDIT_LOGS", "audit_logs"),
		UsersCollection:         getEnv("COLLECTION_USERS", "users"),
		JWTSecret:               os.Getenv("JWT_SECRET"),
		ReadTimeout:             readTimeout,
		WriteTimeout:            writeTimeout,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		d, err := time.ParseDuration(valStr)
		if err == nil {
			return d
		}
		return fallback
	}
	return time.Duration(val) * time.Second
}
