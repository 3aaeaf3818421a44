package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	ServerPort string
	Env        string
	Timezone   string

	StorageDriver string
	SQLitePath    string
	DBUrl         string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PathStyle       bool
	S3Prefix          string

	SeedDemo       bool
	BackupSchedule string

	SlotStart       string
	SlotEnd         string
	SlotStepMinutes int

	AuditQueueSize int
}

func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		Env:        getEnv("APP_ENV", "development"),
		Timezone:   getEnv("TIMEZONE", "America/Asuncion"),

		StorageDriver: getEnv("STORAGE_DRIVER", "sqlite"),
		SQLitePath:    getEnv("SQLITE_PATH", "data/reception.db"),
		DBUrl:         getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPrefix:   getEnv("REDIS_PREFIX", "reception:"),

		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3PathStyle:       getEnvBool("S3_PATH_STYLE", false),
		S3Prefix:          getEnv("S3_PREFIX", ""),

		SeedDemo:       getEnvBool("SEED_DEMO", true),
		BackupSchedule: getEnv("BACKUP_SCHEDULE", "@daily"),

		SlotStart:       getEnv("SLOT_START", "07:00"),
		SlotEnd:         getEnv("SLOT_END", "18:00"),
		SlotStepMinutes: getEnvInt("SLOT_STEP_MINUTES", 30),

		AuditQueueSize: getEnvInt("AUDIT_QUEUE_SIZE", 100),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(getEnv(key, "")))
	if err != nil {
		return def
	}
	return v
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
