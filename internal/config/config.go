package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config 运行配置，全部来自环境变量
type Config struct {
	Addr     string
	MySQLDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AccessSecret  string
	RefreshSecret string

	KafkaBrokers []string
	KafkaTopic   string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// S3 凭据按需校验，缺失时上传管线启动即失败
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	AWSImageBucket     string

	InviteTTLHours int
}

func Load() Config {
	// .env 不存在时忽略，线上直接用环境变量
	_ = godotenv.Load()

	return Config{
		Addr:     getenv("APP_ADDR", ":8080"),
		MySQLDSN: must("MYSQL_DSN"),

		RedisAddr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getint("REDIS_DB", 0),

		AccessSecret:  must("JWT_ACCESS_SECRET"),
		RefreshSecret: must("JWT_REFRESH_SECRET"),

		KafkaBrokers: []string{getenv("KAFKA_BROKER", "127.0.0.1:9092")},
		KafkaTopic:   getenv("KAFKA_TOPIC", "membership-events"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getint("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getenv("SMTP_FROM", "NoReply <no-reply@example.com>"),

		AWSAccessKeyID:     os.Getenv("AWS_S3_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_S3_SECRET_ACCESS_KEY"),
		AWSRegion:          os.Getenv("AWS_REGION"),
		AWSImageBucket:     os.Getenv("AWS_S3_IMAGE_BUCKET_NAME"),

		InviteTTLHours: getint("INVITE_TTL_HOURS", 24*14),
	}
}

func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		panic("missing required env var: " + key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic("invalid int for " + key + ": " + v)
	}
	return n
}
