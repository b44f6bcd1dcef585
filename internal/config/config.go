package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr          string
	MySQLDSN          string
	RedisURL          string
	RedisKeyPrefix    string
	RabbitMQURL       string
	RabbitExchange    string
	RabbitQueue       string
	RabbitRoutingKey  string
	RabbitConsumerTag string
	RabbitPublishKey  string
	SSEHeartbeat      time.Duration
	OTELServiceName   string
	OTLPEndpoint      string
	OTLPInsecure      bool
}

func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:          ":8080",
		RedisKeyPrefix:    "memory_mapping",
		SSEHeartbeat:      15 * time.Second,
		RabbitExchange:    "memories",
		RabbitQueue:       "memories.ingest",
		RabbitRoutingKey:  "memory.*",
		RabbitConsumerTag: "memory-ingest",
		RabbitPublishKey:  "memory.added",
		OTELServiceName:   "memory-mapping",
		OTLPInsecure:      true,
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	} else if port := os.Getenv("PORT"); port != "" {
		cfg.HTTPAddr = ":" + port
	}

	cfg.MySQLDSN = os.Getenv("MYSQL_DSN")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.RabbitMQURL = os.Getenv("RABBITMQ_URL")

	if v := os.Getenv("REDIS_KEY_PREFIX"); v != "" {
		cfg.RedisKeyPrefix = v
	}

	if v := os.Getenv("RABBITMQ_EXCHANGE"); v != "" {
		cfg.RabbitExchange = v
	}
	if v := os.Getenv("RABBITMQ_QUEUE"); v != "" {
		cfg.RabbitQueue = v
	}
	if v := os.Getenv("RABBITMQ_ROUTING_KEY"); v != "" {
		cfg.RabbitRoutingKey = v
	}
	if v := os.Getenv("RABBITMQ_CONSUMER_TAG"); v != "" {
		cfg.RabbitConsumerTag = v
	}
	if v := os.Getenv("RABBITMQ_PUBLISH_KEY"); v != "" {
		cfg.RabbitPublishKey = v
	}

	if v := os.Getenv("OTEL_SERVICE_NAME"); v != "" {
		cfg.OTELServiceName = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTLPEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_INSECURE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.OTLPInsecure = b
		}
	}

	if v := os.Getenv("SSE_HEARTBEAT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SSEHeartbeat = time.Duration(n) * time.Second
		}
	}

	return cfg
}
