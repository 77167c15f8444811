package app

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/notify"
)

// NewPublisher selects the notification transport named by NOTIFY_DRIVER.
// The returned close func releases broker resources and is never nil.
func NewPublisher(cfg *Config, client *redis.Client, logger *slog.Logger) (notify.Publisher, func() error, error) {
	noop := func() error { return nil }
	switch cfg.NotifyDriver {
	case NotifyDriverRedis:
		if client == nil {
			return nil, noop, fmt.Errorf("notify driver %q requires a redis client", cfg.NotifyDriver)
		}
		return notify.NewRedisPublisher(client), noop, nil
	case NotifyDriverAMQP:
		publisher, err := notify.NewAMQPPublisher(cfg.AMQPURL, logger)
		if err != nil {
			return nil, noop, err
		}
		return publisher, publisher.Close, nil
	case NotifyDriverNone, "":
		return notify.NopPublisher{}, noop, nil
	default:
		return nil, noop, fmt.Errorf("unsupported notify driver %q", cfg.NotifyDriver)
	}
}
