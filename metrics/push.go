package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"
)

// PushConfig enables pushing metrics to a prometheus push gateway.
type PushConfig struct {
	URL      string            `mapstructure:"url"`
	Username string            `mapstructure:"username"`
	Password string            `mapstructure:"password"`
	Headers  map[string]string `mapstructure:"headers"`
	Period   time.Duration     `mapstructure:"period"`
}

// Enabled returns true if the push gateway is configured.
func (c PushConfig) Enabled() bool {
	return c.URL != "" && c.Period > 0
}

// PushMetrics pushes metrics to the gateway with configured period until ctx is canceled.
func PushMetrics(ctx context.Context, logger *zap.Logger, cfg PushConfig, instance string) error {
	header := http.Header{}
	for k, v := range cfg.Headers {
		header.Add(k, v)
	}
	pusher := push.New(cfg.URL, "go-peocoin").Gatherer(prometheus.DefaultGatherer).
		Grouping("instance", instance).
		Header(header)
	if cfg.Username != "" && cfg.Password != "" {
		pusher = pusher.BasicAuth(cfg.Username, cfg.Password)
	}
	ticker := time.NewTicker(cfg.Period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := pusher.PushContext(ctx); err != nil {
				logger.Warn("failed to push metrics", zap.String("url", cfg.URL), zap.Error(err))
			}
		}
	}
}
