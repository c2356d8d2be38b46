package env

import (
	"os"

	"matka_backend/internal/config"
)

const (
	natsURLEnvName     = "NATS_URL"
	natsSubjectEnvName = "NATS_SUBJECT"

	defaultNATSSubject = "matka.results.declared"
)

type natsConfig struct {
	url     string
	subject string
}

// NewNATSConfig пустой NATS_URL отключает публикацию событий
func NewNATSConfig() (config.NATSConfig, error) {
	subject := os.Getenv(natsSubjectEnvName)
	if len(subject) == 0 {
		subject = defaultNATSSubject
	}

	return &natsConfig{
		url:     os.Getenv(natsURLEnvName),
		subject: subject,
	}, nil
}

func (cfg *natsConfig) URL() string {
	return cfg.url
}

func (cfg *natsConfig) Subject() string {
	return cfg.subject
}

func (cfg *natsConfig) Enabled() bool {
	return cfg.url != ""
}
