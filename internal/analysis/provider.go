package analysis

import (
	"context"
	"strings"

	"github.com/gustalxpes/foto-nutri/internal/config"
)

const (
	ModeMock    = "mock"
	ModeGateway = "gateway"
)

// Provider analyzes one meal photo per call. Implementations perform exactly
// one outbound request and never retry; the caller owns backoff policy.
type Provider interface {
	Analyze(ctx context.Context, imageBase64 string) (*Result, error)
}

func NewProvider(cfg *config.Config) Provider {
	mode := strings.ToLower(strings.TrimSpace(cfg.AIMode))
	if mode == "" {
		mode = ModeMock
	}

	switch mode {
	case ModeGateway:
		return NewGatewayProvider(cfg)
	default:
		return NewMockProvider()
	}
}
