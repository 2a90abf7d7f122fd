package ailink

import (
	"context"
	"fmt"
	"strings"

	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"

	"github.com/boardlens/boardlens/internal/ailink/driver"
)

// GenerateRequest asks for one completion against a preferred model key.
type GenerateRequest struct {
	Prompt   string
	System   string
	ModelKey string
}

// GenerateResult carries the completion text and the model that produced it.
type GenerateResult struct {
	Text  string
	Key   string
	Model string
}

// Service runs completions through the registry.
type Service struct {
	Providers *Registry
	Logger    *logging.Logger
}

// NewService builds a service over a config.
func NewService(cfg Config, logger *logging.Logger) *Service {
	return &Service{Providers: NewRegistry(cfg), Logger: logger}
}

// Generate resolves the model and runs the completion. Empty completions
// are errors so callers never parse blank output.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	resolved, err := s.Providers.Resolve(req.ModelKey)
	if err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.Debug("running completion",
			zap.String("key", resolved.Key),
			zap.String("model", resolved.Model),
			zap.String("driver", resolved.Driver.Name()))
	}

	resp, err := resolved.Driver.Complete(ctx, &driver.Request{
		Model:  resolved.Model,
		System: req.System,
		Prompt: req.Prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", resolved.Key, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return nil, fmt.Errorf("model %s returned empty completion", resolved.Key)
	}

	return &GenerateResult{Text: text, Key: resolved.Key, Model: resolved.Model}, nil
}
