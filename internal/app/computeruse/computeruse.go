package computeruse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lybic/lybic-sdk-go/internal/api"
	"github.com/lybic/lybic-sdk-go/internal/log"
	"github.com/lybic/lybic-sdk-go/internal/model"
)

// ServiceConfig is the configuration for the computer use service.
type ServiceConfig struct {
	Requester api.Requester
	Logger    log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Requester == nil {
		return fmt.Errorf("requester is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.ComputerUse"})
	return nil
}

// Service has the computer use tools.
type Service struct {
	req    api.Requester
	logger log.Logger
}

// NewService creates a new computer use service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{req: cfg.Requester, logger: cfg.Logger}, nil
}

// ParseLLMOutput parses the text output of an LLM into computer use actions.
func (s *Service) ParseLLMOutput(ctx context.Context, pm model.ParseModel, text string) (*model.ParsedActions, error) {
	if err := pm.Validate(); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	path := api.Path("/api/computer-use/parse/%s", string(pm))
	if err := s.req.Do(ctx, http.MethodPost, path, model.ParseTextRequest{TextContent: text}, &raw); err != nil {
		return nil, fmt.Errorf("could not parse llm output: %w", err)
	}
	s.logger.Debugf("Parse model output response: %s", raw)

	return model.DecodeParsedActions(model.ActionUnionComputerUse, raw)
}
