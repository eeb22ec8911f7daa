package client

import (
	"fmt"

	"github.com/opsverdict/opsverdict/internal/config"
	"github.com/opsverdict/opsverdict/internal/services"
)

// Client type names accepted by the factory.
const (
	TypeLocal = "local"
	TypeHTTP  = "http"
	TypeDummy = "dummy"
)

// New builds the client selected by the configuration. The local
// builder is injected so the CLI only constructs the full orchestrator
// stack when it is actually needed.
func New(cfg *config.Config, buildLocal func() (*services.LifecycleService, error)) (Client, error) {
	switch cfg.ClientType {
	case TypeLocal, "":
		lifecycle, err := buildLocal()
		if err != nil {
			return nil, fmt.Errorf("failed to build local client: %w", err)
		}
		return NewLocalClient(lifecycle), nil
	case TypeHTTP:
		return NewHTTPClient(cfg.APIURL, cfg.APIKey), nil
	case TypeDummy:
		return NewDummyClient(), nil
	}
	return nil, fmt.Errorf("unknown client type: %q (expected local, http, or dummy)", cfg.ClientType)
}
