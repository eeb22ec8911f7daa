package ai

import "fmt"

// Provider names accepted by the factory.
const (
	ProviderDummy  = "dummy"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// FactoryConfig carries the provider selection and credentials needed
// to build reasoners.
type FactoryConfig struct {
	Provider     string
	OpenAIAPIKey string
	OpenAIModel  string
	GoogleAPIKey string
	GeminiModel  string
	DataDir      string
}

// Factory builds one configured reasoner per role. Unknown provider
// configuration fails at construction time, not at call time.
type Factory struct {
	cfg          FactoryConfig
	instructions map[Role]string
}

// NewFactory validates the provider name and loads role instructions.
func NewFactory(cfg FactoryConfig) (*Factory, error) {
	switch cfg.Provider {
	case ProviderDummy, ProviderOpenAI, ProviderGemini:
	case "":
		cfg.Provider = ProviderDummy
	default:
		return nil, fmt.Errorf("unknown AI provider: %q (expected dummy, openai, or gemini)", cfg.Provider)
	}
	return &Factory{
		cfg:          cfg,
		instructions: LoadInstructions(cfg.DataDir),
	}, nil
}

// Reasoner returns a configured reasoning backend for the given role.
func (f *Factory) Reasoner(role Role) (Reasoner, error) {
	instruction := f.instructions[role]

	switch f.cfg.Provider {
	case ProviderDummy:
		return NewDummyReasoner(role), nil
	case ProviderOpenAI:
		return NewOpenAIReasoner(f.cfg.OpenAIAPIKey, f.cfg.OpenAIModel, role, instruction)
	case ProviderGemini:
		return NewGeminiReasoner(f.cfg.GoogleAPIKey, f.cfg.GeminiModel, role, instruction)
	}
	return nil, fmt.Errorf("unknown AI provider: %q", f.cfg.Provider)
}

// Reasoners builds the full role-to-reasoner set used by the
// orchestrator.
func (f *Factory) Reasoners() (map[Role]Reasoner, error) {
	reasoners := make(map[Role]Reasoner, len(Roles()))
	for _, role := range Roles() {
		r, err := f.Reasoner(role)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s reasoner: %w", role, err)
		}
		reasoners[role] = r
	}
	return reasoners, nil
}
