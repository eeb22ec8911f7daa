package ai

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opsverdict/opsverdict/internal/domain"
)

const promptsFileName = "prompts.yaml"

// defaultInstructions are the built-in per-role prompt instructions.
var defaultInstructions = map[Role]string{
	RoleAnalyzer:     "Analyze the incident and highlight likely causes.",
	RoleInvestigator: "Investigate using the given context and return concise findings.",
	RoleSummarizer:   "Produce a concise rolling summary capturing key findings and current state.",
	RoleResolver:     "Provide closure reasoning with root cause and resolution steps.",
}

// promptsFile is the YAML shape of an operator-provided override file.
type promptsFile struct {
	Roles map[string]string `yaml:"roles"`
}

// LoadInstructions returns the role instruction set, applying any
// overrides found in <dataDir>/prompts.yaml. A missing or malformed
// file leaves the defaults in place.
func LoadInstructions(dataDir string) map[Role]string {
	instructions := make(map[Role]string, len(defaultInstructions))
	for role, text := range defaultInstructions {
		instructions[role] = text
	}

	if dataDir == "" {
		return instructions
	}
	data, err := os.ReadFile(filepath.Join(dataDir, promptsFileName))
	if err != nil {
		return instructions
	}

	var overrides promptsFile
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return instructions
	}
	for name, text := range overrides.Roles {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		role := Role(strings.ToLower(name))
		if _, ok := instructions[role]; ok {
			instructions[role] = text
		}
	}
	return instructions
}

// BuildPrompt renders the full prompt for a role, incident, and
// question. Shared by the live backends.
func BuildPrompt(role Role, instruction string, incident *domain.Incident, question string) string {
	if instruction == "" {
		instruction = "Provide helpful reasoning."
	}
	return fmt.Sprintf(`You are an AI assistant helping investigate a production incident.

Role: %s
Instruction: %s

Incident:
- ID: %d
- Title: %s
- State: %s

Context:
%s

Respond concisely and stay within your role.`,
		role, instruction, incident.ID, incident.Title, incident.State, question)
}
