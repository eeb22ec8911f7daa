package ai

// Role is a reasoning specialization invoked at a specific lifecycle
// point. The orchestrator selects a reasoner by role; the role never
// changes how a reasoner is called.
type Role string

const (
	RoleAnalyzer     Role = "analyzer"
	RoleInvestigator Role = "investigator"
	RoleSummarizer   Role = "summarizer"
	RoleResolver     Role = "resolver"
)

// Roles lists every reasoning role in lifecycle order.
func Roles() []Role {
	return []Role{RoleAnalyzer, RoleInvestigator, RoleSummarizer, RoleResolver}
}
