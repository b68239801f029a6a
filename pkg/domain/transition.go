package domain

// TransitionDefinition is the gating policy attached to one workflow
// transition. All texts are author-configured and may contain the item
// placeholders $itemPath$, $itemLanguage$ and $itemVersion$.
type TransitionDefinition struct {
	// ID identifies the transition within its loader.
	ID string `json:"id" yaml:"id" mapstructure:"id"`

	// MaxResult names the maximum tolerated severity. Blank means Warning.
	// The literal name "Unknown" disables gating for this transition
	// entirely (escape hatch).
	MaxResult string `json:"max_result,omitempty" yaml:"max_result,omitempty" mapstructure:"max_result"`

	// Timeout and Sleep are the polling knobs in milliseconds, kept as text
	// because they come from free-form definition fields. Unparsable values
	// fall back to defaults (10000 / 500).
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty" mapstructure:"timeout"`
	Sleep   string `json:"sleep,omitempty" yaml:"sleep,omitempty" mapstructure:"sleep"`

	// TimeoutText is shown to the user when validators never settle.
	TimeoutText string `json:"timeout_text,omitempty" yaml:"timeout_text,omitempty" mapstructure:"timeout_text"`

	// Messages maps severity display names ("Warning", "Error",
	// "Critical Error", "Fatal Error") plus the reserved "Unknown" key to
	// the block message shown for that level.
	Messages map[string]string `json:"messages,omitempty" yaml:"messages,omitempty" mapstructure:"messages"`

	// ReportTitle and ReportHelp feed the modal report payload when a
	// transition is blocked in an interactive context.
	ReportTitle string `json:"report_title,omitempty" yaml:"report_title,omitempty" mapstructure:"report_title"`
	ReportHelp  string `json:"report_help,omitempty" yaml:"report_help,omitempty" mapstructure:"report_help"`

	// Mode selects which validators the provider builds. Empty means
	// ModeWorkflow.
	Mode string `json:"mode,omitempty" yaml:"mode,omitempty" mapstructure:"mode"`
}

// ModeWorkflow is the default validation mode.
const ModeWorkflow = "workflow"

// ValidationMode returns the configured mode, defaulting to ModeWorkflow.
func (d *TransitionDefinition) ValidationMode() string {
	if d.Mode == "" {
		return ModeWorkflow
	}
	return d.Mode
}

// MessageFor returns the author-configured block message for a severity
// level, or the empty string when none is configured.
func (d *TransitionDefinition) MessageFor(s Severity) string {
	if d.Messages == nil {
		return ""
	}
	return d.Messages[s.String()]
}
