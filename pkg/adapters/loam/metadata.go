package loam

// GateMetadata represents the frontmatter of a Palisade document. One Loam
// repository holds both transition definitions and items, discriminated by
// the "kind" key (missing kind means transition). It uses "mapstructure"
// style Frontmatter/YAML keys, decoded by Loam's typed repository.
type GateMetadata struct {
	ID   string `json:"id" mapstructure:"id"`
	Kind string `json:"kind" mapstructure:"kind"`

	// Transition policy fields.
	MaxResult   string            `json:"max_result" mapstructure:"max_result"`
	Timeout     string            `json:"timeout" mapstructure:"timeout"`
	Sleep       string            `json:"sleep" mapstructure:"sleep"`
	TimeoutText string            `json:"timeout_text" mapstructure:"timeout_text"`
	Messages    map[string]string `json:"messages" mapstructure:"messages"`
	ReportTitle string            `json:"report_title" mapstructure:"report_title"`
	Mode        string            `json:"mode" mapstructure:"mode"`

	// Item fields.
	Path     string `json:"path" mapstructure:"path"`
	Language string `json:"language" mapstructure:"language"`
	Version  int    `json:"version" mapstructure:"version"`
}

// Document kinds.
const (
	KindTransition = "transition"
	KindItem       = "item"
)
