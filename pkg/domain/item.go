package domain

// Item is the content item a workflow transition is being attempted for.
// Path, Language and Version feed placeholder substitution in definition
// texts ($itemPath$, $itemLanguage$, $itemVersion$).
type Item struct {
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
	Path     string `json:"path" yaml:"path"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
	Version  int    `json:"version,omitempty" yaml:"version,omitempty"`
}
