package domain

// ValidatorState is a serializable snapshot of one validator at decision
// time. It is what block reports and audit records carry; the live validator
// itself stays behind the ports.Validator interface.
type ValidatorState struct {
	Name       string   `json:"name"`
	Evaluating bool     `json:"evaluating,omitempty"`
	Result     Severity `json:"result"`
}

// Report is the payload handed to a report sink when a transition is
// blocked. Title and Help come from the transition definition with
// placeholders resolved.
type Report struct {
	Title      string           `json:"title"`
	Help       string           `json:"help,omitempty"`
	Item       Item             `json:"item"`
	Verdict    Severity         `json:"verdict"`
	Message    string           `json:"message"`
	Validators []ValidatorState `json:"validators"`
}
