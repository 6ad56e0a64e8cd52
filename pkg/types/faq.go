package types

// FaqRecord is one curated question/answer entry of the knowledge base.
// The answer text is the record identity when excluding or deduplicating.
type FaqRecord struct {
	Question   string   `json:"question" yaml:"question"`
	Answer     string   `json:"answer" yaml:"answer"`
	Keywords   []string `json:"keywords" yaml:"keywords"`
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// PrimaryCategory returns the first category tag, or "general" when the record has none
func (r FaqRecord) PrimaryCategory() string {
	if len(r.Categories) == 0 {
		return "general"
	}
	return r.Categories[0]
}
