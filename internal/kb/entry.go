package kb

// Entry is one fixed knowledge-base reference text with a stable id and the
// metadata attached to every chunk derived from it.
type Entry struct {
	ID       string
	Text     string
	Metadata map[string]any
}

const (
	CollectionLegal    = "kb_legal"
	CollectionSecurity = "kb_security"
)
