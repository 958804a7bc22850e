package core

// Lexicon is a two-way identifier/name lookup table, built once at startup
// from the vocabulary and held read-only while serving. Reverse lookup maps a
// canonical name to the smallest identifier carrying it.
type Lexicon struct {
	names map[ID]string
	ids   map[string]ID
}

// NewLexicon builds a lexicon from an identifier-to-name mapping.
// The input map is copied; later mutation of it does not affect the lexicon.
func NewLexicon(names map[ID]string) *Lexicon {
	l := &Lexicon{
		names: make(map[ID]string, len(names)),
		ids:   make(map[string]ID, len(names)),
	}
	for id, name := range names {
		l.names[id] = name
		if existing, ok := l.ids[name]; !ok || id < existing {
			l.ids[name] = id
		}
	}
	return l
}

// NameOf returns the canonical name for an identifier.
func (l *Lexicon) NameOf(id ID) (string, bool) {
	name, ok := l.names[id]
	return name, ok
}

// DisplayName returns the canonical name for an identifier, falling back to
// the raw decimal identifier when the lexicon has no entry. Unresolved
// identifiers are an expected, recoverable condition with partial
// vocabularies and never surface as errors.
func (l *Lexicon) DisplayName(id ID) string {
	if l != nil {
		if name, ok := l.names[id]; ok {
			return name
		}
	}
	return id.String()
}

// IDOf returns the identifier registered for a canonical name.
func (l *Lexicon) IDOf(name string) (ID, bool) {
	id, ok := l.ids[name]
	return id, ok
}

// Len returns the number of identifiers in the lexicon.
func (l *Lexicon) Len() int {
	return len(l.names)
}
