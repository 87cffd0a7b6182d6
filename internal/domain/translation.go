package domain

// Vocabulary identifies one of the keyword vocabularies a sign can be
// translated into. The dictionary carries a first-language vocabulary and an
// English one; both share a single schema and resolver.
type Vocabulary string

const (
	VocabularyFinnish Vocabulary = "fin"
	VocabularyEnglish Vocabulary = "eng"
)

func (v Vocabulary) String() string { return string(v) }

func (v Vocabulary) IsValid() bool {
	switch v {
	case VocabularyFinnish, VocabularyEnglish:
		return true
	}
	return false
}

// Keyword is a translation-equivalent word in a given vocabulary. Text is
// unique per vocabulary and immutable once created.
type Keyword struct {
	ID         int64
	Vocabulary Vocabulary
	Text       string
}

// Translation is one gloss↔keyword association. Index records the assignment
// sequence; translations order naturally by (gloss, index).
type Translation struct {
	ID        int64
	GlossID   int64
	KeywordID int64
	Index     int

	// Gloss is the owning entry's summary, populated on keyword-joined reads.
	Gloss *GlossSummary
}
