package gloss

// Filter defines parameters for searching and paginating glosses.
type Filter struct {
	// Search performs ILIKE '%...%' on idgloss and both annotation names.
	// nil or empty string means no text filter.
	Search *string

	// InWebDictionary filters on publication status.
	InWebDictionary *bool

	// IsProposedNewSign filters proposed new signs.
	IsProposedNewSign *bool

	// LanguageID filters glosses belonging to the given language.
	LanguageID *int64

	// DialectID filters glosses used in the given dialect.
	DialectID *int64

	// SortBy determines the sort column: "idgloss", "created_at", "updated_at".
	// Default: "idgloss".
	SortBy string

	// SortOrder: "ASC" or "DESC". Default: "ASC".
	SortOrder string

	// Limit is the maximum number of glosses to return. Default: 50, max: 200.
	Limit int

	// Offset is the number of glosses to skip.
	Offset int
}

const (
	defaultLimit = 50
	maxLimit     = 200

	sortByIDGloss   = "idgloss"
	sortByCreatedAt = "created_at"
	sortByUpdatedAt = "updated_at"

	sortOrderASC  = "ASC"
	sortOrderDESC = "DESC"
)

// normalize applies defaults and clamps values.
func (f *Filter) normalize() {
	switch f.SortBy {
	case sortByIDGloss, sortByCreatedAt, sortByUpdatedAt:
		// valid
	default:
		f.SortBy = sortByIDGloss
	}

	switch f.SortOrder {
	case sortOrderASC, sortOrderDESC:
		// valid
	default:
		f.SortOrder = sortOrderASC
	}

	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}

	if f.Offset < 0 {
		f.Offset = 0
	}
}
