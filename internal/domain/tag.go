package domain

// TagCrude marks glosses with crude content. Anonymous safe search filters
// tagged glosses out of keyword resolution when enabled.
const TagCrude = "lexis:crude"

// Tag is a free-text content tag attachable to glosses.
type Tag struct {
	ID   int64
	Name string
}
