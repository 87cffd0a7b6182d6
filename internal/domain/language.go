package domain

// Language is a sign language name. Natural order is by name.
type Language struct {
	ID          int64
	Name        string
	Description string
}

// Dialect is a regional dialect of a Language. Natural order is
// (language, name).
type Dialect struct {
	ID          int64
	LanguageID  int64
	Name        string
	Description string
}
