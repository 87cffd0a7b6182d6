package domain

// DefinitionRole categorizes a free-text note attached to a gloss.
type DefinitionRole string

const (
	DefinitionRoleNote        DefinitionRole = "note"
	DefinitionRolePrivateNote DefinitionRole = "privatenote"
	DefinitionRolePhonology   DefinitionRole = "phon"
	DefinitionRoleToDo        DefinitionRole = "todo"
	DefinitionRoleSuggestion  DefinitionRole = "sugg"
)

func (r DefinitionRole) String() string { return string(r) }

func (r DefinitionRole) IsValid() bool {
	switch r {
	case DefinitionRoleNote, DefinitionRolePrivateNote, DefinitionRolePhonology,
		DefinitionRoleToDo, DefinitionRoleSuggestion:
		return true
	}
	return false
}

// Definition is a free-text note on a gloss. Only published definitions with
// a role from the configured allow-list are shown publicly. Natural order is
// (gloss, role, count).
type Definition struct {
	ID        int64
	GlossID   int64
	Text      string
	Role      DefinitionRole
	Count     int
	Published bool
}
