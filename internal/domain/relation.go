package domain

// RelationRole is the static role set for gloss-to-gloss cross-references
// exposed to the editing UI. Relation edges themselves store a role code from
// the MorphologyType lookup field; this enum is the UI-facing vocabulary.
type RelationRole string

const (
	RelationRoleHomonym  RelationRole = "homonym"
	RelationRoleSynonym  RelationRole = "synonym"
	RelationRoleVariant  RelationRole = "variant"
	RelationRoleAntonym  RelationRole = "antonym"
	RelationRoleHyponym  RelationRole = "hyponym"
	RelationRoleHypernym RelationRole = "hypernym"
	RelationRoleSeeAlso  RelationRole = "seealso"
)

func (r RelationRole) String() string { return string(r) }

func (r RelationRole) IsValid() bool {
	switch r {
	case RelationRoleHomonym, RelationRoleSynonym, RelationRoleVariant,
		RelationRoleAntonym, RelationRoleHyponym, RelationRoleHypernym,
		RelationRoleSeeAlso:
		return true
	}
	return false
}

// RelationRoles returns (role, label) pairs for the static relation role list.
func RelationRoles() []struct{ Role, Label string } {
	return []struct{ Role, Label string }{
		{string(RelationRoleHomonym), "Homonym"},
		{string(RelationRoleSynonym), "Synonym"},
		{string(RelationRoleVariant), "Variant"},
		{string(RelationRoleAntonym), "Antonym"},
		{string(RelationRoleHyponym), "Hyponym"},
		{string(RelationRoleHypernym), "Hypernym"},
		{string(RelationRoleSeeAlso), "See Also"},
	}
}

// Relation is a directed edge between two glosses. Role is a MorphologyType
// machine value, nil when untyped.
type Relation struct {
	ID       int64
	SourceID int64
	TargetID int64
	Role     *int
}

// MorphologyDefinition records that Morpheme is a morphological constituent
// of ParentGloss under the given MorphologyType role.
type MorphologyDefinition struct {
	ID            int64
	ParentGlossID int64
	Role          *int
	MorphemeID    int64
}

// RelationToForeignSign notes that a gloss corresponds to (and possibly
// borrows from) a sign in another sign language. Natural order is
// (gloss, loan, other_lang, other_lang_gloss).
type RelationToForeignSign struct {
	ID             int64
	GlossID        int64
	Loan           bool
	OtherLang      string
	OtherLangGloss string
}
