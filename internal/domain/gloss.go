package domain

import (
	"time"

	"github.com/google/uuid"
)

// Gloss is a sign-language dictionary entry: the root aggregate of the
// dictionary. Phonology and semantics attributes are stored as machine-value
// codes referencing the FieldChoice lookup store; labels are resolved at read
// time through the choices cache, not persisted on the gloss.
type Gloss struct {
	ID int64

	// IDGloss is the unique identifying name of the sign entry.
	IDGloss string

	// Regional annotation names used by corpus annotators, with their English
	// counterparts. Unlike IDGloss these may be shared between entries.
	AnnotationIDGlossJKL   string
	AnnotationIDGlossJKLEn string
	AnnotationIDGlossHKI   string
	AnnotationIDGlossHKIEn string

	AnnotationComments string
	URL                string
	Locked             bool

	// Phonology codes (FieldChoice machine values, nil when unset).
	Handedness                  *int
	StrongHandshape             *int
	WeakHandshape               *int
	Location                    *int
	RelationBetweenArticulators *int
	AbsOrientationPalm          *int
	AbsOrientationFingers       *int
	RelOrientationMovement      *int
	RelOrientationLocation      *int
	OrientationChange           *int
	HandshapeChange             *int
	MovementShape               *int
	MovementDirection           *int
	MovementManner              *int
	ContactType                 *int

	RepeatedMovement    *bool
	AlternatingMovement *bool

	PhonologyOther    string
	MouthGesture      string
	Mouthing          string
	PhoneticVariation string

	// Semantics.
	IconicImage   string
	NamedEntity   *int
	SemanticField *int

	// NumberOfOccurrences counts appearances in annotation materials.
	NumberOfOccurrences *int

	// Publication status.
	InWebDictionary   bool
	IsProposedNewSign bool

	CreatedAt time.Time
	CreatedBy *uuid.UUID
	UpdatedAt time.Time
	UpdatedBy *uuid.UUID

	Languages []Language
	Dialects  []Dialect
}

// AttributeCodes maps each lookup-backed attribute to its field name and
// current code. Used to resolve display labels against the choices cache.
func (g *Gloss) AttributeCodes() map[string]*int {
	return map[string]*int{
		FieldHandedness:                  g.Handedness,
		FieldStrongHandshape:             g.StrongHandshape,
		FieldWeakHandshape:               g.WeakHandshape,
		FieldLocation:                    g.Location,
		FieldRelationBetweenArticulators: g.RelationBetweenArticulators,
		FieldAbsOrientationPalm:          g.AbsOrientationPalm,
		FieldAbsOrientationFingers:       g.AbsOrientationFingers,
		FieldRelOrientationMovement:      g.RelOrientationMovement,
		FieldRelOrientationLocation:      g.RelOrientationLocation,
		FieldOrientationChange:           g.OrientationChange,
		FieldHandshapeChange:             g.HandshapeChange,
		FieldMovementShape:               g.MovementShape,
		FieldMovementDirection:           g.MovementDirection,
		FieldMovementManner:              g.MovementManner,
		FieldContactType:                 g.ContactType,
		FieldNamedEntity:                 g.NamedEntity,
		FieldSemanticField:               g.SemanticField,
	}
}

// GlossSummary is the subset of gloss data carried on resolved translations.
type GlossSummary struct {
	ID              int64
	IDGloss         string
	InWebDictionary bool
}
