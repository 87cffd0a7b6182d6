package domain

// FieldChoice is one row of the dynamic choice-list lookup store: a human
// label for a numeric machine value, scoped to a named gloss field.
// Machine values are unique across the whole table regardless of field.
type FieldChoice struct {
	ID           int64
	Field        string
	EnglishName  string
	MachineValue int
}

// Lookup-store field names for gloss attributes. Each gloss attribute code
// references a FieldChoice row scoped to the matching field.
const (
	FieldHandedness                  = "handedness"
	FieldStrongHandshape             = "strong_handshape"
	FieldWeakHandshape               = "weak_handshape"
	FieldLocation                    = "location"
	FieldRelationBetweenArticulators = "relation_between_articulators"
	FieldAbsOrientationPalm          = "absolute_orientation_palm"
	FieldAbsOrientationFingers       = "absolute_orientation_fingers"
	FieldRelOrientationMovement      = "relative_orientation_movement"
	FieldRelOrientationLocation      = "relative_orientation_location"
	FieldOrientationChange           = "orientation_change"
	FieldHandshapeChange             = "handshape_change"
	FieldMovementShape               = "movement_shape"
	FieldMovementDirection           = "movement_direction"
	FieldMovementManner              = "movement_manner"
	FieldContactType                 = "contact_type"
	FieldNamedEntity                 = "named_entity"
	FieldSemanticField               = "semantic_field"
	FieldMorphologyType              = "MorphologyType"
)

// ChoiceListFields is the ordered set of gloss fields whose choice lists are
// serialized for the editing UI. repeated_movement and alternating_movement
// are boolean gloss fields with no lookup rows; they still appear here and
// yield empty objects, which the UI relies on.
func ChoiceListFields() []string {
	return []string{
		FieldHandedness,
		FieldLocation,
		FieldStrongHandshape,
		FieldWeakHandshape,
		FieldRelationBetweenArticulators,
		FieldAbsOrientationPalm,
		FieldAbsOrientationFingers,
		FieldRelOrientationMovement,
		FieldRelOrientationLocation,
		FieldHandshapeChange,
		"repeated_movement",
		"alternating_movement",
		FieldMovementShape,
		FieldMovementDirection,
		FieldMovementManner,
		FieldContactType,
		FieldNamedEntity,
		FieldOrientationChange,
		FieldSemanticField,
	}
}
