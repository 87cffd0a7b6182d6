package choices

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/finsl/signbank-backend/internal/domain"
)

// ChoiceLists serializes every gloss choice field plus morphology_role into
// one JSON object for the editing UI. Each field maps to an object whose keys
// are the "_"-prefixed string form of the code (raw numeric keys are not safe
// as DOM identifiers) and whose entries are emitted in label-sorted order.
func (s *Service) ChoiceLists() (json.RawMessage, error) {
	lists := make(map[string]json.RawMessage)

	for _, field := range domain.ChoiceListFields() {
		obj, err := s.labelSortedObject(field)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field, err)
		}
		lists[field] = obj
	}

	obj, err := s.labelSortedObject(domain.FieldMorphologyType)
	if err != nil {
		return nil, fmt.Errorf("field morphology_role: %w", err)
	}
	lists["morphology_role"] = obj

	// Top-level keys marshal in sorted order, keeping the payload stable.
	return json.Marshal(lists)
}

// labelSortedObject hand-builds a JSON object so member order follows the
// label sort; encoding/json would re-sort map keys by code.
func (s *Service) labelSortedObject(field string) (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, c := range s.sortedByLabel(field) {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal("_" + strconv.Itoa(c.MachineValue))
		if err != nil {
			return nil, err
		}
		label, err := json.Marshal(c.EnglishName)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(label)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
