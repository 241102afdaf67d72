package gelfconv

import (
	"strings"
)

// AddAdditionalField stores value as a GELF additional field. Only string
// values are kept; anything else is dropped and false is returned.
func (d *Document) AddAdditionalField(key string, value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	d.Set(AdditionalFieldKey(key), s)
	return true
}

// AdditionalFieldKey derives the "_"-prefixed name an additional field is
// stored under. "id" and "_id" in any case become "_id_"; GELF reserves "_id".
func AdditionalFieldKey(key string) string {
	if strings.EqualFold(key, "id") {
		key = "id_"
	}
	if !strings.HasPrefix(key, "_") {
		key = "_" + key
	}
	if strings.EqualFold(key, "_id") {
		key = "_id_"
	}
	return key
}
