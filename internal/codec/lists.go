package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tracketdev/tracket/internal/model"
)

// Collection keys of the three list-style records.
const (
	columnsKey     = "columns"
	ticketTypesKey = "ticketTypes"
	versionsKey    = "versions"
)

// decodeListRecord reads a list-style record. Both encodings that appear
// in the wild are accepted: a bare sequence, or an object holding the
// sequence under its collection key. Serialization always emits the keyed
// form; the dual acceptance is for hand-authored files and must be kept.
func decodeListRecord[T any](data []byte, key string) ([]T, error) {
	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("decoding %s record: %w", key, err)
	}
	if len(document.Content) == 0 {
		// Empty file: an empty collection, not an error.
		return nil, nil
	}

	root := document.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var items []T
		if err := root.Decode(&items); err != nil {
			return nil, fmt.Errorf("decoding %s record: %w", key, err)
		}
		return items, nil

	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			if root.Content[i].Value != key {
				continue
			}
			var items []T
			if err := root.Content[i+1].Decode(&items); err != nil {
				return nil, fmt.Errorf("decoding %s record: %w", key, err)
			}
			return items, nil
		}
		return nil, fmt.Errorf("decoding %s record: missing %q key", key, key)

	default:
		return nil, fmt.Errorf("decoding %s record: expected a sequence or a keyed object", key)
	}
}

// encodeListRecord writes a list-style record in the keyed-object form.
func encodeListRecord[T any](items []T, key string) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	data, err := yaml.Marshal(map[string][]T{key: items})
	if err != nil {
		return nil, fmt.Errorf("encoding %s record: %w", key, err)
	}
	return data, nil
}

// DecodeColumns reads the board columns record.
func DecodeColumns(data []byte) ([]model.Column, error) {
	return decodeListRecord[model.Column](data, columnsKey)
}

// EncodeColumns writes the board columns record.
func EncodeColumns(columns []model.Column) ([]byte, error) {
	return encodeListRecord(columns, columnsKey)
}

// DecodeTicketTypes reads the ticket types record.
func DecodeTicketTypes(data []byte) ([]model.TicketType, error) {
	return decodeListRecord[model.TicketType](data, ticketTypesKey)
}

// EncodeTicketTypes writes the ticket types record.
func EncodeTicketTypes(types []model.TicketType) ([]byte, error) {
	return encodeListRecord(types, ticketTypesKey)
}

// DecodeVersions reads the shared versions record.
func DecodeVersions(data []byte) ([]model.Version, error) {
	return decodeListRecord[model.Version](data, versionsKey)
}

// EncodeVersions writes the shared versions record.
func EncodeVersions(versions []model.Version) ([]byte, error) {
	return encodeListRecord(versions, versionsKey)
}
