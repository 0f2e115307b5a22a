package model

// Built-in ticket type ids. Custom ids are allowed; anything the board's
// ticket-types record defines is valid.
const (
	TypeTask    = "task"
	TypeBug     = "bug"
	TypeFeature = "feature"
	TypeEpic    = "epic"
)

// TicketType describes the cosmetic metadata of a ticket category.
type TicketType struct {
	ID    string `json:"id" yaml:"id"`
	Icon  string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// BuiltinTicketTypes returns the four default ticket types in display
// order. The slice is freshly allocated; callers may append custom types.
func BuiltinTicketTypes() []TicketType {
	return []TicketType{
		{ID: TypeTask, Icon: "■", Color: "blue"},
		{ID: TypeBug, Icon: "●", Color: "red"},
		{ID: TypeFeature, Icon: "▲", Color: "green"},
		{ID: TypeEpic, Icon: "◆", Color: "magenta"},
	}
}

// TicketTypeByID returns the matching type from types, or a plain fallback
// carrying just the id, so custom ids always render.
func TicketTypeByID(types []TicketType, id string) TicketType {
	for _, t := range types {
		if t.ID == id {
			return t
		}
	}
	return TicketType{ID: id, Icon: "■", Color: "white"}
}
