package model

// BacklogID is the id of the synthetic backlog column. The store
// synthesizes it in front of the persisted columns; it never appears in
// the columns record on the remote branch.
const BacklogID = "backlog"

// BacklogStatus is the status assigned to tickets that carry none.
const BacklogStatus = "backlog"

// Column maps one or more ticket status strings to a board lane. Ordering
// on the board is declaration order in the columns record.
type Column struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Statuses []string `json:"statuses" yaml:"statuses"`
}

// Matches reports whether a ticket status belongs to this column.
func (c *Column) Matches(status string) bool {
	for _, s := range c.Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// BacklogColumn returns the synthetic backlog column.
func BacklogColumn() Column {
	return Column{
		ID:       BacklogID,
		Title:    "Backlog",
		Statuses: []string{BacklogStatus},
	}
}

// DefaultColumns returns the columns seeded into a fresh board, in board
// order. The backlog column is not among them; it is synthesized.
func DefaultColumns() []Column {
	return []Column{
		{ID: "todo", Title: "To Do", Statuses: []string{"todo"}},
		{ID: "in-progress", Title: "In Progress", Statuses: []string{"in-progress", "doing"}},
		{ID: "review", Title: "Review", Statuses: []string{"review"}},
		{ID: "done", Title: "Done", Statuses: []string{"done", "closed"}},
	}
}
