package domain

// Block is the observation returned by sensing an occupied cell.
type Block struct {
	// Name is the cell identifier tested against the denylist.
	Name string `json:"name"`
}
