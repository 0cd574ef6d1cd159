package models

// Space represents one independently-configured guesthouse or shared
// living space. Spaces are created and administered by the management
// application; the scheduler only enumerates them.
type Space struct {
	// ID is the unique identifier for the space.
	ID string

	// Name is the display name of the space (e.g., "Lounge AP").
	// Falls back to the ID in reports when empty.
	Name string

	// CreatedAt is the Unix timestamp when the space was created.
	CreatedAt int64
}

// DisplayName returns the space name, or the ID if no name is set.
func (s Space) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}
