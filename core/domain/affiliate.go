// ABOUTME: Affiliate domain model represents a tracked person on the roster
// ABOUTME: The roster is fixed at startup and never mutated at runtime

package domain

// Affiliate represents a tracked person whose publications the system
// searches for. Identity is the display name, unique within the roster.
type Affiliate struct {
	// Name is the affiliate's display name
	Name string
}

// DefaultRoster returns the built-in affiliate roster used when no
// roster override is configured.
func DefaultRoster() []Affiliate {
	names := []string{
		"Zain Abdullah",
		"Matthew Abraham",
		"Atiya Aftab",
		"Ghada Ageel",
		"Nadia Ahmad",
		"Aziza Ahmed",
		"Susan M. Akram",
		"M. Shahid Alam",
		"Khaled A. Beydoun",
		"Sahar Aziz",
	}

	roster := make([]Affiliate, 0, len(names))
	for _, name := range names {
		roster = append(roster, Affiliate{Name: name})
	}
	return roster
}

// RosterNames returns the display names of a roster in order.
func RosterNames(roster []Affiliate) []string {
	names := make([]string, 0, len(roster))
	for _, a := range roster {
		names = append(names, a.Name)
	}
	return names
}
