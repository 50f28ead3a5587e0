package models

import "encoding/json"

// Recognized preference keys. Anything else round-trips through Extra.
const (
	prefKeyTeam     = "ipl_team"
	prefKeyFood     = "favorite_food"
	prefKeyLocation = "location"
)

// Preferences holds the per-user personalization fields the assembler knows
// how to render, plus an open extension map so unrecognized keys written by
// older or newer clients survive a read-modify-write cycle.
type Preferences struct {
	FavoriteTeam string
	FavoriteFood string
	Location     string
	Extra        map[string]string
}

// IsZero reports whether no preference fields are set.
func (p Preferences) IsZero() bool {
	return p.FavoriteTeam == "" && p.FavoriteFood == "" && p.Location == "" && len(p.Extra) == 0
}

// MarshalJSON flattens the struct into a single JSON object, recognized keys
// alongside any extension keys.
func (p Preferences) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, 3+len(p.Extra))
	for k, v := range p.Extra {
		m[k] = v
	}
	if p.FavoriteTeam != "" {
		m[prefKeyTeam] = p.FavoriteTeam
	}
	if p.FavoriteFood != "" {
		m[prefKeyFood] = p.FavoriteFood
	}
	if p.Location != "" {
		m[prefKeyLocation] = p.Location
	}
	return json.Marshal(m)
}

// UnmarshalJSON lifts recognized keys into struct fields and keeps the rest
// in Extra.
func (p *Preferences) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*p = Preferences{}
	for k, v := range m {
		switch k {
		case prefKeyTeam:
			p.FavoriteTeam = v
		case prefKeyFood:
			p.FavoriteFood = v
		case prefKeyLocation:
			p.Location = v
		default:
			if p.Extra == nil {
				p.Extra = make(map[string]string)
			}
			p.Extra[k] = v
		}
	}
	return nil
}
