package models

// Pet is a pet profile. Profile fields beyond the identifying ones are
// carried through without interpretation; the client never derives state
// from them.
type Pet struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id,omitempty"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
	BreedID  int64  `json:"breed_id,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Bio      string `json:"bio,omitempty"`
	City     string `json:"city,omitempty"`
}

// Clone returns a copy safe to hand out to readers.
func (p *Pet) Clone() *Pet {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// FollowCounts is the body of GET /pets/{id}/follow-counts.
type FollowCounts struct {
	Followers int `json:"followers"`
	Following int `json:"following"`
}
