package models

import (
	"sort"
	"time"
)

// Post is a feed item. MediaURLs are always absolute by the time a Post
// leaves the API layer; see api.NormalizeMediaURL.
type Post struct {
	ID             int64     `json:"id"`
	PetID          int64     `json:"pet_id"`
	UserID         int64     `json:"user_id"`
	Content        string    `json:"content,omitempty"`
	MediaURLs      []string  `json:"media_urls,omitempty"`
	Location       string    `json:"location,omitempty"`
	ReactionsCount int       `json:"reactions_count"`
	CommentsCount  int       `json:"comments_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// Clone returns a deep copy (MediaURLs included).
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	c := *p
	c.MediaURLs = append([]string(nil), p.MediaURLs...)
	return &c
}

// Comment belongs to a post and is authored by a pet.
type Comment struct {
	ID         int64     `json:"id"`
	PostID     int64     `json:"post_id"`
	PetID      int64     `json:"pet_id"`
	Content    string    `json:"content"`
	LikesCount int       `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// Reaction is a pet's like on a post.
type Reaction struct {
	ID     int64 `json:"id"`
	PostID int64 `json:"post_id"`
	PetID  int64 `json:"pet_id"`
}

// SortCommentsByLikes orders comments by descending like count for display.
// The sort is stable so the backend's order breaks ties. Display-only: the
// input slice is not modified.
func SortCommentsByLikes(comments []Comment) []Comment {
	out := append([]Comment(nil), comments...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LikesCount > out[j].LikesCount
	})
	return out
}
