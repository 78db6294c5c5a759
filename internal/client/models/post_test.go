package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortCommentsByLikes(t *testing.T) {
	in := []Comment{
		{ID: 1, LikesCount: 0},
		{ID: 2, LikesCount: 5},
		{ID: 3, LikesCount: 2},
		{ID: 4, LikesCount: 5},
	}

	got := SortCommentsByLikes(in)

	// descending, ties keep input order
	ids := []int64{got[0].ID, got[1].ID, got[2].ID, got[3].ID}
	require.Equal(t, []int64{2, 4, 3, 1}, ids)

	// original slice untouched
	require.Equal(t, int64(1), in[0].ID)
	require.Equal(t, int64(2), in[1].ID)
}

func TestPostCloneDeepCopiesMedia(t *testing.T) {
	p := &Post{ID: 1, MediaURLs: []string{"a", "b"}}
	c := p.Clone()
	c.MediaURLs[0] = "changed"
	require.Equal(t, "a", p.MediaURLs[0])
}

func TestPostCloneNil(t *testing.T) {
	var p *Post
	require.Nil(t, p.Clone())
}
