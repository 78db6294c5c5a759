package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeMediaURL(t *testing.T) {
	const base = "https://media.petbook.example"

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"absolute http untouched", "http://cdn/x.jpg", "http://cdn/x.jpg"},
		{"absolute https untouched", "https://cdn/x.jpg", "https://cdn/x.jpg"},
		{"relative path resolved", "uploads/x.jpg", base + "/uploads/x.jpg"},
		{"leading slash", "/uploads/x.jpg", base + "/uploads/x.jpg"},
		{"windows separators", `uploads\pets\x.jpg`, base + "/uploads/pets/x.jpg"},
		{"mixed separators with leading backslash", `\uploads\x.jpg`, base + "/uploads/x.jpg"},
		{"empty stays empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, NormalizeMediaURL(base, tc.in))
		})
	}
}

func TestNormalizeMediaURL_Idempotent(t *testing.T) {
	const base = "https://media.petbook.example"
	once := NormalizeMediaURL(base, `uploads\x.jpg`)
	require.Equal(t, once, NormalizeMediaURL(base, once))
}

func TestNormalizeMediaURL_TrailingSlashBase(t *testing.T) {
	require.Equal(t,
		"https://m/x.jpg",
		NormalizeMediaURL("https://m/", "x.jpg"))
}
