package api

import "strings"

// NormalizeMediaURL converts a backend-returned media path into an absolute
// URL. Server paths may contain OS-specific backslashes and may be relative;
// backslashes become forward slashes and anything not starting with "http"
// is resolved against the media base. Already-absolute URLs pass through
// unchanged, so the function is idempotent.
func NormalizeMediaURL(mediaBase, p string) string {
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, `\`, "/")
	if strings.HasPrefix(p, "http") {
		return p
	}
	return strings.TrimRight(mediaBase, "/") + "/" + strings.TrimLeft(p, "/")
}

func (c *Client) normalizeMedia(p string) string {
	return NormalizeMediaURL(c.mediaBaseURL, p)
}

func (c *Client) normalizeMediaList(paths []string) []string {
	if paths == nil {
		return nil
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = c.normalizeMedia(p)
	}
	return out
}
