package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/avelichko/petbook/internal/client/models"
)

// ListPosts fetches a feed page. Posts come back in backend order
// (reverse-chronological); the client never re-sorts. The end of the feed is
// inferred from a short page, not from a total count.
func (c *Client) ListPosts(ctx context.Context, skip, limit int) ([]models.Post, error) {
	path := fmt.Sprintf("/posts/?skip=%d&limit=%d", skip, limit)
	return c.postList(ctx, path)
}

func (c *Client) MyPosts(ctx context.Context) ([]models.Post, error) {
	return c.postList(ctx, "/posts/my-posts")
}

// CreatePost publishes a post authored by petID, with optional media files
// attached in one multipart request.
func (c *Client) CreatePost(ctx context.Context, petID int64, content, location string, filePaths []string) (*models.Post, error) {
	fields := map[string]string{
		"pet_id": strconv.FormatInt(petID, 10),
	}
	if content != "" {
		fields["content"] = content
	}
	if location != "" {
		fields["location"] = location
	}

	files := make([]multipartFile, 0, len(filePaths))
	for _, p := range filePaths {
		files = append(files, multipartFile{field: "files", path: p})
	}

	var created models.Post
	if err := c.sendMultipart(ctx, http.MethodPost, "/posts/", fields, files, &created); err != nil {
		return nil, err
	}
	created.MediaURLs = c.normalizeMediaList(created.MediaURLs)
	return &created, nil
}

// UpdatePost changes text fields only; media goes through UploadPostMedia.
// Nil means "leave the field alone"; a pointer to the empty string clears it
// server-side, so set fields are always sent, empty or not.
func (c *Client) UpdatePost(ctx context.Context, id int64, content, location *string) error {
	body := map[string]string{}
	if content != nil {
		body["content"] = *content
	}
	if location != nil {
		body["location"] = *location
	}
	return c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/posts/%d", id), body, nil)
}

// UploadPostMedia attaches one file to an existing post and returns the
// stored file's normalized URL.
func (c *Client) UploadPostMedia(ctx context.Context, postID int64, filePath string) (string, error) {
	var resp struct {
		MediaURL string `json:"media_url"`
	}
	err := c.sendMultipart(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/media", postID),
		nil, []multipartFile{{field: "file", path: filePath}}, &resp)
	if err != nil {
		return "", err
	}
	return c.normalizeMedia(resp.MediaURL), nil
}

func (c *Client) DeletePost(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", id), "", nil)
	return err
}

// CreateReaction likes a post on behalf of petID and returns the reaction id
// needed to undo it.
func (c *Client) CreateReaction(ctx context.Context, postID, petID int64) (int64, error) {
	body := map[string]int64{"pet_id": petID}
	var resp models.Reaction
	if err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/reactions", postID), body, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *Client) DeleteReaction(ctx context.Context, reactionID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/reactions/%d", reactionID), "", nil)
	return err
}

func (c *Client) Comments(ctx context.Context, postID int64) ([]models.Comment, error) {
	data, err := c.getRaw(ctx, fmt.Sprintf("/posts/%d/comments", postID))
	if err != nil {
		return nil, err
	}
	return decodeList[models.Comment](data)
}

func (c *Client) AddComment(ctx context.Context, postID, petID int64, content string) (*models.Comment, error) {
	body := map[string]any{"pet_id": petID, "content": content}
	var comment models.Comment
	if err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/comments", postID), body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) DeleteComment(ctx context.Context, commentID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/comments/%d", commentID), "", nil)
	return err
}

func (c *Client) postList(ctx context.Context, path string) ([]models.Post, error) {
	data, err := c.getRaw(ctx, path)
	if err != nil {
		return nil, err
	}
	posts, err := decodeList[models.Post](data)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].MediaURLs = c.normalizeMediaList(posts[i].MediaURLs)
	}
	return posts, nil
}
