// Package feed owns the paginated post list and its optimistic mutations.
//
// Pagination is offset/limit with the end inferred from a short page. Every
// mutation applies its tentative state before the request goes out and keeps
// the rollback snapshot next to the optimistic apply, so the two cannot
// drift apart.
package feed

import (
	"context"
	"fmt"
	"sync"

	"github.com/avelichko/petbook/internal/client/models"
	"github.com/avelichko/petbook/internal/common"
	"github.com/avelichko/petbook/internal/logging"
)

// DefaultPageSize matches the reference UI's page of ten posts.
const DefaultPageSize = 10

// postsAPI is the slice of the API client the controller needs.
type postsAPI interface {
	ListPosts(ctx context.Context, skip, limit int) ([]models.Post, error)
	CreatePost(ctx context.Context, petID int64, content, location string, filePaths []string) (*models.Post, error)
	UpdatePost(ctx context.Context, id int64, content, location *string) error
	UploadPostMedia(ctx context.Context, postID int64, filePath string) (string, error)
	DeletePost(ctx context.Context, id int64) error
	CreateReaction(ctx context.Context, postID, petID int64) (int64, error)
	DeleteReaction(ctx context.Context, reactionID int64) error
	AddComment(ctx context.Context, postID, petID int64, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, commentID int64) error
}

// activePetSource supplies the acting pet for authoring operations.
type activePetSource interface {
	ActivePet() *models.Pet
}

type Controller struct {
	api      postsAPI
	pets     activePetSource
	log      logging.Logger
	pageSize int

	mu      sync.Mutex
	posts   []models.Post
	page    int
	hasMore bool
	loading bool
	stalled bool
}

func New(api postsAPI, pets activePetSource, log logging.Logger, pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller{api: api, pets: pets, log: log, pageSize: pageSize}
}

// LoadInitial fetches page zero and replaces the feed wholesale. hasMore is
// true iff the page came back full; a short page is the termination signal,
// there is no total count.
func (c *Controller) LoadInitial(ctx context.Context) error {
	return c.loadPageZero(ctx)
}

// Refresh is LoadInitial under another name: cursor back to zero, wholesale
// replace. Used after create/delete instead of fine-grained cursor patching.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.loadPageZero(ctx)
}

func (c *Controller) loadPageZero(ctx context.Context) error {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return nil
	}
	c.loading = true
	c.mu.Unlock()

	posts, err := c.api.ListPosts(ctx, 0, c.pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.log.Warn(ctx, "feed load failed", "error", err)
		return err
	}
	c.posts = posts
	c.page = 1
	c.hasMore = len(posts) == c.pageSize
	c.stalled = false
	return nil
}

// LoadMore appends the next page. It is a no-op while a fetch is in flight,
// after the end of the feed, or while stalled by a previous failure. On
// failure the already loaded items stay intact and the controller stalls
// until RetryLoadMore.
func (c *Controller) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.loading || !c.hasMore || c.stalled {
		c.mu.Unlock()
		return nil
	}
	c.loading = true
	offset := c.page * c.pageSize
	c.mu.Unlock()

	posts, err := c.api.ListPosts(ctx, offset, c.pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.stalled = true
		c.log.Warn(ctx, "feed page load failed", "offset", offset, "error", err)
		return err
	}
	c.posts = append(c.posts, posts...)
	c.page++
	c.hasMore = len(posts) == c.pageSize
	return nil
}

// RetryLoadMore clears the stall left by a failed LoadMore and tries again.
func (c *Controller) RetryLoadMore(ctx context.Context) error {
	c.mu.Lock()
	c.stalled = false
	c.mu.Unlock()
	return c.LoadMore(ctx)
}

// CreatePost publishes a post as the acting pet, then refreshes the feed.
func (c *Controller) CreatePost(ctx context.Context, content, location string, filePaths []string) error {
	pet := c.pets.ActivePet()
	if pet == nil {
		return common.ErrNoActivePet
	}
	if content == "" && len(filePaths) == 0 {
		return fmt.Errorf("%w: a post needs text or media", common.ErrValidation)
	}

	if _, err := c.api.CreatePost(ctx, pet.ID, content, location, filePaths); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// Delete removes the post from the in-memory list before the request is
// issued; the caller sees the shorter list immediately. A failed request
// restores the snapshot; a successful one triggers Refresh to resync
// pagination.
func (c *Controller) Delete(ctx context.Context, postID int64) error {
	c.mu.Lock()
	idx := c.indexLocked(postID)
	if idx < 0 {
		c.mu.Unlock()
		return fmt.Errorf("%w: post %d", common.ErrNotFound, postID)
	}
	snapshot := c.posts[idx].Clone()
	c.posts = append(c.posts[:idx], c.posts[idx+1:]...)
	c.mu.Unlock()

	if err := c.api.DeletePost(ctx, postID); err != nil {
		c.mu.Lock()
		if idx > len(c.posts) {
			idx = len(c.posts)
		}
		c.posts = append(c.posts[:idx], append([]models.Post{*snapshot}, c.posts[idx:]...)...)
		c.mu.Unlock()
		return err
	}

	return c.Refresh(ctx)
}

// EditPatch describes an edit. Nil text fields are left untouched;
// MediaFiles are appended, one upload per file.
type EditPatch struct {
	Content    *string
	Location   *string
	MediaFiles []string
}

func (p EditPatch) hasText() bool {
	return p.Content != nil || p.Location != nil
}

// EditResult reports the outcome of a two-phase edit. A failed text phase
// aborts everything (the error return carries it); per-file upload failures
// are collected so partial success stays distinguishable from full success.
type EditResult struct {
	TextUpdated  bool
	UploadedURLs []string
	FailedFiles  []string
}

// PartialSuccess is true when the text update landed but at least one media
// upload did not.
func (r EditResult) PartialSuccess() bool {
	return len(r.FailedFiles) > 0 && (r.TextUpdated || len(r.UploadedURLs) > 0)
}

// Edit applies a two-phase update: text fields first in a single request,
// then each new media file sequentially. The text phase failing aborts the
// media phase. Media failures are caught per file and never abort the
// remaining uploads; previously uploaded files in the same batch stay
// uploaded.
func (c *Controller) Edit(ctx context.Context, postID int64, patch EditPatch) (EditResult, error) {
	var result EditResult

	if patch.hasText() {
		if err := c.api.UpdatePost(ctx, postID, patch.Content, patch.Location); err != nil {
			return EditResult{}, err
		}
		result.TextUpdated = true

		c.mu.Lock()
		if idx := c.indexLocked(postID); idx >= 0 {
			if patch.Content != nil {
				c.posts[idx].Content = *patch.Content
			}
			if patch.Location != nil {
				c.posts[idx].Location = *patch.Location
			}
		}
		c.mu.Unlock()
	}

	for _, file := range patch.MediaFiles {
		url, err := c.api.UploadPostMedia(ctx, postID, file)
		if err != nil {
			c.log.Warn(ctx, "media upload failed", "post_id", postID, "file", file, "error", err)
			result.FailedFiles = append(result.FailedFiles, file)
			continue
		}
		result.UploadedURLs = append(result.UploadedURLs, url)

		c.mu.Lock()
		if idx := c.indexLocked(postID); idx >= 0 {
			c.posts[idx].MediaURLs = append(c.posts[idx].MediaURLs, url)
		}
		c.mu.Unlock()
	}

	return result, nil
}

// ReactionResult is the outcome of ToggleReaction.
type ReactionResult struct {
	Liked      bool
	ReactionID int64
}

// ToggleReaction likes or unlikes a post as petID. The reaction count is
// flipped optimistically and rolled back if the request fails. A zero
// existingReactionID means "not yet liked".
func (c *Controller) ToggleReaction(ctx context.Context, postID, existingReactionID, petID int64) (ReactionResult, error) {
	delta := 1
	if existingReactionID != 0 {
		delta = -1
	}
	c.adjustReactions(postID, delta)

	if existingReactionID != 0 {
		if err := c.api.DeleteReaction(ctx, existingReactionID); err != nil {
			c.adjustReactions(postID, -delta)
			return ReactionResult{}, err
		}
		return ReactionResult{Liked: false}, nil
	}

	reactionID, err := c.api.CreateReaction(ctx, postID, petID)
	if err != nil {
		c.adjustReactions(postID, -delta)
		return ReactionResult{}, err
	}
	return ReactionResult{Liked: true, ReactionID: reactionID}, nil
}

// Comment adds a comment as the acting pet, bumping the counter
// optimistically and rolling back on failure.
func (c *Controller) Comment(ctx context.Context, postID int64, content string) (*models.Comment, error) {
	pet := c.pets.ActivePet()
	if pet == nil {
		return nil, common.ErrNoActivePet
	}
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", common.ErrValidation)
	}

	c.adjustComments(postID, 1)
	comment, err := c.api.AddComment(ctx, postID, pet.ID, content)
	if err != nil {
		c.adjustComments(postID, -1)
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment, decrementing the post's counter
// optimistically and rolling back on failure.
func (c *Controller) DeleteComment(ctx context.Context, postID, commentID int64) error {
	c.adjustComments(postID, -1)
	if err := c.api.DeleteComment(ctx, commentID); err != nil {
		c.adjustComments(postID, 1)
		return err
	}
	return nil
}

func (c *Controller) adjustReactions(postID int64, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx := c.indexLocked(postID); idx >= 0 {
		c.posts[idx].ReactionsCount += delta
		if c.posts[idx].ReactionsCount < 0 {
			c.posts[idx].ReactionsCount = 0
		}
	}
}

func (c *Controller) adjustComments(postID int64, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx := c.indexLocked(postID); idx >= 0 {
		c.posts[idx].CommentsCount += delta
		if c.posts[idx].CommentsCount < 0 {
			c.posts[idx].CommentsCount = 0
		}
	}
}

func (c *Controller) indexLocked(postID int64) int {
	for i := range c.posts {
		if c.posts[i].ID == postID {
			return i
		}
	}
	return -1
}

// Posts returns a copy of the current feed, in backend order.
func (c *Controller) Posts() []models.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Post, len(c.posts))
	for i := range c.posts {
		out[i] = *c.posts[i].Clone()
	}
	return out
}

// HasMore reports whether another page may exist.
func (c *Controller) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMore
}

// Page returns the zero-based cursor of the next page to fetch.
func (c *Controller) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Stalled reports whether the scroll trigger is paused after a failed
// LoadMore.
func (c *Controller) Stalled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stalled
}
