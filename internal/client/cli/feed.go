package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/avelichko/petbook/internal/client/feed"
	"github.com/avelichko/petbook/internal/client/models"
)

func (a *App) printPostList(posts []models.Post) {
	for _, p := range posts {
		fmt.Fprintf(a.out, "#%d [pet %d] %s\n", p.ID, p.PetID, p.Content)
		if p.Location != "" {
			fmt.Fprintf(a.out, "    at %s\n", p.Location)
		}
		for _, u := range p.MediaURLs {
			fmt.Fprintf(a.out, "    media: %s\n", u)
		}
		fmt.Fprintf(a.out, "    %d likes, %d comments, %s\n",
			p.ReactionsCount, p.CommentsCount, p.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func (a *App) printPosts(posts []models.Post) {
	if len(posts) == 0 {
		fmt.Fprintln(a.out, "The feed is empty.")
		return
	}
	a.printPostList(posts)
	if a.feed.Stalled() {
		fmt.Fprintln(a.out, "Loading more failed earlier, 'more' will retry.")
	} else if a.feed.HasMore() {
		fmt.Fprintln(a.out, "Type 'more' for older posts.")
	}
}

func (a *App) Feed(ctx context.Context) error {
	if !a.requireSession() {
		return nil
	}
	if err := a.feed.LoadInitial(ctx); err != nil {
		fmt.Fprintf(a.out, "Could not load the feed: %v\n", err)
		return err
	}
	a.printPosts(a.feed.Posts())
	return nil
}

func (a *App) More(ctx context.Context) error {
	if !a.requireSession() {
		return nil
	}

	before := len(a.feed.Posts())
	var err error
	if a.feed.Stalled() {
		err = a.feed.RetryLoadMore(ctx)
	} else {
		err = a.feed.LoadMore(ctx)
	}
	if err != nil {
		fmt.Fprintf(a.out, "Could not load more: %v\n", err)
		return err
	}

	posts := a.feed.Posts()
	if len(posts) == before {
		fmt.Fprintln(a.out, "No more posts.")
		return nil
	}
	a.printPosts(posts[before:])
	return nil
}

func (a *App) RefreshFeed(ctx context.Context) error {
	if !a.requireSession() {
		return nil
	}
	if err := a.feed.Refresh(ctx); err != nil {
		fmt.Fprintf(a.out, "Could not refresh: %v\n", err)
		return err
	}
	a.printPosts(a.feed.Posts())
	return nil
}

// MyPosts lists the session user's own posts across all their pets.
func (a *App) MyPosts(ctx context.Context) error {
	if !a.requireSession() {
		return nil
	}
	posts, err := a.api.MyPosts(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Could not load your posts: %v\n", err)
		return err
	}
	if len(posts) == 0 {
		fmt.Fprintln(a.out, "You have not posted anything yet.")
		return nil
	}
	a.printPostList(posts)
	return nil
}

func (a *App) NewPost(ctx context.Context) error {
	if !a.requireSession() {
		return nil
	}
	if a.pets.ActivePet() == nil {
		fmt.Fprintln(a.out, "Pick a pet first with 'use'.")
		return nil
	}

	content, err := GetMultiline(a.reader, "What is on your pet's mind?", a.out)
	if err != nil {
		return err
	}
	location, err := GetSimpleText(a.reader, "Location (optional):", a.out)
	if err != nil {
		return err
	}
	files, err := GetFileList(a.reader, "Attach media files (optional):", a.out)
	if err != nil {
		return err
	}

	if err := a.feed.CreatePost(ctx, content, location, files); err != nil {
		a.log.Error(ctx, "error creating post", "error", err)
		fmt.Fprintf(a.out, "Could not post: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Posted.")
	a.printPosts(a.feed.Posts())
	return nil
}

// editField maps the edit prompt convention to a patch field: "" keeps the
// current value, "-" clears it, anything else replaces it.
func editField(input string) *string {
	switch input {
	case "":
		return nil
	case "-":
		empty := ""
		return &empty
	default:
		return &input
	}
}

func (a *App) EditPost(ctx context.Context, arg string) error {
	if !a.requireSession() {
		return nil
	}
	postID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: edit <post id>")
		return nil
	}

	content, err := GetMultiline(a.reader, "New text (empty to keep, '-' to clear):", a.out)
	if err != nil {
		return err
	}
	location, err := GetSimpleText(a.reader, "New location (empty to keep, '-' to clear):", a.out)
	if err != nil {
		return err
	}
	files, err := GetFileList(a.reader, "New media files (optional):", a.out)
	if err != nil {
		return err
	}

	var patch feed.EditPatch
	patch.Content = editField(content)
	patch.Location = editField(location)
	patch.MediaFiles = files

	res, err := a.feed.Edit(ctx, postID, patch)
	if err != nil {
		a.log.Error(ctx, "error editing post", "post_id", postID, "error", err)
		fmt.Fprintf(a.out, "Edit failed: %v\n", err)
		return err
	}

	switch {
	case res.PartialSuccess():
		fmt.Fprintf(a.out, "Post updated, but some uploads failed: %s\n",
			strings.Join(res.FailedFiles, ", "))
	case len(res.FailedFiles) > 0:
		fmt.Fprintf(a.out, "Uploads failed: %s\n", strings.Join(res.FailedFiles, ", "))
	default:
		fmt.Fprintln(a.out, "Post updated.")
	}
	return nil
}

func (a *App) DeletePost(ctx context.Context, arg string) error {
	if !a.requireSession() {
		return nil
	}
	postID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: del <post id>")
		return nil
	}

	if err := a.feed.Delete(ctx, postID); err != nil {
		a.log.Error(ctx, "error deleting post", "post_id", postID, "error", err)
		fmt.Fprintf(a.out, "Delete failed: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

// Like toggles a reaction on a post. Reactions made in this run are
// remembered, so a second 'like' on the same post removes it.
func (a *App) Like(ctx context.Context, arg string) error {
	if !a.requireSession() {
		return nil
	}
	pet := a.pets.ActivePet()
	if pet == nil {
		fmt.Fprintln(a.out, "Pick a pet first with 'use'.")
		return nil
	}
	postID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: like <post id>")
		return nil
	}

	res, err := a.feed.ToggleReaction(ctx, postID, a.myReactions[postID], pet.ID)
	if err != nil {
		a.log.Error(ctx, "error toggling reaction", "post_id", postID, "error", err)
		fmt.Fprintf(a.out, "Could not update reaction: %v\n", err)
		return err
	}

	if res.Liked {
		a.myReactions[postID] = res.ReactionID
		fmt.Fprintln(a.out, "Liked.")
	} else {
		delete(a.myReactions, postID)
		fmt.Fprintln(a.out, "Like removed.")
	}
	return nil
}

func (a *App) CommentPost(ctx context.Context, arg string) error {
	if !a.requireSession() {
		return nil
	}
	postID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: comment <post id>")
		return nil
	}

	if existing, err := a.api.Comments(ctx, postID); err == nil {
		for _, c := range models.SortCommentsByLikes(existing) {
			fmt.Fprintf(a.out, "  [pet %d, %d likes] %s\n", c.PetID, c.LikesCount, c.Content)
		}
	}

	content, err := GetSimpleText(a.reader, "Enter your comment:", a.out)
	if err != nil {
		return err
	}
	if content == "" {
		fmt.Fprintln(a.out, "Empty comments are not allowed.")
		return nil
	}

	if _, err := a.feed.Comment(ctx, postID, content); err != nil {
		a.log.Error(ctx, "error adding comment", "post_id", postID, "error", err)
		fmt.Fprintf(a.out, "Could not comment: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Comment added.")
	return nil
}

// DeleteComment removes one of the acting pet's comments. arg carries the
// post id and the comment id separated by a space.
func (a *App) DeleteComment(ctx context.Context, arg string) error {
	if !a.requireSession() {
		return nil
	}

	fields := strings.Fields(arg)
	if len(fields) != 2 {
		fmt.Fprintln(a.out, "Usage: delcomment <post id> <comment id>")
		return nil
	}
	postID, err1 := strconv.ParseInt(fields[0], 10, 64)
	commentID, err2 := strconv.ParseInt(fields[1], 10, 64)
	if err1 != nil || err2 != nil {
		fmt.Fprintln(a.out, "Usage: delcomment <post id> <comment id>")
		return nil
	}

	if err := a.feed.DeleteComment(ctx, postID, commentID); err != nil {
		a.log.Error(ctx, "error deleting comment", "comment_id", commentID, "error", err)
		fmt.Fprintf(a.out, "Could not delete comment: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Comment removed.")
	return nil
}
