package cli

import (
	"context"
	"fmt"
	"strconv"
)

func (a *App) Follow(ctx context.Context, arg string) error {
	if !a.requireSession() {
		return nil
	}
	petID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: follow <pet id>")
		return nil
	}

	op := "follow:" + arg
	if !a.beginOp(op) {
		return nil
	}
	defer a.endOp(op)

	if err := a.api.FollowPet(ctx, petID); err != nil {
		a.log.Error(ctx, "error following pet", "pet_id", petID, "error", err)
		fmt.Fprintf(a.out, "Could not follow: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Now following pet %d.\n", petID)
	return nil
}

func (a *App) Unfollow(ctx context.Context, arg string) error {
	if !a.requireSession() {
		return nil
	}
	petID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: unfollow <pet id>")
		return nil
	}

	op := "unfollow:" + arg
	if !a.beginOp(op) {
		return nil
	}
	defer a.endOp(op)

	if err := a.api.UnfollowPet(ctx, petID); err != nil {
		a.log.Error(ctx, "error unfollowing pet", "pet_id", petID, "error", err)
		fmt.Fprintf(a.out, "Could not unfollow: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Unfollowed pet %d.\n", petID)
	return nil
}

// Social shows a pet's follower and following lists with counts. With no
// argument it reports on the acting pet.
func (a *App) Social(ctx context.Context, arg string) error {
	if !a.requireSession() {
		return nil
	}

	var petID int64
	if arg == "" {
		pet := a.pets.ActivePet()
		if pet == nil {
			fmt.Fprintln(a.out, "Usage: social <pet id>, or pick a pet with 'use'.")
			return nil
		}
		petID = pet.ID
	} else {
		var err error
		petID, err = strconv.ParseInt(arg, 10, 64)
		if err != nil {
			fmt.Fprintln(a.out, "Usage: social <pet id>")
			return nil
		}
	}

	counts, err := a.api.FollowCounts(ctx, petID)
	if err != nil {
		fmt.Fprintf(a.out, "Could not load counts: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Pet %d: %d followers, %d following\n",
		petID, counts.Followers, counts.Following)

	followers, err := a.api.Followers(ctx, petID)
	if err != nil {
		fmt.Fprintf(a.out, "Could not load followers: %v\n", err)
		return err
	}
	for _, p := range followers {
		fmt.Fprintf(a.out, "  follower: %s (id %d)\n", p.Name, p.ID)
	}

	following, err := a.api.Following(ctx, petID)
	if err != nil {
		fmt.Fprintf(a.out, "Could not load following: %v\n", err)
		return err
	}
	for _, p := range following {
		fmt.Fprintf(a.out, "  following: %s (id %d)\n", p.Name, p.ID)
	}
	return nil
}
