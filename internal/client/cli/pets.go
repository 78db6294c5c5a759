package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/avelichko/petbook/internal/client/models"
)

func (a *App) Pets(ctx context.Context) error {
	if !a.requireSession() {
		return nil
	}

	if err := a.pets.LoadOwnedPets(ctx); err != nil {
		fmt.Fprintf(a.out, "Could not load pets: %v\n", err)
		return err
	}

	owned := a.pets.OwnedPets()
	if len(owned) == 0 {
		fmt.Fprintln(a.out, "You have no pets yet. Run 'newpet' to add one.")
		return nil
	}

	active := a.pets.ActivePet()
	for i, p := range owned {
		marker := " "
		if active != nil && active.ID == p.ID {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %d. %s (id %d)\n", marker, i+1, p.Name, p.ID)
	}
	return nil
}

// UsePet switches the acting pet by its number in the 'pets' listing.
func (a *App) UsePet(ctx context.Context, arg string) error {
	if !a.requireSession() {
		return nil
	}

	n, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: use <number from 'pets'>")
		return nil
	}

	owned := a.pets.OwnedPets()
	if n < 1 || n > len(owned) {
		fmt.Fprintf(a.out, "No pet with number %d, run 'pets' to see the list.\n", n)
		return nil
	}

	pet := owned[n-1]
	if err := a.pets.SetActivePet(ctx, &pet); err != nil {
		a.log.Error(ctx, "error switching pet", "error", err)
		return err
	}
	fmt.Fprintf(a.out, "Now acting as %s.\n", pet.Name)
	return nil
}

func (a *App) NewPet(ctx context.Context) error {
	if !a.requireSession() {
		return nil
	}

	name, err := GetSimpleText(a.reader, "Enter pet name:", a.out)
	if err != nil {
		return err
	}
	if name == "" {
		fmt.Fprintln(a.out, "A pet needs a name.")
		return nil
	}
	gender, err := GetSimpleText(a.reader, "Enter gender (optional):", a.out)
	if err != nil {
		return err
	}
	bio, err := GetMultiline(a.reader, "Enter bio (optional):", a.out)
	if err != nil {
		return err
	}

	pet := models.Pet{
		Name:   name,
		Gender: gender,
		Bio:    bio,
		City:   a.session.City(),
	}
	created, err := a.api.CreatePet(ctx, pet)
	if err != nil {
		a.log.Error(ctx, "error creating pet", "error", err)
		fmt.Fprintf(a.out, "Could not create pet: %v\n", err)
		return err
	}

	if err := a.pets.Refresh(ctx); err != nil {
		a.log.Warn(ctx, "could not refresh pets after create", "error", err)
	}
	if a.pets.ActivePet() == nil {
		_ = a.pets.SetActivePet(ctx, created)
	}

	fmt.Fprintf(a.out, "Created %s (id %d).\n", created.Name, created.ID)
	return nil
}

// EditPet updates the acting pet's profile. The current record is fetched
// first so prompts can show what they replace; empty input keeps a field.
func (a *App) EditPet(ctx context.Context) error {
	if !a.requireSession() {
		return nil
	}
	active := a.pets.ActivePet()
	if active == nil {
		fmt.Fprintln(a.out, "Pick a pet first with 'use'.")
		return nil
	}

	current, err := a.api.GetPet(ctx, active.ID)
	if err != nil {
		a.log.Error(ctx, "error loading pet", "pet_id", active.ID, "error", err)
		fmt.Fprintf(a.out, "Could not load pet: %v\n", err)
		return err
	}

	name, err := GetSimpleText(a.reader, fmt.Sprintf("Name [%s] (empty to keep):", current.Name), a.out)
	if err != nil {
		return err
	}
	gender, err := GetSimpleText(a.reader, fmt.Sprintf("Gender [%s] (empty to keep):", current.Gender), a.out)
	if err != nil {
		return err
	}
	bio, err := GetMultiline(a.reader, "Bio (empty to keep):", a.out)
	if err != nil {
		return err
	}

	updated := *current
	if name != "" {
		updated.Name = name
	}
	if gender != "" {
		updated.Gender = gender
	}
	if bio != "" {
		updated.Bio = bio
	}

	saved, err := a.api.UpdatePet(ctx, active.ID, updated)
	if err != nil {
		a.log.Error(ctx, "error updating pet", "pet_id", active.ID, "error", err)
		fmt.Fprintf(a.out, "Could not update pet: %v\n", err)
		return err
	}

	if err := a.pets.Refresh(ctx); err != nil {
		a.log.Warn(ctx, "could not refresh pets after update", "error", err)
	}
	fmt.Fprintf(a.out, "Saved %s.\n", saved.Name)
	return nil
}

// PetImage uploads a profile picture for the acting pet.
func (a *App) PetImage(ctx context.Context, arg string) error {
	if !a.requireSession() {
		return nil
	}

	pet := a.pets.ActivePet()
	if pet == nil {
		fmt.Fprintln(a.out, "Pick a pet first with 'use'.")
		return nil
	}
	if arg == "" {
		fmt.Fprintln(a.out, "Usage: petimg <path to image file>")
		return nil
	}

	url, err := a.api.UploadPetImage(ctx, pet.ID, arg)
	if err != nil {
		a.log.Error(ctx, "error uploading pet image", "error", err)
		fmt.Fprintf(a.out, "Upload failed: %v\n", err)
		return err
	}

	if err := a.pets.Refresh(ctx); err != nil {
		a.log.Warn(ctx, "could not refresh pets after upload", "error", err)
	}
	fmt.Fprintf(a.out, "Uploaded: %s\n", url)
	return nil
}
