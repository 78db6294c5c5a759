package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avelichko/petbook/internal/client/models"
)

// MyPets fetches the caller's pets. Image URLs come back normalized.
func (c *Client) MyPets(ctx context.Context) ([]models.Pet, error) {
	data, err := c.getRaw(ctx, "/pets/my-pets")
	if err != nil {
		return nil, err
	}
	pets, err := decodeList[models.Pet](data)
	if err != nil {
		return nil, err
	}
	for i := range pets {
		pets[i].ImageURL = c.normalizeMedia(pets[i].ImageURL)
	}
	return pets, nil
}

func (c *Client) GetPet(ctx context.Context, id int64) (*models.Pet, error) {
	var pet models.Pet
	if err := c.getJSON(ctx, fmt.Sprintf("/pets/%d", id), &pet); err != nil {
		return nil, err
	}
	pet.ImageURL = c.normalizeMedia(pet.ImageURL)
	return &pet, nil
}

func (c *Client) CreatePet(ctx context.Context, pet models.Pet) (*models.Pet, error) {
	var created models.Pet
	if err := c.sendJSON(ctx, http.MethodPost, "/pets", pet, &created); err != nil {
		return nil, err
	}
	created.ImageURL = c.normalizeMedia(created.ImageURL)
	return &created, nil
}

func (c *Client) UpdatePet(ctx context.Context, id int64, pet models.Pet) (*models.Pet, error) {
	var updated models.Pet
	if err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/pets/%d", id), pet, &updated); err != nil {
		return nil, err
	}
	updated.ImageURL = c.normalizeMedia(updated.ImageURL)
	return &updated, nil
}

// UploadPetImage uploads a profile image and returns its normalized URL.
func (c *Client) UploadPetImage(ctx context.Context, id int64, filePath string) (string, error) {
	var resp struct {
		ImageURL string `json:"image_url"`
	}
	err := c.sendMultipart(ctx, http.MethodPost, fmt.Sprintf("/pets/%d/image", id),
		nil, []multipartFile{{field: "file", path: filePath}}, &resp)
	if err != nil {
		return "", err
	}
	return c.normalizeMedia(resp.ImageURL), nil
}

func (c *Client) FollowPet(ctx context.Context, id int64) error {
	return c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/pets/%d/follow", id), nil, nil)
}

func (c *Client) UnfollowPet(ctx context.Context, id int64) error {
	return c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/pets/%d/unfollow", id), nil, nil)
}

func (c *Client) Followers(ctx context.Context, id int64) ([]models.Pet, error) {
	return c.petList(ctx, fmt.Sprintf("/pets/%d/followers", id))
}

func (c *Client) Following(ctx context.Context, id int64) ([]models.Pet, error) {
	return c.petList(ctx, fmt.Sprintf("/pets/%d/following", id))
}

func (c *Client) FollowCounts(ctx context.Context, id int64) (*models.FollowCounts, error) {
	var counts models.FollowCounts
	if err := c.getJSON(ctx, fmt.Sprintf("/pets/%d/follow-counts", id), &counts); err != nil {
		return nil, err
	}
	return &counts, nil
}

func (c *Client) petList(ctx context.Context, path string) ([]models.Pet, error) {
	data, err := c.getRaw(ctx, path)
	if err != nil {
		return nil, err
	}
	pets, err := decodeList[models.Pet](data)
	if err != nil {
		return nil, err
	}
	for i := range pets {
		pets[i].ImageURL = c.normalizeMedia(pets[i].ImageURL)
	}
	return pets, nil
}
