package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avelichko/petbook/internal/client/models"
	"github.com/avelichko/petbook/internal/common"
)

func (c *Client) Conversations(ctx context.Context) ([]models.Conversation, error) {
	data, err := c.getRaw(ctx, "/messages/conversations")
	if err != nil {
		return nil, err
	}
	return decodeList[models.Conversation](data)
}

// Conversation returns the message history with the given pet, oldest first.
func (c *Client) Conversation(ctx context.Context, petID int64) ([]models.Message, error) {
	data, err := c.getRaw(ctx, fmt.Sprintf("/messages/conversation/%d", petID))
	if err != nil {
		return nil, err
	}
	return decodeList[models.Message](data)
}

func (c *Client) SendMessage(ctx context.Context, senderPetID, recipientPetID int64, content string) (*models.Message, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: message content is required", common.ErrValidation)
	}
	body := map[string]any{
		"sender_pet_id":    senderPetID,
		"recipient_pet_id": recipientPetID,
		"content":          content,
	}
	var msg models.Message
	if err := c.sendJSON(ctx, http.MethodPost, "/messages/", body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *Client) MarkConversationRead(ctx context.Context, petID int64) error {
	return c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/messages/conversation/%d/read", petID), nil, nil)
}

func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.getJSON(ctx, "/messages/unread/count", &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}
