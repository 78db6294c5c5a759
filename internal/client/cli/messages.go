package cli

import (
	"context"
	"fmt"
	"strconv"
)

func (a *App) Conversations(ctx context.Context) error {
	if !a.requireSession() {
		return nil
	}

	convs, err := a.api.Conversations(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Could not load conversations: %v\n", err)
		return err
	}
	if len(convs) == 0 {
		fmt.Fprintln(a.out, "No conversations yet.")
		return nil
	}

	for _, c := range convs {
		unread := ""
		if c.UnreadCount > 0 {
			unread = fmt.Sprintf(" (%d unread)", c.UnreadCount)
		}
		fmt.Fprintf(a.out, "%s (id %d)%s: %s\n", c.PetName, c.PetID, unread, c.LastMessage)
	}
	return nil
}

// Chat prints the message history with a pet and marks it read.
func (a *App) Chat(ctx context.Context, arg string) error {
	if !a.requireSession() {
		return nil
	}
	petID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: chat <pet id>")
		return nil
	}

	msgs, err := a.api.Conversation(ctx, petID)
	if err != nil {
		fmt.Fprintf(a.out, "Could not load the conversation: %v\n", err)
		return err
	}

	for _, m := range msgs {
		who := "them"
		if m.SenderPetID != petID {
			who = "you"
		}
		fmt.Fprintf(a.out, "[%s] %s: %s\n", m.CreatedAt.Format("15:04"), who, m.Content)
	}
	if len(msgs) == 0 {
		fmt.Fprintln(a.out, "No messages yet, 'send' to start the conversation.")
	}

	if err := a.api.MarkConversationRead(ctx, petID); err != nil {
		a.log.Warn(ctx, "could not mark conversation read", "pet_id", petID, "error", err)
	}
	return nil
}

func (a *App) Send(ctx context.Context, arg string) error {
	if !a.requireSession() {
		return nil
	}
	pet := a.pets.ActivePet()
	if pet == nil {
		fmt.Fprintln(a.out, "Pick a pet first with 'use'.")
		return nil
	}
	petID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: send <pet id>")
		return nil
	}

	content, err := GetSimpleText(a.reader, "Enter your message:", a.out)
	if err != nil {
		return err
	}

	op := "send:" + arg
	if !a.beginOp(op) {
		return nil
	}
	defer a.endOp(op)

	if _, err := a.api.SendMessage(ctx, pet.ID, petID, content); err != nil {
		a.log.Error(ctx, "error sending message", "pet_id", petID, "error", err)
		fmt.Fprintf(a.out, "Could not send: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Sent.")
	return nil
}

func (a *App) Unread(ctx context.Context) error {
	if !a.requireSession() {
		return nil
	}
	count, err := a.api.UnreadCount(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Could not check unread messages: %v\n", err)
		return err
	}
	if count == 0 {
		fmt.Fprintln(a.out, "No unread messages.")
	} else {
		fmt.Fprintf(a.out, "%d unread message(s).\n", count)
	}
	return nil
}
