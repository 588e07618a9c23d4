// ABOUTME: Messaging endpoint calls with transparent encrypt-on-send, decrypt-on-read
// ABOUTME: Integrity hashes are computed over the plaintext and checked on receipt

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/GramosTV/zelqora-client/internal/models"
	"github.com/GramosTV/zelqora-client/internal/securemsg"
)

// Conversation returns the message thread with another user, decrypted
// for display. Messages that fail to decrypt are surfaced with a
// placeholder rather than failing the whole thread.
func (c *Client) Conversation(ctx context.Context, otherUserID string) ([]models.Message, error) {
	var messages []models.Message
	if err := c.do(ctx, http.MethodGet, "/messages/conversation/"+otherUserID, nil, nil, &messages); err != nil {
		return nil, err
	}
	for i := range messages {
		c.decryptInPlace(&messages[i])
	}
	return messages, nil
}

// UserMessages lists all messages involving a user, undecrypted.
func (c *Client) UserMessages(ctx context.Context, userID string) ([]models.Message, error) {
	var messages []models.Message
	if err := c.do(ctx, http.MethodGet, "/messages/user/"+userID, nil, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// UnreadMessages lists the current user's unread messages.
func (c *Client) UnreadMessages(ctx context.Context) ([]models.Message, error) {
	var messages []models.Message
	if err := c.do(ctx, http.MethodGet, "/messages/unread", nil, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage encrypts the content, attaches a plaintext integrity hash,
// and posts it. The returned message carries the original plaintext so
// the sender can display it immediately.
func (c *Client) SendMessage(ctx context.Context, receiverID, content string) (*models.Message, error) {
	if c.codec == nil {
		return nil, fmt.Errorf("messaging requires an encryption key")
	}

	encrypted, err := c.codec.Encrypt(content)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt message: %w", err)
	}

	payload := models.CreateMessage{
		ReceiverID:    receiverID,
		Content:       encrypted,
		Encrypted:     true,
		IntegrityHash: securemsg.Hash(content),
	}

	var sent models.Message
	if err := c.do(ctx, http.MethodPost, "/messages", nil, payload, &sent); err != nil {
		return nil, err
	}

	sent.Content = content
	sent.Encrypted = false
	return &sent, nil
}

// MarkMessageRead flags a message as read.
func (c *Client) MarkMessageRead(ctx context.Context, id string) (*models.Message, error) {
	var msg models.Message
	if err := c.do(ctx, http.MethodPatch, "/messages/"+id+"/read", nil, struct{}{}, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DeleteMessage removes a message.
func (c *Client) DeleteMessage(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/messages/"+id, nil, nil, nil)
}

// decryptInPlace replaces encrypted content with plaintext and verifies
// the integrity hash when one is present.
func (c *Client) decryptInPlace(msg *models.Message) {
	if !msg.Encrypted || c.codec == nil {
		return
	}

	plain, err := c.codec.Decrypt(msg.Content)
	if err != nil {
		slog.Warn("Failed to decrypt message", "message_id", msg.ID, "error", err)
		msg.Content = "[unreadable message]"
		return
	}

	if msg.IntegrityHash != "" && !securemsg.VerifyHash(plain, msg.IntegrityHash) {
		slog.Warn("Message integrity hash mismatch", "message_id", msg.ID)
	}

	msg.Content = plain
	msg.Encrypted = false
}
