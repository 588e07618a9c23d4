// ABOUTME: Tests for messaging endpoint calls
// ABOUTME: Verifies encrypt-on-send, decrypt-on-read, and decryption fallbacks

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GramosTV/zelqora-client/internal/models"
	"github.com/GramosTV/zelqora-client/internal/securemsg"
)

func TestSendMessage_EncryptsContent(t *testing.T) {
	var gotBody models.CreateMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		resp, _ := json.Marshal(models.Message{ID: "m-1", ReceiverID: gotBody.ReceiverID, Content: gotBody.Content, Encrypted: true})
		w.Write(resp)
	}))
	defer server.Close()

	codec := securemsg.New("test-key")
	c := New(server.URL, server.Client(), codec, time.Minute)

	sent, err := c.SendMessage(context.Background(), "u-2", "see you at 3pm")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if gotBody.Content == "see you at 3pm" {
		t.Error("message content was sent in plaintext")
	}
	if !gotBody.Encrypted {
		t.Error("Encrypted flag not set on outgoing message")
	}
	if gotBody.IntegrityHash != securemsg.Hash("see you at 3pm") {
		t.Error("integrity hash does not cover the plaintext")
	}

	// The wire content must decrypt back to the original.
	plain, err := codec.Decrypt(gotBody.Content)
	if err != nil {
		t.Fatalf("sent content does not decrypt: %v", err)
	}
	if plain != "see you at 3pm" {
		t.Errorf("decrypted content = %q, want original", plain)
	}

	// The caller gets the plaintext back for immediate display.
	if sent.Content != "see you at 3pm" || sent.Encrypted {
		t.Errorf("returned message = %+v, want plaintext content", sent)
	}
}

func TestSendMessage_RequiresCodec(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request reached the server without a codec")
	}))
	defer server.Close()

	c := New(server.URL, server.Client(), nil, time.Minute)
	if _, err := c.SendMessage(context.Background(), "u-2", "hi"); err == nil {
		t.Error("SendMessage without codec succeeded, want error")
	}
}

func TestConversation_DecryptsMessages(t *testing.T) {
	codec := securemsg.New("test-key")
	encrypted, err := codec.Encrypt("lab results look good")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages/conversation/u-2" {
			t.Errorf("path = %q", r.URL.Path)
		}
		resp, _ := json.Marshal([]models.Message{
			{ID: "m-1", Content: encrypted, Encrypted: true, IntegrityHash: securemsg.Hash("lab results look good")},
			{ID: "m-2", Content: "plain old message", Encrypted: false},
		})
		w.Write(resp)
	}))
	defer server.Close()

	c := New(server.URL, server.Client(), codec, time.Minute)
	messages, err := c.Conversation(context.Background(), "u-2")
	if err != nil {
		t.Fatalf("Conversation failed: %v", err)
	}

	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}
	if messages[0].Content != "lab results look good" {
		t.Errorf("decrypted content = %q", messages[0].Content)
	}
	if messages[0].Encrypted {
		t.Error("message still flagged encrypted after decryption")
	}
	if messages[1].Content != "plain old message" {
		t.Errorf("plaintext message altered: %q", messages[1].Content)
	}
}

func TestConversation_UnreadableMessagePlaceholder(t *testing.T) {
	// Encrypted under a different key, so decryption must fail.
	foreign, err := securemsg.New("other-key").Encrypt("secret")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp, _ := json.Marshal([]models.Message{{ID: "m-1", Content: foreign, Encrypted: true}})
		w.Write(resp)
	}))
	defer server.Close()

	messages, err := newTestClient(server).Conversation(context.Background(), "u-2")
	if err != nil {
		t.Fatalf("Conversation failed: %v", err)
	}
	if messages[0].Content != "[unreadable message]" {
		t.Errorf("content = %q, want placeholder", messages[0].Content)
	}
}

func TestUnreadMessages(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[{"id":"m-1"},{"id":"m-2"}]`))
	}))
	defer server.Close()

	messages, err := newTestClient(server).UnreadMessages(context.Background())
	if err != nil {
		t.Fatalf("UnreadMessages failed: %v", err)
	}
	if gotPath != "/messages/unread" {
		t.Errorf("path = %q", gotPath)
	}
	if len(messages) != 2 {
		t.Errorf("got %d messages, want 2", len(messages))
	}
}
