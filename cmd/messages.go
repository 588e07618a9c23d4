// ABOUTME: Message commands for zelqora CLI
// ABOUTME: Send, read, and manage encrypted direct messages

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var messagesUnread bool

var messagesCmd = &cobra.Command{
	Use:     "messages",
	Aliases: []string{"msg"},
	Short:   "Manage direct messages",
}

var messagesListCmd = &cobra.Command{
	Use:   "list [other-user-id]",
	Short: "List your messages, or a conversation with one user",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		other := ""
		if len(args) == 1 {
			other = args[0]
		}
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runMessagesList(ctx, w, other)
		})
	},
}

var messagesSendCmd = &cobra.Command{
	Use:   "send <receiver-id> <content>",
	Short: "Send an encrypted message",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runMessagesSend(ctx, w, args[0], args[1])
		})
	},
}

var messagesReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark a message as read",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runMessagesRead(ctx, w, args[0])
		})
	},
}

var messagesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a message",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runMessagesDelete(ctx, w, args[0])
		})
	},
}

func init() {
	messagesListCmd.Flags().BoolVar(&messagesUnread, "unread", false, "Only unread messages")
	messagesCmd.AddCommand(messagesListCmd, messagesSendCmd, messagesReadCmd, messagesDeleteCmd)
	rootCmd.AddCommand(messagesCmd)
}

func runMessagesList(ctx context.Context, w io.Writer, otherUserID string) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}
	user, err := app.requireUser(ctx)
	if err != nil {
		return fail(w, err)
	}

	var list []messageRow
	switch {
	case otherUserID != "":
		conv, err := app.api.Conversation(ctx, otherUserID)
		if err != nil {
			return fail(w, err)
		}
		for _, m := range conv {
			list = append(list, newMessageRow(m.ID, m.SenderID, m.Content, m.Read, m.SenderID == user.ID))
		}
		if IsJSONOutput() {
			data, _ := json.MarshalIndent(conv, "", "  ")
			fmt.Fprintln(w, string(data))
			return 0
		}
	case messagesUnread:
		unread, err := app.api.UnreadMessages(ctx)
		if err != nil {
			return fail(w, err)
		}
		for _, m := range unread {
			list = append(list, newMessageRow(m.ID, m.SenderID, m.Content, m.Read, m.SenderID == user.ID))
		}
		if IsJSONOutput() {
			data, _ := json.MarshalIndent(unread, "", "  ")
			fmt.Fprintln(w, string(data))
			return 0
		}
	default:
		all, err := app.api.UserMessages(ctx, user.ID)
		if err != nil {
			return fail(w, err)
		}
		for _, m := range all {
			list = append(list, newMessageRow(m.ID, m.SenderID, m.Content, m.Read, m.SenderID == user.ID))
		}
		if IsJSONOutput() {
			data, _ := json.MarshalIndent(all, "", "  ")
			fmt.Fprintln(w, string(data))
			return 0
		}
	}

	if len(list) == 0 {
		fmt.Fprintln(w, "No messages found.")
		return 0
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFROM\tREAD\tCONTENT")
	for _, row := range list {
		from := row.sender
		if row.mine {
			from = "you"
		}
		read := " "
		if row.read {
			read = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.id, from, read, row.content)
	}
	tw.Flush()
	return 0
}

type messageRow struct {
	id      string
	sender  string
	content string
	read    bool
	mine    bool
}

func newMessageRow(id, sender, content string, read, mine bool) messageRow {
	return messageRow{id: id, sender: sender, content: content, read: read, mine: mine}
}

func runMessagesSend(ctx context.Context, w io.Writer, receiverID, content string) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}
	if _, err := app.requireUser(ctx); err != nil {
		return fail(w, err)
	}

	msg, err := app.api.SendMessage(ctx, receiverID, content)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(msg, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	fmt.Fprintf(w, "Message %s sent to %s.\n", msg.ID, msg.ReceiverID)
	return 0
}

func runMessagesRead(ctx context.Context, w io.Writer, id string) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}
	if _, err := app.requireUser(ctx); err != nil {
		return fail(w, err)
	}

	msg, err := app.api.MarkMessageRead(ctx, id)
	if err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Message %s marked as read.\n", msg.ID)
	return 0
}

func runMessagesDelete(ctx context.Context, w io.Writer, id string) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}
	if _, err := app.requireUser(ctx); err != nil {
		return fail(w, err)
	}

	if err := app.api.DeleteMessage(ctx, id); err != nil {
		return fail(w, err)
	}
	fmt.Fprintf(w, "Message %s deleted.\n", id)
	return 0
}
