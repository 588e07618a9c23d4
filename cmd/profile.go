// ABOUTME: Profile commands for zelqora CLI
// ABOUTME: Show and edit the signed-in user's profile

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	profileFirstName      string
	profileLastName       string
	profileEmail          string
	profileSpecialization string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile as the backend sees it",
	Run: func(cmd *cobra.Command, args []string) {
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runProfileShow(ctx, w)
		})
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	Run: func(cmd *cobra.Command, args []string) {
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runProfileUpdate(ctx, w)
		})
	},
}

var profileUploadPictureCmd = &cobra.Command{
	Use:   "upload-picture <file>",
	Short: "Upload a profile picture",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runStandalone(func(ctx context.Context, w io.Writer) int {
			return runProfileUploadPicture(ctx, w, args[0])
		})
	},
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileFirstName, "first-name", "", "New first name")
	profileUpdateCmd.Flags().StringVar(&profileLastName, "last-name", "", "New last name")
	profileUpdateCmd.Flags().StringVar(&profileEmail, "email", "", "New email address")
	profileUpdateCmd.Flags().StringVar(&profileSpecialization, "specialization", "", "New specialization (doctors)")

	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd, profileUploadPictureCmd)
	rootCmd.AddCommand(profileCmd)
}

// runProfileShow fetches the live profile rather than the cached copy so
// edits made elsewhere are visible.
func runProfileShow(ctx context.Context, w io.Writer) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}
	current, err := app.requireUser(ctx)
	if err != nil {
		return fail(w, err)
	}

	user, err := app.api.User(ctx, current.ID)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "Email: %s\n", user.Email)
	fmt.Fprintf(w, "Name:  %s\n", user.FullName())
	fmt.Fprintf(w, "Role:  %s\n", user.Role)
	if user.Specialization != "" {
		fmt.Fprintf(w, "Specialization: %s\n", user.Specialization)
	}
	if user.ProfilePicture != "" {
		fmt.Fprintf(w, "Picture: %s\n", user.ProfilePicture)
	}
	return 0
}

func runProfileUpdate(ctx context.Context, w io.Writer) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}
	current, err := app.requireUser(ctx)
	if err != nil {
		return fail(w, err)
	}

	fields := map[string]any{}
	if profileFirstName != "" {
		fields["firstName"] = profileFirstName
	}
	if profileLastName != "" {
		fields["lastName"] = profileLastName
	}
	if profileEmail != "" {
		fields["email"] = profileEmail
	}
	if profileSpecialization != "" {
		fields["specialization"] = profileSpecialization
	}
	if len(fields) == 0 {
		return fail(w, errors.New("nothing to update; pass at least one of --first-name, --last-name, --email, --specialization"))
	}

	user, err := app.api.UpdateUser(ctx, current.ID, fields)
	if err != nil {
		return fail(w, err)
	}
	if err := app.store.SaveUser(user); err != nil {
		return fail(w, err)
	}

	fmt.Fprintf(w, "Profile updated for %s.\n", user.FullName())
	return 0
}

func runProfileUploadPicture(ctx context.Context, w io.Writer, path string) int {
	app, err := newApp()
	if err != nil {
		return fail(w, err)
	}
	current, err := app.requireUser(ctx)
	if err != nil {
		return fail(w, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return fail(w, err)
	}
	defer file.Close()

	user, err := app.api.UploadProfilePicture(ctx, current.ID, filepath.Base(path), file)
	if err != nil {
		return fail(w, err)
	}
	if err := app.store.SaveUser(user); err != nil {
		return fail(w, err)
	}

	fmt.Fprintln(w, "Profile picture uploaded.")
	return 0
}
