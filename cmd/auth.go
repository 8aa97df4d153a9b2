package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lovelace-project/lovelace-cli/internal/api"
	"github.com/lovelace-project/lovelace-cli/internal/history"
	"github.com/lovelace-project/lovelace-cli/internal/validate"
)

var loginCmd = &cobra.Command{
	Use:   "login <username-or-email>",
	Short: "Log in to the marketplace",
	Long: `Log in with your username or email address.

The password is prompted for and never echoed. On success the session
token is stored in ~/.lovelace/session.json and reused by later
commands until you log out.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard the stored session",
	Long: `Log out of the marketplace.

The local session is always discarded, even when the server cannot be
reached; in that case the command reports the server-side failure after
signing you out locally.`,
	Args: cobra.NoArgs,
	RunE: runLogout,
}

var registerCmd = &cobra.Command{
	Use:   "register <email> <username>",
	Short: "Create a new marketplace account",
	Long: `Create a new account. A verification email is sent to the given
address; verify it with ` + "`lovelace verify-email`" + ` before logging in.`,
	Args: cobra.ExactArgs(2),
	RunE: runRegister,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

var verifyEmailCmd = &cobra.Command{
	Use:   "verify-email <token>",
	Short: "Verify your email address with the token from the email",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerifyEmail,
}

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password <email>",
	Short: "Request a password reset email",
	Args:  cobra.ExactArgs(1),
	RunE:  runForgotPassword,
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password <token>",
	Short: "Set a new password using a reset token",
	Args:  cobra.ExactArgs(1),
	RunE:  runResetPassword,
}

var changePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Change the password of the logged-in account",
	Long: `Change your password. The server invalidates the session on success,
so you are signed out and have to log in again.`,
	Args: cobra.NoArgs,
	RunE: runChangePassword,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(verifyEmailCmd)
	rootCmd.AddCommand(forgotPasswordCmd)
	rootCmd.AddCommand(resetPasswordCmd)
	rootCmd.AddCommand(changePasswordCmd)
}

// promptPassword reads a masked password from the terminal.
func promptPassword(label string) (string, error) {
	p := promptui.Prompt{Label: label, Mask: '*'}
	return p.Run()
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	password, err := promptPassword("Password")
	if err != nil {
		return err
	}

	form := validate.LoginForm{Identity: args[0], Password: password}
	if err := form.Validate(); err != nil {
		return err
	}

	user, err := a.sessions.Login(cmd.Context(), args[0], password)
	if err != nil {
		if api.CategoryOf(err) == api.EmailUnverified {
			return fmt.Errorf("your email address is not verified yet; check your inbox and run `lovelace verify-email <token>`")
		}
		return err
	}

	a.record(cmd.Context(), history.ActionLogin, user.Username, "")
	fmt.Printf("Logged in as %s (%s)\n", user.Username, user.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	// Record first: the actor is gone once the session is cleared.
	a.record(cmd.Context(), history.ActionLogout, "", "")

	resp, err := a.sessions.Logout(cmd.Context())
	if err != nil {
		fmt.Println("Local session discarded.")
		return fmt.Errorf("server-side logout failed: %w", err)
	}
	fmt.Println(resp.Message)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	email, username := args[0], args[1]

	password, err := promptPassword("Password")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm password")
	if err != nil {
		return err
	}

	form := validate.RegisterForm{
		Email:           email,
		Username:        username,
		Password:        password,
		PasswordConfirm: confirm,
	}
	if err := form.Validate(); err != nil {
		return err
	}

	resp, err := a.sessions.Register(cmd.Context(), email, username, password)
	if err != nil {
		return err
	}

	a.record(cmd.Context(), history.ActionRegister, username, email)
	fmt.Println(resp.Message)
	fmt.Println("Check your inbox for the verification email, then run `lovelace verify-email <token>`.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	snap := a.sessions.Snapshot()
	if !snap.LoggedIn {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("Logged in as %s (%s)\n", snap.User.Username, snap.User.Email)
	for _, role := range snap.User.Roles {
		fmt.Printf("  role: %s\n", role)
	}
	return nil
}

func runVerifyEmail(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	resp, err := a.sessions.VerifyEmail(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)
	return nil
}

func runForgotPassword(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := validate.Email(args[0]); err != nil {
		return err
	}

	resp, err := a.sessions.SendPasswordResetEmail(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)
	return nil
}

func runResetPassword(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	password, err := promptPassword("New password")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm new password")
	if err != nil {
		return err
	}

	form := validate.ResetPasswordForm{
		Token:           args[0],
		Password:        password,
		PasswordConfirm: confirm,
	}
	if err := form.Validate(); err != nil {
		return err
	}

	resp, err := a.sessions.ResetPassword(cmd.Context(), args[0], password)
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)
	return nil
}

func runChangePassword(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.sessions.Snapshot().LoggedIn {
		return fmt.Errorf("not logged in")
	}

	current, err := promptPassword("Current password")
	if err != nil {
		return err
	}
	next, err := promptPassword("New password")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm new password")
	if err != nil {
		return err
	}

	form := validate.ChangePasswordForm{
		CurrentPassword: current,
		NewPassword:     next,
		NewConfirm:      confirm,
	}
	if err := form.Validate(); err != nil {
		return err
	}

	// Success clears the session, so capture the actor up front.
	actor := a.sessions.Snapshot().User.Username

	resp, err := a.sessions.ChangePassword(cmd.Context(), current, next)
	if err != nil {
		return err
	}

	if err := a.activity.Record(cmd.Context(), history.Entry{
		Action: history.ActionPasswordChange,
		Actor:  actor,
	}); err != nil {
		a.log.Warn("recording activity failed", zap.Error(err))
	}
	fmt.Println(resp.Message)
	fmt.Println("You have been signed out; log in again with your new password.")
	return nil
}
