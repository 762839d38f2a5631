package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"resizer/internal/core/domain"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newSignupCmd(a *app) *cobra.Command {
	var form domain.SignupForm

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Example: `  resizer signup --name Ada --email ada@example.org
  resizer signup --name Ada --email ada@example.org --password secret1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if form.Password == "" {
				password, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), "Password: ")
				if err != nil {
					return err
				}
				form.Password = password
			}

			if err := a.accounts.SignUp(cmd.Context(), form); err != nil {
				return userError(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Account created, you can now log in")

			return nil
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "display name")
	cmd.Flags().StringVar(&form.Email, "email", "", "email address")
	cmd.Flags().StringVar(&form.Password, "password", "", "password, prompted when omitted")

	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var form domain.LoginForm

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if form.Password == "" {
				password, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), "Password: ")
				if err != nil {
					return err
				}
				form.Password = password
			}

			identity, err := a.accounts.LogIn(cmd.Context(), form)
			if err != nil {
				return userError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", identity.UserID)

			return nil
		},
	}

	cmd.Flags().StringVar(&form.Email, "email", "", "email address")
	cmd.Flags().StringVar(&form.Password, "password", "", "password, prompted when omitted")
	cmd.Flags().BoolVar(&form.RememberMe, "remember-me", false, "ask for a long-lived session")

	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.accounts.LogOut(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")

			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, err := a.accounts.Require()
			if err != nil {
				return userError(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "User:    %s\n", identity.UserID)

			if exp, ok := a.sessions.TokenExpiry(); ok {
				state := "valid"
				if time.Now().After(exp) {
					state = "expired"
				}
				fmt.Fprintf(out, "Token:   %s until %s\n", state, exp.Local().Format(time.RFC1123))
			}

			return nil
		},
	}
}

func readLine(in io.Reader, prompt io.Writer, label string) (string, error) {
	fmt.Fprint(prompt, label)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("error reading input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// readPassword reads a password without echo when in is a terminal and
// falls back to readLine for piped input.
func readPassword(in io.Reader, prompt io.Writer, label string) (string, error) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return readLine(in, prompt, label)
	}

	fmt.Fprint(prompt, label)
	password, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("error reading password: %w", err)
	}

	return strings.TrimSpace(string(password)), nil
}

// userError shows the user-facing message of err while keeping err in the
// chain.
func userError(err error) error {
	return &messageError{message: domain.UserMessage(err), err: err}
}

type messageError struct {
	message string
	err     error
}

func (e *messageError) Error() string {
	return e.message
}

func (e *messageError) Unwrap() error {
	return e.err
}
