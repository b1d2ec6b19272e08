package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	getlisted "github.com/getlisted/getlisted-go"
)

var serviceURL string
var tokenFile string
var debug bool

const requestTimeout = 15 * time.Second

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "getlisted",
		Short: "CLI for the GetListed startup directory",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Local overrides from .env, when present.
			_ = godotenv.Load()

			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})

			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				_ = os.Setenv("GETLISTED_DEBUG", "true")
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	defaultURL := getEnv("GETLISTED_BASE_URL", "http://localhost:5000/api/v1")
	rootCmd.PersistentFlags().StringVar(&serviceURL, "service-url", defaultURL, "Base URL of the GetListed API")
	rootCmd.PersistentFlags().StringVar(&tokenFile, "token-file", defaultTokenFile(), "Path of the persisted session token")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	// Session commands
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newForgotPasswordCmd())
	rootCmd.AddCommand(newResetPasswordCmd())
	rootCmd.AddCommand(newVerifyEmailCmd())
	rootCmd.AddCommand(newUpdateProfileCmd())
	rootCmd.AddCommand(newUpdatePasswordCmd())

	// Directory commands
	rootCmd.AddCommand(newListStartupsCmd())
	rootCmd.AddCommand(newGetStartupCmd())
	rootCmd.AddCommand(newCreateStartupCmd())
	rootCmd.AddCommand(newUpdateStartupCmd())
	rootCmd.AddCommand(newDeleteStartupCmd())

	return rootCmd
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".getlisted-token"
	}
	return filepath.Join(home, ".getlisted", "token")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newStores builds the client plus both stores over the persisted token file.
func newStores() (*getlisted.SessionStore, *getlisted.StartupStore, error) {
	c, err := getlisted.New(serviceURL,
		getlisted.WithTokenStore(getlisted.NewFileTokenStore(tokenFile)),
	)
	if err != nil {
		return nil, nil, err
	}
	session := getlisted.NewSessionStore(c, sessionOptsFromEnv()...)
	directory := getlisted.NewStartupStore(c, nil)
	return session, directory, nil
}

// sessionOptsFromEnv honours the restore-retry env knobs when set. Values
// that fail to parse fall back to the store defaults.
func sessionOptsFromEnv() []getlisted.SessionOption {
	attempts, _ := strconv.Atoi(os.Getenv("GETLISTED_RESTORE_MAX_ATTEMPTS"))
	backoff, _ := time.ParseDuration(os.Getenv("GETLISTED_RESTORE_BASE_BACKOFF"))
	if attempts < 1 && backoff <= 0 {
		return nil
	}
	return []getlisted.SessionOption{getlisted.WithRestoreRetry(attempts, backoff)}
}

func opCtx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), requestTimeout)
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

// ------------------------- session commands -------------------------

func newRegisterCmd() *cobra.Command {
	var req getlisted.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account (login stays gated on email verification)",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := newStores()
			if err != nil {
				return err
			}
			ctx, cancel := opCtx(cmd)
			defer cancel()

			if err := session.Register(ctx, req); err != nil {
				return err
			}
			fmt.Println("Registered. Check your inbox for the verification link.")
			return nil
		},
	}
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password")
	cmd.Flags().StringVar(&req.Role, "role", "startup", "Account role (startup|investor)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := newStores()
			if err != nil {
				return err
			}
			ctx, cancel := opCtx(cmd)
			defer cancel()

			if err := session.Login(ctx, email, password); err != nil {
				return err
			}
			snap := session.Snapshot()
			log.Debug().Str("user_id", snap.User.ID).Msg("logged in")
			fmt.Printf("Logged in as %s %s <%s>\n", snap.User.FirstName, snap.User.LastName, snap.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := newStores()
			if err != nil {
				return err
			}
			ctx, cancel := opCtx(cmd)
			defer cancel()

			session.Logout(ctx)
			if msg := session.Snapshot().Error; msg != "" {
				log.Warn().Str("reason", msg).Msg("server logout failed, local session discarded")
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the user behind the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := newStores()
			if err != nil {
				return err
			}
			ctx, cancel := opCtx(cmd)
			defer cancel()

			if err := session.Restore(ctx); err != nil {
				return err
			}
			snap := session.Snapshot()
			if !snap.IsAuthenticated {
				if snap.Error != "" {
					return fmt.Errorf("%s", snap.Error)
				}
				return fmt.Errorf("not logged in")
			}
			return printJSON(snap.User)
		},
	}
}

func newForgotPasswordCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Request a password-reset email",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := newStores()
			if err != nil {
				return err
			}
			ctx, cancel := opCtx(cmd)
			defer cancel()

			if err := session.ForgotPassword(ctx, email); err != nil {
				return err
			}
			fmt.Println("Reset email sent.")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newResetPasswordCmd() *cobra.Command {
	var token, password string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password using the emailed reset token",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := newStores()
			if err != nil {
				return err
			}
			ctx, cancel := opCtx(cmd)
			defer cancel()

			if err := session.ResetPassword(ctx, token, password); err != nil {
				return err
			}
			fmt.Println("Password reset; you are now logged in.")
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "Reset token from the email")
	cmd.Flags().StringVar(&password, "password", "", "New password")
	_ = cmd.MarkFlagRequired("token")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newVerifyEmailCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "verify-email",
		Short: "Confirm an email address using the emailed token",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := newStores()
			if err != nil {
				return err
			}
			ctx, cancel := opCtx(cmd)
			defer cancel()

			if err := session.VerifyEmail(ctx, token); err != nil {
				return err
			}
			fmt.Println("Email verified.")
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "Verification token from the email")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

func newUpdateProfileCmd() *cobra.Command {
	var req getlisted.UpdateProfileRequest

	cmd := &cobra.Command{
		Use:   "update-profile",
		Short: "Update the logged-in user's details",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := newStores()
			if err != nil {
				return err
			}
			ctx, cancel := opCtx(cmd)
			defer cancel()

			if err := session.UpdateProfile(ctx, req); err != nil {
				return err
			}
			return printJSON(session.Snapshot().User)
		},
	}
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	return cmd
}

func newUpdatePasswordCmd() *cobra.Command {
	var current, next string

	cmd := &cobra.Command{
		Use:   "update-password",
		Short: "Change the logged-in user's password",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, _, err := newStores()
			if err != nil {
				return err
			}
			ctx, cancel := opCtx(cmd)
			defer cancel()

			if err := session.UpdatePassword(ctx, current, next); err != nil {
				return err
			}
			fmt.Println("Password updated.")
			return nil
		},
	}
	cmd.Flags().StringVar(&current, "current", "", "Current password")
	cmd.Flags().StringVar(&next, "new", "", "New password")
	_ = cmd.MarkFlagRequired("current")
	_ = cmd.MarkFlagRequired("new")
	return cmd
}

// ------------------------- directory commands -------------------------

func newListStartupsCmd() *cobra.Command {
	var filter getlisted.StartupFilter
	var fundingMin, fundingMax, employeesMin, employeesMax float64
	var page, limit int
	var mine bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List startups in the directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, directory, err := newStores()
			if err != nil {
				return err
			}
			ctx, cancel := opCtx(cmd)
			defer cancel()

			if cmd.Flags().Changed("funding-min") || cmd.Flags().Changed("funding-max") {
				filter.FundingRange = &getlisted.Range{}
				if cmd.Flags().Changed("funding-min") {
					filter.FundingRange.Min = &fundingMin
				}
				if cmd.Flags().Changed("funding-max") {
					filter.FundingRange.Max = &fundingMax
				}
			}
			if cmd.Flags().Changed("employees-min") || cmd.Flags().Changed("employees-max") {
				filter.EmployeeCount = &getlisted.Range{}
				if cmd.Flags().Changed("employees-min") {
					filter.EmployeeCount.Min = &employeesMin
				}
				if cmd.Flags().Changed("employees-max") {
					filter.EmployeeCount.Max = &employeesMax
				}
			}
			if mine {
				if err := session.Restore(ctx); err != nil {
					return err
				}
				snap := session.Snapshot()
				if !snap.IsAuthenticated {
					return fmt.Errorf("not logged in")
				}
				filter.OwnerID = snap.User.ID
			}

			if err := directory.ListStartups(ctx, &filter, page, limit); err != nil {
				return err
			}
			snap := directory.Snapshot()
			log.Debug().Int("count", snap.Count).Int("page_size", len(snap.Startups)).Msg("directory fetched")
			return printJSON(struct {
				Startups   []getlisted.Startup   `json:"startups"`
				Count      int                   `json:"count"`
				Pagination *getlisted.Pagination `json:"pagination,omitempty"`
			}{snap.Startups, snap.Count, snap.Pagination})
		},
	}
	cmd.Flags().StringVar(&filter.Category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&filter.Country, "country", "", "Filter by country")
	cmd.Flags().StringVar(&filter.Stage, "stage", "", "Filter by funding stage")
	cmd.Flags().StringVar(&filter.SearchTerm, "search", "", "Match against startup names")
	cmd.Flags().Float64Var(&fundingMin, "funding-min", 0, "Minimum total funding")
	cmd.Flags().Float64Var(&fundingMax, "funding-max", 0, "Maximum total funding")
	cmd.Flags().Float64Var(&employeesMin, "employees-min", 0, "Minimum employee count")
	cmd.Flags().Float64Var(&employeesMax, "employees-max", 0, "Maximum employee count")
	cmd.Flags().IntVar(&page, "page", 0, "Page number (server default when 0)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size (server default when 0)")
	cmd.Flags().BoolVar(&mine, "mine", false, "Only startups created by the logged-in user")
	return cmd
}

func newGetStartupCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Fetch a single startup",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, directory, err := newStores()
			if err != nil {
				return err
			}
			ctx, cancel := opCtx(cmd)
			defer cancel()

			if err := directory.GetStartup(ctx, id); err != nil {
				return err
			}
			return printJSON(directory.Snapshot().Startup)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Startup ID")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newCreateStartupCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a startup from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, directory, err := newStores()
			if err != nil {
				return err
			}
			ctx, cancel := opCtx(cmd)
			defer cancel()

			req, err := readStartupFile(file)
			if err != nil {
				return err
			}
			if err := directory.CreateStartup(ctx, *req); err != nil {
				return err
			}
			return printJSON(directory.Snapshot().Startup)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path of the startup JSON")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newUpdateStartupCmd() *cobra.Command {
	var id, file string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a startup from a JSON file of changed fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, directory, err := newStores()
			if err != nil {
				return err
			}
			ctx, cancel := opCtx(cmd)
			defer cancel()

			req, err := readStartupFile(file)
			if err != nil {
				return err
			}
			if err := directory.UpdateStartup(ctx, id, *req); err != nil {
				return err
			}
			return printJSON(directory.Snapshot().Startup)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Startup ID")
	cmd.Flags().StringVar(&file, "file", "", "Path of the partial startup JSON")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newDeleteStartupCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a startup",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, directory, err := newStores()
			if err != nil {
				return err
			}
			ctx, cancel := opCtx(cmd)
			defer cancel()

			if err := directory.DeleteStartup(ctx, id); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Startup ID")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func readStartupFile(path string) (*getlisted.CreateStartupRequest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var req getlisted.CreateStartupRequest
	if err := json.Unmarshal(b, &req); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &req, nil
}
