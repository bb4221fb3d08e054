package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matthewp/lodge/internal/api"
	"github.com/matthewp/lodge/internal/config"
	"github.com/matthewp/lodge/internal/database"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	adminUserFlag     string
	adminPasswordFlag string
	dataDirFlag       string
)

var rootCmd = &cobra.Command{
	Use:   "lodge",
	Short: "Lodge CMS - single-binary headless CMS",
	Long: `Lodge CMS

A single-binary headless CMS with a built-in admin panel.

Admin credentials may come from flags or from the ADMIN_USER and
ADMIN_PASSWORD environment variables.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	RunE:    runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Lodge CMS %s\n", rootCmd.Version)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&adminUserFlag, "admin-user", "u", "", "Admin username for initial setup")
	rootCmd.Flags().StringVarP(&adminPasswordFlag, "admin-password", "p", "", "Admin password for initial setup")
	rootCmd.Flags().StringVarP(&dataDirFlag, "data-dir", "d", "", "Directory where the database will be stored")
	rootCmd.AddCommand(versionCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Flags win over environment values.
	if adminUserFlag != "" {
		cfg.Auth.AdminUser = adminUserFlag
	}
	if adminPasswordFlag != "" {
		cfg.Auth.AdminPassword = adminPasswordFlag
	}
	if dataDirFlag != "" {
		cfg.Storage.DataDir = dataDirFlag
	}

	if cfg.Auth.AdminUser == "" || cfg.Auth.AdminPassword == "" {
		fmt.Fprintln(os.Stderr, "Error: Admin user and password are required")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Provide them via:")
		fmt.Fprintln(os.Stderr, "  Command line: --admin-user <username> --admin-password <password>")
		fmt.Fprintln(os.Stderr, "  Environment:  ADMIN_USER=<username> ADMIN_PASSWORD=<password>")
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := database.New(filepath.Join(cfg.Storage.DataDir, "lodge.db"))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := seedAdmin(db, cfg.Auth.AdminUser, cfg.Auth.AdminPassword); err != nil {
		return err
	}

	return api.NewServer(cfg, db).Run()
}

// seedAdmin creates the admin account on first run; on later runs it
// verifies the provided password matches the stored one.
func seedAdmin(db *database.DB, username, password string) error {
	existing, err := db.GetUserByUsername(username)
	if err != nil {
		return fmt.Errorf("failed to check for existing user: %w", err)
	}

	if existing == nil {
		if err := db.CreateUser(username, password, "", "admin"); err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		log.Printf("Created admin user: %s", username)
		return nil
	}

	if err := db.VerifyUserPassword(username, password); err != nil {
		return fmt.Errorf("admin user %q exists but password doesn't match; provide the correct password or use a different username", username)
	}
	log.Printf("Admin user %q authenticated successfully", username)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
