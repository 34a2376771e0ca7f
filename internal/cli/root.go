// Package cli implements the command-line interface for manifold.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hexwild/manifoldcube/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath  string
	verbose bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "manifold",
	Short: "Manifold Cube Engine",
	Long: `Manifold Cube Engine - An N-by-N-by-N cube where every sticker is paired
with its antipodal twin. Flipping one tile flips the other, and a chaos
simulator cascades flips across the surface while you play.

Play interactively in the terminal, record games to a local database,
and replay or analyze them afterwards.`,
	Version: version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.manifoldcube/manifold.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// getDBPath returns the database path from flag or default.
func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return "" // Will use default
}

func openDB() (*storage.DB, error) {
	path := getDBPath()
	var db *storage.DB
	var err error

	if path == "" {
		db, err = storage.OpenDefault()
	} else {
		db, err = storage.Open(path)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
