package commands

import (
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/chronos/db"
	"github.com/teranos/chronos/display"
	"github.com/teranos/chronos/errors"
	"github.com/teranos/chronos/kb"
	"github.com/teranos/chronos/kb/storage"
	"github.com/teranos/chronos/logger"
	"github.com/teranos/chronos/vocab"
)

// DbCmd represents the db (fact store) command
var DbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the fact store",
	Long: `db - Manage the SQLite fact store

Commands that take --facts read a snapshot of this store when no document is
given. Each import is tagged with a source name so it can be replaced later.

Examples:
  chronos db import facts.toml           # Import a document (source "facts.toml")
  chronos db import facts.toml --replace # Drop the previous import of that source first
  chronos db remove facts.toml           # Remove everything imported from a source
  chronos db stats                       # Show store statistics`,
}

var dbImportCmd = &cobra.Command{
	Use:   "import <document>...",
	Short: "Import fact documents into the store",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDbImport,
}

var dbRemoveCmd = &cobra.Command{
	Use:   "remove <source>",
	Short: "Remove every fact imported from a source",
	Args:  cobra.ExactArgs(1),
	RunE:  runDbRemove,
}

var dbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show fact store statistics",
	Args:  cobra.NoArgs,
	RunE:  runDbStats,
}

var (
	dbPathFlag    string
	dbSourceFlag  string
	dbReplaceFlag bool
)

func init() {
	DbCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "Fact store path (defaults to database.path)")
	dbImportCmd.Flags().StringVar(&dbSourceFlag, "source", "", "Source name for the import (defaults to the file name)")
	dbImportCmd.Flags().BoolVar(&dbReplaceFlag, "replace", false, "Remove facts previously imported from the same source")

	DbCmd.AddCommand(dbImportCmd)
	DbCmd.AddCommand(dbRemoveCmd)
	DbCmd.AddCommand(dbStatsCmd)
}

// importResult summarises one imported document.
type importResult struct {
	Source   string `json:"source"`
	Facts    int    `json:"facts"`
	Inserted int    `json:"inserted"`
	Removed  int    `json:"removed,omitempty"`
}

func openStore() (*storage.SQLStore, func(), error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	database, err := openDatabase(cfg, dbPathFlag)
	if err != nil {
		return nil, nil, err
	}
	return storage.NewSQLStore(database, logger.Logger), func() { database.Close() }, nil
}

func runDbImport(cmd *cobra.Command, args []string) error {
	if dbSourceFlag != "" && len(args) > 1 {
		return errors.NewInvalidRequestError("--source applies to a single document")
	}

	store, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()
	ctx := commandContext(cmd)

	results := make([]importResult, 0, len(args))
	for _, path := range args {
		doc, err := kb.LoadDocument(path)
		if err != nil {
			return err
		}
		triples, err := doc.Triples()
		if err != nil {
			return errors.Wrapf(err, "failed to expand %s", path)
		}

		res := importResult{Source: dbSourceFlag, Facts: len(triples)}
		if res.Source == "" {
			res.Source = filepath.Base(path)
		}
		if dbReplaceFlag {
			if res.Removed, err = store.DeleteSource(ctx, res.Source); err != nil {
				return err
			}
		}
		if res.Inserted, err = store.Add(ctx, res.Source, triples); err != nil {
			return errors.Wrapf(err, "failed to import %s", path)
		}
		results = append(results, res)
	}

	if display.ShouldOutputJSON(cmd) {
		return display.WriteJSON(cmd.OutOrStdout(), results)
	}
	for _, res := range results {
		fmt.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprintf("%s: %d facts, %d new", res.Source, res.Facts, res.Inserted))
	}
	return nil
}

func runDbRemove(cmd *cobra.Command, args []string) error {
	store, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	n, err := store.DeleteSource(commandContext(cmd), args[0])
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.WithHint(
			errors.Wrapf(errors.ErrNotFound, "source %s", args[0]),
			"sources default to the imported file name",
		)
	}
	fmt.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprintf("Removed %d facts from %s", n, args[0]))
	return nil
}

// storeStats is the db stats payload.
type storeStats struct {
	Path      string `json:"path"`
	Schema    string `json:"schema"`
	Facts     int    `json:"facts"`
	Instants  int    `json:"instants"`
	Intervals int    `json:"intervals"`
}

func runDbStats(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	path := dbPathFlag
	if path == "" {
		path = cfg.GetDatabasePath()
	}
	database, err := openDatabase(cfg, path)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx := commandContext(cmd)
	store := storage.NewSQLStore(database, logger.Logger)
	n, err := store.Count(ctx)
	if err != nil {
		return err
	}
	g, err := store.Snapshot(ctx)
	if err != nil {
		return err
	}

	schema, err := db.SchemaVersion(ctx, database)
	if err != nil {
		return err
	}

	stats := storeStats{Path: path, Schema: schema, Facts: n}
	stats.Instants = len(g.ClassMembers(vocab.ClassInstant))
	stats.Intervals = len(g.ClassMembers(vocab.ClassInterval))

	if display.ShouldOutputJSON(cmd) {
		return display.WriteJSON(cmd.OutOrStdout(), stats)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Fact Store Statistics")
	fmt.Fprintln(out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintf(out, "Database Path: %s\n", stats.Path)
	fmt.Fprintf(out, "Schema:        %s\n", stats.Schema)
	fmt.Fprintf(out, "Facts:         %d\n", stats.Facts)
	fmt.Fprintf(out, "Instants:      %d\n", stats.Instants)
	fmt.Fprintf(out, "Intervals:     %d\n", stats.Intervals)
	return nil
}
