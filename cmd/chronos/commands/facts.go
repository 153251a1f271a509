package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/teranos/chronos/am"
	"github.com/teranos/chronos/errors"
	"github.com/teranos/chronos/kb"
	"github.com/teranos/chronos/kb/storage"
	"github.com/teranos/chronos/logger"
)

// factSource is a loaded fact graph plus the document whose prefixes
// expand identifiers given on the command line.
type factSource struct {
	graph *kb.Graph
	doc   *kb.Document
}

// expand turns compact command-line identifiers into full IRIs.
func (f *factSource) expand(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = f.doc.Expand(id)
	}
	return out
}

func addFactsFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "facts", "f", "", "Fact document (.toml, .yaml); reads the fact store when empty")
}

// loadFacts reads the fact document at path, or a snapshot of the fact store
// when path is empty.
func loadFacts(ctx context.Context, cfg *am.Config, path string) (*factSource, error) {
	if path != "" {
		doc, err := kb.LoadDocument(path)
		if err != nil {
			return nil, err
		}
		g, err := doc.Graph()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to expand %s", path)
		}
		logger.Debugw("Fact document loaded", logger.FieldFile, path, logger.FieldCount, g.Len())
		return &factSource{graph: g, doc: doc}, nil
	}

	database, err := openDatabase(cfg, "")
	if err != nil {
		return nil, err
	}
	defer database.Close()

	g, err := storage.NewSQLStore(database, logger.Logger).Snapshot(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read fact store")
	}
	return &factSource{graph: g, doc: &kb.Document{}}, nil
}
