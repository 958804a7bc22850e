package main

import (
	"flag"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func flagSet(t *testing.T, level string) *flag.FlagSet {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("log-level", "info", "")
	require.NoError(t, set.Set("log-level", level))
	return set
}

func TestIngestCommandFlags(t *testing.T) {
	app := &cli.App{
		Name: "clingraph",
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Action: ingestCommand,
				Flags: append(embeddingFlags(),
					&cli.StringFlag{Name: "concepts", Required: true},
					&cli.StringFlag{Name: "relationships", Required: true},
				),
			},
		},
	}

	t.Run("embedding-model is required", func(t *testing.T) {
		err := app.Run([]string{"clingraph", "ingest",
			"--db", "/tmp/test",
			"--concepts", "/tmp/concepts.tsv",
			"--relationships", "/tmp/rels.tsv"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "embedding-model")
	})

	t.Run("concepts file is required", func(t *testing.T) {
		err := app.Run([]string{"clingraph", "ingest",
			"--db", "/tmp/test",
			"--embedding-model", "embeddinggemma",
			"--relationships", "/tmp/rels.tsv"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "concepts")
	})
}

func TestSetupLogger(t *testing.T) {
	defer slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	newContext := func(level string) *cli.Context {
		app := &cli.App{Flags: globalFlags()}
		set := flagSet(t, level)
		return cli.NewContext(app, set, nil)
	}

	t.Run("accepts known levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "WARN", "Error"} {
			assert.NoError(t, setupLogger(newContext(level)), level)
		}
	})

	t.Run("rejects unknown levels", func(t *testing.T) {
		err := setupLogger(newContext("verbose"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}
