package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// defaultCollection is the collection the ingestion and search commands
// use when --collection is not given.
const defaultCollection = "psadt_commands"

func NewRootCmd(version string, a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vecsearch",
		Short: "Ingest records into a vector store and search them",
		Long: `Embeds records with a dense inference model or in-process BM25, stores them
in Qdrant (or in memory) and searches them, falling back from sparse to dense
search when a collection has no sparse vectors.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd)

	if a != nil {
		addSubcommands(rootCmd, a)
	}

	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "YAML configuration file")
	cmd.PersistentFlags().String("store", "", "Vector store backend (qdrant|memory)")
	cmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warning|error)")
}

func addSubcommands(root *cobra.Command, a *app) {
	root.AddCommand(
		NewIngestCmd(a),
		NewSearchCmd(a),
		NewEmbedCmd(a),
		NewCollectionsCmd(a),
		NewPingCmd(a),
	)
}

func addCollectionFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("collection", "c", defaultCollection, "Target collection")
}

func addModeFlag(cmd *cobra.Command, def string) {
	cmd.Flags().StringP("mode", "m", def, "Vector mode (dense|sparse)")
}

func outputJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
