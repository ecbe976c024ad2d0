package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aleph-Alpha/vecsearch/v1/embedding"
	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
)

// embedOutput is printed by the embed command.
type embedOutput struct {
	Model     string          `json:"model"`
	Mode      vectordb.Mode   `json:"mode"`
	Purpose   string          `json:"purpose"`
	Dimension int             `json:"dimension"`
	Vector    vectordb.Vector `json:"vector"`
}

func NewEmbedCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "embed",
		Short: "Print the embedding of a text",
		Long: `Embeds one text with the dense or sparse model and prints the vector.
Queries and stored documents are weighted differently by sparse models;
--corpus embeds the text as a document.`,
		Args: cobra.NoArgs,
		RunE: makeEmbedRunner(a),
	}

	cmd.Flags().StringP("query", "q", "", "Text to embed")
	_ = cmd.MarkFlagRequired("query")
	addModeFlag(cmd, string(vectordb.ModeDense))
	cmd.Flags().Bool("corpus", false, "Embed as a stored document instead of a query")
	return cmd
}

func makeEmbedRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		text, _ := cmd.Flags().GetString("query")
		modeFlag, _ := cmd.Flags().GetString("mode")
		corpus, _ := cmd.Flags().GetBool("corpus")

		mode, err := vectordb.ParseMode(modeFlag)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		return a.run(cmd.Context(), cfg, func(ctx context.Context, d deps) error {
			out, err := embedText(ctx, d.Embedders, mode, text, corpus)
			if err != nil {
				return err
			}
			return outputJSON(cmd, out)
		})
	}
}

func embedText(ctx context.Context, set embedding.Set, mode vectordb.Mode, text string, corpus bool) (*embedOutput, error) {
	e, err := set.For(mode)
	if err != nil {
		return nil, err
	}

	out := &embedOutput{Model: e.Model(), Mode: mode, Purpose: string(embedding.PurposeQuery)}
	if corpus {
		vectors, err := e.EmbedCorpus(ctx, []string{text})
		if err != nil {
			return nil, err
		}
		if len(vectors) != 1 {
			return nil, fmt.Errorf("%w: got %d vectors for one text", embedding.ErrEmbeddingFailed, len(vectors))
		}
		out.Purpose = string(embedding.PurposeDocument)
		out.Vector = vectors[0]
	} else {
		v, err := e.EmbedQuery(ctx, text)
		if err != nil {
			return nil, err
		}
		out.Vector = v
	}

	if mode == vectordb.ModeDense {
		out.Dimension = len(out.Vector.Dense)
	} else if out.Vector.Sparse != nil {
		out.Dimension = out.Vector.Sparse.Len()
	}
	return out, nil
}
