package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
)

// rawInspector is implemented by stores that can return a collection's
// configuration in their own wire format.
type rawInspector interface {
	RawCollectionInfo(ctx context.Context, name string) ([]byte, error)
}

// inspectOutput is printed by collections inspect.
type inspectOutput struct {
	Collection *vectordb.Collection `json:"details"`
	Capability vectordb.Capability  `json:"capability"`
}

func NewCollectionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collections",
		Aliases: []string{"collection", "coll"},
		Short:   "List, inspect, create and delete collections",
	}

	cmd.AddCommand(
		newCollectionsListCmd(a),
		newCollectionsInspectCmd(a),
		newCollectionsCreateCmd(a),
		newCollectionsDeleteCmd(a),
	)
	return cmd
}

func newCollectionsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List collections with their configuration and capability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), cfg, func(ctx context.Context, d deps) error {
				infos, err := d.Service.Describe(ctx)
				if err != nil {
					return err
				}
				return outputJSON(cmd, infos)
			})
		},
	}
}

func newCollectionsInspectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <name>",
		Short: "Show one collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			raw, _ := cmd.Flags().GetBool("raw")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), cfg, func(ctx context.Context, d deps) error {
				if raw {
					return inspectRaw(ctx, cmd, d.Store, name)
				}
				coll, err := d.Store.GetCollection(ctx, name)
				if err != nil {
					return err
				}
				return outputJSON(cmd, inspectOutput{Collection: coll, Capability: coll.Capability()})
			})
		},
	}

	cmd.Flags().Bool("raw", false, "Print the configuration as the store reports it")
	return cmd
}

func inspectRaw(ctx context.Context, cmd *cobra.Command, store vectordb.Store, name string) error {
	inspector, ok := store.(rawInspector)
	if !ok {
		return fmt.Errorf("%w: --raw is not supported by this store", vectordb.ErrInvalidArgument)
	}
	data, err := inspector.RawCollectionInfo(ctx, name)
	if err != nil {
		return err
	}
	return outputJSON(cmd, json.RawMessage(data))
}

func newCollectionsCreateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a collection for one vector mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			modeFlag, _ := cmd.Flags().GetString("mode")

			mode, err := vectordb.ParseMode(modeFlag)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), cfg, func(ctx context.Context, d deps) error {
				spec, err := d.Service.CreateCollection(ctx, name, mode)
				if err != nil {
					return err
				}
				return outputJSON(cmd, spec)
			})
		},
	}

	addModeFlag(cmd, string(vectordb.ModeDense))
	return cmd
}

func newCollectionsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a collection and its points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), cfg, func(ctx context.Context, d deps) error {
				if err := d.Service.DeleteCollection(ctx, name); err != nil {
					return err
				}
				return outputJSON(cmd, map[string]any{"deleted": name})
			})
		},
	}
}
