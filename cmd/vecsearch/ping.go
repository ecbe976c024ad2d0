package main

import (
	"context"

	"github.com/spf13/cobra"
)

type pingOutput struct {
	Store       string   `json:"store"`
	Healthy     bool     `json:"healthy"`
	Collections []string `json:"collections"`
}

func NewPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the vector store is reachable and list its collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), cfg, func(ctx context.Context, d deps) error {
				if err := d.Service.Ping(ctx); err != nil {
					return err
				}
				names, err := d.Store.ListCollections(ctx)
				if err != nil {
					return err
				}
				if names == nil {
					names = []string{}
				}
				return outputJSON(cmd, pingOutput{Store: cfg.Store, Healthy: true, Collections: names})
			})
		},
	}
}
