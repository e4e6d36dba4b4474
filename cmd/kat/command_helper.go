package main

import (
	"context"
	"log/slog"

	"github.com/katcli/kat/internal/infrastructure/container"
	"github.com/spf13/cobra"
)

// CommandContext provides common command dependencies.
type CommandContext struct {
	Container *container.Container
	Logger    *slog.Logger
	Context   context.Context
}

// CommandHandler is a function that executes with initialized dependencies.
type CommandHandler func(*CommandContext, *cobra.Command, []string) error

// withContainer wraps a command handler with the shared container.
//
// Usage:
//
//	cmd := &cobra.Command{
//	    Use: "list",
//	    RunE: withContainer(c, func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
//	        return ctx.Container.ProfileCatalog().List(ctx.Context, "text", cmd.OutOrStdout())
//	    }),
//	}
func withContainer(c *container.Container, handler CommandHandler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		return handler(&CommandContext{
			Container: c,
			Logger:    slog.Default(),
			Context:   ctx,
		}, cmd, args)
	}
}
