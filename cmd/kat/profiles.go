package main

import (
	"github.com/katcli/kat/internal/infrastructure/container"
	"github.com/spf13/cobra"
)

func newProfilesCmd(c *container.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Inspect the available profiles",
	}
	cmd.AddCommand(newProfilesListCmd(c), newProfilesShowCmd(c))
	return cmd
}

func newProfilesListCmd(c *container.Container) *cobra.Command {
	format := c.Config().Format

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the profiles in the profiles directory",
		Args:  cobra.NoArgs,
		RunE: withContainer(c, func(ctx *CommandContext, cmd *cobra.Command, _ []string) error {
			if err := profilesUnavailable(ctx); err != nil {
				return err
			}
			return ctx.Container.ProfileCatalog().List(ctx.Context, format, cmd.OutOrStdout())
		}),
	}
	cmd.Flags().StringVar(&format, "format", format, "Output format: text, json, yaml")
	return cmd
}

func newProfilesShowCmd(c *container.Container) *cobra.Command {
	format := c.Config().Format

	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Show one profile",
		Args:  cobra.ExactArgs(1),
		RunE: withContainer(c, func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			if err := profilesUnavailable(ctx); err != nil {
				return err
			}
			return ctx.Container.ProfileCatalog().Show(ctx.Context, args[0], format, cmd.OutOrStdout())
		}),
	}
	cmd.Flags().StringVar(&format, "format", format, "Output format: text, json, yaml")
	return cmd
}

// profilesUnavailable returns the load error when no profile loaded at all.
// A partial load was already reported as a warning.
func profilesUnavailable(ctx *CommandContext) error {
	err := ctx.Container.ProfileLoadError()
	if err == nil || len(ctx.Container.Profiles(ctx.Context)) > 0 {
		return nil
	}
	return err
}
