package main

import (
	"github.com/katcli/kat/internal/application/dto"
	"github.com/katcli/kat/internal/domain/entities"
	"github.com/katcli/kat/internal/infrastructure/container"
	"github.com/spf13/cobra"
)

// newProfileCmd turns a profile into a subcommand. The profile's lists are
// the flag defaults and may be replaced on the command line.
func newProfileCmd(c *container.Container, p *entities.Profile, globals *globalOptions) *cobra.Command {
	opts := DefaultCommonOptions(c.Config())
	var includedPaths, excludedPaths, includedTypes, excludedTypes []string

	short := p.About
	if short == "" {
		short = "Run the " + p.Name + " profile"
	}

	cmd := &cobra.Command{
		Use:   p.Name + " [PATH]",
		Short: short,
		Long: short + `

PATH is the directory or file to start from and defaults to the current
directory. Use -d to print the matching paths instead of their contents.`,
		Args: cobra.MaximumNArgs(1),
		RunE: withContainer(c, func(ctx *CommandContext, cmd *cobra.Command, args []string) error {
			if globals.debug && !cmd.Flags().Changed("mode") {
				opts.Mode = string(dto.ModePaths)
			}
			if err := opts.ValidateFlags(); err != nil {
				return err
			}

			base := "."
			if len(args) == 1 {
				base = args[0]
			}

			var overrides dto.ProfileOverrides
			if cmd.Flags().Changed("included-paths") {
				overrides.IncludedPaths = includedPaths
			}
			if cmd.Flags().Changed("excluded-paths") {
				overrides.ExcludedPaths = excludedPaths
			}
			if cmd.Flags().Changed("included-types") {
				overrides.IncludedTypes = includedTypes
			}
			if cmd.Flags().Changed("excluded-types") {
				overrides.ExcludedTypes = excludedTypes
			}

			uc, err := ctx.Container.RunProfileUseCase(container.ViewOptions{
				Viewer: opts.Viewer,
				Redact: opts.Redact,
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}

			resp, err := uc.Execute(ctx.Context, dto.RunProfileRequest{
				ProfileName: p.Name,
				Base:        base,
				Overrides:   overrides,
				Options:     opts.PresentOptions(),
			})
			if err != nil {
				return err
			}

			if resp.Selection != nil {
				ctx.Logger.Debug("profile finished",
					"profile", p.Name,
					"run_id", resp.Selection.RunID.String(),
					"selected", resp.Selection.Len(),
					"skipped", len(resp.Selection.Skipped),
					"duration", resp.Metadata.Duration)
			}
			return nil
		}),
	}

	// Pattern lists are arrays, not comma-split slices, so "{a,b}" survives.
	cmd.Flags().StringArrayVar(&includedPaths, "included-paths", p.IncludedPaths, "Included paths")
	cmd.Flags().StringArrayVar(&excludedPaths, "excluded-paths", p.ExcludedPaths, "Excluded paths")
	cmd.Flags().StringArrayVar(&includedTypes, "included-types", p.IncludedTypes, "Included types")
	cmd.Flags().StringArrayVar(&excludedTypes, "excluded-types", p.ExcludedTypes, "Excluded types")
	opts.RegisterFlags(cmd)

	return cmd
}
