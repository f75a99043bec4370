package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/magedeploy/cmd/magedeploy/opts"
	"github.com/walteh/magedeploy/pkg/config"
	"github.com/walteh/magedeploy/pkg/deploy"
	"github.com/walteh/magedeploy/pkg/theme"
	"gitlab.com/tozd/go/errors"
)

// NewCleanCmd creates the clean command
func NewCleanCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		areas  []string
		themes []string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "clean [root]",
		Short: "Remove deployed static assets",
		Long: `Clean removes the deployed static trees for the selected areas, or
just the selected themes within them. The deployed version marker is
left in place so the next deploy lands under the same version.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := zerolog.Ctx(ctx)

			cfg, root, err := loadSelection(cmd, ro, args, func(cfg *config.Config) {
				if cmd.Flags().Changed("area") {
					cfg.Areas = areas
				}
				if cmd.Flags().Changed("theme") {
					cfg.Themes = themes
				}
			})
			if err != nil {
				return err
			}

			version := deploy.ReadDeployedVersion(root)

			// Theme identities were validated with the selection
			var targets []string
			for _, raw := range cfg.Areas {
				area, _ := theme.ParseArea(raw)
				areaDir := deploy.AreaPath(root, version, area)
				if len(cfg.Themes) == 0 {
					targets = append(targets, areaDir)
					continue
				}
				for _, rawTheme := range cfg.Themes {
					id, _ := theme.ParseID(rawTheme)
					targets = append(targets, filepath.Join(areaDir, id.Vendor, id.Name))
				}
			}

			removed, failed := 0, 0
			for _, target := range targets {
				if _, statErr := os.Stat(target); statErr != nil {
					continue // nothing deployed there
				}

				if dryRun {
					if !ro.Quiet {
						ro.Console.JobLine(fmt.Sprintf("would remove %s", target))
					}
					removed++
					continue
				}

				if rmErr := os.RemoveAll(target); rmErr != nil {
					failed++
					ro.Console.Errorf("removing %s: %v", target, rmErr)
					logger.Error().Err(rmErr).Str("path", target).Msg("removing deployed tree")
					continue
				}

				removed++
				if !ro.Quiet {
					ro.Console.JobLine(fmt.Sprintf("removed %s", target))
				}
				logger.Debug().Str("path", target).Msg("removed deployed tree")
			}

			switch {
			case failed > 0:
				return errors.Errorf("failed to remove %d of %d deployed trees", failed, removed+failed)
			case removed == 0:
				if !ro.Quiet {
					pterm.Info.Println("nothing deployed, nothing to clean")
				}
			case dryRun:
				pterm.Info.Printfln("would remove %d deployed trees", removed)
			default:
				if !ro.Quiet {
					pterm.Success.Printfln("removed %d deployed trees", removed)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&areas, "area", "a", []string{"frontend", "adminhtml"}, "areas to clean (comma separated)")
	cmd.Flags().StringSliceVarP(&themes, "theme", "t", nil, "only clean these themes (Vendor/name)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print what would be removed without removing it")

	return cmd
}
