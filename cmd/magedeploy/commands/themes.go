package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/magedeploy/cmd/magedeploy/opts"
	"github.com/walteh/magedeploy/pkg/config"
	"github.com/walteh/magedeploy/pkg/theme"
)

// NewThemesCmd creates the themes listing command
func NewThemesCmd(ro *opts.RootOpts) *cobra.Command {
	var areas []string

	cmd := &cobra.Command{
		Use:   "themes [root]",
		Short: "List discovered themes with their inheritance chains",
		Long: `Themes walks the design areas and prints every discovered theme, its
resolved inheritance chain, and how a deploy run would treat it:
copied directly or delegated to bin/magento.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, root, err := loadSelection(cmd, ro, args, func(cfg *config.Config) {
				if cmd.Flags().Changed("area") {
					cfg.Areas = areas
				}
			})
			if err != nil {
				return err
			}

			index, selectedAreas, err := discoverIndex(ctx, root, cfg)
			if err != nil {
				return err
			}

			copies, delegates := 0, 0
			for _, area := range selectedAreas {
				nodes := index.NodesInArea(area)
				if len(nodes) == 0 {
					continue
				}

				pterm.DefaultSection.Printfln("%s (%d themes)", area, len(nodes))
				for _, n := range nodes {
					chain := index.Chain(n)
					names := make([]string, 0, len(chain))
					for _, link := range chain {
						names = append(names, link.ID.String())
					}

					var strategy string
					if n.Strategy == theme.StrategyCopy {
						strategy = color.GreenString("%-8s", "copy")
						copies++
					} else {
						strategy = color.YellowString("%-8s", "delegate")
						delegates++
					}

					fmt.Printf("  %-28s %s %s\n", n.ID, strategy, strings.Join(names, " -> "))
				}
			}

			if copies+delegates == 0 {
				pterm.Info.Println("no themes discovered")
				return nil
			}

			pterm.Printfln("\n%d themes (%d copy, %d delegate)", copies+delegates, copies, delegates)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&areas, "area", "a", []string{"frontend", "adminhtml"}, "areas to list (comma separated)")

	return cmd
}
