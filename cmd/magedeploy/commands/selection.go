package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/walteh/magedeploy/cmd/magedeploy/opts"
	"github.com/walteh/magedeploy/pkg/config"
	"github.com/walteh/magedeploy/pkg/scan"
	"github.com/walteh/magedeploy/pkg/theme"
	"gitlab.com/tozd/go/errors"
)

// loadSelection merges a command's flags over the discovered config
// and checks the install root. apply runs between the config file and
// validation, so flags win over the file and the file wins over
// defaults.
func loadSelection(cmd *cobra.Command, ro *opts.RootOpts, args []string, apply func(cfg *config.Config)) (*config.Config, string, error) {
	ctx := cmd.Context()

	probeRoot := "."
	if len(args) > 0 {
		probeRoot = args[0]
	}

	cfg, err := ro.LoadConfig(ctx, probeRoot)
	if err != nil {
		return nil, "", err
	}
	if len(args) > 0 {
		cfg.Root = args[0]
	}
	if apply != nil {
		apply(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	root := config.ResolveRoot(cfg.Root)
	if err := config.ValidateInstallRoot(root); err != nil {
		return nil, "", err
	}

	return cfg, root, nil
}

// discoverIndex walks the selected areas and builds the run's theme
// index.
func discoverIndex(ctx context.Context, root string, cfg *config.Config) (*theme.Index, []theme.Area, error) {
	areas := make([]theme.Area, 0, len(cfg.Areas))
	for _, raw := range cfg.Areas {
		area, _ := theme.ParseArea(raw)
		areas = append(areas, area)
	}

	var nodes []*theme.Node
	for _, area := range areas {
		discovered, err := scan.DiscoverThemes(ctx, root, area)
		if err != nil {
			return nil, nil, errors.Errorf("discovering %s themes: %w", area, err)
		}
		nodes = append(nodes, discovered...)
	}

	return theme.NewIndex(ctx, nodes), areas, nil
}
