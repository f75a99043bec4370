package opts

import (
	"context"

	"github.com/walteh/magedeploy/pkg/config"
	"github.com/walteh/magedeploy/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string // explicit config file path, "" probes the store root
	Debug      bool
	Quiet      bool

	Console *log.Logger // user-facing console output, set up by the root command
}

// LoadConfig assembles the effective run selection: defaults overlaid
// with the explicit config file, or with one discovered in probeRoot.
// Command flags are the caller's to apply on top.
func (ro *RootOpts) LoadConfig(ctx context.Context, probeRoot string) (*config.Config, error) {
	cfg := config.Default()

	path := ro.ConfigFile
	if path == "" {
		if discovered, ok := config.Discover(config.ResolveRoot(probeRoot)); ok {
			path = discovered
		}
	}
	if path != "" {
		fileCfg, err := config.Load(ctx, path)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg.Overlay(fileCfg)
	}

	return cfg, nil
}
