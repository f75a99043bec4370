/*
Package config manages configuration loading and validation for magedeploy.

	            +-------------+
	            |   Config    |
	            | (Selection) |
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+-----+  +----+----+
	|  YAML   |   |   JSON   |  |   HCL   |
	+---------+   +----------+  +---------+

🎯 Purpose:
- Loads the run selection from .magedeployrc files
- Validates areas, theme identities, and ignore patterns
- Layers defaults under config files under command-line flags
- Resolves and checks the Magento installation root

🔄 Flow:
1. Discover or receive a config file path
2. Parse format-specific syntax
3. Validate whatever fields are present
4. Overlay onto Default(); the command layer applies flags last

⚡ Key Responsibilities:
- Configuration parsing
- Selection validation
- Default value management
- Install-root checking

🤝 Interfaces:
- Config: the validated run selection
- Load: format-dispatching file loader
- Discover: well-known file probing

📝 Design Philosophy:
The config package is the source of truth for the run selection. A
config file is an overlay, not a complete document: only the fields it
sets are checked, and completeness comes from Default(). The merged
selection the command layer hands to the deploy core is fully
validated; the core never re-checks it.

🚧 Current Issues & TODOs:
1. Environment variables:
  - MAGEDEPLOY_JOBS / MAGEDEPLOY_ROOT overrides between file and flags

2. Validation:
  - Suggest close matches for misspelled area names

🔍 Example:

	cfg := config.Default()
	if path, ok := config.Discover(dir); ok {
		fileCfg, err := config.Load(ctx, path)
		if err != nil {
			return err
		}
		cfg.Overlay(fileCfg)
	}
	// flags are applied by the command layer, then:
	if err := cfg.Validate(); err != nil {
		return err
	}
*/
package config
