package main

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/ramonehamilton/TCG-Deck-Companion/internal/config"
)

// runConfig prints the effective configuration, flag overrides included,
// or writes it back with "save".
func runConfig(e *env) error {
	path := e.opts.configPath
	if path == "" {
		path = config.Path()
	}

	if len(e.args) == 0 {
		data, err := toml.Marshal(e.cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Fprintf(e.stdout, "# %s\n", path)
		_, err = e.stdout.Write(data)
		return err
	}

	if len(e.args) != 1 || e.args[0] != "save" {
		return fmt.Errorf("usage: decktool config [save]")
	}

	var err error
	if e.opts.configPath == "" {
		err = e.cfg.Save()
	} else {
		err = e.cfg.SaveTo(path)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "Configuration written to %s\n", path)
	return nil
}
