package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pumpline/pumpline/internal/config"
	"github.com/pumpline/pumpline/internal/dependency"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools the server would expose with the current config",
	RunE:  runTools,
}

func runTools(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	c, err := dependency.New(cfg)
	if err != nil {
		return err
	}

	for _, spec := range c.Registry().Specs() {
		effect := "read"
		if spec.Hints.Destructive {
			effect = "write"
		}
		var params []string
		for name, p := range spec.Params {
			if p.Required {
				params = append(params, name+"*")
			} else {
				params = append(params, name)
			}
		}
		sort.Strings(params)
		fmt.Printf("%-22s %-5s %v\n", spec.Name, effect, params)
	}
	return nil
}
