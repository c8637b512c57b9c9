package main

import (
	"github.com/spf13/cobra"

	"github.com/alnah/go-url2pdf/internal/yamlutil"
)

// newConfigCmd prints the effective configuration (defaults, config file and
// URL2PDF_* variables combined) as YAML, ready to be saved as a config file.
func newConfigCmd(env *Environment, common *commonFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			cfg, err := loadLayeredConfig(common, env)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			out, err := yamlutil.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = env.Stdout.Write(out)
			return err
		},
	}
}
