package failsafe

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/failsafe/pkg/config"
	"github.com/arthur-debert/failsafe/pkg/errors"
	"github.com/arthur-debert/failsafe/pkg/paths"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

func newGenconfigCmd() *cobra.Command {
	var (
		force     bool
		effective bool
	)

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenconfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if effective {
				// Print the merged config (defaults + file + env) instead
				// of writing anything.
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				data, err := toml.Marshal(cfg)
				if err != nil {
					return errors.Wrap(err, errors.ErrInternal, "failed to marshal config")
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			target := paths.ConfigFile()
			if _, err := os.Stat(target); err == nil && !force {
				return errors.Newf(errors.ErrInvalidInput, MsgConfigExists, target)
			}

			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return errors.Wrap(err, errors.ErrInternal, "failed to create config directory")
			}
			if err := os.WriteFile(target, []byte(config.GetDefaultConfigContent()), 0o644); err != nil {
				return errors.Wrap(err, errors.ErrInternal, "failed to write config file")
			}

			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, target)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	cmd.Flags().BoolVar(&effective, "effective", false, "Print the merged effective config instead of writing a file")

	return cmd
}
