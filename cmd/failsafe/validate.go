package failsafe

import (
	"io"
	"os"
	"time"

	"github.com/arthur-debert/failsafe/pkg/errors"
	"github.com/arthur-debert/failsafe/pkg/logging"
	"github.com/arthur-debert/failsafe/pkg/pipeline"
	"github.com/arthur-debert/failsafe/pkg/ui"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var (
		firingContext string
		mode          string
		timeout       time.Duration
		skip          bool
		format        string
	)

	cmd := &cobra.Command{
		Use:     "validate [file]",
		Short:   MsgValidateShort,
		Long:    MsgValidateLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.validate")

			text, err := readInput(args)
			if err != nil {
				return err
			}

			outFormat, err := ui.ParseFormat(format)
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}

			// Config supplies the defaults, flags win when set
			if !cmd.Flags().Changed("mode") && a.cfg.Validation.Mode != "" {
				mode = a.cfg.Validation.Mode
			}
			if !cmd.Flags().Changed("timeout") && a.cfg.Validation.Timeout > 0 {
				timeout = a.cfg.Validation.Timeout
			}

			runMode, err := parseMode(mode)
			if err != nil {
				return err
			}

			logger.Info().
				Str("mode", string(runMode)).
				Str("context", firingContext).
				Int("bytes", len(text)).
				Msg("Starting validation")

			result := a.pipeline.Run(cmd.Context(), text, firingContext, pipeline.Options{
				Mode:           runMode,
				Timeout:        timeout,
				SkipValidation: skip,
			})

			// Firing stats changed even when the text did not
			if err := a.saveState(); err != nil {
				logger.Warn().Err(err).Msg("Failed to persist state after run")
			}

			return ui.RenderResult(cmd.OutOrStdout(), result, outFormat.Resolve(os.Stdout))
		},
	}

	cmd.Flags().StringVar(&firingContext, "context", "", MsgFlagContext)
	cmd.Flags().StringVar(&mode, "mode", string(pipeline.ModeFull), MsgFlagMode)
	cmd.Flags().DurationVar(&timeout, "timeout", pipeline.DefaultTimeout, MsgFlagTimeout)
	cmd.Flags().BoolVar(&skip, "skip", false, MsgFlagSkip)
	cmd.Flags().StringVarP(&format, "format", "f", "auto", MsgFlagFormat)

	return cmd
}

// readInput returns the text to validate, from the file argument when
// given and from stdin otherwise.
func readInput(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrInvalidInput,
				"failed to read input file %s", args[0])
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInvalidInput, "failed to read stdin")
	}
	return string(data), nil
}

func parseMode(s string) (pipeline.Mode, error) {
	switch pipeline.Mode(s) {
	case pipeline.ModeFull, pipeline.ModeMinimal, pipeline.ModeCritical:
		return pipeline.Mode(s), nil
	case "":
		return pipeline.ModeFull, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput,
		"unknown validation mode: %s (expected full, minimal or critical)", s)
}
