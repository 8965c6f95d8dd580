package failsafe

import (
	"fmt"
	"os"

	"github.com/arthur-debert/failsafe/pkg/errors"
	"github.com/arthur-debert/failsafe/pkg/logging"
	"github.com/arthur-debert/failsafe/pkg/style"
	"github.com/arthur-debert/failsafe/pkg/types"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rules",
		Short:   MsgRulesShort,
		GroupID: "core",
	}

	cmd.AddCommand(newRulesListCmd())
	cmd.AddCommand(newRulesShowCmd())
	cmd.AddCommand(newRulesAddCmd())
	cmd.AddCommand(newRulesRemoveCmd())
	cmd.AddCommand(newRulesEnableCmd())
	cmd.AddCommand(newRulesDisableCmd())
	cmd.AddCommand(newRulesExportCmd())
	cmd.AddCommand(newRulesImportCmd())

	return cmd
}

func newRulesListCmd() *cobra.Command {
	var minSeverity string

	cmd := &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			all := a.store.List()
			if minSeverity != "" {
				floor, ok := types.ParseSeverity(minSeverity)
				if !ok {
					return errors.Newf(errors.ErrInvalidInput,
						"unknown severity: %s", minSeverity)
				}
				filtered := all[:0]
				for _, rule := range all {
					if rule.Severity.AtLeast(floor) {
						filtered = append(filtered, rule)
					}
				}
				all = filtered
			}

			if len(all) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), MsgNoRules)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), style.RenderRuleList(all))
			return nil
		},
	}

	cmd.Flags().StringVar(&minSeverity, "min-severity", "", "Only show rules at or above this severity")
	return cmd
}

func newRulesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <rule>",
		Short: MsgShowShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			rule, err := resolveRule(a, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), style.RenderRuleDetail(*rule))
			return nil
		},
	}
}

func newRulesAddCmd() *cobra.Command {
	var (
		pattern       string
		patternType   string
		severity      string
		response      string
		message       string
		purpose       string
		description   string
		allowOverride bool
		requireWhy    bool
		disabled      bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: MsgAddShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			sev, ok := types.ParseSeverity(severity)
			if !ok {
				return errors.Newf(errors.ErrInvalidInput, "unknown severity: %s", severity)
			}

			rule, err := a.store.Add(types.RuleDraft{
				Name:        args[0],
				Pattern:     pattern,
				PatternType: types.PatternType(patternType),
				Purpose:     purpose,
				Severity:    sev,
				Enabled:     !disabled,
				Message:     message,
				Response:    types.ResponseAction(response),
				Override: types.OverridePolicy{
					Allowed:               allowOverride,
					RequiresJustification: requireWhy,
				},
				Description: description,
				CreatedBy:   "user",
			})
			if err != nil {
				return err
			}
			if err := a.saveState(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), MsgRuleAdded, rule.Name, rule.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "", "Pattern the rule matches (required)")
	cmd.Flags().StringVar(&patternType, "pattern-type", string(types.PatternKeyword), "Pattern type: regex or keyword")
	cmd.Flags().StringVar(&severity, "severity", "medium", "Severity: low, medium, high or critical")
	cmd.Flags().StringVar(&response, "response", string(types.ResponseWarn), "Response action: block, warn, suggest or default")
	cmd.Flags().StringVar(&message, "message", "", "Extra message appended when the rule fires")
	cmd.Flags().StringVar(&purpose, "purpose", "", "What the rule is for")
	cmd.Flags().StringVar(&description, "description", "", "Longer description, shown in block notices")
	cmd.Flags().BoolVar(&allowOverride, "allow-override", true, "Allow this rule to be overridden")
	cmd.Flags().BoolVar(&requireWhy, "require-justification", false, "Require a justification when overriding")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "Create the rule disabled")
	_ = cmd.MarkFlagRequired("pattern")

	return cmd
}

func newRulesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <rule>",
		Short: MsgRemoveShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			rule, err := resolveRule(a, args[0])
			if err != nil {
				return err
			}
			if err := a.store.Remove(rule.ID); err != nil {
				return err
			}
			if err := a.saveState(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgRuleRemoved, rule.ID)
			return nil
		},
	}
}

func newRulesEnableCmd() *cobra.Command {
	return newSetEnabledCmd("enable", MsgEnableShort, MsgRuleEnabled, true)
}

func newRulesDisableCmd() *cobra.Command {
	return newSetEnabledCmd("disable", MsgDisableShort, MsgRuleDisabled, false)
}

func newSetEnabledCmd(use, short, doneMsg string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <rule>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			rule, err := resolveRule(a, args[0])
			if err != nil {
				return err
			}
			if err := a.store.SetEnabled(rule.ID, enabled); err != nil {
				return err
			}
			if err := a.saveState(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), doneMsg, rule.Name)
			return nil
		},
	}
}

func newRulesExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: MsgExportShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(a.store.Snapshot())
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "failed to marshal rules")
			}
			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(output, data, 0o644)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

func newRulesImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: MsgImportShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.rules")

			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrapf(err, errors.ErrInvalidInput,
					"failed to read %s", args[0])
			}

			var drafts []types.RuleDraft
			if err := yaml.Unmarshal(data, &drafts); err != nil {
				return errors.Wrapf(err, errors.ErrInvalidInput,
					"failed to parse %s", args[0])
			}

			a, err := newApp()
			if err != nil {
				return err
			}

			imported, skipped := 0, 0
			for _, draft := range drafts {
				if draft.CreatedBy == "" {
					draft.CreatedBy = "import"
				}
				if _, err := a.store.Add(draft); err != nil {
					logger.Warn().Err(err).Str("rule", draft.Name).Msg("Skipping rule on import")
					skipped++
					continue
				}
				imported++
			}
			if err := a.saveState(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), MsgRulesImported, imported, skipped)
			return nil
		},
	}
}

// resolveRule looks a rule up by id first, then by exact name.
func resolveRule(a *app, ref string) (*types.Rule, error) {
	if rule := a.store.Get(ref); rule != nil {
		return rule, nil
	}
	if rule := a.store.FindByName(ref); rule != nil {
		return rule, nil
	}
	return nil, errors.Newf(errors.ErrNotFound, "no rule with id or name %q", ref)
}
