package failsafe

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOverrideCmd() *cobra.Command {
	var (
		firingContext string
		justification string
		overriddenBy  string
	)

	cmd := &cobra.Command{
		Use:     "override <rule>",
		Short:   MsgOverrideShort,
		Long:    MsgOverrideLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			rule, err := resolveRule(a, args[0])
			if err != nil {
				return err
			}

			record, err := a.ledger.Request(rule.ID, firingContext, justification, overriddenBy)
			if err != nil {
				return err
			}
			if err := a.saveState(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), MsgOverrideGranted,
				rule.Name, record.FiringContext, a.cfg.Override.TTL)
			return nil
		},
	}

	cmd.Flags().StringVar(&firingContext, "context", "", MsgFlagContext)
	cmd.Flags().StringVar(&justification, "because", "", "Justification for the override")
	cmd.Flags().StringVar(&overriddenBy, "by", "user", "Who requested the override")
	_ = cmd.MarkFlagRequired("context")

	return cmd
}

func newOverridesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "overrides",
		Short:   MsgOverridesShort,
		GroupID: "core",
	}

	var ruleRef string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			ruleID := ""
			if ruleRef != "" {
				rule, err := resolveRule(a, ruleRef)
				if err != nil {
					return err
				}
				ruleID = rule.ID
			}

			records := a.ledger.List(ruleID)
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), MsgNoOverrides)
				return nil
			}
			for _, rec := range records {
				name := rec.RuleID
				if rule := a.store.Get(rec.RuleID); rule != nil {
					name = rule.Name
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-30s  context=%s  by=%s\n",
					rec.Timestamp.Format("2006-01-02 15:04:05"), name,
					rec.FiringContext, rec.OverriddenBy)
				if rec.Justification != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "    because: %s\n", rec.Justification)
				}
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&ruleRef, "rule", "", "Only show overrides for this rule")

	cmd.AddCommand(listCmd)
	return cmd
}
