package failsafe

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "A passive validation layer for assistant output"
	MsgValidateShort  = "Validate text against the active rule set"
	MsgRulesShort     = "Manage validation rules"
	MsgListShort      = "List all rules"
	MsgShowShort      = "Show the full detail of one rule"
	MsgAddShort       = "Add a new rule"
	MsgRemoveShort    = "Remove a rule"
	MsgEnableShort    = "Enable a rule"
	MsgDisableShort   = "Disable a rule"
	MsgExportShort    = "Export rules as YAML"
	MsgImportShort    = "Import rules from a YAML file"
	MsgOverrideShort  = "Override a rule for a specific firing context"
	MsgOverridesShort = "Inspect the override ledger"
	MsgGenconfigShort = "Write a commented default config file"
	MsgVersionShort   = "Print version information"

	// Status messages
	MsgRuleAdded       = "Added rule %q (%s)\n"
	MsgRuleRemoved     = "Removed rule %s\n"
	MsgRuleEnabled     = "Enabled rule %q\n"
	MsgRuleDisabled    = "Disabled rule %q\n"
	MsgRulesImported   = "Imported %d rule(s), skipped %d\n"
	MsgOverrideGranted = "Override granted for rule %q in context %q (expires in %s)\n"
	MsgNoOverrides     = "No overrides recorded."
	MsgNoRules         = "No rules defined."
	MsgConfigWritten   = "Wrote default config to %s\n"
	MsgConfigExists    = "config file already exists at %s (use --force to overwrite)"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat  = "Output format: auto, term, text, or json"
	MsgFlagContext = "Firing context the text belongs to (conversation or task id)"
	MsgFlagMode    = "Validation mode: full, minimal, or critical"
	MsgFlagTimeout = "Per-run validation timeout"
	MsgFlagSkip    = "Skip validation and return the text unchanged"
)

// Long messages
const (
	MsgRootLong = `failsafe is a passive validation layer that checks assistant output
against a configurable rule set before it reaches the user.

Rules match text by regex or keyword. When a rule fires, its response
action transforms the output: blocking replaces the content with a
redaction notice, warnings and suggestions append an annotation, and
every change is recorded in the result's change log.

Validation never hard-fails: a broken rule, a timeout, or an internal
error degrades to warnings in the result rather than aborting the run.`

	MsgValidateLong = `Validate reads text from a file argument or from stdin, runs it
through the validation pipeline and prints the result.

The exit code is 0 whether or not rules fired; validation reports, it
does not gate. Use --format json for machine-readable output.`

	MsgOverrideLong = `Override records a bypass for one rule within one firing context.

The rule must allow overrides, and rules that require justification
reject requests without --because. An override applies only to the
named context and expires after the configured TTL; the rule keeps
firing everywhere else.`
)
