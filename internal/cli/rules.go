package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/phpsniff/internal/logging"
	"github.com/yaklabco/phpsniff/pkg/config"
	"github.com/yaklabco/phpsniff/pkg/lint"
)

type rulesFlags struct {
	ruleFormat string
	format     string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Tags        []string `json:"tags"`
	Aliases     []string `json:"aliases,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules with their IDs, names, default severity,
tags, and the PHP_CodeSniffer sniff names they answer to.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd, lint.DefaultRegistry, flags)
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

func runRules(cmd *cobra.Command, registry *lint.Registry, flags *rulesFlags) error {
	ruleFormat := config.RuleFormat(flags.ruleFormat)
	if !ruleFormat.IsValid() {
		return usageError(fmt.Errorf("invalid --rule-format %q: must be name, id, or combined", flags.ruleFormat))
	}

	infos := collectRules(registry)

	switch flags.format {
	case formatJSON:
		return outputRulesJSON(cmd.OutOrStdout(), infos)
	case "text":
	default:
		return usageError(fmt.Errorf("invalid --format %q: must be text or json", flags.format))
	}

	logger := logging.NewWithWriter(cmd.OutOrStdout(), "info")
	if len(infos) == 0 {
		logger.Info("no rules registered")
		return nil
	}

	for _, info := range infos {
		fields := []any{
			logging.FieldSeverity, info.Severity,
			"tags", strings.Join(info.Tags, ","),
		}
		if len(info.Aliases) > 0 {
			fields = append(fields, "aliases", strings.Join(info.Aliases, ","))
		}
		if !info.Enabled {
			fields = append(fields, "enabled", false)
		}
		logger.Info(config.FormatRuleID(ruleFormat, info.ID, info.Name), fields...)
		fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", info.Description)
	}

	return nil
}

func collectRules(registry *lint.Registry) []ruleInfo {
	rules := registry.Rules()
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Enabled:     rule.DefaultEnabled(),
			Tags:        rule.Tags(),
			Aliases:     registry.Aliases(rule.ID()),
		})
	}
	return infos
}

// templateRules converts registered rules for config.GenerateTemplate.
func templateRules(registry *lint.Registry) []config.RuleInfo {
	rules := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Enabled:     rule.DefaultEnabled(),
			Severity:    rule.DefaultSeverity(),
			Tags:        rule.Tags(),
		})
	}
	return infos
}

func outputRulesJSON(w io.Writer, infos []ruleInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return exitError(ExitInternalError, fmt.Errorf("encoding rules: %w", err))
	}
	return nil
}
