package config

// FormatRuleID formats a rule identifier based on the given format.
// Falls back to ID if name is empty.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	if ruleName == "" {
		return ruleID
	}

	switch format {
	case RuleFormatID:
		return ruleID
	case RuleFormatCombined:
		return ruleID + "/" + ruleName
	case RuleFormatName:
		return ruleName
	default:
		return ruleName
	}
}

// FormatCode qualifies a diagnostic code with its rule, e.g.
// "function-call-argument-spacing.NoSpaceAfterComma".
func FormatCode(format RuleFormat, ruleID, ruleName, code string) string {
	rule := FormatRuleID(format, ruleID, ruleName)
	if code == "" {
		return rule
	}
	return rule + "." + code
}
