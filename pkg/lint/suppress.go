package lint

import (
	"strings"
	"unicode"

	"github.com/yaklabco/phpsniff/pkg/phptoken"
)

// Suppression directives, recognised inside any comment:
//
//	// phpcs:ignore [rule[,rule...]] [-- note]
//	// phpcs:disable [rule[,rule...]]
//	// phpcs:enable [rule[,rule...]]
//	// phpcs:ignoreFile
//
// A rule entry may be a rule ID, name, or alias, optionally followed by
// ".Code" to target a single diagnostic code. No entries means every rule.
const directivePrefix = "phpcs:"

type directive struct {
	command string
	rules   []string
}

// lineIgnore silences diagnostics on one line.
type lineIgnore struct {
	line  int
	rules []string
}

// disabledRange silences diagnostics anchored at token indexes in (start, end).
type disabledRange struct {
	start  int
	end    int
	rules  []string
	except []string
}

type suppressions struct {
	registry *Registry
	file     bool
	lines    []lineIgnore
	ranges   []disabledRange
}

func collectSuppressions(file *phptoken.File, registry *Registry) *suppressions {
	s := &suppressions{registry: registry}

	var open []disabledRange
	for i, tok := range file.Tokens() {
		if tok.Kind != phptoken.Comment && tok.Kind != phptoken.DocComment {
			continue
		}
		dir, ok := parseDirective(tok.Text)
		if !ok {
			continue
		}

		switch dir.command {
		case "ignorefile":
			s.file = true
		case "ignore":
			line := tok.Line
			if standsAlone(file, i) {
				line += strings.Count(tok.Text, "\n") + 1
			}
			s.lines = append(s.lines, lineIgnore{line: line, rules: dir.rules})
		case "disable":
			open = append(open, disabledRange{start: i, end: -1, rules: dir.rules})
		case "enable":
			open = s.enable(open, i, dir.rules)
		}
	}

	for _, r := range open {
		r.end = file.Len()
		s.ranges = append(s.ranges, r)
	}

	return s
}

// enable closes the open ranges affected by an enable directive at pos.
func (s *suppressions) enable(open []disabledRange, pos int, rules []string) []disabledRange {
	var still []disabledRange
	for _, r := range open {
		switch {
		case len(rules) == 0:
			r.end = pos
			s.ranges = append(s.ranges, r)
		case len(r.rules) == 0:
			// Re-enabling part of a blanket disable: close it and reopen
			// with the named rules exempt.
			r.end = pos
			s.ranges = append(s.ranges, r)
			still = append(still, disabledRange{
				start:  pos,
				end:    -1,
				except: append(append([]string(nil), r.except...), rules...),
			})
		default:
			var kept []string
			for _, name := range r.rules {
				if !containsFold(rules, name) {
					kept = append(kept, name)
				}
			}
			if len(kept) == len(r.rules) {
				still = append(still, r)
				continue
			}
			r.end = pos
			s.ranges = append(s.ranges, r)
			if len(kept) > 0 {
				still = append(still, disabledRange{start: pos, end: -1, rules: kept})
			}
		}
	}
	return still
}

// filter drops suppressed diagnostics and returns how many were dropped.
func (s *suppressions) filter(diags []Diagnostic) ([]Diagnostic, int) {
	if !s.file && len(s.lines) == 0 && len(s.ranges) == 0 {
		return diags, 0
	}

	kept := diags[:0]
	dropped := 0
	for _, d := range diags {
		if s.suppressed(d) {
			dropped++
			continue
		}
		kept = append(kept, d)
	}
	return kept, dropped
}

func (s *suppressions) suppressed(d Diagnostic) bool {
	if s.file {
		return true
	}
	for _, ig := range s.lines {
		if ig.line == d.Line && s.matchesAny(ig.rules, d) {
			return true
		}
	}
	for _, r := range s.ranges {
		if d.TokenIndex <= r.start || d.TokenIndex >= r.end {
			continue
		}
		if len(r.except) > 0 && s.listMatches(r.except, d) {
			continue
		}
		if s.matchesAny(r.rules, d) {
			return true
		}
	}
	return false
}

// matchesAny reports whether the entries cover d; no entries covers everything.
func (s *suppressions) matchesAny(entries []string, d Diagnostic) bool {
	return len(entries) == 0 || s.listMatches(entries, d)
}

func (s *suppressions) listMatches(entries []string, d Diagnostic) bool {
	for _, entry := range entries {
		if s.matches(entry, d) {
			return true
		}
	}
	return false
}

func (s *suppressions) matches(entry string, d Diagnostic) bool {
	if s.refersTo(entry, d) {
		return true
	}
	rule, code, ok := cutLast(entry, ".")
	return ok && strings.EqualFold(code, d.Code) && s.refersTo(rule, d)
}

// refersTo reports whether key names the rule that produced d.
func (s *suppressions) refersTo(key string, d Diagnostic) bool {
	if strings.EqualFold(key, d.RuleID) || key == d.RuleName {
		return true
	}
	if s.registry == nil {
		return false
	}
	id, _, ok := s.registry.Resolve(key)
	return ok && id == d.RuleID
}

// parseDirective extracts a phpcs: directive from comment text.
func parseDirective(text string) (directive, bool) {
	idx := strings.Index(strings.ToLower(text), directivePrefix)
	if idx < 0 {
		return directive{}, false
	}

	rest := text[idx+len(directivePrefix):]
	rest = strings.TrimSuffix(strings.TrimSpace(rest), "*/")
	if note := strings.Index(rest, "--"); note >= 0 {
		rest = rest[:note]
	}

	command, args := strings.TrimSpace(rest), ""
	if end := strings.IndexFunc(command, unicode.IsSpace); end >= 0 {
		command, args = command[:end], command[end:]
	}
	command = strings.ToLower(command)

	switch command {
	case "ignore", "disable", "enable", "ignorefile":
	default:
		return directive{}, false
	}

	var rules []string
	for _, entry := range strings.Split(args, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			rules = append(rules, entry)
		}
	}

	return directive{command: command, rules: rules}, true
}

// standsAlone reports whether comment i is the only code on its lines.
func standsAlone(file *phptoken.File, i int) bool {
	tok := file.Token(i)
	for j := i - 1; j >= 0; j-- {
		prev := file.Token(j)
		if prev.Line != tok.Line {
			break
		}
		if prev.Kind != phptoken.Whitespace && prev.Kind != phptoken.OpenTag {
			return false
		}
	}

	endLine := tok.Line + strings.Count(tok.Text, "\n")
	for j := i + 1; j < file.Len(); j++ {
		next := file.Token(j)
		if next.Line != endLine {
			break
		}
		if next.Kind != phptoken.Whitespace {
			return false
		}
	}
	return true
}

func cutLast(s, sep string) (string, string, bool) {
	idx := strings.LastIndex(s, sep)
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+len(sep):], true
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
