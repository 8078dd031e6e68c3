package rules

import (
	"strings"

	"github.com/yaklabco/phpsniff/pkg/lint"
	"github.com/yaklabco/phpsniff/pkg/phptoken"
)

// Diagnostic codes reported by CallArgumentSpacingRule.
const (
	CodeSpaceBeforeCloseParens = "SpaceBeforeCloseParens"
	CodeSpaceAfterOpenParens   = "SpaceAfterOpenParens"
	CodeSpaceBeforeComma       = "SpaceBeforeComma"
	CodeNoSpaceAfterComma      = "NoSpaceAfterComma"
	CodeNoSpaceBeforeEquals    = "NoSpaceBeforeEquals"
	CodeNoSpaceAfterEquals     = "NoSpaceAfterEquals"
)

// CallArgumentSpacingSniff is the PHP_CodeSniffer reference for the rule.
const CallArgumentSpacingSniff = "Behance.Functions.FunctionCallArgumentSpacing"

//nolint:gochecknoglobals // Read-only kind sets.
var (
	// definitionSkip is what may sit between a declaration keyword and its name.
	definitionSkip = phptoken.EmptyKinds.With(phptoken.BitwiseAnd)

	separatorKinds = phptoken.NewKindSet(phptoken.Comma, phptoken.Variable, phptoken.Closure)
)

// CallArgumentSpacingRule checks spacing inside the argument list of
// function and method calls:
//
//	foo( $a, $b );    // ok
//	foo($a,$b);       // missing inner spaces, missing space after comma
//	foo( $a , $b );   // space before comma
//	foo( $x=1 );      // unspaced default value
//
// Declarations (function foo(...), class Foo) are not calls and are skipped.
type CallArgumentSpacingRule struct {
	lint.BaseRule
}

// NewCallArgumentSpacingRule creates the rule.
func NewCallArgumentSpacingRule() *CallArgumentSpacingRule {
	return &CallArgumentSpacingRule{
		BaseRule: lint.NewBaseRule(
			"BH001",
			"function-call-argument-spacing",
			"Function and method call arguments must be padded inside the parentheses "+
				"and separated by a comma followed by whitespace",
			[]string{"spacing", "functions"},
		),
	}
}

// Register listens for bareword identifiers, the only tokens that can name a call.
func (r *CallArgumentSpacingRule) Register() []phptoken.Kind {
	return []phptoken.Kind{phptoken.String}
}

// Process checks the call named by the identifier at stackPtr, if it is one.
func (r *CallArgumentSpacingRule) Process(ctx *lint.RuleContext, stackPtr int) {
	file := ctx.File

	if prev, ok := file.FindPrevious(definitionSkip, stackPtr-1, 0, true); ok {
		switch file.Kind(prev) {
		case phptoken.Function, phptoken.Class:
			return
		}
	}

	openBracket, ok := file.FindNext(phptoken.EmptyKinds, stackPtr+1, file.Len(), true)
	if !ok || file.Kind(openBracket) != phptoken.OpenParenthesis {
		return
	}

	closeBracket, ok := file.ParenCloser(openBracket)
	if !ok || closeBracket == openBracket+1 {
		return
	}

	if file.Kind(closeBracket-1) != phptoken.Whitespace {
		ctx.AddError("Expected at least 1 space before closing parenthesis",
			closeBracket-1, CodeSpaceBeforeCloseParens)
	}

	if file.Kind(openBracket+1) != phptoken.Whitespace {
		ctx.AddError("Expected at least 1 space after opening parenthesis",
			openBracket+1, CodeSpaceAfterOpenParens)
	}

	next := openBracket
	for {
		next, ok = file.FindNext(separatorKinds, next+1, closeBracket, false)
		if !ok {
			return
		}

		if file.Kind(next) == phptoken.Closure {
			if closer, ok := file.ScopeCloser(next); ok {
				next = closer
			}
			continue
		}

		// Only separators of this call; nested calls, arrays and groups
		// are checked when their own identifier is visited.
		if inner, ok := file.InnermostParen(next); !ok || inner != openBracket {
			continue
		}

		switch file.Kind(next) {
		case phptoken.Comma:
			r.checkComma(ctx, stackPtr, next)
		case phptoken.Variable:
			r.checkDefaultValue(ctx, stackPtr, next, closeBracket)
		}
	}
}

func (r *CallArgumentSpacingRule) checkComma(ctx *lint.RuleContext, stackPtr, comma int) {
	file := ctx.File

	if file.Kind(comma-1) == phptoken.Whitespace {
		ctx.AddError("Space found before comma in function call", stackPtr, CodeSpaceBeforeComma)
		return
	}

	if file.Kind(comma+1) != phptoken.Whitespace {
		ctx.AddError("No space found after comma in function call", stackPtr, CodeNoSpaceAfterComma)
		return
	}

	// One argument per line is fine.
	space := file.Token(comma + 1).Text
	if strings.Contains(space, file.EOL()) {
		return
	}

	if len(space) < 1 {
		ctx.AddError("Expected at least 1 space after comma in function call; %d found",
			stackPtr, CodeNoSpaceAfterComma, len(space))
	}
}

func (r *CallArgumentSpacingRule) checkDefaultValue(ctx *lint.RuleContext, stackPtr, variable, closeBracket int) {
	file := ctx.File

	next, ok := file.FindNext(phptoken.EmptyKinds, variable+1, closeBracket, true)
	if !ok || file.Kind(next) != phptoken.Equal {
		return
	}

	if file.Kind(next-1) != phptoken.Whitespace {
		ctx.AddError("Expected 1 space before = sign of default value", stackPtr, CodeNoSpaceBeforeEquals)
	}

	if file.Kind(next+1) != phptoken.Whitespace {
		ctx.AddError("Expected 1 space after = sign of default value", stackPtr, CodeNoSpaceAfterEquals)
	}
}
