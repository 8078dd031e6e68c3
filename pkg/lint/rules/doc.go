// Package rules provides the built-in lint rules for phpsniff.
//
// # Rules
//
//   - BH001: function-call-argument-spacing - Spacing inside call argument lists
//     (PHP_CodeSniffer: Behance.Functions.FunctionCallArgumentSpacing)
//
// # Codes
//
// BH001 reports one of these codes per violation:
//
//   - SpaceAfterOpenParens: "foo($a )", anchored at the first argument token
//   - SpaceBeforeCloseParens: "foo( $a)", anchored at the last argument token
//   - SpaceBeforeComma: "foo( $a , $b )", anchored at the call name
//   - NoSpaceAfterComma: "foo( $a,$b )", anchored at the call name
//   - NoSpaceBeforeEquals: "foo( $x= 1 )", anchored at the call name
//   - NoSpaceAfterEquals: "foo( $x =1 )", anchored at the call name
//
// # Registration
//
// Rules are registered with the default registry via RegisterAll when the
// package is imported. Each rule is a lint.TokenRule: it names the token
// kinds it listens for and reports through RuleContext.AddError.
package rules
