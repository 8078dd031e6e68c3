package phptoken

import "strings"

// keywords maps lowercase reserved words to their kinds.
// Words absent here (including true, false, null, self, parent) are String.
//
//nolint:gochecknoglobals // Read-only lookup table.
var keywords = map[string]Kind{
	"function":     Function,
	"fn":           Fn,
	"class":        Class,
	"interface":    Interface,
	"trait":        Trait,
	"new":          New,
	"use":          Use,
	"static":       Static,
	"return":       Return,
	"array":        Array,
	"list":         List,
	"isset":        Isset,
	"empty":        Empty,
	"unset":        Unset,
	"echo":         Echo,
	"print":        Print,
	"exit":         Exit,
	"die":          Exit,
	"eval":         Eval,
	"include":      Include,
	"include_once": Include,
	"require":      Include,
	"require_once": Include,
	"if":           If,
	"elseif":       Elseif,
	"else":         Else,
	"while":        While,
	"do":           Do,
	"for":          For,
	"foreach":      Foreach,
	"switch":       Switch,
	"case":         Case,
	"match":        Match,
	"catch":        Catch,
	"declare":      Declare,

	"abstract":   Keyword,
	"and":        Keyword,
	"as":         Keyword,
	"break":      Keyword,
	"callable":   Keyword,
	"clone":      Keyword,
	"const":      Keyword,
	"continue":   Keyword,
	"default":    Keyword,
	"enddeclare": Keyword,
	"endfor":     Keyword,
	"endforeach": Keyword,
	"endif":      Keyword,
	"endswitch":  Keyword,
	"endwhile":   Keyword,
	"extends":    Keyword,
	"final":      Keyword,
	"finally":    Keyword,
	"global":     Keyword,
	"goto":       Keyword,
	"implements": Keyword,
	"instanceof": Keyword,
	"insteadof":  Keyword,
	"namespace":  Keyword,
	"or":         Keyword,
	"private":    Keyword,
	"protected":  Keyword,
	"public":     Keyword,
	"readonly":   Keyword,
	"throw":      Keyword,
	"try":        Keyword,
	"var":        Keyword,
	"xor":        Keyword,
	"yield":      Keyword,
}

// castTypes are the type names accepted inside a cast such as (int).
//
//nolint:gochecknoglobals // Read-only lookup table.
var castTypes = map[string]bool{
	"int":     true,
	"integer": true,
	"bool":    true,
	"boolean": true,
	"float":   true,
	"double":  true,
	"real":    true,
	"string":  true,
	"array":   true,
	"object":  true,
	"unset":   true,
	"binary":  true,
}

// lookupKeyword classifies an identifier.
func lookupKeyword(word string) Kind {
	if kind, ok := keywords[strings.ToLower(word)]; ok {
		return kind
	}
	return String
}

// operators lists multi-byte operators, longest first within each length.
//
//nolint:gochecknoglobals // Read-only lookup table.
var operators = []string{
	"<=>", "**=", "...", "<<=", ">>=", "===", "!==", "??=",
	"->", "=>", "==", "!=", "<>", "<=", ">=", "&&", "||", "++", "--",
	"+=", "-=", "*=", "/=", ".=", "%=", "&=", "|=", "^=", "<<", ">>", "??", "**",
}

// operatorKind classifies an operator spelling.
func operatorKind(op string) Kind {
	switch op {
	case "=":
		return Equal
	case "&":
		return BitwiseAnd
	case "->":
		return ObjectOperator
	case "=>":
		return DoubleArrow
	case "...":
		return Ellipsis
	default:
		return Operator
	}
}
