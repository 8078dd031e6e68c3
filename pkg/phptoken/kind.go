package phptoken

import "strconv"

// Kind classifies a token in PHP source.
type Kind uint8

// Token kinds. Every byte of a file belongs to exactly one token.
const (
	Unknown Kind = iota

	InlineHTML      // text outside <?php ... ?>
	OpenTag         // <?php
	OpenTagWithEcho // <?=
	CloseTag        // ?>

	Whitespace
	Comment
	DocComment

	Variable           // $name
	String             // bareword identifier
	Number             // 42, 0x1F, 1.5e3
	ConstantString     // 'single quoted'
	DoubleQuotedString // "double quoted"
	Heredoc            // <<<EOT ... EOT
	ShellExec          // `backticks`
	Cast               // (int), (string), ...

	// Keywords with structural meaning.
	Function
	Closure // function keyword opening an anonymous function
	Fn      // arrow function keyword
	Class
	Interface
	Trait
	New
	Use
	Static
	Return
	Array
	List
	Isset
	Empty
	Unset
	Echo
	Print
	Exit
	Eval
	Include
	If
	Elseif
	Else
	While
	Do
	For
	Foreach
	Switch
	Case
	Match
	Catch
	Declare
	Keyword // any other reserved word

	// Punctuation and operators.
	OpenParenthesis
	CloseParenthesis
	OpenSquareBracket
	CloseSquareBracket
	OpenCurlyBracket
	CloseCurlyBracket
	Attribute // #[
	Comma
	Semicolon
	Colon
	DoubleColon
	ObjectOperator // -> and ?->
	DoubleArrow    // =>
	Equal          // = (assignment only)
	BitwiseAnd     // & (single)
	Ellipsis
	NsSeparator
	Operator // every other operator

	kindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [...]string{
	Unknown:            "Unknown",
	InlineHTML:         "InlineHTML",
	OpenTag:            "OpenTag",
	OpenTagWithEcho:    "OpenTagWithEcho",
	CloseTag:           "CloseTag",
	Whitespace:         "Whitespace",
	Comment:            "Comment",
	DocComment:         "DocComment",
	Variable:           "Variable",
	String:             "String",
	Number:             "Number",
	ConstantString:     "ConstantString",
	DoubleQuotedString: "DoubleQuotedString",
	Heredoc:            "Heredoc",
	ShellExec:          "ShellExec",
	Cast:               "Cast",
	Function:           "Function",
	Closure:            "Closure",
	Fn:                 "Fn",
	Class:              "Class",
	Interface:          "Interface",
	Trait:              "Trait",
	New:                "New",
	Use:                "Use",
	Static:             "Static",
	Return:             "Return",
	Array:              "Array",
	List:               "List",
	Isset:              "Isset",
	Empty:              "Empty",
	Unset:              "Unset",
	Echo:               "Echo",
	Print:              "Print",
	Exit:               "Exit",
	Eval:               "Eval",
	Include:            "Include",
	If:                 "If",
	Elseif:             "Elseif",
	Else:               "Else",
	While:              "While",
	Do:                 "Do",
	For:                "For",
	Foreach:            "Foreach",
	Switch:             "Switch",
	Case:               "Case",
	Match:              "Match",
	Catch:              "Catch",
	Declare:            "Declare",
	Keyword:            "Keyword",
	OpenParenthesis:    "OpenParenthesis",
	CloseParenthesis:   "CloseParenthesis",
	OpenSquareBracket:  "OpenSquareBracket",
	CloseSquareBracket: "CloseSquareBracket",
	OpenCurlyBracket:   "OpenCurlyBracket",
	CloseCurlyBracket:  "CloseCurlyBracket",
	Attribute:          "Attribute",
	Comma:              "Comma",
	Semicolon:          "Semicolon",
	Colon:              "Colon",
	DoubleColon:        "DoubleColon",
	ObjectOperator:     "ObjectOperator",
	DoubleArrow:        "DoubleArrow",
	Equal:              "Equal",
	BitwiseAnd:         "BitwiseAnd",
	Ellipsis:           "Ellipsis",
	NsSeparator:        "NsSeparator",
	Operator:           "Operator",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsEmpty reports whether the kind carries no code: whitespace and comments.
func (k Kind) IsEmpty() bool {
	switch k {
	case Whitespace, Comment, DocComment:
		return true
	default:
		return false
	}
}

// KindSet is a fixed-size set of token kinds.
type KindSet struct {
	bits [2]uint64
}

// NewKindSet returns a set holding kinds.
func NewKindSet(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s.bits[k/64] |= 1 << (k % 64)
	}
	return s
}

// Has reports whether k is in the set.
func (s KindSet) Has(k Kind) bool {
	return s.bits[k/64]&(1<<(k%64)) != 0
}

// With returns a copy of the set with kinds added.
func (s KindSet) With(kinds ...Kind) KindSet {
	for _, k := range kinds {
		s.bits[k/64] |= 1 << (k % 64)
	}
	return s
}

// EmptyKinds holds the kinds skipped when looking for the next piece of code.
//
//nolint:gochecknoglobals // Read-only set.
var EmptyKinds = NewKindSet(Whitespace, Comment, DocComment)
