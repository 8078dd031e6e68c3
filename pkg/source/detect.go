// Package source decides which files are PHP and extracts PHP snippets from
// Markdown documents.
package source

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Kind classifies a candidate file.
type Kind int

const (
	// KindUnknown files are not linted.
	KindUnknown Kind = iota
	// KindPHP files are tokenized directly.
	KindPHP
	// KindMarkdown files contribute their ```php fences.
	KindMarkdown
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPHP:
		return "php"
	case KindMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// Options control detection.
type Options struct {
	// Extensions are the PHP file extensions, including the dot.
	Extensions []string

	// Markdown accepts .md and .markdown files.
	Markdown bool

	// Shebang inspects extensionless files for a PHP interpreter line.
	Shebang bool
}

// HeadSize is the number of leading bytes Detect needs to see.
const HeadSize = 512

// Detect classifies path. head holds the first bytes of the file and is
// only consulted for extensionless files when Shebang is set.
func Detect(path string, head []byte, opts Options) Kind {
	ext := strings.ToLower(filepath.Ext(path))

	if ext != "" && slices.ContainsFunc(opts.Extensions, func(e string) bool {
		return strings.EqualFold(e, ext)
	}) {
		return KindPHP
	}

	if opts.Markdown && IsMarkdown(path) {
		return KindMarkdown
	}

	if ext == "" && opts.Shebang && len(head) > 0 {
		if lang, _ := enry.GetLanguageByShebang(head); lang == "PHP" {
			return KindPHP
		}
	}

	return KindUnknown
}

// IsMarkdown reports whether path has a Markdown extension.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}
