package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/phpsniff/pkg/source"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	phpExts := []string{".php", ".inc"}

	tests := []struct {
		name string
		path string
		head string
		opts source.Options
		want source.Kind
	}{
		{"php extension", "src/a.php", "", source.Options{Extensions: phpExts}, source.KindPHP},
		{"case insensitive extension", "A.PHP", "", source.Options{Extensions: phpExts}, source.KindPHP},
		{"other extension", "a.js", "", source.Options{Extensions: phpExts}, source.KindUnknown},
		{"markdown disabled", "README.md", "", source.Options{Extensions: phpExts}, source.KindUnknown},
		{"markdown enabled", "README.md", "", source.Options{Extensions: phpExts, Markdown: true}, source.KindMarkdown},
		{"php shebang", "bin/tool", "#!/usr/bin/env php\n<?php\n", source.Options{Shebang: true}, source.KindPHP},
		{"shebang detection off", "bin/tool", "#!/usr/bin/env php\n", source.Options{}, source.KindUnknown},
		{"shell shebang", "bin/run", "#!/bin/sh\necho hi\n", source.Options{Shebang: true}, source.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, source.Detect(tt.path, []byte(tt.head), tt.opts))
		})
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "php", source.KindPHP.String())
	assert.Equal(t, "markdown", source.KindMarkdown.String())
	assert.Equal(t, "unknown", source.KindUnknown.String())
}

func TestMarkdownBlocks(t *testing.T) {
	t.Parallel()

	doc := "# Title\n" +
		"\n" +
		"```php\n" +
		"foo($a,$b);\n" +
		"bar();\n" +
		"```\n" +
		"\n" +
		"```js\n" +
		"foo(a,b);\n" +
		"```\n" +
		"\n" +
		"```PHP\n" +
		"baz( 1 );\n" +
		"```\n"

	blocks := source.MarkdownBlocks([]byte(doc))
	require.Len(t, blocks, 2)

	assert.Equal(t, "foo($a,$b);\nbar();\n", string(blocks[0].Code))
	assert.Equal(t, 4, blocks[0].StartLine)
	assert.Equal(t, 3, blocks[0].LineOffset())

	assert.Equal(t, "baz( 1 );\n", string(blocks[1].Code))
	assert.Equal(t, 13, blocks[1].StartLine)
}

func TestMarkdownBlocks_None(t *testing.T) {
	t.Parallel()

	assert.Empty(t, source.MarkdownBlocks([]byte("just text\n\n    indented code\n")))
	assert.Empty(t, source.MarkdownBlocks([]byte("```php\n```\n")))
}
