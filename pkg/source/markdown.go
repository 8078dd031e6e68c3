package source

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Block is a PHP snippet taken from a fenced code block.
type Block struct {
	// Code is the fence body.
	Code []byte

	// StartLine is the 1-based line in the document of the first code line.
	StartLine int
}

// LineOffset is the amount to add to snippet line numbers to get document lines.
func (b Block) LineOffset() int {
	return b.StartLine - 1
}

// MarkdownBlocks returns the bodies of fenced code blocks whose info string
// names PHP, in document order.
func MarkdownBlocks(content []byte) []Block {
	doc := goldmark.New().Parser().Parse(text.NewReader(content))

	var blocks []Block
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if !strings.EqualFold(string(fence.Language(content)), "php") {
			return ast.WalkSkipChildren, nil
		}

		lines := fence.Lines()
		if lines.Len() == 0 {
			return ast.WalkSkipChildren, nil
		}

		var code bytes.Buffer
		for i := range lines.Len() {
			seg := lines.At(i)
			code.Write(seg.Value(content))
		}

		first := lines.At(0)
		blocks = append(blocks, Block{
			Code:      code.Bytes(),
			StartLine: bytes.Count(content[:first.Start], []byte("\n")) + 1,
		})
		return ast.WalkSkipChildren, nil
	})

	return blocks
}
