package rules

import (
	"context"
	"strings"
	"testing"

	"github.com/yaklabco/phpsniff/pkg/config"
	"github.com/yaklabco/phpsniff/pkg/lint"
	"github.com/yaklabco/phpsniff/pkg/phptoken"
)

func benchmarkSource() []byte {
	var sb strings.Builder
	sb.WriteString("<?php\n")
	for range 500 {
		sb.WriteString("$x = compute( $a, array_map(function($v) { return trim($v); }, $list),$b );\n")
		sb.WriteString("$obj->call($x=1, [ 'k' => value( $y ) ]);\n")
	}
	return []byte(sb.String())
}

func BenchmarkTokenize(b *testing.B) {
	content := benchmarkSource()

	b.ResetTimer()
	for range b.N {
		if _, err := phptoken.Tokenize("bench.php", content, phptoken.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCallArgumentSpacingRule(b *testing.B) {
	content := benchmarkSource()

	registry := lint.NewRegistry()
	RegisterAll(registry)
	engine := lint.NewEngine(lint.PHPTokenizer, registry)
	cfg := config.NewConfig()
	ctx := context.Background()

	b.ResetTimer()
	for range b.N {
		if _, err := engine.LintFile(ctx, "bench.php", content, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
