package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// BVLexer tokenizes BV surface syntax: parenthesized s-expressions built
// from the keywords lambda/if0/fold, the operator names, x/y/z, and
// decimal or 0x-prefixed u64 constants.
var BVLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Keywords and identifiers (order matters: keywords are plain
		// identifiers lexically; the grammar matches them by literal value).
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},

		// Integer literals: 0x-prefixed hex or decimal.
		{"Integer", `0x[0-9a-fA-F]+|[0-9]+`, nil},

		// Punctuation
		{"Punctuation", `[()]`, nil},

		// Whitespace
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
