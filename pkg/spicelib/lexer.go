package spicelib

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// LibLexer defines the lexical structure of SPICE model library files.
// The format is line-oriented: cards separated by newlines, "*" comment
// cards, ";" trailing comments, and dot-directives such as .subckt/.ends.
var LibLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments. A "*" card is a comment in SPICE decks; "*" never appears
	// bare inside library cards we care about.
	{Name: "Comment", Pattern: `\*[^\n]*`},
	{Name: "InlineComment", Pattern: `;[^\n]*`},

	// Subcircuit delimiters (case-insensitive, like all SPICE keywords).
	{Name: "KwSubckt", Pattern: `(?i)\.subckt\b`},
	{Name: "KwEnds", Pattern: `(?i)\.ends\b`},

	// Any other run of non-space characters, including other dot cards.
	{Name: "Word", Pattern: `[^\s]+`},

	{Name: "EOL", Pattern: `[\r\n]+`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})
