package target

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// positionLexer tokenizes the position syntax. Axis letters and numbers are
// separate tokens so "p01" lexes as Word("p") Num("01").
var positionLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[\s]+`},
	{Name: "Word", Pattern: `[a-zA-Z]+`},
	{Name: "Num", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[.:]`},
})

// positionAST is the raw grammar shape before semantic checks.
type positionAST struct {
	Chip   string     `@Word`
	Unit   *string    `("." @Word)?`
	Coords []coordAST `(":" @@)*`
}

type coordAST struct {
	Axis string `@Word`
	Val  *int   `@Num?`
}

var positionParser = participle.MustBuild[positionAST](
	participle.Lexer(positionLexer),
	participle.Elide("Whitespace"),
)

// ParsePosition parses the canonical position syntax:
//
//	<chip>[.<unit>][:k<cage>][:n<node>][:s<slot>][:p<pos>][:c<unit>][:t<thread>]
//
// A coordinate written as "<axis>all" (e.g. "pall") is a wildcard, as is the
// bare position "all". Unspecified coordinates default to 0.
func ParsePosition(s string) (Position, error) {
	ast, err := positionParser.ParseString("", s)
	if err != nil {
		return Position{}, fmt.Errorf("target: parse %q: %w", s, err)
	}

	p := Position{ChipType: ast.Chip}
	if ast.Unit != nil {
		p.UnitType = *ast.Unit
	}

	var unitCoord bool
	for _, c := range ast.Coords {
		axis := c.Axis[0]
		var v int
		switch {
		case c.Val != nil && len(c.Axis) == 1:
			v = *c.Val
		case c.Val == nil && len(c.Axis) > 1 && c.Axis[1:] == "all":
			v = Any
		default:
			return Position{}, fmt.Errorf("target: malformed coordinate %q in %q", c.Axis, s)
		}

		switch axis {
		case 'k':
			p.Cage = v
		case 'n':
			p.Node = v
		case 's':
			p.Slot = v
		case 'p':
			p.Pos = v
		case 'c':
			p.Unit = v
			unitCoord = true
		case 't':
			p.Thread = v
			unitCoord = true
		default:
			return Position{}, fmt.Errorf("target: unknown coordinate axis %q in %q", axis, s)
		}
	}

	if p.UnitType == "" && unitCoord {
		return Position{}, fmt.Errorf("target: unit coordinate without unit type in %q", s)
	}
	return p, nil
}
