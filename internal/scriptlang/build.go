package scriptlang

import (
	"fmt"
	"math/big"

	"github.com/symexlang/symex/internal/symexpr"
	"github.com/symexlang/symex/internal/symtype"
)

// Built is a compiled Script: the expression node plus every declared
// hole, in declaration order, ready to hand a solver backend or
// concrete.Eval directly.
type Built struct {
	Node  symexpr.Node
	Holes []*symexpr.Arbitrary
}

// Build resolves a Script's declared variable types and compiles its
// expression into an internal/symexpr.Node over those holes.
func Build(b *symexpr.Builder, s *Script) (*Built, error) {
	vars := make(map[string]*symexpr.Arbitrary, len(s.Vars))
	holes := make([]*symexpr.Arbitrary, 0, len(s.Vars))
	for _, d := range s.Vars {
		t, err := resolveType(d.Type)
		if err != nil {
			return nil, fmt.Errorf("scriptlang: variable %q: %w", d.Name, err)
		}
		h := b.NewArbitrary(t, d.Name)
		vars[d.Name] = h
		holes = append(holes, h)
	}
	node, err := compile(s.Expr, vars)
	if err != nil {
		return nil, err
	}
	return &Built{Node: node, Holes: holes}, nil
}

func resolveType(name string) (symtype.Type, error) {
	switch name {
	case "bool":
		return symtype.Bool{}, nil
	case "i8":
		return symtype.I8, nil
	case "i16":
		return symtype.I16, nil
	case "i32":
		return symtype.I32, nil
	case "i64":
		return symtype.I64, nil
	case "u8":
		return symtype.U8, nil
	case "u16":
		return symtype.U16, nil
	case "u32":
		return symtype.U32, nil
	case "u64":
		return symtype.U64, nil
	case "bigint":
		return symtype.BigInt{}, nil
	case "string":
		return symtype.String{}, nil
	default:
		return nil, fmt.Errorf("unknown type %q", name)
	}
}

func compile(e Expr, vars map[string]*symexpr.Arbitrary) (symexpr.Node, error) {
	switch n := e.(type) {
	case IntLit:
		v, ok := new(big.Int).SetString(n.Value, 10)
		if !ok {
			return nil, fmt.Errorf("scriptlang: invalid integer literal %q", n.Value)
		}
		return symexpr.BitvecI(64, true, v.Int64()), nil
	case BoolLit:
		return symexpr.Bool(n.Value), nil
	case StringLit:
		return symexpr.Str(n.Value), nil
	case Ident:
		h, ok := vars[n.Name]
		if !ok {
			return nil, fmt.Errorf("scriptlang: undeclared variable %q", n.Name)
		}
		return h, nil
	case *Unary:
		x, err := compile(n.X, vars)
		if err != nil {
			return nil, err
		}
		switch TokenType(n.Op) {
		case NOT:
			return symexpr.Not(x)
		case MINUS:
			zero, err := zeroOf(x)
			if err != nil {
				return nil, err
			}
			return symexpr.Sub(zero, x)
		default:
			return nil, fmt.Errorf("scriptlang: unsupported unary operator")
		}
	case *Binary:
		x, err := compile(n.X, vars)
		if err != nil {
			return nil, err
		}
		y, err := compile(n.Y, vars)
		if err != nil {
			return nil, err
		}
		// Integer literals compile as i64; a literal combined with a
		// bitvector operand of another width or sign takes that operand's type.
		if c, ok := y.(*symexpr.BitvecConst); ok {
			if xt, ok := x.Type().(symtype.Bitvec); ok {
				y = symexpr.Bitvec(xt.Width, xt.Signed, c.Value)
			}
		}
		if c, ok := x.(*symexpr.BitvecConst); ok {
			if yt, ok := y.Type().(symtype.Bitvec); ok {
				x = symexpr.Bitvec(yt.Width, yt.Signed, c.Value)
			}
		}
		switch TokenType(n.Op) {
		case AND:
			return symexpr.And(x, y)
		case OR:
			return symexpr.Or(x, y)
		case PLUS:
			return symexpr.Add(x, y)
		case MINUS:
			return symexpr.Sub(x, y)
		case STAR:
			return symexpr.Mul(x, y)
		case EQ:
			return symexpr.Eq(x, y)
		case LT:
			return symexpr.Lt(x, y)
		case LEQ:
			return symexpr.Leq(x, y)
		case GT:
			return symexpr.Gt(x, y)
		case GEQ:
			return symexpr.Geq(x, y)
		default:
			return nil, fmt.Errorf("scriptlang: unsupported binary operator")
		}
	default:
		return nil, fmt.Errorf("scriptlang: unsupported expression node")
	}
}

// zeroOf builds the additive identity matching x's own numeric type,
// so unary minus type-checks against whichever width/kind x turned out
// to be rather than assuming a fixed width.
func zeroOf(x symexpr.Node) (symexpr.Node, error) {
	switch t := x.Type().(type) {
	case symtype.Bitvec:
		return symexpr.Bitvec(t.Width, t.Signed, big.NewInt(0)), nil
	case symtype.BigInt:
		return symexpr.BigInt(big.NewInt(0)), nil
	default:
		return nil, fmt.Errorf("scriptlang: unary '-' needs a numeric operand, got %s", t.String())
	}
}
