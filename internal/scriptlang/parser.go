package scriptlang

import "fmt"

// Parser is a small recursive-descent/precedence-climbing parser over
// Lexer's token stream, following the teacher's own two-stage
// lexer-then-parser split (internal/parser.Parser) at a fraction of
// the grammar size: this language has one expression form and no
// statements.
type Parser struct {
	l    *Lexer
	cur  Token
	peek Token
	errs []string
}

// NewParser builds a Parser over src, priming the first two tokens.
func NewParser(src string) *Parser {
	p := &Parser{l: New(src)}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

// Errors returns every parse error accumulated so far.
func (p *Parser) Errors() []string { return p.errs }

func (p *Parser) errorf(format string, args ...any) {
	p.errs = append(p.errs, fmt.Sprintf("line %d: %s", p.cur.Line, fmt.Sprintf(format, args...)))
}

// ParseScript parses a full script: zero or more `var` declarations
// followed by exactly one expression.
func (p *Parser) ParseScript() (*Script, error) {
	s := &Script{}
	for p.cur.Type == VAR {
		d, ok := p.parseVarDecl()
		if !ok {
			break
		}
		s.Vars = append(s.Vars, d)
	}
	if len(p.errs) > 0 {
		return nil, fmt.Errorf("scriptlang: %v", p.errs)
	}
	s.Expr = p.parseExpr(precLowest)
	if len(p.errs) > 0 {
		return nil, fmt.Errorf("scriptlang: %v", p.errs)
	}
	if p.cur.Type != EOF {
		p.errorf("unexpected trailing token %q", p.cur.Literal)
		return nil, fmt.Errorf("scriptlang: %v", p.errs)
	}
	return s, nil
}

func (p *Parser) parseVarDecl() (VarDecl, bool) {
	p.next() // consume 'var'
	if p.cur.Type != IDENT {
		p.errorf("expected variable name, got %q", p.cur.Literal)
		return VarDecl{}, false
	}
	name := p.cur.Literal
	p.next()
	if p.cur.Type != COLON {
		p.errorf("expected ':' after variable name %q", name)
		return VarDecl{}, false
	}
	p.next()
	if p.cur.Type != IDENT {
		p.errorf("expected type name for variable %q", name)
		return VarDecl{}, false
	}
	typ := p.cur.Literal
	p.next()
	return VarDecl{Name: name, Type: typ}, true
}

const (
	precLowest = iota
	precOr
	precAnd
	precCompare
	precAdd
	precMul
	precUnary
)

func precedenceOf(t TokenType) int {
	switch t {
	case OR:
		return precOr
	case AND:
		return precAnd
	case EQ, LT, LEQ, GT, GEQ:
		return precCompare
	case PLUS, MINUS:
		return precAdd
	case STAR:
		return precMul
	default:
		return precLowest
	}
}

func (p *Parser) parseExpr(minPrec int) Expr {
	left := p.parseUnary()
	for {
		prec := precedenceOf(p.cur.Type)
		if prec <= minPrec {
			return left
		}
		op := p.cur.Type
		p.next()
		right := p.parseExpr(prec)
		left = &Binary{Op: int(op), X: left, Y: right}
	}
}

func (p *Parser) parseUnary() Expr {
	switch p.cur.Type {
	case MINUS, NOT:
		op := p.cur.Type
		p.next()
		return &Unary{Op: int(op), X: p.parseUnary()}
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() Expr {
	switch p.cur.Type {
	case INT:
		v := p.cur.Literal
		p.next()
		return IntLit{Value: v}
	case TRUE:
		p.next()
		return BoolLit{Value: true}
	case FALSE:
		p.next()
		return BoolLit{Value: false}
	case STRING:
		v := p.cur.Literal
		p.next()
		return StringLit{Value: v}
	case IDENT:
		v := p.cur.Literal
		p.next()
		return Ident{Name: v}
	case LPAREN:
		p.next()
		e := p.parseExpr(precLowest)
		if p.cur.Type != RPAREN {
			p.errorf("expected ')', got %q", p.cur.Literal)
			return nil
		}
		p.next()
		return e
	default:
		p.errorf("unexpected token %q", p.cur.Literal)
		return nil
	}
}
