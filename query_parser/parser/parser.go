package parser

import (
	"strconv"

	"github.com/pkg/errors"

	lex "juicydb/query_parser/lexer"
	"juicydb/types"
)

type Parser struct {
	l         *lex.Lexer
	curToken  lex.Token
	peekToken lex.Token
}

func New(l *lex.Lexer) *Parser {
	p := &Parser{l: l}
	p.nextToken()
	p.nextToken()
	return p
}

// Parse tokenizes and parses a single statement.
func Parse(input string) (Statement, error) {
	return New(lex.New(input)).ParseStatement()
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) expect(kind lex.TokenKind) error {
	if p.curToken.Kind != kind {
		return errors.Errorf("expected %s, got %s (%q)", kind, p.curToken.Kind, p.curToken.Value)
	}
	return nil
}

// ParseStatement parses one statement and requires it to consume the whole
// input, up to an optional trailing semicolon.
func (p *Parser) ParseStatement() (Statement, error) {
	var (
		stmt Statement
		err  error
	)
	switch p.curToken.Kind {
	case lex.CREATE:
		stmt, err = p.parseCreateTable()
	case lex.INSERT:
		stmt, err = p.parseInsert()
	case lex.SELECT:
		stmt, err = p.parseSelect()
	case lex.DELETE:
		stmt, err = p.parseDelete()
	default:
		return nil, errors.Errorf("unexpected token: %s (%q)", p.curToken.Kind, p.curToken.Value)
	}
	if err != nil {
		return nil, err
	}

	if p.curToken.Kind == lex.SEMICOLON {
		p.nextToken()
	}
	if err := p.expect(lex.END); err != nil {
		return nil, errors.WithMessage(err, "trailing input after statement")
	}
	return stmt, nil
}

// parseIdent consumes the current token as an identifier and returns it.
func (p *Parser) parseIdent() (string, error) {
	if err := p.expect(lex.IDENT); err != nil {
		return "", err
	}
	name := p.curToken.Value
	p.nextToken()
	return name, nil
}

// parseInt consumes the current token as an integer literal.
func (p *Parser) parseInt() (int64, error) {
	if err := p.expect(lex.INT); err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(p.curToken.Value, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "integer literal %q", p.curToken.Value)
	}
	p.nextToken()
	return n, nil
}

// parseValue consumes an integer or string literal as a typed value.
func (p *Parser) parseValue() (types.DBValue, error) {
	switch p.curToken.Kind {
	case lex.INT:
		n, err := p.parseInt()
		if err != nil {
			return types.DBValue{}, err
		}
		return types.NewInteger(n), nil
	case lex.STRING:
		v := types.NewText(p.curToken.Value)
		p.nextToken()
		return v, nil
	default:
		return types.DBValue{}, errors.Errorf("expected a value, got %s (%q)", p.curToken.Kind, p.curToken.Value)
	}
}

// parseWhere parses an optional WHERE clause. Returns nil when the current
// token is not WHERE.
func (p *Parser) parseWhere() (*WhereClause, error) {
	if p.curToken.Kind != lex.WHERE {
		return nil, nil
	}
	p.nextToken()

	col, err := p.parseIdent()
	if err != nil {
		return nil, errors.WithMessage(err, "WHERE column")
	}

	switch p.curToken.Kind {
	case lex.EQUAL:
		p.nextToken()
		n, err := p.parseInt()
		if err != nil {
			return nil, err
		}
		return &WhereClause{Column: col, Lo: n, Hi: n}, nil
	case lex.BETWEEN:
		p.nextToken()
		lo, err := p.parseInt()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lex.AND); err != nil {
			return nil, err
		}
		p.nextToken()
		hi, err := p.parseInt()
		if err != nil {
			return nil, err
		}
		return &WhereClause{Column: col, Lo: lo, Hi: hi, IsRange: true}, nil
	default:
		return nil, errors.Errorf("expected = or BETWEEN after WHERE %s, got %s", col, p.curToken.Kind)
	}
}
