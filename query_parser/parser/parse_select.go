package parser

import (
	"github.com/pkg/errors"

	lex "juicydb/query_parser/lexer"
)

// --- SELECT ---
// SELECT * FROM <table> [WHERE ...]
// SELECT ( <col> [, ...] ) FROM <table> [WHERE ...]
func (p *Parser) parseSelect() (*SelectStmt, error) {
	p.nextToken() // consume SELECT

	stmt := &SelectStmt{}
	switch p.curToken.Kind {
	case lex.ASTERISK:
		stmt.Star = true
		p.nextToken()
	case lex.OPENROUNDED:
		p.nextToken()
		for {
			col, err := p.parseIdent()
			if err != nil {
				return nil, errors.WithMessage(err, "projection column")
			}
			stmt.Columns = append(stmt.Columns, col)

			if p.curToken.Kind != lex.COMMA {
				break
			}
			p.nextToken()
		}
		if err := p.expect(lex.CLOSEDROUNDED); err != nil {
			return nil, err
		}
		p.nextToken()
	default:
		return nil, errors.Errorf("expected * or a column list after SELECT, got %s (%q)",
			p.curToken.Kind, p.curToken.Value)
	}

	if err := p.expect(lex.FROM); err != nil {
		return nil, err
	}
	p.nextToken()

	table, err := p.parseIdent()
	if err != nil {
		return nil, errors.WithMessage(err, "table name")
	}
	stmt.Table = table

	where, err := p.parseWhere()
	if err != nil {
		return nil, err
	}
	stmt.Where = where

	return stmt, nil
}
