package parser

import (
	"github.com/pkg/errors"

	lex "juicydb/query_parser/lexer"
	"juicydb/types"
)

// --- INSERT ---
// INSERT INTO <table> VALUES ( <value> [, ...] )
func (p *Parser) parseInsert() (*InsertStmt, error) {
	p.nextToken() // consume INSERT
	if err := p.expect(lex.INTO); err != nil {
		return nil, err
	}
	p.nextToken()

	table, err := p.parseIdent()
	if err != nil {
		return nil, errors.WithMessage(err, "table name")
	}

	if err := p.expect(lex.VALUES); err != nil {
		return nil, err
	}
	p.nextToken()

	if err := p.expect(lex.OPENROUNDED); err != nil {
		return nil, err
	}
	p.nextToken()

	values := []types.DBValue{}
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		values = append(values, v)

		if p.curToken.Kind != lex.COMMA {
			break
		}
		p.nextToken()
	}

	if err := p.expect(lex.CLOSEDROUNDED); err != nil {
		return nil, err
	}
	p.nextToken()

	return &InsertStmt{Table: table, Values: values}, nil
}

// --- DELETE ---
// DELETE FROM <table> WHERE <col> = <n>
func (p *Parser) parseDelete() (*DeleteStmt, error) {
	p.nextToken() // consume DELETE
	if err := p.expect(lex.FROM); err != nil {
		return nil, err
	}
	p.nextToken()

	table, err := p.parseIdent()
	if err != nil {
		return nil, errors.WithMessage(err, "table name")
	}

	where, err := p.parseWhere()
	if err != nil {
		return nil, err
	}
	if where == nil {
		return nil, errors.New("DELETE requires a WHERE clause")
	}
	if where.IsRange {
		return nil, errors.New("DELETE supports only an equality predicate")
	}

	return &DeleteStmt{Table: table, Where: where}, nil
}
