package parser

import (
	"github.com/pkg/errors"

	lex "juicydb/query_parser/lexer"
	"juicydb/types"
)

// --- CREATE TABLE ---
// CREATE TABLE <name> ( <col> <type> [, ...] )
func (p *Parser) parseCreateTable() (*CreateTableStmt, error) {
	p.nextToken() // consume CREATE
	if err := p.expect(lex.TABLE); err != nil {
		return nil, err
	}
	p.nextToken()

	table, err := p.parseIdent()
	if err != nil {
		return nil, errors.WithMessage(err, "table name")
	}

	if err := p.expect(lex.OPENROUNDED); err != nil {
		return nil, err
	}
	p.nextToken()

	cols := []ColumnDef{}
	for {
		name, err := p.parseIdent()
		if err != nil {
			return nil, errors.WithMessage(err, "column name")
		}

		var typ types.DBType
		switch p.curToken.Kind {
		case lex.INTEGER:
			typ = types.Integer
		case lex.TEXT:
			typ = types.Text
		default:
			return nil, errors.Errorf("expected a column type for %s, got %s (%q)",
				name, p.curToken.Kind, p.curToken.Value)
		}
		p.nextToken()

		cols = append(cols, ColumnDef{Name: name, Type: typ})

		if p.curToken.Kind != lex.COMMA {
			break
		}
		p.nextToken()
	}

	if err := p.expect(lex.CLOSEDROUNDED); err != nil {
		return nil, err
	}
	p.nextToken()

	return &CreateTableStmt{Table: table, Columns: cols}, nil
}
