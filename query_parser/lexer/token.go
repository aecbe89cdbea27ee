package lex

type TokenKind int

const (
	// identifier
	IDENT TokenKind = iota

	// keywords
	CREATE
	TABLE
	INSERT
	INTO
	VALUES
	SELECT
	FROM
	WHERE
	DELETE
	BETWEEN
	AND
	INTEGER
	TEXT

	// literals
	INT
	STRING

	// symbols
	COMMA
	ASTERISK
	EQUAL
	OPENROUNDED
	CLOSEDROUNDED
	SEMICOLON

	END
	INVALID
)

type Token struct {
	Kind  TokenKind
	Value string
}

func (tk TokenKind) String() string {
	switch tk {
	case IDENT:
		return "IDENT"
	case CREATE:
		return "CREATE"
	case TABLE:
		return "TABLE"
	case INSERT:
		return "INSERT"
	case INTO:
		return "INTO"
	case VALUES:
		return "VALUES"
	case SELECT:
		return "SELECT"
	case FROM:
		return "FROM"
	case WHERE:
		return "WHERE"
	case DELETE:
		return "DELETE"
	case BETWEEN:
		return "BETWEEN"
	case AND:
		return "AND"
	case INTEGER:
		return "INTEGER"
	case TEXT:
		return "TEXT"
	case INT:
		return "INT"
	case STRING:
		return "STRING"
	case COMMA:
		return "COMMA"
	case ASTERISK:
		return "ASTERISK"
	case EQUAL:
		return "EQUAL"
	case OPENROUNDED:
		return "OPENROUNDED"
	case CLOSEDROUNDED:
		return "CLOSEDROUNDED"
	case SEMICOLON:
		return "SEMICOLON"
	case END:
		return "END"
	case INVALID:
		return "INVALID"
	default:
		return "UNKNOWN"
	}
}
