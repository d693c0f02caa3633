// parser.go: coco AST and recursive-descent parser.
//
// The parser turns the lexer's token stream into a tree of owned nodes. Every
// node records the position of its first token; the evaluator reports runtime
// errors against those positions. Precedence, lowest to highest:
//
//	ternary  ?:
//	logical  ||  &&
//	equality ==  !=
//	compare  <  <=  >  >=
//	additive +  -
//	multipl. *  /  %
//	power    **            (right-associative)
//	unary    -  !  typeof
//	postfix  call  .field  [index]
package coco

import "fmt"

// Pos is a 1-based line / 0-based column source position.
type Pos struct {
	Line int
	Col  int
}

// Position implements Node for every struct embedding Pos.
func (p Pos) Position() Pos { return p }

// Node is an AST node produced by the parser and consumed by the evaluator.
type Node interface {
	Position() Pos
}

type (
	// BlockNode is an ordered statement list; the program root is a block.
	BlockNode struct {
		Pos
		Statements []Node
	}

	StringNode struct {
		Pos
		Value string
	}

	NumberNode struct {
		Pos
		Value float64
	}

	BoolNode struct {
		Pos
		Value bool
	}

	NullNode struct{ Pos }

	ArrayNode struct {
		Pos
		Elements []Node
	}

	// ObjectNode is a `{key: expr, ...}` literal. Keys and Values are kept
	// parallel in source order; the runtime Object re-sorts on iteration.
	ObjectNode struct {
		Pos
		Keys   []string
		Values []Node
	}

	VarNode struct {
		Pos
		Name string
	}

	// FieldAccessNode is a chain of index/key accesses rooted at Base,
	// e.g. a.b[0].c becomes Base=a, Indices=["b", 0, "c"].
	FieldAccessNode struct {
		Pos
		Base    Node
		Indices []Node
	}

	AssignNode struct {
		Pos
		Target Node // VarNode or FieldAccessNode
		Value  Node
	}

	CompoundAssignNode struct {
		Pos
		Op     BinaryOp
		Target Node // VarNode or FieldAccessNode
		Value  Node
	}

	BinaryNode struct {
		Pos
		Op    BinaryOp
		Left  Node
		Right Node
	}

	LogicalNode struct {
		Pos
		Op    LogicalOp
		Left  Node
		Right Node
	}

	UnaryNode struct {
		Pos
		Op      UnaryOp
		Operand Node
	}

	TernaryNode struct {
		Pos
		Cond Node
		Then Node
		Else Node
	}

	IfNode struct {
		Pos
		Cond Node
		Then Node
		Else Node // nil when no else branch
	}

	WhileNode struct {
		Pos
		Cond Node
		Body Node
	}

	ForInNode struct {
		Pos
		Name     string
		Iterable Node
		Body     Node
	}

	// SwitchCaseNode with a nil Value is the default case; a nil Body marks
	// C-style fallthrough to the next case.
	SwitchCaseNode struct {
		Value Node
		Body  Node
	}

	SwitchNode struct {
		Pos
		Subject Node
		Cases   []SwitchCaseNode
	}

	ParamNode struct {
		Kind    ParamKind
		Name    string
		Default Node // optional parameters only
	}

	FunNode struct {
		Pos
		Name   string
		Params []ParamNode
		Body   *BlockNode
	}

	CallNode struct {
		Pos
		Callee Node
		Args   []Node
	}

	ReturnNode struct {
		Pos
		Value Node
	}

	BreakNode    struct{ Pos }
	ContinueNode struct{ Pos }

	TypeofNode struct {
		Pos
		Operand Node
	}

	ClassNode struct {
		Pos
		Name        string
		Constructor *FunNode // nil when the class has none
		Methods     []*FunNode
	}

	NewNode struct {
		Pos
		Name string
		Args []Node
	}

	ImportNode struct {
		Pos
		Module string
		Names  []string // empty: bind the whole namespace under Module
	}
)

// BinaryOp tags arithmetic operators.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpPow
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpRem:
		return "%"
	case OpPow:
		return "**"
	}
	return "?"
}

// LogicalOp tags comparison and boolean operators (all evaluated eagerly).
type LogicalOp int

const (
	OpAnd LogicalOp = iota
	OpOr
	OpEq
	OpNotEq
	OpLess
	OpLessEq
	OpGreater
	OpGreaterEq
)

// UnaryOp tags prefix operators.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
)

// ParseError is a syntax failure with a source position.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// Parser consumes a token stream and produces the root BlockNode.
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser wraps a token stream (must be EOF-terminated, as the lexer does).
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse builds the whole program.
func Parse(src string) (*BlockNode, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).ParseProgram()
}

// ParseProgram parses statements until EOF.
func (p *Parser) ParseProgram() (*BlockNode, error) {
	root := &BlockNode{Pos: p.at()}
	for !p.match(EOF) {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		root.Statements = append(root.Statements, stmt)
	}
	return root, nil
}

func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) at() Pos {
	t := p.current()
	return Pos{Line: t.Line, Col: t.Col}
}

func (p *Parser) match(tt TokenType) bool {
	if p.current().Type != tt {
		return false
	}
	p.pos++
	return true
}

func (p *Parser) consume(tt TokenType, what string) (Token, error) {
	t := p.current()
	if t.Type != tt {
		return t, p.errf("expected %s, got %q", what, t.Lexeme)
	}
	p.pos++
	return t, nil
}

func (p *Parser) errf(format string, args ...interface{}) error {
	t := p.current()
	return &ParseError{Line: t.Line, Col: t.Col, Msg: fmt.Sprintf(format, args...)}
}

// ----- statements -----

func (p *Parser) statement() (Node, error) {
	switch p.current().Type {
	case LET:
		return p.letStatement()
	case FUN:
		return p.funStatement()
	case IF:
		return p.ifStatement()
	case WHILE:
		return p.whileStatement()
	case FOR:
		return p.forStatement()
	case SWITCH:
		return p.switchStatement()
	case RETURN:
		pos := p.at()
		p.pos++
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		return &ReturnNode{Pos: pos, Value: value}, nil
	case BREAK:
		pos := p.at()
		p.pos++
		return &BreakNode{Pos: pos}, nil
	case CONTINUE:
		pos := p.at()
		p.pos++
		return &ContinueNode{Pos: pos}, nil
	case CLASS:
		return p.classStatement()
	case IMPORT:
		return p.importStatement()
	default:
		return p.simpleStatement()
	}
}

func (p *Parser) block() (*BlockNode, error) {
	pos := p.at()
	if _, err := p.consume(LBRACE, "'{'"); err != nil {
		return nil, err
	}
	out := &BlockNode{Pos: pos}
	for !p.match(RBRACE) {
		if p.current().Type == EOF {
			return nil, p.errf("block did not close")
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		out.Statements = append(out.Statements, stmt)
	}
	return out, nil
}

func (p *Parser) statementOrBlock() (Node, error) {
	if p.current().Type == LBRACE {
		return p.block()
	}
	return p.statement()
}

func (p *Parser) letStatement() (Node, error) {
	pos := p.at()
	p.pos++ // let
	name, err := p.consume(WORD, "variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(EQUALS, "'='"); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &AssignNode{
		Pos:    pos,
		Target: &VarNode{Pos: Pos{Line: name.Line, Col: name.Col}, Name: name.Lexeme},
		Value:  value,
	}, nil
}

func (p *Parser) funStatement() (Node, error) {
	pos := p.at()
	p.pos++ // fun
	name, err := p.consume(WORD, "function name")
	if err != nil {
		return nil, err
	}
	return p.funRest(pos, name.Lexeme)
}

// funRest parses "(params) { body }" for fun statements and class members.
func (p *Parser) funRest(pos Pos, name string) (*FunNode, error) {
	if _, err := p.consume(LPAR, "'('"); err != nil {
		return nil, err
	}
	var params []ParamNode
	sawSpread := false
	for !p.match(RPAR) {
		if sawSpread {
			return nil, p.errf("spread parameter must be last")
		}
		if p.match(SPREAD) {
			arg, err := p.consume(WORD, "parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, ParamNode{Kind: ParamSpread, Name: arg.Lexeme})
			sawSpread = true
		} else {
			arg, err := p.consume(WORD, "parameter name")
			if err != nil {
				return nil, err
			}
			if p.match(EQUALS) {
				def, err := p.expression()
				if err != nil {
					return nil, err
				}
				params = append(params, ParamNode{Kind: ParamOptional, Name: arg.Lexeme, Default: def})
			} else {
				params = append(params, ParamNode{Kind: ParamRequired, Name: arg.Lexeme})
			}
		}
		p.match(COMMA)
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &FunNode{Pos: pos, Name: name, Params: params, Body: body}, nil
}

func (p *Parser) ifStatement() (Node, error) {
	pos := p.at()
	p.pos++ // if
	if _, err := p.consume(LPAR, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(RPAR, "')'"); err != nil {
		return nil, err
	}
	then, err := p.statementOrBlock()
	if err != nil {
		return nil, err
	}
	var elseBranch Node
	if p.match(ELSE) {
		elseBranch, err = p.statementOrBlock()
		if err != nil {
			return nil, err
		}
	}
	return &IfNode{Pos: pos, Cond: cond, Then: then, Else: elseBranch}, nil
}

func (p *Parser) whileStatement() (Node, error) {
	pos := p.at()
	p.pos++ // while
	if _, err := p.consume(LPAR, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(RPAR, "')'"); err != nil {
		return nil, err
	}
	body, err := p.statementOrBlock()
	if err != nil {
		return nil, err
	}
	return &WhileNode{Pos: pos, Cond: cond, Body: body}, nil
}

func (p *Parser) forStatement() (Node, error) {
	pos := p.at()
	p.pos++ // for
	if _, err := p.consume(LPAR, "'('"); err != nil {
		return nil, err
	}
	name, err := p.consume(WORD, "loop variable")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(IN, "'in'"); err != nil {
		return nil, err
	}
	iter, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(RPAR, "')'"); err != nil {
		return nil, err
	}
	body, err := p.statementOrBlock()
	if err != nil {
		return nil, err
	}
	return &ForInNode{Pos: pos, Name: name.Lexeme, Iterable: iter, Body: body}, nil
}

func (p *Parser) switchStatement() (Node, error) {
	pos := p.at()
	p.pos++ // switch
	if _, err := p.consume(LPAR, "'('"); err != nil {
		return nil, err
	}
	subject, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(RPAR, "')'"); err != nil {
		return nil, err
	}
	if _, err := p.consume(LBRACE, "'{'"); err != nil {
		return nil, err
	}

	var cases []SwitchCaseNode
	sawDefault := false
	for !p.match(RBRACE) {
		switch p.current().Type {
		case CASE:
			p.pos++
			value, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(COLON, "':'"); err != nil {
				return nil, err
			}
			var body Node
			if t := p.current().Type; t != CASE && t != DEFAULT && t != RBRACE {
				body, err = p.statementOrBlock()
				if err != nil {
					return nil, err
				}
			}
			cases = append(cases, SwitchCaseNode{Value: value, Body: body})
		case DEFAULT:
			if sawDefault {
				return nil, p.errf("switch can not have two or more default cases")
			}
			sawDefault = true
			p.pos++
			if _, err := p.consume(COLON, "':'"); err != nil {
				return nil, err
			}
			body, err := p.statementOrBlock()
			if err != nil {
				return nil, err
			}
			cases = append(cases, SwitchCaseNode{Body: body})
		default:
			return nil, p.errf("expected 'case' or 'default', got %q", p.current().Lexeme)
		}
	}
	return &SwitchNode{Pos: pos, Subject: subject, Cases: cases}, nil
}

func (p *Parser) classStatement() (Node, error) {
	pos := p.at()
	p.pos++ // class
	name, err := p.consume(WORD, "class name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(LBRACE, "'{'"); err != nil {
		return nil, err
	}
	out := &ClassNode{Pos: pos, Name: name.Lexeme}
	for !p.match(RBRACE) {
		member, err := p.consume(WORD, "method name")
		if err != nil {
			return nil, err
		}
		fn, err := p.funRest(Pos{Line: member.Line, Col: member.Col}, member.Lexeme)
		if err != nil {
			return nil, err
		}
		if member.Lexeme == "constructor" {
			if out.Constructor != nil {
				return nil, p.errf("class %s has two constructors", name.Lexeme)
			}
			out.Constructor = fn
		} else {
			out.Methods = append(out.Methods, fn)
		}
	}
	return out, nil
}

func (p *Parser) importStatement() (Node, error) {
	pos := p.at()
	p.pos++ // import
	first, err := p.consume(WORD, "module or binding name")
	if err != nil {
		return nil, err
	}
	names := []string{first.Lexeme}
	for p.match(COMMA) {
		next, err := p.consume(WORD, "binding name")
		if err != nil {
			return nil, err
		}
		names = append(names, next.Lexeme)
	}
	if p.match(FROM) {
		module, err := p.consume(WORD, "module name")
		if err != nil {
			return nil, err
		}
		return &ImportNode{Pos: pos, Module: module.Lexeme, Names: names}, nil
	}
	if len(names) > 1 {
		return nil, p.errf("expected 'from' after import list")
	}
	return &ImportNode{Pos: pos, Module: names[0]}, nil
}

// simpleStatement parses an expression statement, promoting it to a plain or
// compound assignment when an assignment operator follows.
func (p *Parser) simpleStatement() (Node, error) {
	pos := p.at()
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	var compound BinaryOp
	isCompound := true
	switch p.current().Type {
	case PLUSEQ:
		compound = OpAdd
	case MINUSEQ:
		compound = OpSub
	case MULTIPLYEQ:
		compound = OpMul
	case DIVIDEEQ:
		compound = OpDiv
	case REMAINDEREQ:
		compound = OpRem
	case EXPONENTEQ:
		compound = OpPow
	case EQUALS:
		isCompound = false
	default:
		return expr, nil
	}

	if !isAssignable(expr) {
		return nil, p.errf("invalid assignment target")
	}
	p.pos++
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if isCompound {
		return &CompoundAssignNode{Pos: pos, Op: compound, Target: expr, Value: value}, nil
	}
	return &AssignNode{Pos: pos, Target: expr, Value: value}, nil
}

func isAssignable(n Node) bool {
	switch t := n.(type) {
	case *VarNode:
		return true
	case *FieldAccessNode:
		_, ok := t.Base.(*VarNode)
		return ok
	default:
		return false
	}
}

// ----- expressions -----

func (p *Parser) expression() (Node, error) {
	return p.ternary()
}

func (p *Parser) ternary() (Node, error) {
	cond, err := p.logicalOr()
	if err != nil {
		return nil, err
	}
	if !p.match(QUESTION) {
		return cond, nil
	}
	pos := cond.Position()
	then, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(COLON, "':'"); err != nil {
		return nil, err
	}
	elseBranch, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &TernaryNode{Pos: pos, Cond: cond, Then: then, Else: elseBranch}, nil
}

func (p *Parser) logicalOr() (Node, error) {
	left, err := p.logicalAnd()
	if err != nil {
		return nil, err
	}
	for p.current().Type == BARBAR {
		pos := p.at()
		p.pos++
		right, err := p.logicalAnd()
		if err != nil {
			return nil, err
		}
		left = &LogicalNode{Pos: pos, Op: OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) logicalAnd() (Node, error) {
	left, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.current().Type == AMPAMP {
		pos := p.at()
		p.pos++
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		left = &LogicalNode{Pos: pos, Op: OpAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) equality() (Node, error) {
	left, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for {
		var op LogicalOp
		switch p.current().Type {
		case EQEQ:
			op = OpEq
		case EXCLEQ:
			op = OpNotEq
		default:
			return left, nil
		}
		pos := p.at()
		p.pos++
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		left = &LogicalNode{Pos: pos, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) comparison() (Node, error) {
	left, err := p.additive()
	if err != nil {
		return nil, err
	}
	for {
		var op LogicalOp
		switch p.current().Type {
		case LT:
			op = OpLess
		case LTEQ:
			op = OpLessEq
		case GT:
			op = OpGreater
		case GTEQ:
			op = OpGreaterEq
		default:
			return left, nil
		}
		pos := p.at()
		p.pos++
		right, err := p.additive()
		if err != nil {
			return nil, err
		}
		left = &LogicalNode{Pos: pos, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) additive() (Node, error) {
	left, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op BinaryOp
		switch p.current().Type {
		case PLUS:
			op = OpAdd
		case MINUS:
			op = OpSub
		default:
			return left, nil
		}
		pos := p.at()
		p.pos++
		right, err := p.multiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Pos: pos, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) multiplicative() (Node, error) {
	left, err := p.power()
	if err != nil {
		return nil, err
	}
	for {
		var op BinaryOp
		switch p.current().Type {
		case STAR:
			op = OpMul
		case SLASH:
			op = OpDiv
		case PERCENT:
			op = OpRem
		default:
			return left, nil
		}
		pos := p.at()
		p.pos++
		right, err := p.power()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Pos: pos, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) power() (Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	if p.current().Type != DOUBLESTAR {
		return left, nil
	}
	pos := p.at()
	p.pos++
	// right-associative: 2 ** 3 ** 2 == 2 ** (3 ** 2)
	right, err := p.power()
	if err != nil {
		return nil, err
	}
	return &BinaryNode{Pos: pos, Op: OpPow, Left: left, Right: right}, nil
}

func (p *Parser) unary() (Node, error) {
	switch p.current().Type {
	case MINUS:
		pos := p.at()
		p.pos++
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryNode{Pos: pos, Op: OpNeg, Operand: operand}, nil
	case EXCL:
		pos := p.at()
		p.pos++
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryNode{Pos: pos, Op: OpNot, Operand: operand}, nil
	case TYPEOF:
		pos := p.at()
		p.pos++
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &TypeofNode{Pos: pos, Operand: operand}, nil
	default:
		return p.postfix()
	}
}

// postfix folds call, dot and index suffixes onto a primary expression.
// Consecutive dot/index suffixes collapse into a single FieldAccessNode so
// the evaluator sees the flat key list the field accessor wants.
func (p *Parser) postfix() (Node, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.current().Type {
		case LPAR:
			pos := p.at()
			p.pos++
			var args []Node
			for !p.match(RPAR) {
				arg, err := p.expression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				p.match(COMMA)
			}
			expr = &CallNode{Pos: pos, Callee: expr, Args: args}
		case DOT:
			pos := p.at()
			p.pos++
			field, err := p.consume(WORD, "field name")
			if err != nil {
				return nil, err
			}
			key := &StringNode{Pos: Pos{Line: field.Line, Col: field.Col}, Value: field.Lexeme}
			expr = appendIndex(expr, key, pos)
		case LBRACKET:
			pos := p.at()
			p.pos++
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(RBRACKET, "']'"); err != nil {
				return nil, err
			}
			expr = appendIndex(expr, index, pos)
		default:
			return expr, nil
		}
	}
}

func appendIndex(base Node, index Node, pos Pos) Node {
	if fa, ok := base.(*FieldAccessNode); ok {
		fa.Indices = append(fa.Indices, index)
		return fa
	}
	return &FieldAccessNode{Pos: pos, Base: base, Indices: []Node{index}}
}

func (p *Parser) primary() (Node, error) {
	t := p.current()
	pos := Pos{Line: t.Line, Col: t.Col}

	switch t.Type {
	case WORD:
		p.pos++
		return &VarNode{Pos: pos, Name: t.Lexeme}, nil
	case THIS:
		p.pos++
		return &VarNode{Pos: pos, Name: "this"}, nil
	case STRING:
		p.pos++
		return &StringNode{Pos: pos, Value: t.Literal.(string)}, nil
	case NUMBER:
		p.pos++
		return &NumberNode{Pos: pos, Value: t.Literal.(float64)}, nil
	case BOOLEAN:
		p.pos++
		return &BoolNode{Pos: pos, Value: t.Literal.(bool)}, nil
	case NULL:
		p.pos++
		return &NullNode{Pos: pos}, nil
	case NAN:
		p.pos++
		return &NumberNode{Pos: pos, Value: nan()}, nil
	case LBRACKET:
		p.pos++
		out := &ArrayNode{Pos: pos}
		for !p.match(RBRACKET) {
			elem, err := p.expression()
			if err != nil {
				return nil, err
			}
			out.Elements = append(out.Elements, elem)
			p.match(COMMA)
		}
		return out, nil
	case LBRACE:
		return p.objectLiteral()
	case LPAR:
		p.pos++
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(RPAR, "')'"); err != nil {
			return nil, err
		}
		return expr, nil
	case NEW:
		p.pos++
		name, err := p.consume(WORD, "class name")
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(LPAR, "'('"); err != nil {
			return nil, err
		}
		var args []Node
		for !p.match(RPAR) {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			p.match(COMMA)
		}
		return &NewNode{Pos: pos, Name: name.Lexeme, Args: args}, nil
	case SWITCH:
		return p.switchStatement()
	default:
		return nil, p.errf("unexpected token %q", t.Lexeme)
	}
}

func (p *Parser) objectLiteral() (Node, error) {
	pos := p.at()
	p.pos++ // {
	out := &ObjectNode{Pos: pos}
	for !p.match(RBRACE) {
		var key string
		switch p.current().Type {
		case WORD:
			key = p.current().Lexeme
			p.pos++
		case STRING:
			key = p.current().Literal.(string)
			p.pos++
		default:
			return nil, p.errf("expected object key, got %q", p.current().Lexeme)
		}
		if _, err := p.consume(COLON, "':'"); err != nil {
			return nil, err
		}
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		out.Keys = append(out.Keys, key)
		out.Values = append(out.Values, value)
		p.match(COMMA)
	}
	return out, nil
}
