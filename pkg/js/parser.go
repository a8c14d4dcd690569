package js

// Parse builds a program from tokens by recursive descent. The expression
// grammar, loosest first, is assignment, equality, comparison, additive,
// multiplicative, unary, call/member, primary.
func Parse(tokens []Token) (*Program, error) {
	p := &parser{toks: tokens}
	prog := &Program{}
	for !p.atEnd() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		prog.Body = append(prog.Body, stmt)
	}
	return prog, nil
}

// ParseSource tokenizes and parses source.
func ParseSource(source string) (*Program, error) {
	return Parse(Tokenize(source))
}

// maxNesting bounds how deeply statements and expressions may nest.
const maxNesting = 1000

type parser struct {
	toks  []Token
	pos   int
	depth int
}

// enter descends one nesting level. Callers defer leave when it succeeds.
func (p *parser) enter() error {
	if p.depth >= maxNesting {
		return p.errorf("shallower nesting")
	}
	p.depth++
	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) atEnd() bool { return p.pos >= len(p.toks) }

func (p *parser) peek() Token {
	if p.atEnd() {
		end := 0
		if n := len(p.toks); n > 0 {
			end = p.toks[n-1].Pos + len(p.toks[n-1].Value)
		}
		return Token{Kind: EOF, Pos: end}
	}
	return p.toks[p.pos]
}

func (p *parser) next() Token {
	t := p.peek()
	if !p.atEnd() {
		p.pos++
	}
	return t
}

func (p *parser) check(kind TokenKind) bool { return p.peek().Kind == kind }

func (p *parser) checkKeyword(word string) bool {
	t := p.peek()
	return t.Kind == KEYWORD && t.Value == word
}

// accept consumes the next token if it has the given kind.
func (p *parser) accept(kind TokenKind) bool {
	if p.check(kind) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	if p.check(kind) {
		return p.next(), nil
	}
	return Token{}, p.errorf(kind.String())
}

func (p *parser) errorf(expected string) *SyntaxError {
	t := p.peek()
	return &SyntaxError{Pos: t.Pos, Expected: expected, Found: t.String()}
}

// endStatement consumes a terminating semicolon. It may be left out at the
// end of the input or before a closing brace.
func (p *parser) endStatement() error {
	if p.accept(SEMICOLON) || p.atEnd() || p.check(RBRACE) {
		return nil
	}
	return p.errorf(SEMICOLON.String())
}

func (p *parser) statement() (Stmt, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	t := p.peek()
	if t.Kind == KEYWORD {
		switch t.Value {
		case "var", "let", "const":
			return p.varDecl()
		case "function":
			if p.pos+1 < len(p.toks) && p.toks[p.pos+1].Kind == IDENTIFIER {
				return p.funcDecl()
			}
		case "if":
			return p.ifStmt()
		case "for":
			return p.forStmt()
		case "while":
			return p.whileStmt()
		case "return":
			return p.returnStmt()
		}
	}
	if t.Kind == LBRACE {
		return p.block()
	}
	if p.accept(SEMICOLON) {
		return &BlockStmt{}, nil
	}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	p.accept(SEMICOLON)
	return &ExprStmt{Expr: expr}, nil
}

func (p *parser) varDecl() (Stmt, error) {
	kind := p.next().Value
	name, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	decl := &VarDecl{Kind: kind, Name: name.Value}
	if p.accept(ASSIGN) {
		if decl.Init, err = p.expression(); err != nil {
			return nil, err
		}
	}
	return decl, p.endStatement()
}

func (p *parser) funcDecl() (Stmt, error) {
	p.next()
	name := p.next().Value
	params, body, err := p.functionRest()
	if err != nil {
		return nil, err
	}
	return &FuncDecl{Name: name, Params: params, Body: body}, nil
}

// functionRest parses a parameter list and body.
func (p *parser) functionRest() ([]string, []Stmt, error) {
	if _, err := p.expect(LPAREN); err != nil {
		return nil, nil, err
	}
	var params []string
	for !p.check(RPAREN) {
		name, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, nil, err
		}
		params = append(params, name.Value)
		if !p.accept(COMMA) {
			break
		}
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, nil, err
	}
	body, err := p.blockBody()
	if err != nil {
		return nil, nil, err
	}
	return params, body, nil
}

func (p *parser) blockBody() ([]Stmt, error) {
	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}
	var body []Stmt
	for !p.check(RBRACE) {
		if p.atEnd() {
			return nil, p.errorf(RBRACE.String())
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	p.next()
	return body, nil
}

func (p *parser) block() (Stmt, error) {
	body, err := p.blockBody()
	if err != nil {
		return nil, err
	}
	return &BlockStmt{Body: body}, nil
}

func (p *parser) ifStmt() (Stmt, error) {
	p.next()
	test, err := p.parenExpr()
	if err != nil {
		return nil, err
	}
	stmt := &IfStmt{Test: test}
	if stmt.Then, err = p.statement(); err != nil {
		return nil, err
	}
	if p.checkKeyword("else") {
		p.next()
		if stmt.Else, err = p.statement(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *parser) whileStmt() (Stmt, error) {
	p.next()
	test, err := p.parenExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Test: test, Body: body}, nil
}

func (p *parser) parenExpr() (Expr, error) {
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *parser) forStmt() (Stmt, error) {
	p.next()
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	stmt := &ForStmt{}
	var err error
	switch {
	case p.accept(SEMICOLON):
	case p.checkKeyword("var"), p.checkKeyword("let"), p.checkKeyword("const"):
		if stmt.Init, err = p.varDecl(); err != nil {
			return nil, err
		}
	default:
		init, err := p.expression()
		if err != nil {
			return nil, err
		}
		stmt.Init = &ExprStmt{Expr: init}
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
	}
	if !p.check(SEMICOLON) {
		if stmt.Test, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	if !p.check(RPAREN) {
		if stmt.Update, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	if stmt.Body, err = p.statement(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *parser) returnStmt() (Stmt, error) {
	p.next()
	stmt := &ReturnStmt{}
	if !p.check(SEMICOLON) && !p.check(RBRACE) && !p.atEnd() {
		var err error
		if stmt.Arg, err = p.expression(); err != nil {
			return nil, err
		}
	}
	return stmt, p.endStatement()
}

func (p *parser) expression() (Expr, error) {
	return p.assignment()
}

func (p *parser) assignment() (Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	target, err := p.equality()
	if err != nil {
		return nil, err
	}
	if !p.check(ASSIGN) {
		return target, nil
	}
	switch target.(type) {
	case *Identifier, *Member:
	default:
		return nil, p.errorf("assignment target")
	}
	p.next()
	value, err := p.assignment()
	if err != nil {
		return nil, err
	}
	return &Assign{Target: target, Value: value}, nil
}

// binary parses a left-associative level whose operators have the given
// kinds, with operands parsed by operand.
func (p *parser) binary(operand func() (Expr, error), kinds ...TokenKind) (Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		matched := false
		for _, k := range kinds {
			if t.Kind == k {
				matched = true
				break
			}
		}
		if !matched {
			return left, nil
		}
		p.next()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: t.Value, Left: left, Right: right}
	}
}

func (p *parser) equality() (Expr, error) {
	return p.binary(p.comparison, EQUALS, NOT_EQUALS)
}

func (p *parser) comparison() (Expr, error) {
	return p.binary(p.additive, LESS_THAN, GREATER_THAN)
}

func (p *parser) additive() (Expr, error) {
	return p.binary(p.multiplicative, PLUS, MINUS)
}

func (p *parser) multiplicative() (Expr, error) {
	return p.binary(p.unary, MULTIPLY, DIVIDE)
}

func (p *parser) unary() (Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	t := p.peek()
	switch t.Kind {
	case NOT, MINUS, PLUS:
		p.next()
		arg, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: t.Value, Arg: arg}, nil
	case INCREMENT, DECREMENT:
		p.next()
		arg, err := p.unary()
		if err != nil {
			return nil, err
		}
		id, ok := arg.(*Identifier)
		if !ok {
			return nil, &SyntaxError{Pos: t.Pos, Expected: "identifier after " + t.Value, Found: "expression"}
		}
		return &Update{Op: t.Value, Prefix: true, Target: id}, nil
	}
	return p.call()
}

func (p *parser) call() (Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.accept(LPAREN):
			var args []Expr
			for !p.check(RPAREN) {
				arg, err := p.expression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if !p.accept(COMMA) {
					break
				}
			}
			if _, err := p.expect(RPAREN); err != nil {
				return nil, err
			}
			expr = &Call{Callee: expr, Args: args}
		case p.accept(LBRACKET):
			prop, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RBRACKET); err != nil {
				return nil, err
			}
			expr = &Member{Object: expr, Property: prop, Computed: true}
		case p.accept(DOT):
			t := p.peek()
			if t.Kind != IDENTIFIER && t.Kind != KEYWORD {
				return nil, p.errorf(IDENTIFIER.String())
			}
			p.next()
			expr = &Member{Object: expr, Name: t.Value}
		case p.check(INCREMENT), p.check(DECREMENT):
			id, ok := expr.(*Identifier)
			if !ok {
				return expr, nil
			}
			return &Update{Op: p.next().Value, Target: id}, nil
		default:
			return expr, nil
		}
	}
}

func (p *parser) primary() (Expr, error) {
	t := p.peek()
	switch t.Kind {
	case NUMBER:
		p.next()
		return &Literal{Value: Number(t.Number)}, nil
	case STRING:
		p.next()
		return &Literal{Value: String(t.Value)}, nil
	case IDENTIFIER:
		p.next()
		return &Identifier{Name: t.Value}, nil
	case LPAREN:
		return p.parenExpr()
	case KEYWORD:
		switch t.Value {
		case "true", "false":
			p.next()
			return &Literal{Value: Boolean(t.Value == "true")}, nil
		case "null":
			p.next()
			return &Literal{Value: Null{}}, nil
		case "undefined":
			p.next()
			return &Literal{Value: Undefined{}}, nil
		case "function":
			p.next()
			name := ""
			if p.check(IDENTIFIER) {
				name = p.next().Value
			}
			params, body, err := p.functionRest()
			if err != nil {
				return nil, err
			}
			return &FuncExpr{Name: name, Params: params, Body: body}, nil
		}
	}
	return nil, p.errorf("expression")
}
