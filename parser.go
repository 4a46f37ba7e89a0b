package main

// Parser builds the AST from the token stream and populates the symbol
// table as names appear, so the tree the generator receives already
// carries resolved *Symbol handles.
//
// Assignments also fix each target's kind: the right-hand side's kind is
// resolved statically (see staticKind) and applied to the symbol before
// generation ever starts. This is deliberately flow-insensitive — a
// symbol's kind is its last assigned kind in source order, not a
// per-branch type.
type Parser struct {
	symtab *SymbolTable
	Errors ErrorCollection
}

func NewParser(st *SymbolTable) *Parser {
	return &Parser{symtab: st}
}

// ParseProgram parses statements until EOF and returns the root block.
func (p *Parser) ParseProgram() *ASTNode {
	root := NewBlockNode()
	for CurrTokenType != EOF {
		before := CurrTokenType
		stmt := p.ParseStatement()
		if stmt != nil {
			root.AddChild(stmt)
		}
		if CurrTokenType == before && stmt == nil {
			// No progress; skip the offending token to avoid looping.
			NextToken()
		}
	}
	return root
}

// ParseStatement parses a single statement and returns its AST node,
// or nil after a syntax error (recorded in p.Errors).
func (p *Parser) ParseStatement() *ASTNode {
	switch CurrTokenType {
	case IF:
		SkipToken(IF)
		cond := p.ParseExpression()
		thenBlock := p.parseBlock()
		var elseBlock *ASTNode
		if CurrTokenType == ELSE {
			SkipToken(ELSE)
			elseBlock = p.parseBlock()
		}
		return NewIfNode(cond, thenBlock, elseBlock)

	case WHILE:
		SkipToken(WHILE)
		cond := p.ParseExpression()
		body := p.parseBlock()
		return NewWhileNode(cond, body)

	case LBRACE:
		return p.parseBlock()

	case SEMICOLON:
		// Empty statement.
		SkipToken(SEMICOLON)
		return nil

	case IDENT:
		if PeekToken() == ASSIGN {
			return p.parseAssignment()
		}
		return p.parseExpressionStatement()

	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() *ASTNode {
	expr := p.ParseExpression()
	p.expectSemicolon()
	return expr
}

func (p *Parser) parseAssignment() *ASTNode {
	sym := p.symtab.Insert(CurrLiteral)
	SkipToken(IDENT)
	SkipToken(ASSIGN)
	expr := p.ParseExpression()
	p.expectSemicolon()
	if expr == nil {
		return nil
	}
	p.fixSymbolKind(sym, expr)
	return NewAssignNode(sym, expr)
}

func (p *Parser) parseBlock() *ASTNode {
	block := NewBlockNode()
	if CurrTokenType != LBRACE {
		p.Errors.Addf("error: expected '{' but got %q", CurrLiteral)
		return block
	}
	SkipToken(LBRACE)
	for CurrTokenType != RBRACE && CurrTokenType != EOF {
		before := CurrTokenType
		stmt := p.ParseStatement()
		if stmt != nil {
			block.AddChild(stmt)
		}
		if CurrTokenType == before && stmt == nil {
			NextToken()
		}
	}
	if CurrTokenType == RBRACE {
		SkipToken(RBRACE)
	} else {
		p.Errors.Addf("error: unterminated block, expected '}'")
	}
	return block
}

func (p *Parser) expectSemicolon() {
	if CurrTokenType == SEMICOLON {
		SkipToken(SEMICOLON)
		return
	}
	p.Errors.Addf("error: expected ';' but got %q", CurrLiteral)
	// Resynchronize at the next statement boundary.
	for CurrTokenType != SEMICOLON && CurrTokenType != RBRACE && CurrTokenType != EOF {
		NextToken()
	}
	if CurrTokenType == SEMICOLON {
		SkipToken(SEMICOLON)
	}
}

func precedence(tokenType TokenType) int {
	switch tokenType {
	case PLUS, MINUS:
		return 3
	case ASTERISK, SLASH:
		return 4
	default:
		return 0 // not an operator
	}
}

func isOperator(tokenType TokenType) bool {
	return precedence(tokenType) > 0
}

// ParseExpression parses an expression and returns an AST node.
func (p *Parser) ParseExpression() *ASTNode {
	return p.parseExpressionWithPrecedence(0)
}

// parseExpressionWithPrecedence implements precedence climbing.
func (p *Parser) parseExpressionWithPrecedence(minPrec int) *ASTNode {
	var left *ASTNode

	// Handle unary minus first; it binds tighter than '*' and '/'.
	if CurrTokenType == MINUS {
		SkipToken(MINUS)
		operand := p.parseExpressionWithPrecedence(5)
		if operand == nil {
			return nil
		}
		left = NewUnaryNode('-', operand)
	} else {
		left = p.parsePrimary()
	}
	if left == nil {
		return nil
	}

	for isOperator(CurrTokenType) && precedence(CurrTokenType) >= minPrec {
		op := CurrLiteral[0]
		prec := precedence(CurrTokenType)
		NextToken()
		right := p.parseExpressionWithPrecedence(prec + 1) // left-associative
		if right == nil {
			return nil
		}
		left = NewBinaryNode(op, left, right)
	}

	return left
}

// parsePrimary handles number literals, vector literals, identifiers,
// function calls, and parenthesized expressions.
func (p *Parser) parsePrimary() *ASTNode {
	switch CurrTokenType {
	case NUMBER:
		node := NewNumberNode(CurrFloatValue)
		SkipToken(NUMBER)
		return node

	case IDENT:
		name := CurrLiteral
		SkipToken(IDENT)
		if CurrTokenType == LPAREN {
			return p.parseCallArguments(p.symtab.Insert(name))
		}
		return NewIdentNode(p.symtab.Insert(name))

	case LBRACKET:
		SkipToken(LBRACKET)
		vec := NewVectorNode()
		for CurrTokenType != RBRACKET && CurrTokenType != EOF {
			elem := p.parseExpressionWithPrecedence(0)
			if elem == nil {
				return nil
			}
			vec.AddChild(elem)
			if CurrTokenType == COMMA {
				SkipToken(COMMA)
			} else if CurrTokenType != RBRACKET {
				p.Errors.Addf("error: expected ',' or ']' in vector literal, got %q", CurrLiteral)
				return nil
			}
		}
		if CurrTokenType == RBRACKET {
			SkipToken(RBRACKET)
		} else {
			p.Errors.Addf("error: unterminated vector literal")
			return nil
		}
		return vec

	case LPAREN:
		SkipToken(LPAREN)
		expr := p.parseExpressionWithPrecedence(0)
		if CurrTokenType == RPAREN {
			SkipToken(RPAREN)
		} else {
			p.Errors.Addf("error: expected ')' but got %q", CurrLiteral)
			return nil
		}
		return expr

	default:
		p.Errors.Addf("error: unexpected token %q in expression", CurrLiteral)
		NextToken()
		return nil
	}
}

func (p *Parser) parseCallArguments(callee *Symbol) *ASTNode {
	SkipToken(LPAREN)
	var args []*ASTNode
	for CurrTokenType != RPAREN && CurrTokenType != EOF {
		arg := p.parseExpressionWithPrecedence(0)
		if arg == nil {
			return nil
		}
		args = append(args, arg)
		if CurrTokenType == COMMA {
			SkipToken(COMMA)
		} else if CurrTokenType != RPAREN {
			p.Errors.Addf("error: expected ',' or ')' in call to '%s', got %q", callee.Name, CurrLiteral)
			return nil
		}
	}
	if CurrTokenType == RPAREN {
		SkipToken(RPAREN)
	} else {
		p.Errors.Addf("error: unterminated argument list in call to '%s'", callee.Name)
		return nil
	}
	return NewCallNode(callee, args)
}

// fixSymbolKind applies the statically resolved kind of expr to the
// assignment target, so symbol kinds are settled before code generation
// begins. Constant payloads are folded in where the literal allows it.
func (p *Parser) fixSymbolKind(sym *Symbol, expr *ASTNode) {
	switch p.staticKind(expr) {
	case KindVector:
		p.symtab.SetVector(sym, constantVector(expr))
	default:
		p.symtab.SetScalar(sym, constantScalar(expr))
	}
}

// staticKind resolves an expression's kind from literals, the current
// symbol kinds, and the built-in call contracts. Binary expressions are
// vector-kinded when either operand is; whether the combination is
// actually supported is the generator's concern.
func (p *Parser) staticKind(node *ASTNode) SymbolKind {
	switch node.Kind {
	case NodeNumber, NodeUnary:
		return KindScalar
	case NodeVector:
		return KindVector
	case NodeIdent:
		return node.Sym.Kind
	case NodeBinary:
		if p.staticKind(node.Children[0]) == KindVector || p.staticKind(node.Children[1]) == KindVector {
			return KindVector
		}
		return KindScalar
	case NodeCall:
		if node.Sym.Name == "read_vector" {
			return KindVector
		}
		return KindScalar
	default:
		return KindScalar
	}
}

// constantVector extracts the element values of an all-literal vector
// literal, or nil when the expression is not one.
func constantVector(node *ASTNode) []float64 {
	if node.Kind != NodeVector {
		return nil
	}
	values := make([]float64, 0, len(node.Children))
	for _, elem := range node.Children {
		if elem.Kind != NodeNumber {
			return nil
		}
		values = append(values, elem.Number)
	}
	return values
}

func constantScalar(node *ASTNode) float64 {
	if node.Kind == NodeNumber {
		return node.Number
	}
	return 0
}
