package js

// Program is a parsed script.
type Program struct {
	Body []Stmt
}

// Stmt is a statement node.
type Stmt interface {
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	exprNode()
}

type (
	// VarDecl binds Name; Kind is var, let or const, which all behave alike.
	VarDecl struct {
		Kind string
		Name string
		Init Expr
	}

	FuncDecl struct {
		Name   string
		Params []string
		Body   []Stmt
	}

	IfStmt struct {
		Test Expr
		Then Stmt
		Else Stmt
	}

	// ForStmt has optional Init, Test and Update.
	ForStmt struct {
		Init   Stmt
		Test   Expr
		Update Expr
		Body   Stmt
	}

	WhileStmt struct {
		Test Expr
		Body Stmt
	}

	ReturnStmt struct {
		Arg Expr
	}

	BlockStmt struct {
		Body []Stmt
	}

	ExprStmt struct {
		Expr Expr
	}
)

func (*VarDecl) stmtNode()    {}
func (*FuncDecl) stmtNode()   {}
func (*IfStmt) stmtNode()     {}
func (*ForStmt) stmtNode()    {}
func (*WhileStmt) stmtNode()  {}
func (*ReturnStmt) stmtNode() {}
func (*BlockStmt) stmtNode()  {}
func (*ExprStmt) stmtNode()   {}

type (
	Literal struct {
		Value Value
	}

	Identifier struct {
		Name string
	}

	// Assign stores Value into an Identifier or Member target.
	Assign struct {
		Target Expr
		Value  Expr
	}

	Binary struct {
		Op    string
		Left  Expr
		Right Expr
	}

	Unary struct {
		Op  string
		Arg Expr
	}

	// Update is ++ or -- applied to an identifier.
	Update struct {
		Op     string
		Prefix bool
		Target *Identifier
	}

	Call struct {
		Callee Expr
		Args   []Expr
	}

	// Member is obj.name, or obj[Property] when Computed.
	Member struct {
		Object   Expr
		Name     string
		Property Expr
		Computed bool
	}

	FuncExpr struct {
		Name   string
		Params []string
		Body   []Stmt
	}
)

func (*Literal) exprNode()    {}
func (*Identifier) exprNode() {}
func (*Assign) exprNode()     {}
func (*Binary) exprNode()     {}
func (*Unary) exprNode()      {}
func (*Update) exprNode()     {}
func (*Call) exprNode()       {}
func (*Member) exprNode()     {}
func (*FuncExpr) exprNode()   {}
