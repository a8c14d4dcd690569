package js

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := ParseSource(src)
	require.NoError(t, err)
	return prog
}

func num(f float64) *Literal { return &Literal{Value: Number(f)} }
func ident(name string) *Identifier { return &Identifier{Name: name} }

func TestParse_VarDeclaration(t *testing.T) {
	prog := mustParse(t, "var x = 1 + 2; x")
	want := &Program{Body: []Stmt{
		&VarDecl{Kind: "var", Name: "x", Init: &Binary{Op: "+", Left: num(1), Right: num(2)}},
		&ExprStmt{Expr: ident("x")},
	}}
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Errorf("program mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Precedence(t *testing.T) {
	tests := []struct {
		src  string
		want Expr
	}{
		{"1 + 2 * 3", &Binary{Op: "+", Left: num(1), Right: &Binary{Op: "*", Left: num(2), Right: num(3)}}},
		{"(1 + 2) * 3", &Binary{Op: "*", Left: &Binary{Op: "+", Left: num(1), Right: num(2)}, Right: num(3)}},
		{"1 - 2 - 3", &Binary{Op: "-", Left: &Binary{Op: "-", Left: num(1), Right: num(2)}, Right: num(3)}},
		{"a < b == c > d", &Binary{Op: "==",
			Left:  &Binary{Op: "<", Left: ident("a"), Right: ident("b")},
			Right: &Binary{Op: ">", Left: ident("c"), Right: ident("d")}}},
		{"a = b = 1", &Assign{Target: ident("a"), Value: &Assign{Target: ident("b"), Value: num(1)}}},
		{"!-x", &Unary{Op: "!", Arg: &Unary{Op: "-", Arg: ident("x")}}},
		{"-f(1)", &Unary{Op: "-", Arg: &Call{Callee: ident("f"), Args: []Expr{num(1)}}}},
		{"a.b.c", &Member{Object: &Member{Object: ident("a"), Name: "b"}, Name: "c"}},
		{"a[0]", &Member{Object: ident("a"), Property: num(0), Computed: true}},
		{"o.m(1, 2)", &Call{Callee: &Member{Object: ident("o"), Name: "m"}, Args: []Expr{num(1), num(2)}}},
		{"i++", &Update{Op: "++", Target: ident("i")}},
		{"--i", &Update{Op: "--", Prefix: true, Target: ident("i")}},
		{"el.textContent = 'x'", &Assign{Target: &Member{Object: ident("el"), Name: "textContent"}, Value: &Literal{Value: String("x")}}},
		{"null", &Literal{Value: Null{}}},
		{"undefined", &Literal{Value: Undefined{}}},
		{"true", &Literal{Value: Boolean(true)}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog := mustParse(t, tt.src)
			require.Len(t, prog.Body, 1)
			stmt, ok := prog.Body[0].(*ExprStmt)
			require.True(t, ok, "got %T", prog.Body[0])
			if diff := cmp.Diff(tt.want, stmt.Expr); diff != "" {
				t.Errorf("expression mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Statements(t *testing.T) {
	prog := mustParse(t, `
		function add(a, b) { return a + b; }
		if (x) y = 1; else { y = 2 }
		for (var i = 0; i < 3; i++) {}
		for (;;) { return }
		while (n) n--;
		var f = function (e) { e.preventDefault() };
		;
	`)
	require.Len(t, prog.Body, 7)

	fn := prog.Body[0].(*FuncDecl)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, []string{"a", "b"}, fn.Params)
	require.Len(t, fn.Body, 1)
	assert.IsType(t, &ReturnStmt{}, fn.Body[0])

	ifs := prog.Body[1].(*IfStmt)
	assert.IsType(t, &ExprStmt{}, ifs.Then)
	assert.IsType(t, &BlockStmt{}, ifs.Else)

	loop := prog.Body[2].(*ForStmt)
	assert.IsType(t, &VarDecl{}, loop.Init)
	assert.NotNil(t, loop.Test)
	assert.NotNil(t, loop.Update)

	forever := prog.Body[3].(*ForStmt)
	assert.Nil(t, forever.Init)
	assert.Nil(t, forever.Test)
	assert.Nil(t, forever.Update)

	assert.IsType(t, &WhileStmt{}, prog.Body[4])

	decl := prog.Body[5].(*VarDecl)
	expr, ok := decl.Init.(*FuncExpr)
	require.True(t, ok)
	assert.Equal(t, []string{"e"}, expr.Params)

	assert.Equal(t, &BlockStmt{}, prog.Body[6])
}

func TestParse_OptionalSemicolons(t *testing.T) {
	_, err := ParseSource("var a = 1\nvar b = 2")
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)

	for _, src := range []string{"var a = 1", "function f() { return 1 }", "a = 1\nb = 2"} {
		_, err := ParseSource(src)
		assert.NoError(t, err, src)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		src      string
		expected string
		found    string
	}{
		{"var = 3;", "IDENTIFIER", "ASSIGN"},
		{"1 = 2;", "assignment target", "ASSIGN"},
		{"f(1;", "RPAREN", "SEMICOLON"},
		{"if x {}", "LPAREN", "IDENTIFIER x"},
		{"function f( {}", "IDENTIFIER", "LBRACE"},
		{"{ var a = 1;", "RBRACE", "EOF"},
		{"a.;", "IDENTIFIER", "SEMICOLON"},
		{")", "expression", "RPAREN"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := ParseSource(tt.src)
			var syntaxErr *SyntaxError
			require.True(t, errors.As(err, &syntaxErr), "got %v", err)
			assert.Equal(t, tt.expected, syntaxErr.Expected)
			assert.Equal(t, tt.found, syntaxErr.Found)
		})
	}
}

func TestParse_NestingLimit(t *testing.T) {
	deep := 5 * maxNesting
	tests := map[string]string{
		"parens":  strings.Repeat("(", deep) + "1" + strings.Repeat(")", deep),
		"unary":   strings.Repeat("!", deep) + "1",
		"blocks":  strings.Repeat("{", deep) + strings.Repeat("}", deep),
		"ifs":     strings.Repeat("if (1) ", deep) + "x;",
		"assigns": strings.Repeat("a = ", deep) + "1",
		"calls":   strings.Repeat("f(", deep) + strings.Repeat(")", deep),
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSource(src)
			var syntaxErr *SyntaxError
			require.True(t, errors.As(err, &syntaxErr), "got %v", err)
			assert.Equal(t, "shallower nesting", syntaxErr.Expected)
		})
	}
}

func TestParse_ModerateNestingIsFine(t *testing.T) {
	src := strings.Repeat("(", 100) + "1" + strings.Repeat(")", 100) + ";" +
		strings.Repeat("{", 100) + strings.Repeat("}", 100)
	prog := mustParse(t, src)
	assert.Len(t, prog.Body, 2)

	// Sibling statements do not accumulate depth.
	prog = mustParse(t, strings.Repeat("{ x; }", 3*maxNesting))
	assert.Len(t, prog.Body, 3*maxNesting)
}

func TestSyntaxErrorMessage(t *testing.T) {
	_, err := ParseSource("var 1")
	require.Error(t, err)
	assert.Equal(t, "syntax error at offset 4: expected IDENTIFIER, found NUMBER 1", err.Error())
}
