package js

import "maps"

// Interpreter evaluates programs in a single flat environment.
//
// Calling a script function swaps the whole environment for the function's
// definition-time snapshot plus its parameters, and restores the caller's
// environment afterwards. Assignments a function makes to outer names are
// therefore not visible to the caller.
type Interpreter struct {
	env Environment

	// StepLimit bounds the number of statements one Evaluate or Call may
	// execute. Zero means no limit.
	StepLimit int
	steps     int
	depth     int
	active    int
}

// maxCallDepth keeps runaway recursion from exhausting the Go stack.
const maxCallDepth = 512

func NewInterpreter() *Interpreter {
	return &Interpreter{env: Environment{}}
}

// Env returns the current environment.
func (in *Interpreter) Env() Environment { return in.env }

// Define binds name in the current environment.
func (in *Interpreter) Define(name string, v Value) { in.env[name] = v }

// Lookup returns the value bound to name.
func (in *Interpreter) Lookup(name string) (Value, bool) {
	v, ok := in.env[name]
	return v, ok
}

// completion is the result of executing a statement. returned marks a
// return statement unwinding to the nearest function call.
type completion struct {
	value    Value
	returned bool
}

// Evaluate runs program and returns the value of its last statement, or
// the value of a top-level return.
func (in *Interpreter) Evaluate(program *Program) (Value, error) {
	defer in.enter()()
	c, err := in.execList(program.Body)
	if err != nil {
		return nil, err
	}
	return c.value, nil
}

// Call invokes fn with args. It is how hosts run listeners and timers.
func (in *Interpreter) Call(fn Value, args ...Value) (Value, error) {
	defer in.enter()()
	return in.call(fn, args, "callback")
}

// enter starts a new step budget unless an evaluation is already running,
// as when a script dispatches an event.
func (in *Interpreter) enter() func() {
	if in.active == 0 {
		in.steps = 0
	}
	in.active++
	return func() { in.active-- }
}

func (in *Interpreter) execList(stmts []Stmt) (completion, error) {
	result := completion{value: Undefined{}}
	for _, s := range stmts {
		c, err := in.exec(s)
		if err != nil {
			return completion{}, err
		}
		result = c
		if c.returned {
			return c, nil
		}
	}
	return result, nil
}

func (in *Interpreter) step() error {
	in.steps++
	if in.StepLimit > 0 && in.steps > in.StepLimit {
		return runtimeErrorf("step limit of %d exceeded", in.StepLimit)
	}
	return nil
}

func (in *Interpreter) exec(s Stmt) (completion, error) {
	if err := in.step(); err != nil {
		return completion{}, err
	}
	undefined := completion{value: Undefined{}}

	switch s := s.(type) {
	case *ExprStmt:
		v, err := in.eval(s.Expr)
		return completion{value: v}, err

	case *VarDecl:
		var v Value = Undefined{}
		if s.Init != nil {
			var err error
			if v, err = in.eval(s.Init); err != nil {
				return completion{}, err
			}
		}
		in.env[s.Name] = v
		return completion{value: v}, nil

	case *FuncDecl:
		in.env[s.Name] = in.closure(s.Name, s.Params, s.Body)
		return undefined, nil

	case *IfStmt:
		test, err := in.eval(s.Test)
		if err != nil {
			return completion{}, err
		}
		if Truthy(test) {
			return in.exec(s.Then)
		}
		if s.Else != nil {
			return in.exec(s.Else)
		}
		return undefined, nil

	case *WhileStmt:
		for {
			test, err := in.eval(s.Test)
			if err != nil {
				return completion{}, err
			}
			if !Truthy(test) {
				return undefined, nil
			}
			c, err := in.exec(s.Body)
			if err != nil || c.returned {
				return c, err
			}
			if err := in.step(); err != nil {
				return completion{}, err
			}
		}

	case *ForStmt:
		if s.Init != nil {
			if _, err := in.exec(s.Init); err != nil {
				return completion{}, err
			}
		}
		for {
			if s.Test != nil {
				test, err := in.eval(s.Test)
				if err != nil {
					return completion{}, err
				}
				if !Truthy(test) {
					return undefined, nil
				}
			}
			c, err := in.exec(s.Body)
			if err != nil || c.returned {
				return c, err
			}
			if s.Update != nil {
				if _, err := in.eval(s.Update); err != nil {
					return completion{}, err
				}
			}
			if err := in.step(); err != nil {
				return completion{}, err
			}
		}

	case *ReturnStmt:
		var v Value = Undefined{}
		if s.Arg != nil {
			var err error
			if v, err = in.eval(s.Arg); err != nil {
				return completion{}, err
			}
		}
		return completion{value: v, returned: true}, nil

	case *BlockStmt:
		return in.execList(s.Body)
	}
	return completion{}, runtimeErrorf("unknown statement %T", s)
}

// closure captures a snapshot of the current environment.
func (in *Interpreter) closure(name string, params []string, body []Stmt) *Function {
	return &Function{Name: name, Params: params, Body: body, Env: maps.Clone(in.env)}
}

func (in *Interpreter) eval(e Expr) (Value, error) {
	switch e := e.(type) {
	case *Literal:
		return e.Value, nil

	case *Identifier:
		v, ok := in.env[e.Name]
		if !ok {
			return nil, runtimeErrorf("%s is not defined", e.Name)
		}
		return v, nil

	case *Assign:
		v, err := in.eval(e.Value)
		if err != nil {
			return nil, err
		}
		switch target := e.Target.(type) {
		case *Identifier:
			in.env[target.Name] = v
		case *Member:
			obj, key, err := in.memberKey(target)
			if err != nil {
				return nil, err
			}
			if err := setMember(obj, key, v); err != nil {
				return nil, err
			}
		}
		return v, nil

	case *Binary:
		left, err := in.eval(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := in.eval(e.Right)
		if err != nil {
			return nil, err
		}
		return binaryOp(e.Op, left, right)

	case *Unary:
		arg, err := in.eval(e.Arg)
		if err != nil {
			return nil, err
		}
		switch e.Op {
		case "!":
			return Boolean(!Truthy(arg)), nil
		case "-", "+":
			if !isPrimitive(arg) {
				return nil, runtimeErrorf("bad operand type for unary %s: %s", e.Op, arg.TypeOf())
			}
			if e.Op == "-" {
				return Number(-ToNumber(arg)), nil
			}
			return Number(ToNumber(arg)), nil
		}
		return nil, runtimeErrorf("unknown unary operator %s", e.Op)

	case *Update:
		old, ok := in.env[e.Target.Name]
		if !ok {
			return nil, runtimeErrorf("%s is not defined", e.Target.Name)
		}
		n := ToNumber(old)
		updated := n + 1
		if e.Op == "--" {
			updated = n - 1
		}
		in.env[e.Target.Name] = Number(updated)
		if e.Prefix {
			return Number(updated), nil
		}
		return Number(n), nil

	case *Call:
		var fn Value
		var err error
		name := "expression"
		switch callee := e.Callee.(type) {
		case *Member:
			obj, key, err := in.memberKey(callee)
			if err != nil {
				return nil, err
			}
			if fn, err = getMember(obj, key); err != nil {
				return nil, err
			}
			name = key
		case *Identifier:
			name = callee.Name
			if fn, err = in.eval(callee); err != nil {
				return nil, err
			}
		default:
			if fn, err = in.eval(callee); err != nil {
				return nil, err
			}
		}
		args := make([]Value, len(e.Args))
		for i, a := range e.Args {
			if args[i], err = in.eval(a); err != nil {
				return nil, err
			}
		}
		return in.call(fn, args, name)

	case *Member:
		obj, key, err := in.memberKey(e)
		if err != nil {
			return nil, err
		}
		return getMember(obj, key)

	case *FuncExpr:
		return in.closure(e.Name, e.Params, e.Body), nil
	}
	return nil, runtimeErrorf("unknown expression %T", e)
}

func (in *Interpreter) memberKey(m *Member) (Value, string, error) {
	obj, err := in.eval(m.Object)
	if err != nil {
		return nil, "", err
	}
	if !m.Computed {
		return obj, m.Name, nil
	}
	prop, err := in.eval(m.Property)
	if err != nil {
		return nil, "", err
	}
	return obj, ToString(prop), nil
}

func (in *Interpreter) call(fn Value, args []Value, name string) (Value, error) {
	switch f := fn.(type) {
	case *NativeFunction:
		v, err := f.Fn(args)
		if v == nil && err == nil {
			v = Undefined{}
		}
		return v, err

	case *Function:
		if in.depth >= maxCallDepth {
			return nil, runtimeErrorf("maximum call depth exceeded in %s", name)
		}
		env := maps.Clone(f.Env)
		if f.Name != "" {
			if _, ok := env[f.Name]; !ok {
				env[f.Name] = f
			}
		}
		for i, p := range f.Params {
			if i < len(args) {
				env[p] = args[i]
			} else {
				env[p] = Undefined{}
			}
		}

		saved := in.env
		in.env = env
		in.depth++
		c, err := in.execList(f.Body)
		in.depth--
		in.env = saved
		if err != nil {
			return nil, err
		}
		if c.returned {
			return c.value, nil
		}
		return Undefined{}, nil
	}
	return nil, runtimeErrorf("%s is not a function", name)
}

func binaryOp(op string, left, right Value) (Value, error) {
	switch op {
	case "==":
		return Boolean(LooseEquals(left, right)), nil
	case "!=":
		return Boolean(!LooseEquals(left, right)), nil
	case "===":
		return Boolean(StrictEquals(left, right)), nil
	case "!==":
		return Boolean(!StrictEquals(left, right)), nil
	case "+":
		_, ls := left.(String)
		_, rs := right.(String)
		if ls || rs {
			return String(ToString(left) + ToString(right)), nil
		}
	}

	if !isPrimitive(left) || !isPrimitive(right) {
		return nil, runtimeErrorf("bad operand types for %s: %s and %s", op, left.TypeOf(), right.TypeOf())
	}

	if op == "<" || op == ">" {
		ls, lok := left.(String)
		rs, rok := right.(String)
		if lok && rok {
			if op == "<" {
				return Boolean(ls < rs), nil
			}
			return Boolean(ls > rs), nil
		}
	}

	a, b := ToNumber(left), ToNumber(right)
	switch op {
	case "+":
		return Number(a + b), nil
	case "-":
		return Number(a - b), nil
	case "*":
		return Number(a * b), nil
	case "/":
		return Number(a / b), nil
	case "<":
		return Boolean(a < b), nil
	case ">":
		return Boolean(a > b), nil
	}
	return nil, runtimeErrorf("unknown operator %s", op)
}

func getMember(obj Value, key string) (Value, error) {
	switch o := obj.(type) {
	case Undefined, Null:
		return nil, runtimeErrorf("cannot read property %q of %s", key, ToString(obj))
	case *Object:
		return o.Get(key), nil
	case *Element:
		return o.dom.get(o.Node, key)
	case String:
		if key == "length" {
			return Number(len([]rune(string(o)))), nil
		}
	case *Function:
		if key == "name" {
			return String(o.Name), nil
		}
	}
	return Undefined{}, nil
}

func setMember(obj Value, key string, v Value) error {
	switch o := obj.(type) {
	case *Object:
		o.Set(key, v)
		return nil
	case *Element:
		return o.dom.set(o.Node, key, v)
	}
	return runtimeErrorf("cannot set property %q of %s", key, ToString(obj))
}
