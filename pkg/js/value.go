package js

import (
	"math"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/Arun03Kumar/browser/pkg/html"
)

// Value is a script value: Undefined, Null, Number, String, Boolean,
// *Function, *NativeFunction, *Element or *Object.
type Value interface {
	TypeOf() string
}

type (
	Undefined struct{}
	Null      struct{}
	Number    float64
	String    string
	Boolean   bool
)

func (Undefined) TypeOf() string { return "undefined" }
func (Null) TypeOf() string      { return "object" }
func (Number) TypeOf() string    { return "number" }
func (String) TypeOf() string    { return "string" }
func (Boolean) TypeOf() string   { return "boolean" }

// Function is a script-defined function. Env is the snapshot of the
// environment taken when the function was defined.
type Function struct {
	Name   string
	Params []string
	Body   []Stmt
	Env    Environment
}

func (*Function) TypeOf() string { return "function" }

// NativeFunction is a function implemented by the host.
type NativeFunction struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

func (*NativeFunction) TypeOf() string { return "function" }

func native(name string, fn func(args []Value) (Value, error)) *NativeFunction {
	return &NativeFunction{Name: name, Fn: fn}
}

// Element is a live handle on a document element. Property reads and
// writes go through the binding that created it.
type Element struct {
	Node *html.Node
	dom  *domContext
}

func (*Element) TypeOf() string { return "object" }

// Object is an ordered property bag, used for document, window, console
// and event objects.
type Object struct {
	props *linkedhashmap.Map
}

func (*Object) TypeOf() string { return "object" }

func NewObject() *Object {
	return &Object{props: linkedhashmap.New()}
}

// Get returns the named property, or Undefined.
func (o *Object) Get(name string) Value {
	if v, ok := o.props.Get(name); ok {
		return v.(Value)
	}
	return Undefined{}
}

func (o *Object) Set(name string, v Value) {
	o.props.Put(name, v)
}

// Keys returns property names in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.props.Size())
	for _, k := range o.props.Keys() {
		keys = append(keys, k.(string))
	}
	return keys
}

// Environment is the flat identifier table the interpreter evaluates in.
type Environment map[string]Value

// Truthy reports whether v counts as true in a condition.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case Undefined, Null:
		return false
	case Boolean:
		return bool(v)
	case Number:
		return v != 0 && !math.IsNaN(float64(v))
	case String:
		return v != ""
	}
	return true
}

// ToNumber converts v the way arithmetic operators do.
func ToNumber(v Value) float64 {
	switch v := v.(type) {
	case Number:
		return float64(v)
	case Boolean:
		if v {
			return 1
		}
		return 0
	case Null:
		return 0
	case String:
		s := strings.TrimSpace(string(v))
		if s == "" {
			return 0
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n
		}
	}
	return math.NaN()
}

// ToString converts v the way string concatenation does.
func ToString(v Value) string {
	switch v := v.(type) {
	case Undefined:
		return "undefined"
	case Null:
		return "null"
	case Boolean:
		return strconv.FormatBool(bool(v))
	case String:
		return string(v)
	case Number:
		return formatNumber(float64(v))
	case *Function:
		return "function " + v.Name + "() { [script code] }"
	case *NativeFunction:
		return "function " + v.Name + "() { [native code] }"
	case *Element:
		return "[object HTML" + elementClass(v.Node.TagName) + "Element]"
	}
	return "[object Object]"
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func elementClass(tag string) string {
	switch tag {
	case "p":
		return "Paragraph"
	case "a":
		return "Anchor"
	case "div", "span", "input", "button", "form", "body", "head", "html":
		return strings.ToUpper(tag[:1]) + tag[1:]
	}
	return ""
}

// StrictEquals implements ===.
func StrictEquals(a, b Value) bool {
	switch a := a.(type) {
	case Number:
		bn, ok := b.(Number)
		return ok && a == bn
	case *Element:
		be, ok := b.(*Element)
		return ok && a.Node == be.Node
	}
	return a == b
}

// LooseEquals implements ==.
func LooseEquals(a, b Value) bool {
	if a.TypeOf() == b.TypeOf() {
		if isNullish(a) != isNullish(b) {
			return false
		}
		return StrictEquals(a, b)
	}
	if isNullish(a) || isNullish(b) {
		return isNullish(a) && isNullish(b)
	}
	if isPrimitive(a) && isPrimitive(b) {
		return ToNumber(a) == ToNumber(b)
	}
	return false
}

func isNullish(v Value) bool {
	switch v.(type) {
	case Undefined, Null:
		return true
	}
	return false
}

func isPrimitive(v Value) bool {
	switch v.(type) {
	case Undefined, Null, Number, String, Boolean:
		return true
	}
	return false
}
