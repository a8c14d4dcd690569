package js

import (
	"strings"

	"github.com/Arun03Kumar/browser/pkg/html"
)

// domContext holds the element handles and listeners of one engine. It
// caches one handle per node so the same node always yields the same value.
type domContext struct {
	engine    *Engine
	cache     map[*html.Node]*Element
	listeners map[*html.Node]map[string][]Value
}

func newDOMContext(e *Engine) *domContext {
	return &domContext{
		engine:    e,
		cache:     make(map[*html.Node]*Element),
		listeners: make(map[*html.Node]map[string][]Value),
	}
}

// elementProxy returns the handle for node, or null.
func (ctx *domContext) elementProxy(node *html.Node) Value {
	if node == nil {
		return Null{}
	}
	if el, ok := ctx.cache[node]; ok {
		return el
	}
	el := &Element{Node: node, dom: ctx}
	ctx.cache[node] = el
	return el
}

func (ctx *domContext) mutated() {
	if ctx.engine.doc != nil {
		ctx.engine.doc.Invalidate()
	}
}

func (ctx *domContext) addListener(node *html.Node, eventType string, fn Value) {
	byType := ctx.listeners[node]
	if byType == nil {
		byType = make(map[string][]Value)
		ctx.listeners[node] = byType
	}
	byType[eventType] = append(byType[eventType], fn)
}

func (ctx *domContext) removeListener(node *html.Node, eventType string, fn Value) {
	list := ctx.listeners[node][eventType]
	for i, l := range list {
		if l == fn {
			ctx.listeners[node][eventType] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// listenersFor returns a copy so listeners added during dispatch do not run
// for the event in flight.
func (ctx *domContext) listenersFor(node *html.Node, eventType string) []Value {
	return append([]Value(nil), ctx.listeners[node][eventType]...)
}

func (ctx *domContext) get(n *html.Node, key string) (Value, error) {
	switch key {
	case "tagName", "nodeName":
		return String(strings.ToUpper(n.TagName)), nil
	case "id":
		return String(attr(n, "id")), nil
	case "className":
		return String(attr(n, "class")), nil
	case "value":
		return String(attr(n, "value")), nil
	case "textContent":
		return String(n.TextContent()), nil
	case "innerHTML":
		return String(n.InnerHTML()), nil
	case "outerHTML":
		return String(n.OuterHTML()), nil

	case "getAttribute":
		return native(key, func(args []Value) (Value, error) {
			if v, ok := n.GetAttribute(strings.ToLower(argString(args, 0))); ok {
				return String(v), nil
			}
			return Null{}, nil
		}), nil
	case "setAttribute":
		return native(key, func(args []Value) (Value, error) {
			n.SetAttribute(argString(args, 0), argString(args, 1))
			ctx.mutated()
			return Undefined{}, nil
		}), nil
	case "hasAttribute":
		return native(key, func(args []Value) (Value, error) {
			_, ok := n.GetAttribute(strings.ToLower(argString(args, 0)))
			return Boolean(ok), nil
		}), nil
	case "removeAttribute":
		return native(key, func(args []Value) (Value, error) {
			name := strings.ToLower(argString(args, 0))
			if _, ok := n.GetAttribute(name); ok {
				n.Attributes.Remove(name)
				ctx.mutated()
			}
			return Undefined{}, nil
		}), nil

	case "addEventListener":
		return native(key, func(args []Value) (Value, error) {
			fn := arg(args, 1)
			if !isCallable(fn) {
				return nil, runtimeErrorf("addEventListener: listener is not a function")
			}
			ctx.addListener(n, argString(args, 0), fn)
			return Undefined{}, nil
		}), nil
	case "removeEventListener":
		return native(key, func(args []Value) (Value, error) {
			ctx.removeListener(n, argString(args, 0), arg(args, 1))
			return Undefined{}, nil
		}), nil
	case "click":
		return native(key, func(args []Value) (Value, error) {
			ctx.engine.Dispatch(n, "click")
			return Undefined{}, nil
		}), nil

	case "appendChild":
		return native(key, func(args []Value) (Value, error) {
			child, ok := arg(args, 0).(*Element)
			if !ok {
				return nil, runtimeErrorf("appendChild: argument is not an element")
			}
			for a := n; a != nil; a = a.Parent {
				if a == child.Node {
					return nil, runtimeErrorf("appendChild: the new child contains the parent")
				}
			}
			if !n.CanAdopt(child.Node) {
				return nil, runtimeErrorf("appendChild: tree would nest deeper than %d levels", html.MaxDepth)
			}
			n.AppendChild(child.Node)
			ctx.mutated()
			return child, nil
		}), nil
	case "removeChild":
		return native(key, func(args []Value) (Value, error) {
			child, ok := arg(args, 0).(*Element)
			if !ok || n.RemoveChild(child.Node) == nil {
				return nil, runtimeErrorf("removeChild: argument is not a child of this element")
			}
			ctx.mutated()
			return child, nil
		}), nil

	case "parentElement", "parentNode":
		if n.Parent == nil {
			return Null{}, nil
		}
		return ctx.elementProxy(n.Parent), nil
	case "firstElementChild":
		return ctx.elementProxy(elementChild(n, 0, 1)), nil
	case "lastElementChild":
		return ctx.elementProxy(elementChild(n, len(n.Children)-1, -1)), nil
	case "nextElementSibling":
		return ctx.elementProxy(sibling(n, 1)), nil
	case "previousElementSibling":
		return ctx.elementProxy(sibling(n, -1)), nil
	case "childElementCount":
		count := 0
		for _, c := range n.Children {
			if c.Type == html.ElementNode {
				count++
			}
		}
		return Number(count), nil
	case "classList":
		return ctx.classList(n), nil
	}
	return Undefined{}, nil
}

func (ctx *domContext) set(n *html.Node, key string, v Value) error {
	switch key {
	case "textContent":
		n.SetText(ToString(v))
	case "innerHTML":
		nodes := html.ParseFragmentFor(n, ToString(v))
		for _, child := range nodes {
			if !n.CanAdopt(child) {
				return runtimeErrorf("innerHTML: tree would nest deeper than %d levels", html.MaxDepth)
			}
		}
		n.RemoveChildren()
		for _, child := range nodes {
			n.AppendChild(child)
		}
	case "id":
		n.SetAttribute("id", ToString(v))
	case "className":
		n.SetAttribute("class", ToString(v))
	case "value":
		n.SetAttribute("value", ToString(v))
	default:
		return runtimeErrorf("cannot set property %q of <%s>", key, n.TagName)
	}
	ctx.mutated()
	return nil
}

// classList exposes the class attribute as a token list.
func (ctx *domContext) classList(n *html.Node) *Object {
	classes := func() []string { return strings.Fields(attr(n, "class")) }
	store := func(list []string) {
		n.SetAttribute("class", strings.Join(list, " "))
		ctx.mutated()
	}
	indexOf := func(list []string, name string) int {
		for i, c := range list {
			if c == name {
				return i
			}
		}
		return -1
	}

	obj := NewObject()
	obj.Set("contains", native("contains", func(args []Value) (Value, error) {
		return Boolean(indexOf(classes(), argString(args, 0)) >= 0), nil
	}))
	obj.Set("add", native("add", func(args []Value) (Value, error) {
		list := classes()
		for _, a := range args {
			if name := ToString(a); indexOf(list, name) < 0 {
				list = append(list, name)
			}
		}
		store(list)
		return Undefined{}, nil
	}))
	obj.Set("remove", native("remove", func(args []Value) (Value, error) {
		list := classes()
		for _, a := range args {
			if i := indexOf(list, ToString(a)); i >= 0 {
				list = append(list[:i], list[i+1:]...)
			}
		}
		store(list)
		return Undefined{}, nil
	}))
	obj.Set("toggle", native("toggle", func(args []Value) (Value, error) {
		list := classes()
		name := argString(args, 0)
		if i := indexOf(list, name); i >= 0 {
			store(append(list[:i], list[i+1:]...))
			return Boolean(false), nil
		}
		store(append(list, name))
		return Boolean(true), nil
	}))
	obj.Set("length", Number(len(classes())))
	return obj
}

func attr(n *html.Node, name string) string {
	v, _ := n.GetAttribute(name)
	return v
}

func elementChild(n *html.Node, start, dir int) *html.Node {
	for i := start; i >= 0 && i < len(n.Children); i += dir {
		if n.Children[i].Type == html.ElementNode {
			return n.Children[i]
		}
	}
	return nil
}

func sibling(n *html.Node, dir int) *html.Node {
	if n.Parent == nil {
		return nil
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return elementChild(n.Parent, i+dir, dir)
		}
	}
	return nil
}

func arg(args []Value, i int) Value {
	if i < len(args) {
		return args[i]
	}
	return Undefined{}
}

func argString(args []Value, i int) string {
	return ToString(arg(args, i))
}

func isCallable(v Value) bool {
	switch v.(type) {
	case *Function, *NativeFunction:
		return true
	}
	return false
}
