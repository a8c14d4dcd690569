package layout

import "github.com/Arun03Kumar/browser/pkg/html"

// HitTest returns the node of the topmost command containing (x, y), or nil.
// Cursors and commands without a node are ignored.
func HitTest(cmds []PaintCommand, x, y float64) *html.Node {
	for i := len(cmds) - 1; i >= 0; i-- {
		c := cmds[i]
		if c.Node == nil || c.Kind == CommandCursor {
			continue
		}
		if x >= c.X && x < c.X+c.Width && y >= c.Y && y < c.Y+c.Height {
			return c.Node
		}
	}
	return nil
}
