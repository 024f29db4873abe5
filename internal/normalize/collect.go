package normalize

import "regionorm/internal/ast"

// CollectState classifies the regions seen in the typed inputs.
type CollectState uint8

const (
	CollectNone CollectState = iota
	CollectSingle
	CollectMultiple // terminal
)

func (s CollectState) String() string {
	switch s {
	case CollectNone:
		return "none"
	case CollectSingle:
		return "single"
	default:
		return "multiple"
	}
}

// regionCollector counts region occurrences, not distinct names: the same
// region written twice already makes the state CollectMultiple.
type regionCollector struct {
	state  CollectState
	single *ast.Lifetime
}

func (c *regionCollector) observe(lt *ast.Lifetime) {
	switch c.state {
	case CollectNone:
		c.state = CollectSingle
		c.single = lt
	case CollectSingle:
		c.state = CollectMultiple
		c.single = nil
	}
}

func (c *regionCollector) Enter(n ast.Node) bool {
	if c.state == CollectMultiple || ast.OpensInnerScope(n) {
		return false
	}
	switch n := n.(type) {
	case *ast.Lifetime:
		c.observe(n)
	case *ast.GenericParam:
		// for<'a> объявляет регион: это тоже вхождение
		if n.Kind == ast.GenericLifetime {
			c.observe(&ast.Lifetime{Name: n.Name, Span: n.Span})
		}
	}
	return true
}

func (c *regionCollector) Leave(ast.Node) {}

// CollectRegion walks the typed (non-receiver) inputs. The region is set only
// for CollectSingle.
func CollectRegion(inputs []*ast.FnArg) (*ast.Lifetime, CollectState) {
	var c regionCollector
	for _, arg := range inputs {
		if arg.Typed == nil {
			continue
		}
		ast.Walk(&c, arg.Typed)
	}
	return c.single, c.state
}
