package python

import (
	"fmt"
	"strings"

	"github.com/go-python/gpython/ast"
	"github.com/go-python/gpython/parser"
	"github.com/go-python/gpython/py"
)

// Finding is a construct the translator has no rule for, located by the
// Python parser.
type Finding struct {
	Line      int
	Construct string
}

func (f Finding) String() string {
	return fmt.Sprintf("line %d: %s", f.Line, f.Construct)
}

// Validate reports whether src parses as Python.
func Validate(src string) error {
	_, err := parse(src)
	return err
}

// Audit parses src as Python and lists every statement or value outside
// the translated subset, in source order.
func Audit(src string) ([]Finding, error) {
	mod, err := parse(src)
	if err != nil {
		return nil, err
	}
	a := &auditor{}
	a.stmts(mod.Body)
	return a.findings, nil
}

func parse(src string) (*ast.Module, error) {
	if !strings.HasSuffix(src, "\n") {
		src += "\n"
	}
	tree, err := parser.Parse(strings.NewReader(src), "<string>", py.ExecMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	mod, ok := tree.(*ast.Module)
	if !ok {
		return nil, fmt.Errorf("%w: expected module, got %T", ErrSyntax, tree)
	}
	return mod, nil
}

type auditor struct {
	findings []Finding
}

func (a *auditor) add(node ast.Ast, what string) {
	a.findings = append(a.findings, Finding{Line: node.GetLineno(), Construct: what})
}

func (a *auditor) stmts(body []ast.Stmt) {
	for _, stmt := range body {
		a.stmt(stmt)
	}
}

func (a *auditor) stmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Assign:
		if len(s.Targets) != 1 {
			a.add(s, "chained assignment")
		} else if _, ok := s.Targets[0].(*ast.Name); !ok {
			a.add(s, "assignment to "+nodeName(s.Targets[0]))
		}
		a.expr(s.Value)
	case *ast.AugAssign:
		a.expr(s.Value)
	case *ast.ExprStmt:
		a.expr(s.Value)
	case *ast.If:
		a.stmts(s.Body)
		a.stmts(s.Orelse)
	case *ast.While:
		a.stmts(s.Body)
		if len(s.Orelse) > 0 {
			a.add(s, "while-else")
		}
	case *ast.For:
		if _, ok := s.Target.(*ast.Name); !ok {
			a.add(s, "loop target "+nodeName(s.Target))
		}
		if !isRangeCall(s.Iter) {
			a.add(s, "iteration over "+nodeName(s.Iter))
		}
		a.stmts(s.Body)
		if len(s.Orelse) > 0 {
			a.add(s, "for-else")
		}
	case *ast.Pass, *ast.Break, *ast.Continue:
	default:
		a.add(stmt, nodeName(stmt))
	}
}

// expr flags composite values at the top of an expression.
func (a *auditor) expr(e ast.Expr) {
	switch e.(type) {
	case *ast.List, *ast.Tuple, *ast.Dict, *ast.ListComp, *ast.DictComp, *ast.GeneratorExp:
		a.add(e, nodeName(e))
	}
}

func isRangeCall(e ast.Expr) bool {
	call, ok := e.(*ast.Call)
	if !ok {
		return false
	}
	name, ok := call.Func.(*ast.Name)
	return ok && string(name.Id) == "range"
}

// nodeName renders a node type as a lower-case construct name.
func nodeName(node any) string {
	name := strings.TrimPrefix(fmt.Sprintf("%T", node), "*ast.")
	return strings.ToLower(name)
}
