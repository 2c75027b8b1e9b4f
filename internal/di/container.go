// Package di wires the shell's services into a samber/do injector.
package di

import (
	"io"

	"github.com/samber/do"

	"github.com/agenthands/pyjava/internal/config"
	"github.com/agenthands/pyjava/internal/diag"
	"github.com/agenthands/pyjava/internal/shell"
	"github.com/agenthands/pyjava/pkg/compiler/python"
	"github.com/agenthands/pyjava/pkg/jvm"
	"github.com/agenthands/pyjava/pkg/workspace"
)

// Container wraps the injector with typed accessors.
type Container struct {
	*do.Injector
}

// NewContainer registers every service for cfg. Logs go to logOut.
// Services are built lazily on first use.
func NewContainer(cfg config.Config, logOut io.Writer) *Container {
	i := do.New()

	do.ProvideValue(i, cfg)
	do.Provide(i, func(i *do.Injector) (*diag.Logger, error) {
		c := do.MustInvoke[config.Config](i)
		return diag.NewLogger(logOut, c.Logging.Level, c.Logging.Format), nil
	})
	do.Provide(i, func(i *do.Injector) (*workspace.Sandbox, error) {
		c := do.MustInvoke[config.Config](i)
		return workspace.NewSandbox(c.Workspace.Root, c.Workspace.MaxSourceBytes)
	})
	do.Provide(i, func(i *do.Injector) (*python.Compiler, error) {
		c := do.MustInvoke[config.Config](i)
		return python.NewCompiler(python.Options{
			Strict:      c.Compiler.Strict,
			Indent:      c.Output.Indent,
			SpacedPrint: c.Compiler.SpacedPrint,
		}), nil
	})
	do.Provide(i, func(i *do.Injector) (*jvm.Runner, error) {
		c := do.MustInvoke[config.Config](i)
		return jvm.NewRunner(c.Java.Javac, c.Java.Java, c.Timeout()), nil
	})
	do.Provide(i, func(i *do.Injector) (*shell.Shell, error) {
		c := do.MustInvoke[config.Config](i)
		compiler, err := do.Invoke[*python.Compiler](i)
		if err != nil {
			return nil, err
		}
		sandbox, err := do.Invoke[*workspace.Sandbox](i)
		if err != nil {
			return nil, err
		}
		runner, err := do.Invoke[*jvm.Runner](i)
		if err != nil {
			return nil, err
		}
		log, err := do.Invoke[*diag.Logger](i)
		if err != nil {
			return nil, err
		}
		return shell.New(compiler, sandbox, runner, log, shell.Options{
			ClassName: c.Output.ClassName,
			OutDir:    c.Output.Dir,
		}), nil
	})

	return &Container{Injector: i}
}

func (c *Container) Config() config.Config {
	return do.MustInvoke[config.Config](c.Injector)
}

func (c *Container) Logger() (*diag.Logger, error) {
	return do.Invoke[*diag.Logger](c.Injector)
}

func (c *Container) Shell() (*shell.Shell, error) {
	return do.Invoke[*shell.Shell](c.Injector)
}

func (c *Container) Compiler() (*python.Compiler, error) {
	return do.Invoke[*python.Compiler](c.Injector)
}

// Shutdown releases every built service.
func (c *Container) Shutdown() error {
	return c.Injector.Shutdown()
}
