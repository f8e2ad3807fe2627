// Package preview executes a collected bundle in-process with goja, using
// the same module resolution as the generated program.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dop251/goja"

	"github.com/opmodel/dukbin/internal/bundle"
	"github.com/opmodel/dukbin/internal/output"
)

// ErrScript indicates the script threw an uncaught exception.
var ErrScript = errors.New("script error")

const moduleWrapperHead = "(function(exports, require, module, __filename, __dirname) {"

// Runner executes one bundle.
type Runner struct {
	bundle *bundle.Bundle
	out    io.Writer
	vm     *goja.Runtime
	cache  map[string]*goja.Object
}

// New returns a Runner for b that writes console output to out.
func New(b *bundle.Bundle, out io.Writer) *Runner {
	r := &Runner{
		bundle: b,
		out:    out,
		vm:     goja.New(),
		cache:  make(map[string]*goja.Object),
	}
	r.install()
	return r
}

func (r *Runner) install() {
	console := r.vm.NewObject()
	for _, name := range []string{"log", "info", "warn", "error", "debug"} {
		_ = console.Set(name, r.consoleWrite)
	}
	_ = r.vm.Set("console", console)
	_ = r.vm.Set("require", r.requireFrom(""))

	for _, name := range r.bundle.Natives.FunctionNames {
		name := name
		_ = r.vm.Set(name, func(goja.FunctionCall) goja.Value {
			panic(r.vm.NewGoError(fmt.Errorf("native function %s is unavailable in preview", name)))
		})
	}
}

func (r *Runner) consoleWrite(call goja.FunctionCall) goja.Value {
	parts := make([]string, 0, len(call.Arguments))
	for _, arg := range call.Arguments {
		parts = append(parts, arg.String())
	}
	fmt.Fprintln(r.out, strings.Join(parts, " "))
	return goja.Undefined()
}

func (r *Runner) requireFrom(parent string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		id := ResolveID(call.Argument(0).String(), parent, r.bundle.Indexes)
		module, err := r.load(id)
		if err != nil {
			var exception *goja.Exception
			if errors.As(err, &exception) {
				panic(exception.Value())
			}
			panic(r.vm.NewGoError(err))
		}
		return module.Get("exports")
	}
}

func (r *Runner) load(id string) (*goja.Object, error) {
	if module, ok := r.cache[id]; ok {
		return module, nil
	}

	source, ok := r.bundle.ModuleTable.Get(id)
	if !ok {
		return nil, fmt.Errorf("Cannot find module '%s'", id)
	}
	output.ModuleLogger(id).Debug("loading module")

	wrapped, err := r.vm.RunScript(id, moduleWrapperHead+source+"\n})")
	if err != nil {
		return nil, err
	}
	fn, ok := goja.AssertFunction(wrapped)
	if !ok {
		return nil, fmt.Errorf("module %s did not compile to a function", id)
	}

	module := r.vm.NewObject()
	exports := r.vm.NewObject()
	_ = module.Set("id", id)
	_ = module.Set("exports", exports)
	r.cache[id] = module

	_, err = fn(exports, exports, r.vm.ToValue(r.requireFrom(id)), module, r.vm.ToValue(id), r.vm.ToValue(dirPath(id)))
	if err != nil {
		delete(r.cache, id)
		return nil, err
	}
	return module, nil
}

// Run evaluates the entry script. Cancelling ctx interrupts execution.
func (r *Runner) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			r.vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	_, err := r.vm.RunScript("entry", r.bundle.Entry)
	if err == nil {
		return nil
	}

	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		return fmt.Errorf("preview interrupted: %w", ctx.Err())
	}
	var exception *goja.Exception
	if errors.As(err, &exception) {
		return fmt.Errorf("%w: %s", ErrScript, exception.Value().String())
	}
	return fmt.Errorf("%w: %v", ErrScript, err)
}

// Global returns the value of a global variable after Run.
func (r *Runner) Global(name string) goja.Value {
	return r.vm.Get(name)
}
