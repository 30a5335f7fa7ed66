package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fwjs/engine"
	"fwjs/engine/ast"
	"fwjs/engine/interpreter"
	"fwjs/engine/runtime"
	"fwjs/lib/logging"
	"fwjs/lib/timer"

	"github.com/alexflint/go-arg"
	"go.uber.org/zap"
)

type RunnerArgs struct {
	Program  string `arg:"--program,env:FWJS_PROGRAM,required" json:"program,omitempty"`
	PrintAst bool   `arg:"--print-ast,env:FWJS_PRINT_AST" default:"false" json:"print_ast,omitempty"`
	Trace    bool   `arg:"--trace,env:FWJS_TRACE" default:"false" json:"trace,omitempty"`
}

type flags struct {
	RunnerArgs
	logging.LoggingArgs
}

func decode(path string) (ast.Ast, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read program: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ast.FromYAML(data)
	default:
		return ast.FromJSON(data)
	}
}

func run(args []string, stdout io.Writer) error {
	var f flags
	p, err := arg.NewParser(arg.Config{Program: "runner"}, &f)
	if err != nil {
		return err
	}
	if err = p.Parse(args); err != nil {
		if errors.Is(err, arg.ErrHelp) {
			p.WriteHelp(stdout)
			return nil
		}
		return err
	}
	logger, err := f.LoggingArgs.Build()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	if f.Trace {
		ctx = timer.WithTracing(ctx)
	}
	root, err := decode(f.Program)
	if err != nil {
		return err
	}
	timer.Mark(ctx, "decode.done")
	if f.PrintAst {
		if _, err = fmt.Fprintln(stdout, ast.String(root)); err != nil {
			return err
		}
	}
	logger.Info("running program", zap.String("program", f.Program))
	_, err = engine.NewExecutor(logger).Exec(ctx, root, runtime.NewEnv(nil), interpreter.LineSink{W: stdout})
	return err
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error [%s]: %v\n", runtime.Kind(err), err)
		os.Exit(1)
	}
}
