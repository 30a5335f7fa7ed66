package engine

import (
	"context"
	"time"

	"fwjs/engine/ast"
	"fwjs/engine/interpreter"
	"fwjs/engine/runtime"
	"fwjs/lib/timer"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var evaluations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "fwjs_evaluations_total",
	Help: "Number of program evaluations by outcome",
}, []string{"outcome"})

var evaluationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "fwjs_evaluation_errors_total",
	Help: "Number of failed program evaluations by error kind",
}, []string{"kind"})

type Executor struct {
	logger *zap.Logger
}

func NewExecutor(logger *zap.Logger) Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Executor{logger: logger}
}

// Exec evaluates root against global, which must be a fresh scope with no
// outer link. ctx is only consulted for tracing; evaluation cannot be
// cancelled once started.
func (ex Executor) Exec(ctx context.Context, root ast.Ast, global *runtime.Env, sink interpreter.Sink) (runtime.Value, error) {
	defer timer.Start("interpreter.eval").Stop()
	timer.Mark(ctx, "eval.start")
	start := time.Now()

	ip := interpreter.NewInterpreter(global,
		interpreter.WithSink(sink),
		interpreter.WithLogger(ex.logger),
	)
	ret, err := ip.Eval(root)
	timer.Mark(ctx, "eval.done")
	if terr := timer.LogTracingInfo(ctx, ex.logger); terr != nil {
		ex.logger.Warn("failed to log trace", zap.Error(terr))
	}
	if err != nil {
		kind := runtime.Kind(err)
		evaluations.WithLabelValues("error").Inc()
		evaluationErrors.WithLabelValues(kind).Inc()
		ex.logger.Warn("evaluation failed",
			zap.String("kind", kind),
			zap.Error(err),
			zap.Duration("elapsed", time.Since(start)),
		)
		return runtime.Nil, err
	}
	evaluations.WithLabelValues("ok").Inc()
	ex.logger.Debug("evaluation finished",
		zap.Stringer("result", ret),
		zap.Duration("elapsed", time.Since(start)),
	)
	return ret, nil
}
