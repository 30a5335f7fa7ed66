package timer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type traceKey struct{}

type traceEvent struct {
	event   string
	elapsed time.Duration
}

type trace struct {
	lock   sync.Mutex
	start  time.Time
	events []traceEvent
}

func (t *trace) record(key string, ts time.Time) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.events = append(t.events, traceEvent{
		event:   key,
		elapsed: ts.Sub(t.start),
	})
}

func (t *trace) sorted() []traceEvent {
	t.lock.Lock()
	defer t.lock.Unlock()
	ret := make([]traceEvent, len(t.events))
	copy(ret, t.events)
	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].elapsed < ret[j].elapsed
	})
	return ret
}

func WithTracing(ctx context.Context) context.Context {
	return context.WithValue(ctx, traceKey{}, &trace{
		start:  time.Now(),
		events: make([]traceEvent, 0),
	})
}

func getTrace(ctx context.Context) (*trace, bool) {
	t, ok := ctx.Value(traceKey{}).(*trace)
	return t, ok
}

// Mark records event on the trace carried by ctx. It is a no-op when ctx was
// not created with WithTracing.
func Mark(ctx context.Context, event string) {
	if t, ok := getTrace(ctx); ok {
		t.record(event, time.Now())
	}
}

// Events returns the names of the recorded events in the order they happened.
func Events(ctx context.Context) []string {
	t, ok := getTrace(ctx)
	if !ok {
		return nil
	}
	events := t.sorted()
	ret := make([]string, 0, len(events))
	for _, e := range events {
		ret = append(ret, e.event)
	}
	return ret
}

func LogTracingInfo(ctx context.Context, log *zap.Logger) error {
	ctxval := ctx.Value(traceKey{})
	if ctxval == nil {
		return nil
	}
	trace, ok := ctxval.(*trace)
	if !ok {
		return fmt.Errorf("expected trace but got: %v", ctxval)
	}
	sb := strings.Builder{}
	sb.WriteString("====Trace====\n")
	for _, e := range trace.sorted() {
		sb.WriteString(fmt.Sprintf("\t%5dus: %s\n", e.elapsed.Microseconds(), e.event))
	}
	log.Debug(sb.String())
	return nil
}
