package health

import (
	"context"
	"time"

	"github.com/taoyao-code/ubx-gateway/internal/sink"
)

// SinkChecker 存储熔断状态：任一存储熔断即降级
type SinkChecker struct {
	fanout *sink.Fanout
}

func NewSinkChecker(f *sink.Fanout) *SinkChecker { return &SinkChecker{fanout: f} }

func (c *SinkChecker) Name() string { return "sink" }

func (c *SinkChecker) Check(context.Context) CheckResult {
	start := time.Now()
	breakers := c.fanout.Breakers()
	status, message := StatusHealthy, "ok"
	details := make(map[string]any, len(breakers))
	for name, st := range breakers {
		details[name] = st.State
		if st.State != sink.BreakerClosed.String() {
			status, message = StatusDegraded, "store circuit open: "+name
		}
	}
	return CheckResult{Status: status, Message: message, Details: details, Latency: time.Since(start)}
}
