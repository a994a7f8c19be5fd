package health

import (
	"context"
	"sort"
	"time"
)

// Pinger is any dependency that can report liveness.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

// Status is the health payload.
type Status struct {
	OK     bool              `json:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Service runs dependency checks.
type Service struct {
	checks  map[string]Pinger
	timeout time.Duration
}

// NewService constructs a health service. Nil pingers are skipped.
func NewService(checks map[string]Pinger) *Service {
	s := &Service{checks: map[string]Pinger{}, timeout: 2 * time.Second}
	for name, p := range checks {
		if p != nil {
			s.checks[name] = p
		}
	}
	return s
}

// Status pings every dependency in name order.
func (s *Service) Status(ctx context.Context) Status {
	out := Status{OK: true}
	if s == nil || len(s.checks) == 0 {
		return out
	}
	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	out.Checks = make(map[string]string, len(names))
	for _, name := range names {
		checkCtx, cancel := context.WithTimeout(ctx, s.timeout)
		err := s.checks[name].PingContext(checkCtx)
		cancel()
		if err != nil {
			out.OK = false
			out.Checks[name] = err.Error()
			continue
		}
		out.Checks[name] = "ok"
	}
	return out
}
