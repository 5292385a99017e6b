package health

import "context"

// IndexCheck reports down until ready returns true.
func IndexCheck(ready func() bool) Check {
	return func(ctx context.Context) ComponentHealth {
		if !ready() {
			return ComponentHealth{Status: StatusDown, Message: "index not built"}
		}
		return ComponentHealth{Status: StatusUp}
	}
}

// PingCheck wraps an optional backing service. A failed ping degrades the
// system rather than taking it down, since queries are answered from memory.
func PingCheck(ping func(ctx context.Context) error) Check {
	return func(ctx context.Context) ComponentHealth {
		if err := ping(ctx); err != nil {
			return ComponentHealth{Status: StatusDegraded, Message: err.Error()}
		}
		return ComponentHealth{Status: StatusUp}
	}
}
