package checks

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/kbhandari/portfolio-api/internal/monitoring"
)

const defaultSMTPTimeout = 3 * time.Second

// SMTP returns a readiness probe that verifies the mail relay accepts TCP
// connections. It does not speak the protocol, a reachable relay is enough
// for readiness purposes.
func SMTP(host string, port int, timeout time.Duration) monitoring.Check {
	return monitoring.NewCheck("smtp", func(ctx context.Context) monitoring.ProbeResult {
		start := time.Now()
		if host == "" {
			return monitoring.ProbeResult{
				Status:   monitoring.StatusDown,
				Details:  "smtp relay not configured",
				Duration: time.Since(start),
			}
		}

		dialer := net.Dialer{Timeout: chooseTimeout(timeout, defaultSMTPTimeout)}
		conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, fmt.Sprintf("%d", port)))
		if err != nil {
			return monitoring.ResultFromError("smtp", err, time.Since(start))
		}
		_ = conn.Close()

		return monitoring.ProbeResult{
			Status:   monitoring.StatusUp,
			Duration: time.Since(start),
		}
	})
}
