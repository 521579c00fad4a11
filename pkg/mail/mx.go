package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
)

const defaultResolverPort = "53"

// MXChecker answers whether a mail domain is able to receive email, by
// querying its MX records and falling back to an address record the way
// delivering MTAs do.
type MXChecker struct {
	client   *dns.Client
	servers  []string
	exchange func(ctx context.Context, msg *dns.Msg, server string) (*dns.Msg, error)
}

// NewMXChecker builds a checker using the system resolver configuration.
// When resolv.conf is unavailable it falls back to well-known public
// resolvers so the check degrades instead of breaking submissions.
func NewMXChecker(timeout time.Duration) *MXChecker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client := &dns.Client{Timeout: timeout}
	checker := &MXChecker{client: client}
	checker.exchange = func(ctx context.Context, msg *dns.Msg, server string) (*dns.Msg, error) {
		reply, _, err := client.ExchangeContext(ctx, msg, server)
		return reply, err
	}

	if conf, err := dns.ClientConfigFromFile("/etc/resolv.conf"); err == nil && len(conf.Servers) > 0 {
		for _, server := range conf.Servers {
			checker.servers = append(checker.servers, net.JoinHostPort(server, conf.Port))
		}
	} else {
		checker.servers = []string{
			net.JoinHostPort("8.8.8.8", defaultResolverPort),
			net.JoinHostPort("1.1.1.1", defaultResolverPort),
		}
	}

	return checker
}

// CanReceiveMail reports whether the domain part of address publishes MX
// records, or at least an A/AAAA record that delivering MTAs would use as
// an implicit MX. Resolution failures are returned as errors so callers
// can decide whether to fail open or closed.
func (c *MXChecker) CanReceiveMail(ctx context.Context, address string) (bool, error) {
	domain := domainPart(address)
	if domain == "" {
		return false, fmt.Errorf("mx: address %q has no domain part", address)
	}

	hasMX, err := c.query(ctx, domain, dns.TypeMX)
	if err != nil {
		return false, err
	}
	if hasMX {
		return true, nil
	}

	// No MX published: RFC 5321 falls back to the address record.
	return c.query(ctx, domain, dns.TypeA)
}

func (c *MXChecker) query(ctx context.Context, domain string, qtype uint16) (bool, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), qtype)
	msg.RecursionDesired = true

	var lastErr error
	for _, server := range c.servers {
		reply, err := c.exchange(ctx, msg, server)
		if err != nil {
			lastErr = err
			continue
		}
		if reply.Rcode == dns.RcodeNameError {
			return false, nil
		}
		if reply.Rcode != dns.RcodeSuccess {
			lastErr = fmt.Errorf("mx: query %s %s: rcode %s", domain, dns.TypeToString[qtype], dns.RcodeToString[reply.Rcode])
			continue
		}
		return len(reply.Answer) > 0, nil
	}

	if lastErr == nil {
		lastErr = errors.New("mx: no resolvers configured")
	}
	return false, lastErr
}

func domainPart(address string) string {
	at := strings.LastIndex(address, "@")
	if at < 0 || at == len(address)-1 {
		return ""
	}
	return strings.TrimSpace(address[at+1:])
}
