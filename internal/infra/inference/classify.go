package inference

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/aalvaropc/digitprobe/internal/domain"
)

func classify(err error) *domain.NetError {
	if err == nil {
		return nil
	}

	msg := err.Error()

	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.NetError{Kind: domain.NetErrorTimeout, Message: msg}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &domain.NetError{Kind: domain.NetErrorTimeout, Message: msg}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &domain.NetError{Kind: domain.NetErrorDNS, Message: msg}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &domain.NetError{Kind: domain.NetErrorConn, Message: msg}
	}

	if strings.Contains(strings.ToLower(msg), "connection refused") {
		return &domain.NetError{Kind: domain.NetErrorConn, Message: msg}
	}

	return &domain.NetError{Kind: domain.NetErrorUnknown, Message: msg}
}
