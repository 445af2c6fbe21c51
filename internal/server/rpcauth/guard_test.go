package rpcauth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yndnr/endpointauth-go/internal/core/domain"
	"github.com/yndnr/endpointauth-go/internal/core/service"
	"github.com/yndnr/endpointauth-go/internal/telemetry/metric"
	"github.com/yndnr/endpointauth-go/pkg/clock"
)

var (
	testIdentity = domain.NewEndpointIdentity("GLOBAL", []byte{1, 2, 3, 4, 5})
	testInstant  = time.Unix(1674724963, 0)
)

func newTestService(t *testing.T, policy domain.TokenPolicy, clk clock.Clock) *service.AuthService {
	t.Helper()
	s, err := service.NewAuthService(&service.AuthServiceConfig{
		Policy:    policy,
		Tolerance: 30 * time.Second,
		Clock:     clk,
	})
	if err != nil {
		t.Fatalf("NewAuthService() error = %v", err)
	}
	return s
}

func testEnvelope(t *testing.T) []byte {
	t.Helper()
	envelope, err := newTestService(t, domain.PolicyOptional, clock.Fixed(testInstant)).GenerateToken(testIdentity)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	return envelope
}

func tampered(envelope []byte) []byte {
	b := append([]byte(nil), envelope...)
	b[len(b)-1] ^= 0x01
	return b
}

func TestGuard_Check(t *testing.T) {
	envelope := testEnvelope(t)

	tests := []struct {
		name       string
		policy     domain.TokenPolicy
		envelope   []byte
		wantReject bool
		wantCaller bool
		wantResult domain.ValidationResult
	}{
		{"optional no token", domain.PolicyOptional, nil, false, false, 0},
		{"optional valid", domain.PolicyOptional, envelope, false, true, domain.Valid},
		{"optional tampered", domain.PolicyOptional, tampered(envelope), true, false, 0},
		{"required no token", domain.PolicyRequired, nil, true, false, 0},
		{"required valid", domain.PolicyRequired, envelope, false, true, domain.Valid},
		{"none valid", domain.PolicyNone, envelope, false, true, domain.NotValidated},
		{"none tampered", domain.PolicyNone, tampered(envelope), false, true, domain.NotValidated},
		{"none garbage", domain.PolicyNone, []byte{0xff}, true, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGuard(newTestService(t, tt.policy, clock.Fixed(testInstant.Add(5*time.Second))), GuardConfig{})

			ctx, err := g.Check(context.Background(), tt.envelope, "/test.v1.Test/Call", "10.0.0.1:1234")
			if tt.wantReject {
				var r *Rejection
				if !errors.As(err, &r) {
					t.Fatalf("Check() error = %v, want *Rejection", err)
				}
				if !strings.HasPrefix(err.Error(), RejectPrefix) {
					t.Errorf("Check() error = %q, want prefix %q", err, RejectPrefix)
				}
				return
			}
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}

			caller, ok := FromContext(ctx)
			if ok != tt.wantCaller {
				t.Fatalf("FromContext() ok = %v, want %v", ok, tt.wantCaller)
			}
			if !ok {
				return
			}
			if caller.Result != tt.wantResult {
				t.Errorf("Result = %v, want %v", caller.Result, tt.wantResult)
			}
			if !caller.Identity.Equal(testIdentity) {
				t.Errorf("Identity = %v, want %v", caller.Identity, testIdentity)
			}

			_, verified := IdentityFromContext(ctx)
			if verified != (tt.wantResult == domain.Valid) {
				t.Errorf("IdentityFromContext() ok = %v", verified)
			}
			if tt.wantResult == domain.Valid && !caller.IssuedAt.Equal(testInstant) {
				t.Errorf("IssuedAt = %v, want %v", caller.IssuedAt, testInstant)
			}
		})
	}
}

func TestGuard_RejectionMessage(t *testing.T) {
	svc := newTestService(t, domain.PolicyRequired, clock.Fixed(testInstant.Add(time.Hour)))
	g := NewGuard(svc, GuardConfig{})

	_, err := g.Check(context.Background(), testEnvelope(t), "/test.v1.Test/Call", "10.0.0.1:1234")
	if err == nil {
		t.Fatal("Check() should reject a stale token")
	}

	msg := err.Error()
	for _, want := range []string{
		RejectPrefix,
		"[EA-AUTH-4011] invalid token from endpoint: GLOBAL: 0102030405",
		" => token age 1h0m0s exceeds tolerance 30s",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("rejection %q missing %q", msg, want)
		}
	}
	if !errors.Is(err, domain.ErrTokenRejected) {
		t.Error("rejection should unwrap to ErrTokenRejected")
	}
}

func TestGuard_HardErrorChain(t *testing.T) {
	g := NewGuard(newTestService(t, domain.PolicyOptional, clock.Fixed(testInstant)), GuardConfig{})

	_, err := g.Check(context.Background(), []byte{0x05, 0x00, 0x08}, "/test.v1.Test/Call", "10.0.0.1:1234")
	if err == nil {
		t.Fatal("Check() should reject a truncated frame")
	}
	if !errors.Is(err, domain.ErrTokenValidation) {
		t.Errorf("error = %v, want ErrTokenValidation", err)
	}
	if !strings.HasPrefix(err.Error(), RejectPrefix+"[EA-AUTH-4010] failed token validation => [EA-ENV-4000]") {
		t.Errorf("error = %q", err)
	}
}

func TestGuard_RateLimit(t *testing.T) {
	m := metric.NewAuthMetrics().RegisterMetrics(prometheus.NewRegistry())
	g := NewGuard(newTestService(t, domain.PolicyRequired, clock.Fixed(testInstant)), GuardConfig{
		Transport: "grpc",
		Metrics:   m,
		Limiter:   NewPeerLimiter(1),
	})
	ctx := context.Background()
	envelope := testEnvelope(t)

	if _, err := g.Check(ctx, nil, "/m", "10.0.0.2:1000"); err == nil {
		t.Fatal("first call without token should be rejected")
	}

	// Same host on another port shares the budget.
	_, err := g.Check(ctx, envelope, "/m", "10.0.0.2:2000")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("Check() error = %v, want ErrRateLimited", err)
	}

	if _, err := g.Check(ctx, envelope, "/m", "10.0.0.3:1000"); err != nil {
		t.Errorf("other peer should not be limited: %v", err)
	}

	if got := testutil.ToFloat64(m.RateLimited.WithLabelValues("grpc")); got != 1 {
		t.Errorf("rate limited count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Rejections.WithLabelValues("grpc", "invalid")); got != 1 {
		t.Errorf("rejection count = %v, want 1", got)
	}
}
