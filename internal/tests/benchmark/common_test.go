package benchmark

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"testing"

	"github.com/yndnr/endpointauth-go/internal/core/domain"
	"github.com/yndnr/endpointauth-go/internal/core/keyring"
	"github.com/yndnr/endpointauth-go/internal/core/service"
)

// IdentityCounts defines the number of distinct endpoints per benchmark.
var IdentityCounts = []int{1, 100, 1000, 10000}

// SmallIdentityCounts for quick benchmarks.
var SmallIdentityCounts = []int{1, 100}

// newIdentity returns the i-th benchmark endpoint identity.
func newIdentity(i int) domain.EndpointIdentity {
	identifier := make([]byte, 8)
	binary.BigEndian.PutUint64(identifier, uint64(i))
	return domain.NewEndpointIdentity("BENCH", identifier)
}

// newService builds a service over keys with the given policy.
func newService(b *testing.B, policy domain.TokenPolicy, keys *keyring.Keyring) *service.AuthService {
	b.Helper()
	svc, err := service.NewAuthService(&service.AuthServiceConfig{
		Policy:  policy,
		Keyring: keys,
	})
	if err != nil {
		b.Fatalf("NewAuthService failed: %v", err)
	}
	return svc
}

// prefillEnvelopes generates one envelope per identity.
func prefillEnvelopes(b *testing.B, svc *service.AuthService, count int) [][]byte {
	b.Helper()
	envelopes := make([][]byte, count)
	for i := range envelopes {
		env, err := svc.GenerateToken(newIdentity(i))
		if err != nil {
			b.Fatalf("GenerateToken failed: %v", err)
		}
		envelopes[i] = env
	}
	return envelopes
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithIdentityCounts runs a benchmark function with various identity counts.
func runWithIdentityCounts(b *testing.B, counts []int, benchFn func(b *testing.B, count int)) {
	for _, count := range counts {
		b.Run(fmt.Sprintf("identities_%d", count), func(b *testing.B) {
			benchFn(b, count)
		})
	}
}
