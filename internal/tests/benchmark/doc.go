// Package benchmark provides performance benchmarks for endpoint token
// authentication.
//
// Run benchmarks with:
//
//	go test -bench=. -benchmem ./internal/tests/benchmark/...
//
// Key derivation dominates a cold validation; compare warm and cold runs:
//
//	go test -bench='BenchmarkValidateToken' -benchmem ./internal/tests/benchmark/...
//
// Compare results:
//
//	benchstat old.txt new.txt
package benchmark
