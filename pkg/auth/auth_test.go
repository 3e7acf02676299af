package auth

import (
	"regexp"
	"testing"
	"time"
)

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestSignKnownAnswers(t *testing.T) {
	cases := []struct {
		name   string
		secret string
		path   string
		millis int64
		want   string
	}{
		{
			name:   "single variable path",
			secret: "super-secret",
			path:   "/variables-values/DB_HOST",
			millis: 1735689600000,
			want:   "HMAC 1735689600000:4b6b097055ba54bf4b882eff8e74b010b332d25d59b81107a87ee028e7a2584a",
		},
		{
			name:   "list path",
			secret: "super-secret",
			path:   "/variables",
			millis: 1735689600000,
			want:   "HMAC 1735689600000:99674bb714edb84e88f0e487c21e5c0975668ba15c7eb1f41b6d1050d10fc9ed",
		},
		{
			name:   "different secret",
			secret: "another-secret",
			path:   "/variables-values/DB_HOST",
			millis: 1735689600000,
			want:   "HMAC 1735689600000:17c945dd4c082544dc9e0ac2cd8d377337605d7f5027c5a64d12900299f10c43",
		},
		{
			name:   "path with query",
			secret: "super-secret",
			path:   "/variables?limit=10&offset=5",
			millis: 1700000000123,
			want:   "HMAC 1700000000123:c04dce0849edd915123ea2787642d1a55bd4dcee1082fbfc3b28e3d8abef855c",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := New([]byte(tc.secret), WithClock(fixedClock(tc.millis)))
			got, err := a.Sign(tc.path)
			if err != nil {
				t.Fatalf("sign: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestSignIsDeterministicUnderFixedClock(t *testing.T) {
	a := New([]byte("super-secret"), WithClock(fixedClock(1735689600000)))
	first, err := a.Sign("/variables")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	second, err := a.Sign("/variables")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical signatures, got %s and %s", first, second)
	}
}

func TestSignStructure(t *testing.T) {
	shape := regexp.MustCompile(`^HMAC \d+:[0-9a-f]{64}$`)

	a := New([]byte("super-secret"))
	header, err := a.Sign("/variables-values/API_URL")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if !shape.MatchString(header) {
		t.Fatalf("header %q does not match HMAC <millis>:<64 hex>", header)
	}
}

func TestSignTimestampsProduceDifferentSignatures(t *testing.T) {
	first, err := New([]byte("super-secret"), WithClock(fixedClock(1735689600000))).Sign("/variables")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	second, err := New([]byte("super-secret"), WithClock(fixedClock(1735689600001))).Sign("/variables")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if first == second {
		t.Fatal("expected different timestamps to change the signature")
	}
}

func TestSignValidation(t *testing.T) {
	if _, err := New([]byte("secret")).Sign(""); err == nil {
		t.Fatal("expected error for empty path")
	}
	if _, err := New(nil).Sign("/variables"); err == nil {
		t.Fatal("expected error for missing secret")
	}
}
