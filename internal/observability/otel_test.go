package observability

import (
	"context"
	"testing"
)

func TestParseOTLPHeaders(t *testing.T) {
	cases := []struct {
		raw  string
		want map[string]string
	}{
		{"", nil},
		{"garbage", nil},
		{"a=1, b = 2 ,=x,c=", map[string]string{"a": "1", "b": "2"}},
		{"auth=Bearer x=y", map[string]string{"auth": "Bearer x=y"}},
	}
	for _, tc := range cases {
		got := ParseOTLPHeaders(tc.raw)
		if len(got) != len(tc.want) {
			t.Fatalf("%q: got %v want %v", tc.raw, got, tc.want)
		}
		for k, v := range tc.want {
			if got[k] != v {
				t.Fatalf("%q: key %s got %q want %q", tc.raw, k, got[k], v)
			}
		}
	}
}

func TestClampRatio(t *testing.T) {
	for in, want := range map[float64]float64{-1: defaultSampleRatio, 0: defaultSampleRatio, 0.5: 0.5, 3: 1} {
		if got := clampRatio(in); got != want {
			t.Fatalf("clampRatio(%v)=%v want %v", in, got, want)
		}
	}
}

func TestInitOTelDisabled(t *testing.T) {
	if shutdown := InitOTel(context.Background(), nil, TracingConfig{}); shutdown != nil {
		t.Fatalf("disabled tracing should not install a provider")
	}
}
