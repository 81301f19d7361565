package domain

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Sample.Index != 77 {
		t.Fatalf("expected default index 77, got %d", cfg.Sample.Index)
	}
	if cfg.Endpoint.Timeout.Seconds() != 15 {
		t.Fatalf("expected 15s timeout, got %s", cfg.Endpoint.Timeout)
	}
	if got := cfg.Endpoint.PredictURL(); got != "http://150.162.235.79/predict" {
		t.Fatalf("unexpected default url %q", got)
	}
	if cfg.Output.PlotPath != "inference_result.png" {
		t.Fatalf("unexpected plot path %q", cfg.Output.PlotPath)
	}
}

func TestPredictURL(t *testing.T) {
	cases := []struct {
		name string
		in   EndpointConfig
		want string
	}{
		{"explicit url wins", EndpointConfig{URL: "http://x/y", Host: "ignored"}, "http://x/y"},
		{"host with port", EndpointConfig{Host: "10.0.0.2:8080"}, "http://10.0.0.2:8080/predict"},
		{"trailing slash", EndpointConfig{Scheme: "https", Host: "esp.local/", Path: "predict"}, "https://esp.local/predict"},
	}
	for _, c := range cases {
		if got := c.in.PredictURL(); got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}
