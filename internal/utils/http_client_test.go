package utils

import (
	"testing"
	"time"
)

func TestNewHTTPClient_NotNil(t *testing.T) {
	client := NewHTTPClient()

	if client == nil {
		t.Fatal("expected non-nil *HTTPClient, got nil")
	}

	if client.Client == nil {
		t.Fatal("expected embedded *resty.Client to be non-nil, got nil")
	}
}

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient()
	client2 := NewHTTPClient()

	if client1.Client == client2.Client {
		t.Fatal("expected NewHTTPClient to return HTTPClients with different *resty.Client instances")
	}
}

func TestNewHTTPClient_Options(t *testing.T) {
	client := NewHTTPClient(
		WithBaseURL("localhost:8080/"),
		WithTimeout(3*time.Second),
		WithRetries(2, 10*time.Millisecond),
	)

	if client.BaseURL != "http://localhost:8080" {
		t.Errorf("unexpected base URL %q", client.BaseURL)
	}
	if client.GetClient().Timeout != 3*time.Second {
		t.Errorf("unexpected timeout %s", client.GetClient().Timeout)
	}
	if client.RetryCount != 2 {
		t.Errorf("unexpected retry count %d", client.RetryCount)
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := map[string]string{
		"localhost:8080":        "http://localhost:8080",
		"https://edge.local/":   "https://edge.local",
		"  http://10.0.0.1:80 ": "http://10.0.0.1:80",
		"":                      "",
	}

	for in, want := range tests {
		if got := NormalizeBaseURL(in); got != want {
			t.Errorf("NormalizeBaseURL(%q) = %q, want %q", in, got, want)
		}
	}
}
