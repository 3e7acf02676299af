package client

import (
	"net/url"
	"testing"
)

func TestAddQueryParamsMergesWithExisting(t *testing.T) {
	got, err := addQueryParams("/variables?offset=5", map[string]string{"limit": "10"})
	if err != nil {
		t.Fatalf("add query params: %v", err)
	}
	parsed, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse result %q: %v", got, err)
	}
	query := parsed.Query()
	if query.Get("offset") != "5" {
		t.Fatalf("expected offset=5 preserved, got %q", got)
	}
	if query.Get("limit") != "10" {
		t.Fatalf("expected limit=10 added, got %q", got)
	}
}

func TestAddQueryParamsOverridesSameKey(t *testing.T) {
	got, err := addQueryParams("/variables?limit=3", map[string]string{"limit": "10"})
	if err != nil {
		t.Fatalf("add query params: %v", err)
	}
	parsed, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse result %q: %v", got, err)
	}
	if values := parsed.Query()["limit"]; len(values) != 1 || values[0] != "10" {
		t.Fatalf("expected limit overridden to 10, got %v", values)
	}
}

func TestAddQueryParamsNoParamsReturnsPathUnchanged(t *testing.T) {
	got, err := addQueryParams("/variables", nil)
	if err != nil {
		t.Fatalf("add query params: %v", err)
	}
	if got != "/variables" {
		t.Fatalf("expected path unchanged, got %q", got)
	}
}
