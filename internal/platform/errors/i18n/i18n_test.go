package i18n

import (
	"strings"
	"testing"
)

func TestGetCatalogFallsBackToBaseLocale(t *testing.T) {
	c := GetCatalog("pt-BR")
	if c.Locale() != "en-US" {
		t.Fatalf("expected en-US fallback, got %s", c.Locale())
	}
}

func TestRenderExpandsMetadata(t *testing.T) {
	c := GetCatalog("en-US")
	msg := c.Render("CORE_STACK_UNKNOWN", map[string]string{"Key": "tarot"})
	if !strings.Contains(msg, "tarot") {
		t.Fatalf("expected expanded key in %q", msg)
	}
	if strings.Contains(msg, "{Key}") {
		t.Fatalf("expected placeholder replaced in %q", msg)
	}
}

func TestRenderUnknownCodeFallsBack(t *testing.T) {
	c := GetCatalog("en-US")
	msg := c.Render("NO_SUCH_CODE", nil)
	if msg == "" || msg == "NO_SUCH_CODE" {
		t.Fatalf("expected UNKNOWN fallback, got %q", msg)
	}
}
