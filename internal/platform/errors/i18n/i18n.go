// Package i18n renders user-facing messages for domain error codes.
package i18n

import (
	"strings"

	i18ncatalog "github.com/louisbranch/cardtable/internal/platform/i18n/catalog"
)

// Code is a machine-readable error code (string form, to avoid an import
// cycle with the errors package).
type Code = string

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

// GetCatalog returns the error-message catalog for the given locale,
// falling back to the base locale when the requested one is missing.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = i18ncatalog.BaseLocale
	}
	resolved, messages := i18ncatalog.Default().NamespaceMessagesWithFallback(requested, "errors")
	return &Catalog{locale: resolved, messages: messages}
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	if c == nil {
		return ""
	}
	return c.locale
}

// Render returns the localized message for a code, expanding {Key}
// placeholders from metadata. Unknown codes fall back to the UNKNOWN
// message, then to the code itself.
func (c *Catalog) Render(code Code, metadata map[string]string) string {
	if c == nil {
		return string(code)
	}
	template, ok := c.messages[code]
	if !ok {
		template, ok = c.messages["UNKNOWN"]
		if !ok {
			return string(code)
		}
	}
	return expand(template, metadata)
}

func expand(template string, metadata map[string]string) string {
	if len(metadata) == 0 {
		return template
	}
	pairs := make([]string, 0, len(metadata)*2)
	for key, value := range metadata {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
