package domain

import (
	"errors"
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"

	apperrors "github.com/louisbranch/cardtable/internal/platform/errors"
	errorsi18n "github.com/louisbranch/cardtable/internal/platform/errors/i18n"
)

// LocalizedError rewrites a domain error into its user-facing form so MCP
// clients see the localized text instead of the internal log message. The
// error is routed through the gRPC status mapping, so the surfaced message
// carries the canonical status code and the localized detail the mapping
// attaches. Non-domain errors pass through unchanged.
func LocalizedError(locale string, err error) error {
	if err == nil {
		return nil
	}
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) {
		return err
	}
	rendered := errorsi18n.GetCatalog(locale).Render(string(domainErr.Code), domainErr.Metadata)

	st := status.Convert(domainErr.ToGRPCStatus(locale, rendered))
	for _, detail := range st.Details() {
		if localized, ok := detail.(*errdetails.LocalizedMessage); ok {
			return fmt.Errorf("%s (%s)", localized.Message, st.Code())
		}
	}
	return fmt.Errorf("%s (%s)", rendered, st.Code())
}
