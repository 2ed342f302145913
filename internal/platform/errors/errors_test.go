package errors

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	base := New(CodeStructuralOwnerCategory, "owner category rejected")
	wrapped := fmt.Errorf("transfer give: %w", base)

	if !errors.Is(wrapped, New(CodeStructuralOwnerCategory, "different message")) {
		t.Fatal("expected code match")
	}
	if errors.Is(wrapped, New(CodeStructuralContainerType, "owner category rejected")) {
		t.Fatal("expected code mismatch")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(CodeBackendUnavailable, "pass cards", cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected cause in chain, got %v", err)
	}
	var domainErr *Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected domain error, got %T", err)
	}
	if domainErr.Code != CodeBackendUnavailable {
		t.Fatalf("expected code %s, got %s", CodeBackendUnavailable, domainErr.Code)
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	tests := []struct {
		code Code
		want codes.Code
	}{
		{CodeConfigLookupMiss, codes.NotFound},
		{CodeCoreStackUnknown, codes.NotFound},
		{CodeCoreStackDuplicate, codes.AlreadyExists},
		{CodeActionSignatureBad, codes.InvalidArgument},
		{CodeTransferAmountInvalid, codes.InvalidArgument},
		{CodeStructuralOwnerCategory, codes.FailedPrecondition},
		{CodeStructuralContainerType, codes.FailedPrecondition},
		{CodeStructuralDiscardPile, codes.FailedPrecondition},
		{CodePermissionShortfall, codes.PermissionDenied},
		{CodeBackendUnavailable, codes.Unavailable},
		{CodeConfigMalformed, codes.DataLoss},
		{CodeUnknown, codes.Internal},
		{Code("SOMETHING_ELSE"), codes.Internal},
	}
	for _, tt := range tests {
		if got := tt.code.GRPCCode(); got != tt.want {
			t.Fatalf("%s: expected %v, got %v", tt.code, tt.want, got)
		}
	}
}

func TestToGRPCStatusCarriesDetails(t *testing.T) {
	err := WithMetadata(CodeStructuralContainerType, "container type rejected", map[string]string{
		"Container": "deck-main",
		"Type":      "deck",
	})

	st, ok := status.FromError(err.ToGRPCStatus("en-US", "That action is not allowed here."))
	if !ok {
		t.Fatal("expected grpc status")
	}
	if st.Code() != codes.FailedPrecondition {
		t.Fatalf("expected FailedPrecondition, got %v", st.Code())
	}
	if st.Message() != "container type rejected" {
		t.Fatalf("unexpected status message %q", st.Message())
	}
	if len(st.Details()) != 2 {
		t.Fatalf("expected 2 details, got %d", len(st.Details()))
	}
}
