// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Configuration errors
	CodeConfigLookupMiss Code = "CONFIG_LOOKUP_MISS"
	CodeConfigMalformed  Code = "CONFIG_MALFORMED"

	// Core stack registry errors
	CodeCoreStackUnknown   Code = "CORE_STACK_UNKNOWN"
	CodeCoreStackDuplicate Code = "CORE_STACK_DUPLICATE"
	CodeCoreStackKeyEmpty  Code = "CORE_STACK_KEY_EMPTY"
	CodeCoreStackNoDiscard Code = "CORE_STACK_NO_DISCARD"

	// Action catalog errors
	CodeActionGroupUnknown Code = "ACTION_GROUP_UNKNOWN"
	CodeActionSignatureBad Code = "ACTION_SIGNATURE_MALFORMED"
	CodeTargetCategoryBad  Code = "TARGET_CATEGORY_INVALID"

	// Card behavior errors
	CodeBehaviorNotSupported Code = "BEHAVIOR_ACTION_NOT_SUPPORTED"

	// Structural transfer authorization errors
	CodeStructuralOwnerCategory Code = "STRUCTURAL_OWNER_CATEGORY"
	CodeStructuralContainerType Code = "STRUCTURAL_CONTAINER_TYPE"
	CodeStructuralDiscardPile   Code = "STRUCTURAL_DISCARD_PILE"

	// Transfer input errors
	CodeTransferAmountInvalid Code = "TRANSFER_AMOUNT_INVALID"
	CodeTransferCardsEmpty    Code = "TRANSFER_CARDS_EMPTY"
	CodeTransferNoDestination Code = "TRANSFER_NO_DESTINATION"
	CodeTransferCardsOverlap  Code = "TRANSFER_CARDS_OVERLAP"

	// Best-effort sub-step errors
	CodePermissionShortfall Code = "PERMISSION_SHORTFALL"

	// Migration errors
	CodeMigrationUnmappedFlag Code = "MIGRATION_UNMAPPED_FLAG"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"

	// Container backend errors
	CodeBackendUnavailable Code = "BACKEND_UNAVAILABLE"
)

// GRPCCode maps the domain error code onto a canonical gRPC status code.
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeConfigLookupMiss, CodeCoreStackUnknown, CodeActionGroupUnknown, CodeNotFound:
		return codes.NotFound
	case CodeCoreStackDuplicate:
		return codes.AlreadyExists
	case CodeCoreStackKeyEmpty, CodeActionSignatureBad, CodeTargetCategoryBad,
		CodeTransferAmountInvalid, CodeTransferCardsEmpty, CodeTransferNoDestination,
		CodeTransferCardsOverlap, CodeMigrationUnmappedFlag:
		return codes.InvalidArgument
	case CodeStructuralOwnerCategory, CodeStructuralContainerType, CodeStructuralDiscardPile,
		CodeCoreStackNoDiscard, CodeBehaviorNotSupported:
		return codes.FailedPrecondition
	case CodePermissionShortfall:
		return codes.PermissionDenied
	case CodeBackendUnavailable:
		return codes.Unavailable
	case CodeConfigMalformed:
		return codes.DataLoss
	default:
		return codes.Internal
	}
}
