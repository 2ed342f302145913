// Package transfer implements the authorized card-movement surface: every
// operation validates structural preconditions, delegates the physical move
// to the container backend, and emits an audit record. The per-deck
// configuration matrix is never consulted here; it governs what a UI offers,
// while these preconditions are the non-bypassable rules.
package transfer

import (
	"context"
	"log"

	"github.com/louisbranch/cardtable/internal/services/table/domain/stack"
	"github.com/louisbranch/cardtable/internal/services/table/observability/audit"
)

// ActorKind distinguishes the two table roles.
type ActorKind string

const (
	ActorGM     ActorKind = "gm"
	ActorPlayer ActorKind = "player"
)

// Actor identifies who invoked an operation, for audit speaker lines and
// best-effort rights checks.
type Actor struct {
	Kind ActorKind
	ID   string
	Name string
}

// ContainerBackend performs the physical card moves. Each call is atomic on
// its own; this layer adds no transaction around them.
type ContainerBackend interface {
	// Draw removes amount cards from the top of a container.
	Draw(ctx context.Context, from *stack.Container, amount int) ([]stack.Card, error)
	// Pass moves the identified cards into a container.
	Pass(ctx context.Context, to *stack.Container, cardIDs []string) ([]stack.Card, error)
	// Deal distributes amount cards from a deck to each destination.
	Deal(ctx context.Context, from *stack.Container, destinations []*stack.Container, amount int) ([]stack.Card, error)
	// Reset returns a container's entire content to its origin deck.
	Reset(ctx context.Context, container *stack.Container) ([]stack.Card, error)
	// Shuffle randomizes a container's order.
	Shuffle(ctx context.Context, container *stack.Container) error
	// ClearFaceCursor clears a deck's current-face marker.
	ClearFaceCursor(ctx context.Context, deck *stack.Container) error
}

// ContainerDirectory resolves the table's containers. Lifecycle of the
// containers themselves belongs to the backend; this layer only reads them.
type ContainerDirectory interface {
	DeckFor(coreKey string) (*stack.Container, error)
	DiscardFor(coreKey string) (*stack.Container, error)
	HandFor(owner stack.OwnerCategory) (*stack.Container, error)
	RevealedFor(owner stack.OwnerCategory) (*stack.Container, error)
	// IsDiscard reports whether the container is a registered discard pile
	// for any declared deck kind.
	IsDiscard(container *stack.Container) bool
}

// Rights answers best-effort permission checks for degradable sub-steps.
type Rights interface {
	CanShuffle(actor Actor, deck *stack.Container) bool
}

// allowAllRights is the fallback when no rights source is wired.
type allowAllRights struct{}

func (allowAllRights) CanShuffle(Actor, *stack.Container) bool { return true }

// Service executes transfer operations against the wired ports.
type Service struct {
	backend   ContainerBackend
	directory ContainerDirectory
	rights    Rights
	emitter   *audit.Emitter
	logger    *log.Logger
}

// NewService wires a transfer service. The emitter may be nil (no feed) and
// rights may be nil (every best-effort step allowed).
func NewService(backend ContainerBackend, directory ContainerDirectory, rights Rights, emitter *audit.Emitter, logger *log.Logger) *Service {
	if rights == nil {
		rights = allowAllRights{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		backend:   backend,
		directory: directory,
		rights:    rights,
		emitter:   emitter,
		logger:    logger,
	}
}

func (s *Service) emit(ctx context.Context, evt audit.Event) {
	if err := s.emitter.Emit(ctx, evt); err != nil {
		s.logger.Printf("audit emit %s: %v", evt.EventName, err)
	}
}
