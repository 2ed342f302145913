// Package actionview projects the action catalog and a deck's stored
// configuration into the per-group view a settings panel renders.
package actionview

import (
	"github.com/louisbranch/cardtable/internal/services/table/domain/action"
	"github.com/louisbranch/cardtable/internal/services/table/domain/corestack"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stack"
	"github.com/louisbranch/cardtable/internal/services/table/domain/stackconfig"
)

// EntryView is one row of a rendered group: the concrete movement and
// whether it is currently enabled after defaults and global overrides.
type EntryView struct {
	Signature string
	From      stack.TargetCategory
	Target    stack.TargetCategory
	NameKey   string
	Enabled   bool
}

// GroupView is one catalog group rendered against a deck's configuration.
// Used reports whether at least one entry is enabled.
type GroupView struct {
	ID      action.GroupID
	NameKey string
	Used    bool
	Entries []EntryView
}

// Service renders views against the registered core stacks.
type Service struct {
	registry *corestack.Registry
	flags    func() stackconfig.GlobalFlags
}

// NewService wires the registry and a global-flag source. A nil flag source
// means no global overrides.
func NewService(registry *corestack.Registry, flags func() stackconfig.GlobalFlags) *Service {
	if flags == nil {
		flags = stackconfig.DefaultGlobalFlags
	}
	return &Service{registry: registry, flags: flags}
}

// StackConfig returns the sparse stored configuration for a core stack key.
// An unregistered key yields an empty configuration, which resolves to the
// permissive defaults.
func (s *Service) StackConfig(coreKey string) stackconfig.Config {
	if def, err := s.registry.Get(coreKey); err == nil {
		return def.Config.Clone()
	}
	return stackconfig.Config{}
}

// ActionGroupDetails renders one group against a deck's configuration.
// Unknown groups yield nil.
func (s *Service) ActionGroupDetails(coreKey string, groupID action.GroupID) *GroupView {
	group, ok := action.GroupByID(groupID)
	if !ok {
		return nil
	}
	view := renderGroup(group, s.StackConfig(coreKey), s.flags())
	return &view
}

// AllGroupsDetails renders every catalog group in catalog order.
func (s *Service) AllGroupsDetails(coreKey string) []GroupView {
	config := s.StackConfig(coreKey)
	flags := s.flags()
	groups := action.Groups()
	out := make([]GroupView, 0, len(groups))
	for _, group := range groups {
		out = append(out, renderGroup(group, config, flags))
	}
	return out
}

func renderGroup(group action.Group, config stackconfig.Config, flags stackconfig.GlobalFlags) GroupView {
	view := GroupView{
		ID:      group.ID,
		NameKey: group.NameKey,
		Entries: make([]EntryView, 0, len(group.Entries)),
	}
	for _, entry := range group.Entries {
		sig := action.SignatureFor(group.ID, entry)
		nameKey := entry.NameKey
		if nameKey == "" {
			nameKey = group.NameKey
		}
		enabled := stackconfig.Enabled(config, sig, flags)
		if enabled {
			view.Used = true
		}
		view.Entries = append(view.Entries, EntryView{
			Signature: sig.String(),
			From:      entry.From,
			Target:    entry.Target,
			NameKey:   nameKey,
			Enabled:   enabled,
		})
	}
	return view
}
