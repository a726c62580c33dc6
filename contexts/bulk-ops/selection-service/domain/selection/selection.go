package selection

import (
	"encoding/json"
	"sort"
)

// Package selection implements the cross-page multi-select state: a set of
// entity IDs scoped to one entity type and one filter context. A selection
// is only meaningful while its context matches the list the user is looking
// at; any mismatch resets it.

// EntityType is the closed set of bulk-selectable list kinds.
type EntityType string

const (
	EntityAsset EntityType = "asset"
	EntityUser  EntityType = "user"
)

// Param is one filter/search query parameter. Order matters: the serialized
// parameter list is the cache/invalidation key for "all filtered IDs".
type Param struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Context scopes a selection to an entity type plus active filters.
type Context struct {
	EntityType   EntityType `json:"entity_type"`
	FilterParams []Param    `json:"filter_params,omitempty"`
}

func (c Context) Equal(other Context) bool {
	if c.EntityType != other.EntityType || len(c.FilterParams) != len(other.FilterParams) {
		return false
	}
	for i, param := range c.FilterParams {
		if other.FilterParams[i] != param {
			return false
		}
	}
	return true
}

// Key serializes the context into the single invalidation key used by the
// filtered-ID cache.
func (c Context) Key() string {
	out := string(c.EntityType)
	for _, param := range c.FilterParams {
		out += "&" + param.Key + "=" + param.Value
	}
	return out
}

// Selection is the in-memory engine state. The zero value is an empty,
// context-free selection.
type Selection struct {
	ids            map[string]struct{}
	lastSelectedID string
	ctx            Context
	hasContext     bool
}

func New() *Selection {
	return &Selection{ids: map[string]struct{}{}}
}

// EnsureContext discards the whole selection when the caller reports a
// different entity type or filter set than the one the last mutation ran
// under. Stale cross-filter selections must never silently apply.
func (s *Selection) EnsureContext(ctx Context) {
	if s.hasContext && s.ctx.Equal(ctx) {
		return
	}
	s.ids = map[string]struct{}{}
	s.lastSelectedID = ""
	s.ctx = ctx
	s.hasContext = true
}

func (s *Selection) Select(id string) {
	if id == "" {
		return
	}
	s.ids[id] = struct{}{}
	s.lastSelectedID = id
}

func (s *Selection) Deselect(id string) {
	delete(s.ids, id)
}

// Toggle flips membership; toggling on updates the range anchor.
func (s *Selection) Toggle(id string) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.Select(id)
}

// SelectRange adds every ID between fromID and toID (inclusive, either
// direction) per the server-confirmed ordering of all matching IDs. When
// either endpoint is missing from orderedIDs it degrades to selecting just
// toID.
func (s *Selection) SelectRange(fromID, toID string, orderedIDs []string) {
	fromIdx, toIdx := -1, -1
	for i, id := range orderedIDs {
		if id == fromID {
			fromIdx = i
		}
		if id == toID {
			toIdx = i
		}
	}
	if fromIdx < 0 || toIdx < 0 {
		s.Select(toID)
		return
	}
	lo, hi := fromIdx, toIdx
	if lo > hi {
		lo, hi = hi, lo
	}
	for _, id := range orderedIDs[lo : hi+1] {
		s.ids[id] = struct{}{}
	}
	s.lastSelectedID = toID
}

// SelectAll replaces the selection with the complete filtered ID list.
func (s *Selection) SelectAll(allIDs []string) {
	s.ids = make(map[string]struct{}, len(allIDs))
	for _, id := range allIDs {
		s.ids[id] = struct{}{}
	}
	s.lastSelectedID = ""
	if len(allIDs) > 0 {
		s.lastSelectedID = allIDs[len(allIDs)-1]
	}
}

// Clear resets to the empty state including the anchor and context.
func (s *Selection) Clear() {
	s.ids = map[string]struct{}{}
	s.lastSelectedID = ""
	s.ctx = Context{}
	s.hasContext = false
}

func (s *Selection) IsSelected(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Count() int {
	return len(s.ids)
}

// IsAllSelected holds only when the externally supplied filtered total is
// non-zero and fully covered.
func (s *Selection) IsAllSelected(totalFiltered int) bool {
	return totalFiltered > 0 && len(s.ids) == totalFiltered
}

func (s *Selection) LastSelectedID() string {
	return s.lastSelectedID
}

func (s *Selection) Context() Context {
	return s.ctx
}

// IDs returns the selected IDs in lexical order for stable serialization.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

type snapshot struct {
	IDs            []string `json:"ids"`
	LastSelectedID string   `json:"last_selected_id,omitempty"`
	Context        Context  `json:"context"`
	HasContext     bool     `json:"has_context"`
}

// Marshal serializes the selection for the session store.
func (s *Selection) Marshal() ([]byte, error) {
	return json.Marshal(snapshot{
		IDs:            s.IDs(),
		LastSelectedID: s.lastSelectedID,
		Context:        s.ctx,
		HasContext:     s.hasContext,
	})
}

// Unmarshal reconstructs a selection from a stored blob. A corrupt blob
// yields the empty selection, never an error: losing a selection is cheaper
// than breaking the page.
func Unmarshal(data []byte) *Selection {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return New()
	}
	sel := &Selection{
		ids:            make(map[string]struct{}, len(snap.IDs)),
		lastSelectedID: snap.LastSelectedID,
		ctx:            snap.Context,
		hasContext:     snap.HasContext,
	}
	for _, id := range snap.IDs {
		if id != "" {
			sel.ids[id] = struct{}{}
		}
	}
	return sel
}
