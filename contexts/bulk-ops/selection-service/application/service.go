package application

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	domainerrors "conductor/contexts/bulk-ops/selection-service/domain/errors"
	"conductor/contexts/bulk-ops/selection-service/domain/selection"
	"conductor/contexts/bulk-ops/selection-service/ports"
)

// Service wraps the selection engine with session persistence and the
// filtered-ID cache. Every mutation loads the stored blob, applies the
// engine operation under the reported context, and saves the result, so a
// page reload within the session restores the selection.
type Service struct {
	Store  ports.SelectionStore
	IDs    ports.EntityIDLister
	Logger *slog.Logger

	mu        sync.Mutex
	cacheKey  string
	cachedIDs []string
}

type View struct {
	SelectedIDs    []string
	SelectedCount  int
	LastSelectedID string
	Context        selection.Context
	IsAllSelected  bool
}

func (s *Service) Get(ctx context.Context, sessionID string, selCtx selection.Context) (View, error) {
	sel, err := s.load(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	sel.EnsureContext(selCtx)
	return s.view(ctx, sel)
}

func (s *Service) Toggle(ctx context.Context, sessionID string, selCtx selection.Context, id string) (View, error) {
	if strings.TrimSpace(id) == "" {
		return View{}, domainerrors.ErrInvalidRequest
	}
	return s.mutate(ctx, sessionID, selCtx, func(sel *selection.Selection) error {
		sel.Toggle(id)
		return nil
	})
}

func (s *Service) Select(ctx context.Context, sessionID string, selCtx selection.Context, id string) (View, error) {
	if strings.TrimSpace(id) == "" {
		return View{}, domainerrors.ErrInvalidRequest
	}
	return s.mutate(ctx, sessionID, selCtx, func(sel *selection.Selection) error {
		sel.Select(id)
		return nil
	})
}

func (s *Service) Deselect(ctx context.Context, sessionID string, selCtx selection.Context, id string) (View, error) {
	return s.mutate(ctx, sessionID, selCtx, func(sel *selection.Selection) error {
		sel.Deselect(id)
		return nil
	})
}

// SelectRange extends the selection from the stored anchor to toID using the
// server-confirmed ordering of every ID matching the filter context, not
// just the current page. With no anchor it degrades to selecting toID.
func (s *Service) SelectRange(ctx context.Context, sessionID string, selCtx selection.Context, toID string) (View, error) {
	if strings.TrimSpace(toID) == "" {
		return View{}, domainerrors.ErrInvalidRequest
	}
	return s.mutate(ctx, sessionID, selCtx, func(sel *selection.Selection) error {
		ordered, err := s.orderedIDs(ctx, selCtx)
		if err != nil {
			return err
		}
		sel.SelectRange(sel.LastSelectedID(), toID, ordered)
		return nil
	})
}

func (s *Service) SelectAll(ctx context.Context, sessionID string, selCtx selection.Context) (View, error) {
	return s.mutate(ctx, sessionID, selCtx, func(sel *selection.Selection) error {
		ordered, err := s.orderedIDs(ctx, selCtx)
		if err != nil {
			return err
		}
		sel.SelectAll(ordered)
		return nil
	})
}

// Clear drops the stored selection entirely. Called by the user and by the
// bulk runner after a successful operation.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return domainerrors.ErrSessionRequired
	}
	return s.Store.Delete(ctx, sessionID)
}

func (s *Service) mutate(
	ctx context.Context,
	sessionID string,
	selCtx selection.Context,
	apply func(*selection.Selection) error,
) (View, error) {
	if err := validateContext(selCtx); err != nil {
		return View{}, err
	}
	sel, err := s.load(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	sel.EnsureContext(selCtx)
	if err := apply(sel); err != nil {
		return View{}, err
	}
	blob, err := sel.Marshal()
	if err != nil {
		return View{}, err
	}
	if err := s.Store.Put(ctx, strings.TrimSpace(sessionID), blob); err != nil {
		return View{}, err
	}
	return s.view(ctx, sel)
}

func (s *Service) load(ctx context.Context, sessionID string) (*selection.Selection, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, domainerrors.ErrSessionRequired
	}
	blob, ok, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return selection.New(), nil
	}
	return selection.Unmarshal(blob), nil
}

func (s *Service) view(ctx context.Context, sel *selection.Selection) (View, error) {
	total := 0
	if s.IDs != nil && sel.Context().EntityType != "" {
		count, err := s.IDs.CountFiltered(ctx, sel.Context())
		if err == nil {
			total = count
		} else if s.Logger != nil {
			s.Logger.Warn("filtered count lookup failed",
				"event", "selection_count_lookup_failed",
				"module", "bulk-ops/selection-service",
				"layer", "application",
				"error", err.Error(),
			)
		}
	}
	return View{
		SelectedIDs:    sel.IDs(),
		SelectedCount:  sel.Count(),
		LastSelectedID: sel.LastSelectedID(),
		Context:        sel.Context(),
		IsAllSelected:  sel.IsAllSelected(total),
	}, nil
}

// orderedIDs memoizes the full filtered ID list keyed by the serialized
// filter context; a context change invalidates the previous entry.
func (s *Service) orderedIDs(ctx context.Context, selCtx selection.Context) ([]string, error) {
	key := selCtx.Key()
	s.mu.Lock()
	if s.cacheKey == key && s.cachedIDs != nil {
		ids := s.cachedIDs
		s.mu.Unlock()
		return ids, nil
	}
	s.mu.Unlock()

	ids, err := s.IDs.ListIDs(ctx, selCtx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.cacheKey = key
	s.cachedIDs = ids
	s.mu.Unlock()
	return ids, nil
}

func validateContext(selCtx selection.Context) error {
	switch selCtx.EntityType {
	case selection.EntityAsset, selection.EntityUser:
		return nil
	}
	return domainerrors.ErrInvalidEntityType
}
