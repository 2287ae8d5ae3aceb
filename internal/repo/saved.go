package repo

import (
	"fmt"
	"slices"

	"github.com/pkordes/tripstore/internal/domain"
)

// AddSavedItem favorites item. Saving an id that is already saved keeps the
// existing entry and writes nothing.
func (r *Repository) AddSavedItem(item domain.SavedItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("repo.Repository.AddSavedItem: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.addSavedLocked(item)
	return nil
}

// RemoveSavedItem unfavorites id and reports whether it was saved.
// Removing an absent id is a no-op.
func (r *Repository) RemoveSavedItem(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.removeSavedLocked(id)
}

// ToggleSavedItem saves item if it is not saved and removes it otherwise.
// It reports whether the item is saved afterwards.
func (r *Repository) ToggleSavedItem(item domain.SavedItem) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.savedIdx[item.ID]; ok {
		r.removeSavedLocked(item.ID)
		return false, nil
	}
	if err := item.Validate(); err != nil {
		return false, fmt.Errorf("repo.Repository.ToggleSavedItem: %w", err)
	}
	r.addSavedLocked(item)
	return true, nil
}

// IsItemSaved reports whether id is favorited.
func (r *Repository) IsItemSaved(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.savedIdx[id]
	return ok
}

// SavedItems returns a copy of every saved item in the order they were saved.
func (r *Repository) SavedItems() []domain.SavedItem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.SavedItem, len(r.saved))
	copy(out, r.saved)
	return out
}

func (r *Repository) addSavedLocked(item domain.SavedItem) {
	if _, ok := r.savedIdx[item.ID]; ok {
		return
	}
	if !r.loaded {
		delete(r.removedSaved, item.ID)
	}
	r.saved = append(r.saved, item)
	r.savedIdx[item.ID] = struct{}{}
	r.metrics.Mutation(KeySavedItems, "add")
	r.persistLocked(KeySavedItems)
}

func (r *Repository) removeSavedLocked(id string) bool {
	if !r.loaded {
		r.removedSaved[id] = struct{}{}
		r.dirty[KeySavedItems] = true
	}
	if _, ok := r.savedIdx[id]; !ok {
		return false
	}
	delete(r.savedIdx, id)
	r.saved = slices.DeleteFunc(r.saved, func(s domain.SavedItem) bool { return s.ID == id })
	r.metrics.Mutation(KeySavedItems, "remove")
	r.persistLocked(KeySavedItems)
	return true
}
