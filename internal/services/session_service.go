package services

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/hivaasboutique/hivaas-catalogue/internal/models"
	"github.com/hivaasboutique/hivaas-catalogue/internal/repositories"
)

// Session owns one visitor's in-memory state: per-product selection
// (current image, checked sizes) and the wishlist. Sessions are fully
// isolated from each other and are discarded when the process ends.
//
// A mutex serializes mutations so each user action runs to completion
// before the next one is processed, even though Fiber handles requests
// concurrently. Every mutation is all-or-nothing: on any error the state
// is exactly what it was before the call.
type Session struct {
	ID string

	catalog repositories.CatalogRepository

	mu            sync.Mutex
	selections    map[string]*models.SelectionState
	wishlist      map[string][]string
	wishlistOrder []string
}

// SessionService creates and tracks the isolated visitor sessions.
type SessionService struct {
	catalog repositories.CatalogRepository

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionService creates a new SessionService backed by the given
// catalogue.
func NewSessionService(catalog repositories.CatalogRepository) *SessionService {
	return &SessionService{
		catalog:  catalog,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session with the given ID, if it exists.
func (s *SessionService) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Create mints a new empty session with a fresh UUID.
func (s *SessionService) Create() *Session {
	session := &Session{
		ID:         uuid.New().String(),
		catalog:    s.catalog,
		selections: make(map[string]*models.SelectionState),
		wishlist:   make(map[string][]string),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session
}

// getOrInit lazily creates the selection state for a product: image index
// zero, every checkbox unticked. Caller must hold s.mu.
func (s *Session) getOrInit(code string) *models.SelectionState {
	state, ok := s.selections[code]
	if !ok {
		state = &models.SelectionState{CheckedSizes: make(map[string]bool)}
		s.selections[code] = state
	}
	return state
}

// Selection returns a copy of the product's selection state, creating it
// lazily on first access.
func (s *Session) Selection(code string) (*models.SelectionState, error) {
	if _, err := s.catalog.GetByCode(code); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.getOrInit(code)
	checked := make(map[string]bool, len(state.CheckedSizes))
	for k, v := range state.CheckedSizes {
		checked[k] = v
	}
	return &models.SelectionState{ImageIndex: state.ImageIndex, CheckedSizes: checked}, nil
}

// AdvanceImage moves the product's image carousel one step in the given
// direction (-1 or +1), wrapping at both ends. Returns the new index.
func (s *Session) AdvanceImage(code string, direction int) (int, error) {
	if direction != -1 && direction != 1 {
		return 0, fmt.Errorf("image direction must be -1 or +1, got %d", direction)
	}
	product, err := s.catalog.GetByCode(code)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.getOrInit(code)
	n := len(product.Images)
	state.ImageIndex = ((state.ImageIndex+direction)%n + n) % n
	return state.ImageIndex, nil
}

// SetSizeChecked ticks or unticks a size checkbox. The size must be one of
// the product's declared sizes; the availability flag is not consulted here
// since presenting unavailable sizes as disabled is the surface's concern.
func (s *Session) SetSizeChecked(code, size string, value bool) error {
	product, err := s.catalog.GetByCode(code)
	if err != nil {
		return err
	}
	if !product.InStock {
		return fmt.Errorf("product %s: %w", code, models.ErrProductSoldOut)
	}
	if !product.HasSize(size) {
		return fmt.Errorf("product %s has no size %s: %w", code, size, models.ErrInvalidSize)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.getOrInit(code).CheckedSizes[size] = value
	return nil
}

// SelectedSizes returns the currently checked sizes in the product's size
// declaration order.
func (s *Session) SelectedSizes(code string) ([]string, error) {
	product, err := s.catalog.GetByCode(code)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedSizesLocked(product), nil
}

func (s *Session) selectedSizesLocked(product *models.Product) []string {
	state, ok := s.selections[product.Code]
	if !ok {
		return nil
	}
	selected := make([]string, 0, len(product.SizeOrder))
	for _, size := range product.SizeOrder {
		if state.CheckedSizes[size] {
			selected = append(selected, size)
		}
	}
	return selected
}

// AddToWishlist snapshots the product's current size selection into the
// wishlist and returns the snapshot. Later checkbox changes do not alter
// the stored entry.
func (s *Session) AddToWishlist(code string) ([]string, error) {
	product, err := s.catalog.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if !product.InStock {
		return nil, fmt.Errorf("product %s: %w", code, models.ErrProductSoldOut)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, present := s.wishlist[code]; present {
		return nil, fmt.Errorf("product %s: %w", code, models.ErrAlreadyInWishlist)
	}
	selected := s.selectedSizesLocked(product)
	if len(selected) == 0 {
		return nil, fmt.Errorf("product %s: %w", code, models.ErrEmptySelection)
	}

	snapshot := make([]string, len(selected))
	copy(snapshot, selected)
	s.wishlist[code] = snapshot
	s.wishlistOrder = append(s.wishlistOrder, code)
	return snapshot, nil
}

// RemoveFromWishlist deletes the wishlist entry and, as a deliberate side
// effect, resets every checked size for that product so the checkboxes
// render unticked again.
func (s *Session) RemoveFromWishlist(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, present := s.wishlist[code]; !present {
		return fmt.Errorf("product %s: %w", code, models.ErrNotInWishlist)
	}

	delete(s.wishlist, code)
	for i, c := range s.wishlistOrder {
		if c == code {
			s.wishlistOrder = append(s.wishlistOrder[:i], s.wishlistOrder[i+1:]...)
			break
		}
	}
	if state, ok := s.selections[code]; ok {
		for size := range state.CheckedSizes {
			state.CheckedSizes[size] = false
		}
	}
	return nil
}

// Contains reports whether the product is in the wishlist.
func (s *Session) Contains(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, present := s.wishlist[code]
	return present
}

// Entries returns the wishlist in insertion order. The returned slices are
// copies; callers cannot reach the live state through them.
func (s *Session) Entries() []models.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]models.WishlistEntry, 0, len(s.wishlistOrder))
	for _, code := range s.wishlistOrder {
		sizes := make([]string, len(s.wishlist[code]))
		copy(sizes, s.wishlist[code])
		entries = append(entries, models.WishlistEntry{Code: code, SelectedSizes: sizes})
	}
	return entries
}
