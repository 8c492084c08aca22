package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/yarotec/storefront/internal/catalog"
	"github.com/yarotec/storefront/pkg/enums"
	pkgerrors "github.com/yarotec/storefront/pkg/errors"
	"github.com/yarotec/storefront/pkg/kv"
	"github.com/yarotec/storefront/pkg/logger"
	"github.com/yarotec/storefront/pkg/metrics"
	"github.com/yarotec/storefront/pkg/money"
)

var (
	// ErrLineNotFound is returned when a mutation names a product not in the cart.
	ErrLineNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	// ErrInvalidProduct is returned by Add for a product without an id.
	ErrInvalidProduct = pkgerrors.New(pkgerrors.CodeValidation, "product is required")
)

// Event is delivered to observers after a mutation has been persisted.
type Event struct {
	Kind      enums.CartEventKind
	ProductID string
	Name      string
	Quantity  int
	// Message is the shopper-facing notice, empty when the mutation has none.
	Message string
	Count   int
	Total   int64
}

// AddedMessage is the notice shown after a product is added.
func AddedMessage(name string) string {
	return fmt.Sprintf("%s agregado al carrito", name)
}

// RemovedMessage is the notice shown after a line is removed.
func RemovedMessage(name string) string {
	return fmt.Sprintf("%s eliminado del carrito", name)
}

// Summary is the badge/total view of a cart.
type Summary struct {
	Count          int    `json:"count"`
	Total          int64  `json:"total"`
	FormattedTotal string `json:"formatted_total"`
}

type StoreParams struct {
	Key       string
	KV        kv.Store
	Logger    *logger.Logger
	Metrics   *metrics.Storefront
	Formatter *money.Formatter
	// Lock serializes every Store opened on the same key. Nil gives the
	// Store a private mutex.
	Lock sync.Locker
}

// Store is one shopper's cart. Every mutation re-reads the stored lines,
// applies the change and writes it through to the kv backend before it
// becomes visible.
type Store struct {
	key       string
	kv        kv.Store
	logg      *logger.Logger
	metrics   *metrics.Storefront
	formatter *money.Formatter

	mu    sync.Locker
	lines []Line

	obsMu     sync.Mutex
	nextObsID int
	observers map[int]func(Event)
}

// NewStore restores the cart persisted under p.Key. Absent or corrupt data
// yields an empty cart; only a failing backend is reported.
func NewStore(ctx context.Context, p StoreParams) (*Store, error) {
	if p.KV == nil {
		return nil, fmt.Errorf("kv store required")
	}
	if strings.TrimSpace(p.Key) == "" {
		return nil, fmt.Errorf("cart key required")
	}
	logg := p.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	formatter := p.Formatter
	if formatter == nil {
		formatter = money.Default()
	}

	lock := p.Lock
	if lock == nil {
		lock = &sync.Mutex{}
	}

	s := &Store{
		key:       p.Key,
		kv:        p.KV,
		logg:      logg,
		metrics:   p.Metrics,
		formatter: formatter,
		mu:        lock,
		observers: map[int]func(Event){},
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.restoreLocked(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// restoreLocked replaces the in-memory lines with the stored ones.
func (s *Store) restoreLocked(ctx context.Context) error {
	payload, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		s.lines = []Line{}
		return nil
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	lines, err := decodeLines(payload)
	if err != nil {
		warnCtx := s.logg.WithFields(ctx, map[string]any{"cart_key": s.key, "error": err.Error()})
		s.logg.Warn(warnCtx, "discarding unreadable stored cart")
		s.lines = []Line{}
		return nil
	}
	s.lines = lines
	return nil
}

// Key is the storage key the cart persists under.
func (s *Store) Key() string { return s.key }

// Add merges qty units of product into the cart. A non-positive qty counts as 1.
func (s *Store) Add(ctx context.Context, product catalog.Product, qty int) error {
	id := strings.TrimSpace(product.ID)
	if id == "" {
		return ErrInvalidProduct
	}
	if qty <= 0 {
		qty = 1
	}

	s.mu.Lock()
	if err := s.restoreLocked(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	prev := s.snapshot()
	idx := s.indexOf(id)
	if idx == -1 {
		s.lines = append(s.lines, Line{ProductID: id, Name: product.Name, Price: product.Price, Quantity: qty})
		idx = len(s.lines) - 1
	} else {
		s.lines[idx].Quantity += qty
	}
	line := s.lines[idx]
	if err := s.persistLocked(ctx, prev); err != nil {
		s.mu.Unlock()
		return err
	}
	evt := s.eventLocked(enums.CartEventAdded, line, AddedMessage(product.Name))
	s.mu.Unlock()

	s.notify(evt)
	return nil
}

// UpdateQuantity sets a line's quantity; zero or below removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, qty int) error {
	id := strings.TrimSpace(productID)
	if qty < 0 {
		qty = 0
	}

	s.mu.Lock()
	if err := s.restoreLocked(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	idx := s.indexOf(id)
	if idx == -1 {
		s.mu.Unlock()
		return ErrLineNotFound
	}
	prev := s.snapshot()
	line := s.lines[idx]
	line.Quantity = qty
	if qty == 0 {
		s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	} else {
		s.lines[idx].Quantity = qty
	}
	if err := s.persistLocked(ctx, prev); err != nil {
		s.mu.Unlock()
		return err
	}
	evt := s.eventLocked(enums.CartEventUpdated, line, "")
	s.mu.Unlock()

	s.notify(evt)
	return nil
}

// Remove deletes a line and returns it. A missing line reports
// ErrLineNotFound without writing.
func (s *Store) Remove(ctx context.Context, productID string) (Line, error) {
	id := strings.TrimSpace(productID)

	s.mu.Lock()
	if err := s.restoreLocked(ctx); err != nil {
		s.mu.Unlock()
		return Line{}, err
	}
	idx := s.indexOf(id)
	if idx == -1 {
		s.mu.Unlock()
		return Line{}, ErrLineNotFound
	}
	prev := s.snapshot()
	removed := s.lines[idx]
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	if err := s.persistLocked(ctx, prev); err != nil {
		s.mu.Unlock()
		return Line{}, err
	}
	evt := s.eventLocked(enums.CartEventRemoved, removed, RemovedMessage(removed.Name))
	s.mu.Unlock()

	s.notify(evt)
	return removed, nil
}

// RemoveOrdered takes the ordered quantities out of the cart. Lines added or
// topped up after the order snapshot keep their extra units.
func (s *Store) RemoveOrdered(ctx context.Context, ordered []Line) error {
	s.mu.Lock()
	if err := s.restoreLocked(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	prev := s.snapshot()
	changed := false
	for _, o := range ordered {
		idx := s.indexOf(o.ProductID)
		if idx == -1 || o.Quantity <= 0 {
			continue
		}
		changed = true
		if s.lines[idx].Quantity <= o.Quantity {
			s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
			continue
		}
		s.lines[idx].Quantity -= o.Quantity
	}
	if !changed {
		s.mu.Unlock()
		return nil
	}
	if err := s.persistLocked(ctx, prev); err != nil {
		s.mu.Unlock()
		return err
	}
	evt := s.eventLocked(enums.CartEventOrdered, Line{}, "")
	s.mu.Unlock()

	s.notify(evt)
	return nil
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	prev := s.snapshot()
	s.lines = []Line{}
	if err := s.persistLocked(ctx, prev); err != nil {
		s.mu.Unlock()
		return err
	}
	evt := s.eventLocked(enums.CartEventCleared, Line{}, "")
	s.mu.Unlock()

	s.notify(evt)
	return nil
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Count is the sum of quantities.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countLocked()
}

// Total is the sum of line subtotals.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

func (s *Store) State() enums.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.lines) == 0 {
		return enums.CartStateEmpty
	}
	return enums.CartStateNonEmpty
}

func (s *Store) Summary() Summary {
	s.mu.Lock()
	count, total := s.countLocked(), s.totalLocked()
	s.mu.Unlock()
	return Summary{Count: count, Total: total, FormattedTotal: s.FormatCurrency(total)}
}

// FormatCurrency renders an amount the way every cart surface shows money.
func (s *Store) FormatCurrency(amount int64) string {
	return s.formatter.Format(amount)
}

// Subscribe registers fn for cart events and returns its cancel func.
func (s *Store) Subscribe(fn func(Event)) func() {
	if fn == nil {
		return func() {}
	}
	s.obsMu.Lock()
	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = fn
	s.obsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.obsMu.Lock()
			delete(s.observers, id)
			s.obsMu.Unlock()
		})
	}
}

func (s *Store) notify(evt Event) {
	s.obsMu.Lock()
	fns := make([]func(Event), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.obsMu.Unlock()

	for _, fn := range fns {
		fn(evt)
	}
}

// persistLocked writes the current lines; on failure the lines are rolled
// back to prev so no mutation is half applied.
func (s *Store) persistLocked(ctx context.Context, prev []Line) error {
	payload, err := encodeLines(s.lines)
	if err == nil {
		err = s.kv.Put(ctx, s.key, payload)
	}
	if err != nil {
		s.lines = prev
		s.metrics.CartPersistFailure()
		s.logg.Error(s.logg.WithField(ctx, "cart_key", s.key), "persist cart", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return nil
}

func (s *Store) eventLocked(kind enums.CartEventKind, line Line, message string) Event {
	s.metrics.CartMutation(kind.String())
	return Event{
		Kind:      kind,
		ProductID: line.ProductID,
		Name:      line.Name,
		Quantity:  line.Quantity,
		Message:   message,
		Count:     s.countLocked(),
		Total:     s.totalLocked(),
	}
}

func (s *Store) snapshot() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) indexOf(id string) int {
	for i, l := range s.lines {
		if l.ProductID == id {
			return i
		}
	}
	return -1
}

func (s *Store) countLocked() int {
	count := 0
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

func (s *Store) totalLocked() int64 {
	var total int64
	for _, l := range s.lines {
		total += l.Subtotal()
	}
	return total
}
