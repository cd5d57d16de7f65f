package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"

	"gorm.io/gorm"

	"github.com/Bilal-Yasir34/apex-store/cart"
	"github.com/Bilal-Yasir34/apex-store/models"
)

// State of one session's checkout.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateFailed     State = "failed"
)

func (s State) IsTerminal() bool {
	return s == StateSuccess || s == StateFailed
}

func (s State) String() string {
	return string(s)
}

var (
	ErrEmptyCart        = errors.New("cart is empty, nothing to checkout")
	ErrSubmitInProgress = errors.New("a submission is already in progress")
)

// ShippingForm carries the contact and address fields exactly as entered.
// PostalCode is collected but never persisted on the order row.
type ShippingForm struct {
	FullName   string `json:"full_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"required"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postal_code"`
}

// OrderWriter is the remote order store. Consumers define the interface; the
// GORM implementation lives below.
type OrderWriter interface {
	Create(ctx context.Context, order *models.Order) error
}

// Notifier receives successfully placed orders. Notifications are
// best-effort side effects; they can never fail a checkout.
type Notifier interface {
	OrderPlaced(order models.Order)
}

func NewGormOrderWriter(db *gorm.DB) *GormOrderWriter {
	return &GormOrderWriter{db: db}
}

type GormOrderWriter struct {
	db *gorm.DB
}

func (w *GormOrderWriter) Create(ctx context.Context, order *models.Order) error {
	if err := w.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// Service runs the submission state machine, one state per session:
// idle -> submitting -> success | failed. A failed session may resubmit.
type Service struct {
	mu        sync.Mutex
	states    map[string]State
	writer    OrderWriter
	notifiers []Notifier
}

func NewService(writer OrderWriter, notifiers ...Notifier) *Service {
	return &Service{
		states:    make(map[string]State),
		writer:    writer,
		notifiers: notifiers,
	}
}

func (s *Service) State(sessionID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.states[sessionID]; ok {
		return state
	}
	return StateIdle
}

func (s *Service) setState(sessionID string, state State) {
	s.mu.Lock()
	s.states[sessionID] = state
	s.mu.Unlock()
}

// Submit runs a single checkout attempt for the session.
//
// Guard: while the session is already submitting, further calls are dropped
// with ErrSubmitInProgress — no second write, no state change. An empty cart
// fails before any write. On success the cart is cleared only after the
// order row is committed, so a clear failure cannot take the confirmation
// back.
func (s *Service) Submit(ctx context.Context, sessionID string, store *cart.Store, form ShippingForm) (*models.Order, error) {
	s.mu.Lock()
	if s.states[sessionID] == StateSubmitting {
		s.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	s.states[sessionID] = StateSubmitting
	s.mu.Unlock()

	items := store.Items()
	if len(items) == 0 {
		s.setState(sessionID, StateFailed)
		return nil, ErrEmptyCart
	}

	total := store.Aggregate().Total
	if math.IsNaN(total) || math.IsInf(total, 0) {
		total = 0
	}

	order := &models.Order{
		CustomerName:  form.FullName,
		CustomerEmail: form.Email,
		CustomerPhone: form.Phone,
		Address:       form.Address,
		City:          form.City,
		Items:         projectItems(items),
		TotalAmount:   total,
		Status:        models.OrderStatusPending,
	}

	if err := s.writer.Create(ctx, order); err != nil {
		// The cart is left untouched so the user can correct and resubmit.
		s.setState(sessionID, StateFailed)
		return nil, err
	}

	s.setState(sessionID, StateSuccess)

	// Sequenced after the success transition: clearing is best-effort and a
	// failure here only logs.
	store.Clear(ctx)

	for _, n := range s.notifiers {
		n.OrderPlaced(*order)
	}

	log.Printf("✅ Order %d placed for %s (%d items)", order.ID, order.CustomerEmail, len(order.Items))
	return order, nil
}

// projectItems builds the lightweight line-item snapshot embedded in the
// order: id, name, price, quantity — image and display fields dropped.
func projectItems(items []models.CartLineItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		name := item.Name
		if name == "" {
			name = "Product"
		}
		price := item.Price
		if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
			price = 0
		}
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		out = append(out, models.OrderItem{
			ID:       item.ID,
			Name:     name,
			Price:    price,
			Quantity: qty,
		})
	}
	return out
}
