package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bilal-Yasir34/apex-store/cart"
	"github.com/Bilal-Yasir34/apex-store/models"
)

type mockWriter struct {
	mu      sync.Mutex
	orders  []models.Order
	err     error
	release chan struct{} // when set, Create blocks until closed
}

func (m *mockWriter) Create(_ context.Context, order *models.Order) error {
	if m.release != nil {
		<-m.release
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	order.ID = uint(len(m.orders) + 1)
	m.orders = append(m.orders, *order)
	return nil
}

func (m *mockWriter) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

type mockNotifier struct {
	mu     sync.Mutex
	placed []models.Order
}

func (m *mockNotifier) OrderPlaced(order models.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.placed = append(m.placed, order)
}

func sessionCart(t *testing.T) *cart.Store {
	t.Helper()
	return cart.NewService(cart.NewMemoryPersister()).ForSession(context.Background(), "s1")
}

var form = ShippingForm{
	FullName: "Amna K",
	Email:    "amna@example.com",
	Phone:    "0300-0000000",
	Address:  "14 Canal Road",
	City:     "Lahore",
}

func TestSubmitHappyPath(t *testing.T) {
	writer := &mockWriter{}
	notifier := &mockNotifier{}
	svc := NewService(writer, notifier)

	store := sessionCart(t)
	store.AddItem(map[string]interface{}{"id": "7", "name": "Shawl", "price": 45.0, "image_url": "shawl.jpg"})
	store.SetQuantity("7", 2)

	order, err := svc.Submit(context.Background(), "s1", store, form)
	require.NoError(t, err)

	assert.Equal(t, StateSuccess, svc.State("s1"))
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 90.0, order.TotalAmount)
	assert.Equal(t, []models.OrderItem{{ID: "7", Name: "Shawl", Price: 45, Quantity: 2}}, order.Items)

	// Cart cleared only after the order committed.
	assert.Empty(t, store.Items())
	assert.Len(t, notifier.placed, 1)
}

func TestSubmitEmptyCartFailsWithoutWrite(t *testing.T) {
	writer := &mockWriter{}
	svc := NewService(writer)

	store := sessionCart(t)
	_, err := svc.Submit(context.Background(), "s1", store, form)

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StateFailed, svc.State("s1"))
	assert.Zero(t, writer.count())
}

func TestSubmitWhileSubmittingIsDropped(t *testing.T) {
	writer := &mockWriter{release: make(chan struct{})}
	svc := NewService(writer)

	store := sessionCart(t)
	store.AddItem(map[string]interface{}{"id": "1", "price": 10.0})

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), "s1", store, form)
		done <- err
	}()

	// Wait for the first submission to take the submitting state.
	require.Eventually(t, func() bool {
		return svc.State("s1") == StateSubmitting
	}, time.Second, time.Millisecond)

	_, err := svc.Submit(context.Background(), "s1", store, form)
	assert.ErrorIs(t, err, ErrSubmitInProgress)
	assert.Equal(t, StateSubmitting, svc.State("s1"))

	close(writer.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, writer.count())
}

func TestSubmitFailureLeavesCartUntouched(t *testing.T) {
	writer := &mockWriter{err: errors.New("connection refused")}
	svc := NewService(writer)

	store := sessionCart(t)
	store.AddItem(map[string]interface{}{"id": "1", "name": "Case", "price": 20.0})

	_, err := svc.Submit(context.Background(), "s1", store, form)
	require.Error(t, err)

	assert.Equal(t, StateFailed, svc.State("s1"))
	require.Len(t, store.Items(), 1)

	// Retry succeeds once the writer recovers.
	writer.mu.Lock()
	writer.err = nil
	writer.mu.Unlock()

	_, err = svc.Submit(context.Background(), "s1", store, form)
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, svc.State("s1"))
	assert.Empty(t, store.Items())
}

func TestSubmitProjectionDropsImageAndCoerces(t *testing.T) {
	writer := &mockWriter{}
	svc := NewService(writer)

	store := sessionCart(t)
	store.AddItem(map[string]interface{}{"id": "9", "price": "bogus", "image_url": "big-image.jpg"})

	order, err := svc.Submit(context.Background(), "s1", store, form)
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, models.OrderItem{ID: "9", Name: "Product", Price: 0, Quantity: 1}, order.Items[0])
}

func TestSessionsAreIndependent(t *testing.T) {
	writer := &mockWriter{release: make(chan struct{})}
	svc := NewService(writer)

	carts := cart.NewService(cart.NewMemoryPersister())
	a := carts.ForSession(context.Background(), "a")
	b := carts.ForSession(context.Background(), "b")
	a.AddItem(map[string]interface{}{"id": "1", "price": 1.0})
	b.AddItem(map[string]interface{}{"id": "2", "price": 2.0})

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), "a", a, form)
		done <- err
	}()
	require.Eventually(t, func() bool {
		return svc.State("a") == StateSubmitting
	}, time.Second, time.Millisecond)

	// Session b is not blocked by a's in-flight submission.
	assert.Equal(t, StateIdle, svc.State("b"))

	close(writer.release)
	require.NoError(t, <-done)

	_, err := svc.Submit(context.Background(), "b", b, form)
	require.NoError(t, err)
	assert.Equal(t, 2, writer.count())
}
