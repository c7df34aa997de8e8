package checkout

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"warungpos/internal/ledger"
	"warungpos/internal/menu"
	"warungpos/internal/order"
	"warungpos/internal/poserr"
	"warungpos/internal/receipt"
	"warungpos/internal/sequence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

type fakeArchive struct {
	bodies map[int]string
	err    error
}

func (f *fakeArchive) PutReceipt(ctx context.Context, orderID int, createdAt time.Time, body string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.bodies == nil {
		f.bodies = make(map[int]string)
	}
	f.bodies[orderID] = body
	return "https://receipts.example.com/" + createdAt.Format("20060102"), nil
}

type fakePublisher struct {
	published []int
	err       error
}

func (f *fakePublisher) PublishOrderCompleted(ctx context.Context, o *order.Order) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, o.ID())
	return nil
}

type failingOrders struct{ order.InMemoryRepository }

func (f *failingOrders) PersistCompletedOrder(ctx context.Context, o *order.Order) error {
	return errors.New("disk full")
}

type till struct {
	svc       *Service
	menuRepo  *menu.InMemoryRepository
	orders    order.Repository
	ledger    *ledger.Ledger
	archive   *fakeArchive
	publisher *fakePublisher
	spans     *tracetest.SpanRecorder
}

func newTill(t *testing.T, orders order.Repository) *till {
	t.Helper()

	menuRepo := menu.NewInMemoryRepository()
	menuSvc := menu.NewService(menu.NewCatalog(sequence.New()), menuRepo, zap.NewNop(), 10)
	require.NoError(t, menuSvc.Bootstrap(context.Background(), menu.DefaultMenu()))

	if orders == nil {
		orders = order.NewInMemoryRepository()
	}

	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))

	tl := &till{
		menuRepo:  menuRepo,
		orders:    orders,
		ledger:    ledger.New(),
		archive:   &fakeArchive{},
		publisher: &fakePublisher{},
		spans:     spans,
	}
	clock := order.ClockFunc(func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) })
	tl.svc = NewService(Dependencies{
		Menu:           menuSvc,
		Orders:         orders,
		Ledger:         tl.ledger,
		Factory:        order.NewFactory(sequence.New(), clock),
		Header:         receipt.Header{StoreName: "WARUNG PADANG SEDERHANA", Address: "Jl. Merdeka No. 123"},
		PaymentMethods: []string{"Cash", "Debit Card", "E-Wallet"},
		Archive:        tl.archive,
		Publisher:      tl.publisher,
		Logger:         zap.NewNop(),
		Tracer:         tp.Tracer("checkout-test"),
	})
	return tl
}

func (tl *till) storedStock(t *testing.T, id int) int {
	t.Helper()
	specs, err := tl.menuRepo.LoadCatalog(context.Background())
	require.NoError(t, err)
	for _, s := range specs {
		if s.ID == id {
			return s.Stock
		}
	}
	t.Fatalf("item %d not stored", id)
	return 0
}

func TestService_AddItemGuardsStock(t *testing.T) {
	tl := newTill(t, nil)
	ctx := context.Background()

	cart, err := tl.svc.AddItem(2, 20)
	require.NoError(t, err)
	assert.Len(t, cart.Lines, 1)

	_, err = tl.svc.AddItem(2, 11)
	assert.ErrorIs(t, err, poserr.ErrOutOfStock, "merged quantity exceeds stock")

	_, err = tl.svc.menu.SetStock(ctx, 3, 0)
	require.NoError(t, err)
	_, err = tl.svc.AddItem(3, 1)
	assert.ErrorIs(t, err, poserr.ErrOutOfStock)

	_, err = tl.svc.AddItem(1, 0)
	assert.ErrorIs(t, err, poserr.ErrInvalidQuantity)

	_, err = tl.svc.AddItem(99, 1)
	assert.ErrorIs(t, err, poserr.ErrNotFound)

	assert.Equal(t, 20, tl.svc.Cart().Lines[0].Quantity)
}

func TestService_AddItemRejectsOverflowingQuantity(t *testing.T) {
	tl := newTill(t, nil)
	ctx := context.Background()

	_, err := tl.svc.AddItem(1, 2) // Nasi Goreng
	require.NoError(t, err)
	_, err = tl.svc.AddItem(2, 1) // Rendang
	require.NoError(t, err)

	_, err = tl.svc.AddItem(2, math.MaxInt)
	assert.ErrorIs(t, err, poserr.ErrInvalidQuantity)
	assert.Equal(t, 1, tl.svc.Cart().Lines[1].Quantity)

	catalog := tl.svc.menu.Catalog()
	before := stockOf(catalog)
	_, err = tl.svc.Checkout(ctx, rp(0), "Cash")
	assert.ErrorIs(t, err, poserr.ErrInsufficientPayment)
	assert.Equal(t, before, stockOf(catalog))
	assert.Zero(t, tl.ledger.Count())
}

func TestService_CheckoutEmptyCartChangesNothing(t *testing.T) {
	tl := newTill(t, nil)
	catalog := tl.svc.menu.Catalog()
	before := stockOf(catalog)

	_, err := tl.svc.Checkout(context.Background(), rp(100000), "Cash")
	assert.ErrorIs(t, err, poserr.ErrEmptyOrder)

	assert.Equal(t, before, stockOf(catalog))
	assert.Zero(t, tl.ledger.Count())
	assert.Empty(t, tl.publisher.published)
	assert.Equal(t, 1, tl.svc.Cart().OrderID)
}

func TestService_UpdateAndRemove(t *testing.T) {
	tl := newTill(t, nil)

	_, err := tl.svc.AddItem(1, 1)
	require.NoError(t, err)

	cart, err := tl.svc.UpdateQuantity(1, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.Lines[0].Quantity)

	_, err = tl.svc.UpdateQuantity(1, 51)
	assert.ErrorIs(t, err, poserr.ErrOutOfStock)

	_, err = tl.svc.UpdateQuantity(1, 0)
	assert.ErrorIs(t, err, poserr.ErrInvalidQuantity)

	_, err = tl.svc.UpdateQuantity(5, 1)
	assert.ErrorIs(t, err, poserr.ErrNotFound)

	cart, err = tl.svc.RemoveItem(1)
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}

func TestService_ClearStartsNewOrder(t *testing.T) {
	tl := newTill(t, nil)

	_, err := tl.svc.AddItem(1, 1)
	require.NoError(t, err)
	first := tl.svc.Cart().OrderID

	cart := tl.svc.Clear()
	assert.Empty(t, cart.Lines)
	assert.Greater(t, cart.OrderID, first)
}

func TestService_Checkout(t *testing.T) {
	tl := newTill(t, nil)
	ctx := context.Background()

	_, err := tl.svc.AddItem(1, 2)
	require.NoError(t, err)

	res, err := tl.svc.Checkout(ctx, rp(60000), "Cash")
	require.NoError(t, err)

	assert.Equal(t, 1, res.OrderID)
	assert.True(t, res.Change.Equal(rp(5000)))
	assert.Contains(t, res.Receipt, "Order #0001")
	assert.Contains(t, res.Receipt, "Rp 55,000")
	assert.Equal(t, "https://receipts.example.com/20240301", res.ReceiptURL)

	assert.Equal(t, 48, tl.storedStock(t, 1))
	stored, err := tl.orders.LoadCompletedOrders(ctx, tl.svc.menu.Catalog())
	require.NoError(t, err)
	require.Len(t, stored, 1)

	assert.Equal(t, 1, tl.ledger.Count())
	assert.Equal(t, []int{1}, tl.publisher.published)
	assert.Equal(t, res.Receipt, tl.archive.bodies[1])

	next := tl.svc.Cart()
	assert.Equal(t, 2, next.OrderID)
	assert.Empty(t, next.Lines)

	ended := tl.spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "checkout.settle", ended[0].Name())

	reprint, err := tl.svc.Receipt(1)
	require.NoError(t, err)
	assert.Equal(t, res.Receipt, reprint)
}

func TestService_CheckoutRejectsUnknownMethod(t *testing.T) {
	tl := newTill(t, nil)

	_, err := tl.svc.AddItem(1, 1)
	require.NoError(t, err)

	_, err = tl.svc.Checkout(context.Background(), rp(100000), "Cheque")
	assert.ErrorIs(t, err, ErrUnknownPaymentMethod)
	assert.Len(t, tl.svc.Cart().Lines, 1)
	assert.Equal(t, 50, tl.storedStock(t, 1))
}

func TestService_CheckoutFailureKeepsCart(t *testing.T) {
	tl := newTill(t, nil)

	_, err := tl.svc.AddItem(1, 2)
	require.NoError(t, err)

	_, err = tl.svc.Checkout(context.Background(), rp(1000), "Cash")
	assert.ErrorIs(t, err, poserr.ErrInsufficientPayment)

	cart := tl.svc.Cart()
	assert.Equal(t, 1, cart.OrderID)
	assert.Len(t, cart.Lines, 1)
	assert.Zero(t, tl.ledger.Count())
	assert.Empty(t, tl.publisher.published)

	tl.svc.Clear()
	_, err = tl.svc.Checkout(context.Background(), rp(1000), "Cash")
	assert.ErrorIs(t, err, poserr.ErrEmptyOrder)
}

func TestService_CheckoutPersistFailureStillSells(t *testing.T) {
	tl := newTill(t, &failingOrders{})

	_, err := tl.svc.AddItem(1, 2)
	require.NoError(t, err)

	res, err := tl.svc.Checkout(context.Background(), rp(60000), "Debit Card")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotPersisted)
	require.NotNil(t, res)
	assert.Equal(t, 1, res.OrderID)

	assert.Equal(t, 1, tl.ledger.Count())
	assert.Equal(t, 48, tl.storedStock(t, 1))
	assert.Equal(t, 2, tl.svc.Cart().OrderID)
}

func TestService_CheckoutArchiveAndPublishAreBestEffort(t *testing.T) {
	tl := newTill(t, nil)
	tl.archive.err = errors.New("bucket missing")
	tl.publisher.err = errors.New("broker down")

	_, err := tl.svc.AddItem(6, 1)
	require.NoError(t, err)

	res, err := tl.svc.Checkout(context.Background(), rp(5500), "E-Wallet")
	require.NoError(t, err)
	assert.Empty(t, res.ReceiptURL)
	assert.True(t, res.Change.IsZero())
}

func TestService_ReceiptNotFound(t *testing.T) {
	tl := newTill(t, nil)

	_, err := tl.svc.Receipt(42)
	assert.ErrorIs(t, err, poserr.ErrNotFound)
}
