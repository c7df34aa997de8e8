package checkout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"warungpos/internal/ledger"
	"warungpos/internal/menu"
	"warungpos/internal/observability"
	"warungpos/internal/order"
	"warungpos/internal/poserr"
	"warungpos/internal/receipt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var (
	ErrUnknownPaymentMethod = errors.New("unknown payment method")

	// ErrNotPersisted is returned with a successful Result when the sale
	// went through but could not be written to storage.
	ErrNotPersisted = errors.New("sale completed but not persisted")
)

// ReceiptArchive stores printed receipts and returns a URL for them.
type ReceiptArchive interface {
	PutReceipt(ctx context.Context, orderID int, createdAt time.Time, body string) (string, error)
}

// EventPublisher announces completed sales.
type EventPublisher interface {
	PublishOrderCompleted(ctx context.Context, o *order.Order) error
}

type Dependencies struct {
	Menu           *menu.Service
	Orders         order.Repository
	Ledger         *ledger.Ledger
	Factory        *order.Factory
	Header         receipt.Header
	PaymentMethods []string
	Archive        ReceiptArchive // optional
	Publisher      EventPublisher // optional
	Logger         observability.Logger
	Tracer         observability.Tracer
}

// Service is the till: one open cart at a time, settled against the
// shared catalog. Every call is serialized so concurrent requests behave
// like a single cashier.
type Service struct {
	mu   sync.Mutex
	cart *order.Order

	menu      *menu.Service
	orders    order.Repository
	ledger    *ledger.Ledger
	factory   *order.Factory
	header    receipt.Header
	methods   []string
	archive   ReceiptArchive
	publisher EventPublisher
	logger    observability.Logger
	tracer    observability.Tracer
}

func NewService(d Dependencies) *Service {
	return &Service{
		cart:      d.Factory.New(),
		menu:      d.Menu,
		orders:    d.Orders,
		ledger:    d.Ledger,
		factory:   d.Factory,
		header:    d.Header,
		methods:   d.PaymentMethods,
		archive:   d.Archive,
		publisher: d.Publisher,
		logger:    d.Logger,
		tracer:    d.Tracer,
	}
}

func (s *Service) PaymentMethods() []string {
	return slices.Clone(s.methods)
}

// --------------------------------------------------
// Cart
// --------------------------------------------------

// Cart returns a snapshot of the open order.
func (s *Service) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return newCartView(s.cart)
}

// AddItem puts quantity units of an item in the cart. The merged quantity
// must be available in stock right now; settlement checks again.
func (s *Service) AddItem(itemID, quantity int) (CartView, error) {
	if quantity < 1 {
		return CartView{}, fmt.Errorf("%w: quantity must be at least 1", poserr.ErrInvalidQuantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.menu.Catalog().FindByID(itemID)
	if err != nil {
		return CartView{}, err
	}

	inCart := s.cart.Quantity(itemID)
	if quantity > math.MaxInt-inCart {
		return CartView{}, fmt.Errorf("%w: %s quantity too large", poserr.ErrInvalidQuantity, item.Name())
	}
	if err := checkAvailable(item, inCart+quantity); err != nil {
		return CartView{}, err
	}

	if err := s.cart.AddLine(item, quantity); err != nil {
		return CartView{}, err
	}
	return newCartView(s.cart), nil
}

// UpdateQuantity replaces the quantity of an item already in the cart.
func (s *Service) UpdateQuantity(itemID, quantity int) (CartView, error) {
	if quantity <= 0 {
		return CartView{}, fmt.Errorf("%w: quantity must be at least 1", poserr.ErrInvalidQuantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.Quantity(itemID) == 0 {
		return CartView{}, fmt.Errorf("item %d in cart: %w", itemID, poserr.ErrNotFound)
	}

	item, err := s.menu.Catalog().FindByID(itemID)
	if err != nil {
		return CartView{}, err
	}

	if err := checkAvailable(item, quantity); err != nil {
		return CartView{}, err
	}

	if err := s.cart.SetQuantity(itemID, quantity); err != nil {
		return CartView{}, err
	}
	return newCartView(s.cart), nil
}

func (s *Service) RemoveItem(itemID int) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.RemoveLine(itemID); err != nil {
		return CartView{}, err
	}
	return newCartView(s.cart), nil
}

// Clear discards the open cart and starts a new one.
func (s *Service) Clear() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = s.factory.New()
	return newCartView(s.cart)
}

func checkAvailable(item *menu.Item, want int) error {
	if stock := item.Stock(); stock == 0 || want > stock {
		return &poserr.OutOfStockError{
			ItemID:    item.ID(),
			Name:      item.Name(),
			Requested: want,
			Available: stock,
		}
	}
	return nil
}

// --------------------------------------------------
// Checkout
// --------------------------------------------------

type Result struct {
	OrderID    int             `json:"order_id"`
	Change     decimal.Decimal `json:"change"`
	Receipt    string          `json:"receipt"`
	ReceiptURL string          `json:"receipt_url,omitempty"`
}

// Checkout settles the open cart. On success the sale is recorded, the
// receipt printed and a fresh cart opened.
//
// Once settlement succeeds the sale stands: a storage failure is reported
// as ErrNotPersisted alongside a valid Result, and archive or event
// failures are only logged.
func (s *Service) Checkout(ctx context.Context, tendered decimal.Decimal, method string) (*Result, error) {
	if !slices.Contains(s.methods, method) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, method)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cart
	ctx, span := s.tracer.Start(ctx, "checkout.settle",
		trace.WithAttributes(
			attribute.Int("order.id", cart.ID()),
			attribute.Int("order.lines", len(cart.Lines())),
			attribute.String("payment.method", method),
		),
	)
	defer span.End()

	change, err := Settle(cart, s.menu.Catalog(), tendered, method)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "settlement rejected")
		s.logger.Warn("Checkout rejected",
			zap.Int("order_id", cart.ID()),
			zap.String("method", method),
			zap.Error(err),
		)
		return nil, err
	}

	s.cart = s.factory.New()
	span.SetAttributes(attribute.String("order.grand_total", cart.GrandTotal().String()))

	if err := s.ledger.Record(cart); err != nil {
		s.logger.Error("Failed to record sale", zap.Int("order_id", cart.ID()), zap.Error(err))
	}

	result := &Result{
		OrderID: cart.ID(),
		Change:  change,
		Receipt: receipt.Render(cart, s.header),
	}

	s.logger.Info("Order completed",
		zap.Int("order_id", cart.ID()),
		zap.String("method", method),
		zap.String("grand_total", cart.GrandTotal().String()),
		zap.String("change", change.String()),
	)

	persistErr := s.persist(ctx, cart)

	if s.archive != nil {
		url, err := s.archive.PutReceipt(ctx, cart.ID(), cart.CreatedAt(), result.Receipt)
		if err != nil {
			s.logger.Warn("Failed to archive receipt", zap.Int("order_id", cart.ID()), zap.Error(err))
		} else {
			result.ReceiptURL = url
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderCompleted(ctx, cart); err != nil {
			s.logger.Warn("Failed to publish sale", zap.Int("order_id", cart.ID()), zap.Error(err))
		}
	}

	if persistErr != nil {
		span.RecordError(persistErr)
		span.SetStatus(codes.Error, "sale not persisted")
		return result, fmt.Errorf("%w: order %d: %w", ErrNotPersisted, cart.ID(), persistErr)
	}
	return result, nil
}

func (s *Service) persist(ctx context.Context, o *order.Order) error {
	lines := o.Lines()
	ids := make([]int, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.Item.ID())
	}

	stockErr := s.menu.PersistStock(ctx, ids...)

	orderErr := s.orders.PersistCompletedOrder(ctx, o)
	if orderErr != nil {
		s.logger.Error("Failed to persist order", zap.Int("order_id", o.ID()), zap.Error(orderErr))
	}

	return errors.Join(stockErr, orderErr)
}

// --------------------------------------------------
// Receipts
// --------------------------------------------------

// Receipt reprints a completed order from the ledger.
func (s *Service) Receipt(orderID int) (string, error) {
	o, err := s.ledger.Find(orderID)
	if err != nil {
		return "", err
	}
	return receipt.Render(o, s.header), nil
}
