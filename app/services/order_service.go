package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SumanthCsy/Mens-Club-sub000/app/docstore"
	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	"github.com/SumanthCsy/Mens-Club-sub000/app/repositories"
	"github.com/SumanthCsy/Mens-Club-sub000/app/utils/calc"
	EventBus "github.com/asaskevich/EventBus"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// orderIDNamespace scopes idempotent order ids.
var orderIDNamespace = uuid.MustParse("6f1c2b1e-8d3a-4b7e-9a51-2f0c7e4d9b10")

// Actor identifies who drives an order operation.
type Actor struct {
	UserID string
	Kind   models.ActorKind
}

func CustomerActor(userID string) Actor {
	return Actor{UserID: userID, Kind: models.ActorUser}
}

func StoreActor(adminID string) Actor {
	return Actor{UserID: adminID, Kind: models.ActorStore}
}

// ActorFor maps a signed-in user to an actor; admins act for the store.
func ActorFor(user *models.User) Actor {
	if user.IsAdmin() {
		return StoreActor(user.ID)
	}
	return CustomerActor(user.ID)
}

type PlaceOrderRequest struct {
	Items           []models.CartItem
	ShippingAddress models.ShippingAddress
	PaymentMethod   models.PaymentMethod
	CouponCode      string
	IdempotencyKey  string
}

type OrderService struct {
	orderRepo    repositories.OrderRepository
	settingsRepo repositories.SettingsRepositoryImpl
	coupons      *CouponService
	bus          EventBus.Bus
	validate     *validator.Validate
	now          func() time.Time
}

func NewOrderService(
	orderRepo repositories.OrderRepository,
	settingsRepo repositories.SettingsRepositoryImpl,
	coupons *CouponService,
	bus EventBus.Bus,
	validate *validator.Validate,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		settingsRepo: settingsRepo,
		coupons:      coupons,
		bus:          bus,
		validate:     validate,
		now:          time.Now,
	}
}

func (s *OrderService) settings(ctx context.Context) (models.StoreSettings, error) {
	st, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return models.StoreSettings{}, err
	}
	if st == nil {
		return models.DefaultStoreSettings(), nil
	}
	return *st, nil
}

// PlaceOrder prices the items, applies the coupon against the fresh
// subtotal and stores a Pending order. It leaves the cart alone.
func (s *OrderService) PlaceOrder(ctx context.Context, user *models.User, req PlaceOrderRequest) (*models.Order, error) {
	order, _, err := s.placeOrder(ctx, user, req)
	return order, err
}

// placeOrder also reports whether the order came back from an earlier
// request with the same idempotency key.
func (s *OrderService) placeOrder(ctx context.Context, user *models.User, req PlaceOrderRequest) (*models.Order, bool, error) {
	if user == nil || user.ID == "" {
		return nil, false, ErrNotAuthenticated
	}
	key := strings.TrimSpace(req.IdempotencyKey)
	if key != "" {
		existing, err := s.orderRepo.GetByID(ctx, idempotentOrderID(user.ID, key))
		if err != nil {
			return nil, false, persistence("OrderService.PlaceOrder", err)
		}
		if existing != nil {
			zap.S().Infof("OrderService.PlaceOrder: replayed order %s for key %q", existing.ID, key)
			return existing, true, nil
		}
	}
	if len(req.Items) == 0 {
		return nil, false, ErrEmptyCart
	}
	if err := s.validate.Struct(req.ShippingAddress); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrInvalidShippingAddress, err)
	}
	if !req.PaymentMethod.Valid() {
		return nil, false, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, req.PaymentMethod)
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, ci := range req.Items {
		if ci.Quantity < 1 || ci.ProductID == "" {
			return nil, false, fmt.Errorf("%w: %s", ErrInvalidCartItem, ci.ID)
		}
		items = append(items, models.OrderItemFromCart(ci))
	}

	now := s.now()
	subtotal := calc.Subtotal(items)

	settings, err := s.settings(ctx)
	if err != nil {
		return nil, false, persistence("OrderService.PlaceOrder", err)
	}
	shipping := settings.ShippingFor(subtotal)

	order := &models.Order{
		UserID:          user.ID,
		CustomerEmail:   user.Email,
		Items:           items,
		Subtotal:        subtotal,
		ShippingCost:    shipping,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Status:          models.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if code := strings.TrimSpace(req.CouponCode); code != "" {
		applied, err := s.coupons.ValidateAndApply(ctx, code, subtotal, now)
		if err != nil {
			return nil, false, err
		}
		order.Discount = applied.Discount
		order.AppliedCouponCode = applied.Code
	}
	order.GrandTotal = calc.CalculateGrandTotal(subtotal, shipping, order.Discount)

	if key != "" {
		return s.createIdempotent(ctx, order, key)
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, false, persistence("OrderService.PlaceOrder", err)
	}
	zap.S().Infof("OrderService.PlaceOrder: order %s placed by %s, total %s", order.ID, user.ID, order.GrandTotal)
	publish(s.bus, TopicOrderPlaced, *order)
	return order, false, nil
}

func idempotentOrderID(userID, key string) string {
	return uuid.NewSHA1(orderIDNamespace, []byte(userID+"\x00"+key)).String()
}

// createIdempotent stores the order under the id derived from user and
// key. Losing a race to a concurrent request with the same key returns
// that request's order.
func (s *OrderService) createIdempotent(ctx context.Context, order *models.Order, key string) (*models.Order, bool, error) {
	order.ID = idempotentOrderID(order.UserID, key)
	order.IdempotencyKey = key

	err := s.orderRepo.CreateWithID(ctx, order)
	if errors.Is(err, docstore.ErrAlreadyExists) {
		existing, getErr := s.orderRepo.GetByID(ctx, order.ID)
		if getErr != nil {
			return nil, false, persistence("OrderService.PlaceOrder", getErr)
		}
		if existing == nil {
			return nil, false, persistence("OrderService.PlaceOrder", docstore.ErrNotFound)
		}
		zap.S().Infof("OrderService.PlaceOrder: replayed order %s for key %q", existing.ID, key)
		return existing, true, nil
	}
	if err != nil {
		return nil, false, persistence("OrderService.PlaceOrder", err)
	}
	zap.S().Infof("OrderService.PlaceOrder: order %s placed by %s, total %s", order.ID, order.UserID, order.GrandTotal)
	publish(s.bus, TopicOrderPlaced, *order)
	return order, false, nil
}

type CheckoutResult struct {
	Order       *models.Order `json:"order"`
	CartCleared bool          `json:"cartCleared"`
	Replayed    bool          `json:"replayed"`
}

// Checkout places an order from the session's cart and then removes the
// ordered lines. Lines added meanwhile stay in the cart. A replayed
// request leaves the cart alone. A failed removal leaves the order in
// place and is only reported.
func (s *OrderService) Checkout(ctx context.Context, session *Session, req PlaceOrderRequest) (*CheckoutResult, error) {
	if session == nil {
		return nil, ErrNotAuthenticated
	}
	user := session.CurrentUser()
	if user == nil {
		return nil, ErrNotAuthenticated
	}
	req.Items = session.Cart.Items()
	order, replayed, err := s.placeOrder(ctx, user, req)
	if err != nil {
		return nil, err
	}
	if replayed {
		return &CheckoutResult{Order: order, Replayed: true}, nil
	}
	ids := make([]string, 0, len(req.Items))
	for _, it := range req.Items {
		ids = append(ids, it.ID)
	}
	res := &CheckoutResult{Order: order, CartCleared: true}
	if err := session.Cart.RemoveItems(ctx, ids); err != nil {
		zap.S().Warnf("OrderService.Checkout: order %s placed but cart not cleared: %v", order.ID, err)
		res.CartCleared = false
	}
	return res, nil
}

func (s *OrderService) load(ctx context.Context, op, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, persistence(op, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, actor Actor, id string) (*models.Order, error) {
	if actor.UserID == "" {
		return nil, ErrNotAuthenticated
	}
	order, err := s.load(ctx, "OrderService.GetOrder", id)
	if err != nil {
		return nil, err
	}
	if actor.Kind != models.ActorStore && order.UserID != actor.UserID {
		return nil, ErrAccessDenied
	}
	return order, nil
}

func sortNewestFirst(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
}

func (s *OrderService) ListOrdersForUser(ctx context.Context, userID string) ([]models.Order, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	orders, err := s.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, persistence("OrderService.ListOrdersForUser", err)
	}
	sortNewestFirst(orders)
	return orders, nil
}

// ListAllOrders returns every order, newest first, optionally limited to
// one status.
func (s *OrderService) ListAllOrders(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	var (
		orders []models.Order
		err    error
	)
	if status == "" {
		orders, err = s.orderRepo.GetAllOrders(ctx)
	} else {
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		orders, err = s.orderRepo.FindByStatus(ctx, status)
	}
	if err != nil {
		return nil, persistence("OrderService.ListAllOrders", err)
	}
	sortNewestFirst(orders)
	return orders, nil
}

// ChangeStatus is the admin status control. Any move among the active
// states is allowed; entering Cancelled needs a reason and leaving it
// clears the cancellation fields.
func (s *OrderService) ChangeStatus(ctx context.Context, actor Actor, id string, status models.OrderStatus, reason string) (*models.Order, error) {
	if actor.Kind != models.ActorStore {
		return nil, ErrAccessDenied
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	order, err := s.load(ctx, "OrderService.ChangeStatus", id)
	if err != nil {
		return nil, err
	}
	previous := order.Status
	if previous == status {
		return order, nil
	}

	if status == models.OrderStatusCancelled && previous.IsTerminal() {
		return nil, ErrCancellationNotAllowed
	}

	now := s.now()
	updates := []docstore.Update{
		docstore.Set("status", status),
		docstore.Set("updatedAt", now),
	}
	if status == models.OrderStatusCancelled {
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return nil, ErrCancellationReasonRequired
		}
		updates = append(updates,
			docstore.Set("cancellationReason", reason),
			docstore.Set("cancelledBy", models.ActorStore),
		)
		order.CancellationReason = reason
		order.CancelledBy = models.ActorStore
	} else if previous == models.OrderStatusCancelled {
		updates = append(updates, docstore.Clear("cancellationReason"), docstore.Clear("cancelledBy"))
		order.CancellationReason = ""
		order.CancelledBy = ""
	}
	if err := s.orderRepo.Update(ctx, id, updates...); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, persistence("OrderService.ChangeStatus", err)
	}
	order.Status = status
	order.UpdatedAt = now
	zap.S().Infof("OrderService.ChangeStatus: order %s %s -> %s by %s", id, previous, status, actor.UserID)
	publish(s.bus, TopicOrderStatusChanged, OrderStatusChange{Order: *order, Previous: previous})
	return order, nil
}

// RequestCancellation cancels on behalf of the customer or the store.
// Customers may cancel while the order is Pending or Processing; later
// states are routed to the store's support contact instead.
func (s *OrderService) RequestCancellation(ctx context.Context, actor Actor, id, reason, remarks string) (*models.Order, error) {
	if actor.UserID == "" {
		return nil, ErrNotAuthenticated
	}
	order, err := s.load(ctx, "OrderService.RequestCancellation", id)
	if err != nil {
		return nil, err
	}

	switch actor.Kind {
	case models.ActorUser:
		if order.UserID != actor.UserID {
			return nil, ErrAccessDenied
		}
		if order.Status == models.OrderStatusShipped || order.Status == models.OrderStatusDelivered {
			return nil, s.supportContact(ctx, order.Status)
		}
		if !order.Status.CustomerCancellable() {
			return nil, ErrCancellationNotAllowed
		}
	case models.ActorStore:
		if order.Status.IsTerminal() {
			return nil, ErrCancellationNotAllowed
		}
	default:
		return nil, ErrAccessDenied
	}

	text := strings.TrimSpace(remarks)
	if text == "" {
		text = strings.TrimSpace(reason)
	}
	if text == "" {
		return nil, ErrCancellationReasonRequired
	}

	now := s.now()
	previous := order.Status
	err = s.orderRepo.Update(ctx, id,
		docstore.Set("status", models.OrderStatusCancelled),
		docstore.Set("cancellationReason", text),
		docstore.Set("cancelledBy", actor.Kind),
		docstore.Set("updatedAt", now),
	)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, persistence("OrderService.RequestCancellation", err)
	}
	order.Status = models.OrderStatusCancelled
	order.CancellationReason = text
	order.CancelledBy = actor.Kind
	order.UpdatedAt = now
	zap.S().Infof("OrderService.RequestCancellation: order %s cancelled by %s %s", id, actor.Kind, actor.UserID)
	publish(s.bus, TopicOrderStatusChanged, OrderStatusChange{Order: *order, Previous: previous})
	return order, nil
}

func (s *OrderService) supportContact(ctx context.Context, status models.OrderStatus) error {
	settings, err := s.settings(ctx)
	if err != nil {
		zap.S().Warnf("OrderService.supportContact: settings unavailable: %v", err)
		settings = models.DefaultStoreSettings()
	}
	return &SupportContactError{
		Status:         status,
		ContactPhone:   settings.ContactPhone,
		WhatsappNumber: settings.WhatsappNumber,
	}
}

// DeleteOrders removes the given orders in one batch. Store actors only.
func (s *OrderService) DeleteOrders(ctx context.Context, actor Actor, ids []string) error {
	if actor.Kind != models.ActorStore {
		return ErrAccessDenied
	}
	clean := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			clean = append(clean, id)
		}
	}
	if len(clean) == 0 {
		return nil
	}
	if err := s.orderRepo.DeleteMany(ctx, clean); err != nil {
		return persistence("OrderService.DeleteOrders", err)
	}
	zap.S().Infof("OrderService.DeleteOrders: %d orders deleted by %s", len(clean), actor.UserID)
	return nil
}
