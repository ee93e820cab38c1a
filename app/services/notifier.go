package services

import (
	"fmt"
	"html"
	"strings"

	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	"github.com/SumanthCsy/Mens-Club-sub000/app/utils/format"
	EventBus "github.com/asaskevich/EventBus"
	"go.uber.org/zap"
)

// Notifier turns order events into store notification e-mails. Delivery is
// best effort: failures are logged and never reach the order flow.
type Notifier struct {
	mailer    *Mailer
	to        string
	storeName string
}

func NewNotifier(mailer *Mailer, to, storeName string) *Notifier {
	return &Notifier{mailer: mailer, to: to, storeName: storeName}
}

func (n *Notifier) Register(bus EventBus.Bus) error {
	if err := bus.SubscribeAsync(TopicOrderPlaced, n.OnOrderPlaced, false); err != nil {
		return fmt.Errorf("subscribe %s: %w", TopicOrderPlaced, err)
	}
	if err := bus.SubscribeAsync(TopicOrderStatusChanged, n.OnStatusChanged, false); err != nil {
		return fmt.Errorf("subscribe %s: %w", TopicOrderStatusChanged, err)
	}
	return nil
}

func (n *Notifier) OnOrderPlaced(order models.Order) {
	subject, body := BuildOrderNotification(n.storeName, &order)
	n.deliver(order.ID, subject, body)
}

func (n *Notifier) OnStatusChanged(change OrderStatusChange) {
	zap.S().Infof("Notifier.OnStatusChanged: order %s %s -> %s", change.Order.ID, change.Previous, change.Order.Status)
}

// Notify formats and delivers the notification for an existing order.
func (n *Notifier) Notify(order *models.Order) (string, string) {
	subject, body := BuildOrderNotification(n.storeName, order)
	n.deliver(order.ID, subject, body)
	return subject, body
}

func (n *Notifier) deliver(orderID, subject, body string) {
	if n.mailer == nil || !n.mailer.Enabled() || n.to == "" {
		zap.S().Infof("Notifier.deliver: SMTP not configured, order %s notification: %s", orderID, subject)
		return
	}
	if err := n.mailer.SendHTMLEmail(n.to, subject, body); err != nil {
		zap.S().Warnf("Notifier.deliver: order %s: %v", orderID, err)
		return
	}
	zap.S().Infof("Notifier.deliver: order %s notification sent to %s", orderID, n.to)
}

func BuildOrderNotification(storeName string, order *models.Order) (string, string) {
	subject := fmt.Sprintf("New order %s - %s", order.ID, format.INR(order.GrandTotal))

	var rows strings.Builder
	for _, it := range order.Items {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td><td>%d</td><td>%s</td></tr>\n",
			html.EscapeString(it.Name), html.EscapeString(it.SelectedSize), it.Quantity, format.INR(it.LineTotal()))
	}

	discount := ""
	if order.AppliedCouponCode != "" {
		discount = fmt.Sprintf("<p>Discount (%s): -%s</p>", html.EscapeString(order.AppliedCouponCode), format.INR(order.Discount))
	}

	a := order.ShippingAddress
	body := fmt.Sprintf(`<h2>%s: new order</h2>
<p>Order %s from %s (%s)</p>
<table>
<tr><th>Item</th><th>Size</th><th>Qty</th><th>Amount</th></tr>
%s</table>
<p>Subtotal: %s</p>
<p>Shipping: %s</p>
%s<p><strong>Total: %s</strong></p>
<p>Payment: %s</p>
<p>Ship to: %s, %s %s, %s, %s %s. Phone %s</p>`,
		html.EscapeString(storeName),
		order.ID, html.EscapeString(a.FullName), html.EscapeString(order.CustomerEmail),
		rows.String(),
		format.INR(order.Subtotal),
		format.INR(order.ShippingCost),
		discount,
		format.INR(order.GrandTotal),
		strings.ToUpper(string(order.PaymentMethod)),
		html.EscapeString(a.FullName), html.EscapeString(a.AddressLine1), html.EscapeString(a.AddressLine2),
		html.EscapeString(a.City), html.EscapeString(a.State), html.EscapeString(a.PostalCode),
		html.EscapeString(a.Phone),
	)
	return subject, body
}
