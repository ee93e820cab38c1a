package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const StoreSettingsID = "store"

type StoreSettings struct {
	StoreName             string           `json:"storeName"`
	ShippingCost          decimal.Decimal  `json:"shippingCost"`
	FreeShippingThreshold *decimal.Decimal `json:"freeShippingThreshold,omitempty"`
	ContactPhone          string           `json:"contactPhone"`
	WhatsappNumber        string           `json:"whatsappNumber"`
	UpdatedAt             time.Time        `json:"updatedAt"`
}

func DefaultStoreSettings() StoreSettings {
	return StoreSettings{
		StoreName:    "Mens Club Keshavapatnam",
		ShippingCost: decimal.NewFromInt(50),
	}
}

// ShippingFor returns the shipping charge for an order subtotal.
func (s StoreSettings) ShippingFor(subtotal decimal.Decimal) decimal.Decimal {
	if s.FreeShippingThreshold != nil && subtotal.GreaterThanOrEqual(*s.FreeShippingThreshold) {
		return decimal.Zero
	}
	return s.ShippingCost
}
