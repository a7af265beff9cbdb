package stripe

import (
	"context"
	"strings"

	ierr "github.com/manmeet1049/bizzler/internal/errors"
	"github.com/shopspring/decimal"
	stripeapi "github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/client"
)

// RecurringPrice is the part of a Stripe price a plan is built from.
type RecurringPrice struct {
	ID            string
	ProductID     string
	Name          string
	Amount        decimal.Decimal
	Interval      string
	IntervalCount int64
}

// PriceSource lists the recurring prices plans can be imported from.
type PriceSource interface {
	ListRecurringPrices(ctx context.Context) ([]RecurringPrice, error)
}

type priceSource struct {
	api       *client.API
	productID string
}

// NewPriceSource returns nil when no secret key is configured.
func NewPriceSource(secretKey, productID string) PriceSource {
	if strings.TrimSpace(secretKey) == "" {
		return nil
	}
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &priceSource{api: sc, productID: strings.TrimSpace(productID)}
}

func (s *priceSource) ListRecurringPrices(ctx context.Context) ([]RecurringPrice, error) {
	params := &stripeapi.PriceListParams{}
	params.Context = ctx
	params.Active = stripeapi.Bool(true)
	params.Type = stripeapi.String(string(stripeapi.PriceTypeRecurring))
	params.AddExpand("data.product")
	if s.productID != "" {
		params.Product = stripeapi.String(s.productID)
	}

	var out []RecurringPrice
	it := s.api.Prices.List(params)
	for it.Next() {
		if rp, ok := fromStripe(it.Price()); ok {
			out = append(out, rp)
		}
	}
	if err := it.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list prices from Stripe.").
			Mark(ierr.ErrDatabase)
	}
	return out, nil
}

// fromStripe keeps active recurring prices whose product is active and not
// hidden through the "visible" metadata flag.
func fromStripe(p *stripeapi.Price) (RecurringPrice, bool) {
	if p == nil || !p.Active || p.Recurring == nil {
		return RecurringPrice{}, false
	}
	if p.Product != nil && p.Product.ID != "" && p.Product.Name != "" && !p.Product.Active {
		return RecurringPrice{}, false
	}
	if p.Metadata["visible"] == "false" {
		return RecurringPrice{}, false
	}

	name := p.Nickname
	if v := p.Metadata["plan"]; v != "" {
		name = v
	}
	productID := ""
	if p.Product != nil {
		productID = p.Product.ID
		if name == "" {
			name = p.Product.Name
		}
	}
	if name == "" {
		name = p.ID
	}

	return RecurringPrice{
		ID:            p.ID,
		ProductID:     productID,
		Name:          name,
		Amount:        fromMinorUnits(p.UnitAmount, p.Currency),
		Interval:      string(p.Recurring.Interval),
		IntervalCount: p.Recurring.IntervalCount,
	}, true
}

// Stripe amounts are integers in the currency's smallest unit. Most currencies
// have two decimals; these have none or three.
var (
	zeroDecimalCurrencies = map[string]bool{
		"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true, "kmf": true,
		"krw": true, "mga": true, "pyg": true, "rwf": true, "ugx": true, "vnd": true,
		"vuv": true, "xaf": true, "xof": true, "xpf": true,
	}
	threeDecimalCurrencies = map[string]bool{
		"bhd": true, "jod": true, "kwd": true, "omr": true, "tnd": true,
	}
)

func fromMinorUnits(amount int64, currency stripeapi.Currency) decimal.Decimal {
	code := strings.ToLower(string(currency))
	switch {
	case zeroDecimalCurrencies[code]:
		return decimal.New(amount, 0)
	case threeDecimalCurrencies[code]:
		return decimal.New(amount, -3)
	default:
		return decimal.New(amount, -2)
	}
}
