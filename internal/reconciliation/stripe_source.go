package reconciliation

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/charge"

	pkgstripe "github.com/avifonte/ledgerdesk-backend/pkg/stripe"
	"github.com/avifonte/ledgerdesk-backend/pkg/money"
)

// chargeLister exposes the subset of Stripe operations a reconciliation run
// needs, so the source can be tested without the network.
type chargeLister interface {
	List(ctx context.Context, params *stripe.ChargeListParams) ([]*stripe.Charge, error)
}

type stripeChargeLister struct{}

func (stripeChargeLister) List(ctx context.Context, params *stripe.ChargeListParams) ([]*stripe.Charge, error) {
	if params != nil {
		params.Context = ctx
	}
	var charges []*stripe.Charge
	iter := charge.List(params)
	for iter.Next() {
		charges = append(charges, iter.Charge())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return charges, nil
}

// StripeSource adapts Stripe charge listings into reconciliation records.
type StripeSource struct {
	charges     chargeLister
	environment string
	pageSize    int64
}

// NewStripeSource builds the charge-backed record source.
func NewStripeSource(api *pkgstripe.Client) (*StripeSource, error) {
	if api == nil {
		return nil, fmt.Errorf("stripe client required")
	}
	return &StripeSource{
		charges:     stripeChargeLister{},
		environment: api.Environment(),
		pageSize:    100,
	}, nil
}

// Name identifies the source in reports and logs.
func (s *StripeSource) Name() string {
	return "stripe"
}

// FetchRecords lists settled charges created within the window. Amounts are
// converted from minor units; refunded portions are netted out so the record
// reflects what the processor actually kept.
func (s *StripeSource) FetchRecords(ctx context.Context, window Window) ([]ExternalRecord, error) {
	params := &stripe.ChargeListParams{
		CreatedRange: &stripe.RangeQueryParams{
			GreaterThanOrEqual: window.From.Unix(),
			LesserThanOrEqual:  window.To.Unix(),
		},
	}
	params.Limit = stripe.Int64(s.pageSize)

	charges, err := s.charges.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list stripe charges: %w", err)
	}

	records := make([]ExternalRecord, 0, len(charges))
	for _, ch := range charges {
		if ch == nil || ch.Status != stripe.ChargeStatusSucceeded {
			continue
		}
		records = append(records, ExternalRecord{
			ID:     ch.ID,
			Amount: money.FromCents(ch.Amount - ch.AmountRefunded),
			Status: string(ch.Status),
		})
	}
	return records, nil
}
