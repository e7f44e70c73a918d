package service

import (
	"context"
	"fmt"

	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/domain"
	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/token"
	"github.com/google/uuid"
)

// VerifyOrder checks a scanned payload against the canonical order and the
// claimed machine. The canonical order is the authoritative result.
func (s *OrderService) VerifyOrder(ctx context.Context, qrCodeData, machineID string) (*domain.Order, error) {
	return s.verify(ctx, qrCodeData, &machineID)
}

// VerifyOrderForAnyMachine is the machine-agnostic variant, used when the
// scanning device already knows which machine it is attached to.
func (s *OrderService) VerifyOrderForAnyMachine(ctx context.Context, qrCodeData string) (*domain.Order, error) {
	return s.verify(ctx, qrCodeData, nil)
}

func (s *OrderService) verify(ctx context.Context, qrCodeData string, claimedMachineID *string) (*domain.Order, error) {
	payload, err := token.Parse(qrCodeData)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(payload.OrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad order id", token.ErrMalformedPayload)
	}

	order, err := s.orders.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if claimedMachineID != nil && order.MachineID != *claimedMachineID {
		return nil, ErrMachineMismatch
	}

	// Field equality against the embedded snapshot catches tampered and
	// stale payloads. The status check makes the token effectively
	// single-use: a QR issued before completion stops verifying after it.
	// TODO: confirm whether a completed order's original QR should still
	// verify, or whether single-use is the desired behavior.
	if order.UserID != payload.UserID ||
		order.MachineID != payload.MachineID ||
		order.Total != payload.Total ||
		order.Status.String() != payload.Status {
		return nil, ErrOrderDetailsMismatch
	}

	if len(order.Items) != len(payload.Items) {
		return nil, ErrItemCountMismatch
	}

	// Items match by name, not position.
	payloadItems := make(map[string]token.Item, len(payload.Items))
	for _, item := range payload.Items {
		payloadItems[item.ItemName] = item
	}

	for _, item := range order.Items {
		scanned, ok := payloadItems[item.ItemName]
		if !ok {
			return nil, &ItemNotFoundError{ItemName: item.ItemName}
		}
		if item.Quantity != scanned.Quantity || item.Price != scanned.Price {
			return nil, &ItemMismatchError{ItemName: item.ItemName}
		}
	}

	return order, nil
}
