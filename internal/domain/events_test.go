package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDecodePayload(t *testing.T) {
	t.Parallel()

	evt := validEvent()
	evt.Data = map[string]any{"payment_id": "pay-1", "member_id": "m1", "amount": "150.00", "extra": true}

	payload, err := DecodePayload[PaymentReceivedPayload](evt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.PaymentID != "pay-1" || payload.MemberID != "m1" || !payload.Amount.Equal(MustMoney("150.00")) {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestDecodePayloadNumericAmount(t *testing.T) {
	t.Parallel()

	for name, amount := range map[string]any{
		"json number": json.Number("100.00"),
		"float":       100.0,
		"int":         100,
	} {
		evt := validEvent()
		evt.Data = map[string]any{"payment_id": "pay-1", "member_id": "m1", "amount": amount}

		payload, err := DecodePayload[PaymentReceivedPayload](evt)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if !payload.Amount.Equal(MustMoney("100.00")) {
			t.Fatalf("%s: expected 100.00, got %s", name, payload.Amount)
		}
	}
}

func TestDecodePayloadRejectsBadData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data map[string]any
	}{
		{"amount has the wrong type", map[string]any{"amount": true}},
		{"amount is not a decimal", map[string]any{"amount": "lots"}},
		{"missing amount", map[string]any{"payment_id": "pay-1"}},
		{"negative amount", map[string]any{"amount": "-5.00"}},
		{"too many places", map[string]any{"amount": "1.005"}},
	}

	for _, tt := range tests {
		evt := validEvent()
		evt.Data = tt.data
		if _, err := DecodePayload[PaymentReceivedPayload](evt); !errors.Is(err, ErrInvalidPayload) {
			t.Fatalf("%s: expected ErrInvalidPayload, got %v", tt.name, err)
		}
	}
}

func TestPayloadValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload interface{ Validate() error }
		wantErr bool
	}{
		{"negative delta", BalanceAdjustedPayload{Delta: MustMoney("-12.50")}, false},
		{"zero delta", BalanceAdjustedPayload{}, true},
		{"fund closed without balance", FundClosedPayload{FundID: "reserve"}, false},
		{"fund closed with bad balance", FundClosedPayload{FundID: "reserve", FinalBalance: decimal.NewNullDecimal(decimal.RequireFromString("1.001"))}, true},
		{"reversal", LedgerEntryReversedPayload{EntryID: "le-1", Amount: MustMoney("10.00")}, false},
		{"reversal without entry", LedgerEntryReversedPayload{Amount: MustMoney("10.00")}, true},
		{"refund of zero", PaymentRefundedPayload{}, true},
	}

	for _, tt := range tests {
		err := tt.payload.Validate()
		if tt.wantErr && !errors.Is(err, ErrInvalidPayload) {
			t.Fatalf("%s: expected ErrInvalidPayload, got %v", tt.name, err)
		}
		if !tt.wantErr && err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
	}
}

func TestEncodePayload(t *testing.T) {
	t.Parallel()

	data, err := EncodePayload(BalanceAdjustedPayload{Delta: MustMoney("-12.50")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := data["delta"].(string); !ok {
		t.Fatalf("expected delta encoded as a string, got %v", data)
	}
	if _, ok := data["reason"]; ok {
		t.Fatalf("expected empty reason to be omitted, got %v", data)
	}

	evt := validEvent()
	evt.Data = data
	decoded, err := DecodePayload[BalanceAdjustedPayload](evt)
	if err != nil || !decoded.Delta.Equal(MustMoney("-12.50")) {
		t.Fatalf("expected encoded payload to decode, got %+v err=%v", decoded, err)
	}
}
