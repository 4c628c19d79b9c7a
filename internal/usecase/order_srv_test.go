package usecase

import (
	"testing"
	"time"

	"car-rental/internal/data/entity"
)

func TestDaysBetween(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{"exactly one day", base.Add(24 * time.Hour), 1},
		{"partial day rounds up", base.Add(25 * time.Hour), 2},
		{"three full days", base.Add(72 * time.Hour), 3},
		{"under a day", base.Add(3 * time.Hour), 1},
		{"zero span", base, 1},
		{"negative span", base.Add(-5 * time.Hour), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := daysBetween(base, tt.end); got != tt.want {
				t.Errorf("daysBetween = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveDaysPrefersRentalDays(t *testing.T) {
	pickup := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	ret := pickup.Add(48 * time.Hour)
	rentalDays := 7

	order := &entity.Order{RentalDays: &rentalDays, PickupAt: &pickup, ReturnAt: &ret}
	if got := resolveDays(order); got == nil || *got != 7 {
		t.Errorf("resolveDays = %v, want 7", got)
	}
}

func TestResolveDaysFallsBackToSpan(t *testing.T) {
	pickup := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	ret := pickup.Add(48 * time.Hour)

	order := &entity.Order{PickupAt: &pickup, ReturnAt: &ret}
	if got := resolveDays(order); got == nil || *got != 2 {
		t.Errorf("resolveDays = %v, want 2", got)
	}
}

func TestResolveDaysNilWithoutSchedule(t *testing.T) {
	if got := resolveDays(&entity.Order{}); got != nil {
		t.Errorf("resolveDays = %v, want nil", got)
	}
}

func TestComputePricing(t *testing.T) {
	rentalDays := 3
	order := &entity.Order{RentalDays: &rentalDays}
	car := &entity.Car{PricePerDay: 150, Currency: "USD"}

	pricing := computePricing(order, car)
	if pricing == nil {
		t.Fatal("pricing = nil, want snapshot")
	}
	if pricing.TotalUSD != 450 {
		t.Errorf("total = %v, want 450", pricing.TotalUSD)
	}
	if pricing.Days == nil || *pricing.Days != 3 {
		t.Errorf("days = %v, want 3", pricing.Days)
	}
	if pricing.PricePerDay == nil || *pricing.PricePerDay != 150 {
		t.Errorf("price per day = %v, want 150", pricing.PricePerDay)
	}
}

func TestComputePricingCurrencyFallback(t *testing.T) {
	rentalDays := 1
	order := &entity.Order{RentalDays: &rentalDays}
	car := &entity.Car{PricePerDay: 99}

	pricing := computePricing(order, car)
	if pricing == nil || pricing.Currency != "USD" {
		t.Errorf("currency = %v, want USD fallback", pricing)
	}
}

func TestComputePricingNilCases(t *testing.T) {
	rentalDays := 2
	if got := computePricing(&entity.Order{RentalDays: &rentalDays}, nil); got != nil {
		t.Error("pricing without vehicle should be nil")
	}
	if got := computePricing(&entity.Order{}, &entity.Car{PricePerDay: 100}); got != nil {
		t.Error("pricing without resolvable days should be nil")
	}
}

func TestApplySlotEnd(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	current := start.Add(time.Hour)

	tests := []struct {
		name        string
		start       *time.Time
		current     *time.Time
		raw         string
		wantChanged bool
		wantErr     bool
	}{
		{"moves end later", &start, &current, "2025-06-01T13:00:00Z", true, false},
		{"same end is a no-op", &start, &current, "2025-06-01T11:00:00Z", false, false},
		{"sets end when absent", &start, nil, "2025-06-01T12:00:00Z", true, false},
		{"rejects end before start", &start, &current, "2025-06-01T09:00:00Z", false, true},
		{"rejects end equal to start", &start, &current, "2025-06-01T10:00:00Z", false, true},
		{"rejects missing start", nil, nil, "2025-06-01T12:00:00Z", false, true},
		{"rejects garbage timestamp", &start, &current, "next tuesday", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, changed, err := applySlotEnd(tt.start, tt.current, tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
			if end == nil {
				t.Fatal("end = nil")
			}
		})
	}
}

func TestPricedStatus(t *testing.T) {
	priced := []entity.OrderStatus{entity.OrderStatusPlanned, entity.OrderStatusDone}
	unpriced := []entity.OrderStatus{entity.OrderStatusPending, entity.OrderStatusPlanning, entity.OrderStatusCanceled}

	for _, st := range priced {
		if !pricedStatus(st) {
			t.Errorf("pricedStatus(%s) = false, want true", st)
		}
	}
	for _, st := range unpriced {
		if pricedStatus(st) {
			t.Errorf("pricedStatus(%s) = true, want false", st)
		}
	}
}
