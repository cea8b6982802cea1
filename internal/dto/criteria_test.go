package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bus-admin/internal/entities"
	"bus-admin/pkg/customvalidator"
)

func intp(v int) *int { return &v }

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, customvalidator.RegisterCustomValidations(v))
	return v
}

func TestTicketSearchEmptiness(t *testing.T) {
	assert.True(t, TicketSearchDTO{}.IsEmpty())
	assert.True(t, TicketSearchDTO{TicketCode: "   ", Phone: "\t"}.IsEmpty())
	assert.False(t, TicketSearchDTO{PassengerName: "Lan"}.IsEmpty())
}

func TestTicketSearchValuesAreTrimmed(t *testing.T) {
	v := TicketSearchDTO{TicketCode: " TICKET123 ", PassengerName: " "}.Values()
	assert.Equal(t, "TICKET123", v.Get("ticketCode"))
	assert.False(t, v.Has("passengerName"))
}

func TestReviewFilterNormalizeSwapsBounds(t *testing.T) {
	f := ReviewFilterDTO{MinRating: intp(4), MaxRating: intp(1), From: "2024-05-10", To: "2024-05-01"}.Normalize()
	assert.Equal(t, 1, *f.MinRating)
	assert.Equal(t, 4, *f.MaxRating)
	assert.Equal(t, "2024-05-01", f.From)
	assert.Equal(t, "2024-05-10", f.To)

	v := f.Values()
	assert.Equal(t, "1", v.Get("minRating"))
	assert.Equal(t, "4", v.Get("maxRating"))
}

func TestReviewFilterNameIsLocalOnly(t *testing.T) {
	f := ReviewFilterDTO{CustomerName: "nguyen"}
	assert.True(t, f.IsEmpty(), "a name alone cannot drive the backend filter")

	f.MinRating = intp(3)
	assert.False(t, f.Values().Has("customerName"))

	items := []entities.Review{
		{CustomerName: "NGUYEN Van A"},
		{CustomerName: "Tran Thi B"},
		{CustomerName: "Lê Nguyễn"},
	}
	got := f.Refine(items)
	require.Len(t, got, 1)
	assert.Equal(t, "NGUYEN Van A", got[0].CustomerName)

	assert.Len(t, ReviewFilterDTO{}.Refine(items), 3)
}

func TestTicketFilterNormalize(t *testing.T) {
	lo, hi := decimal.NewFromInt(500), decimal.NewFromInt(100)
	f := TicketFilterDTO{MinPrice: &lo, MaxPrice: &hi, DepartureFrom: "2024-02-01"}.Normalize()
	assert.Equal(t, "100", f.MinPrice.String())
	assert.Equal(t, "500", f.MaxPrice.String())

	v := f.Values()
	assert.Equal(t, "2024-02-01", v.Get("departureFrom"))
	assert.False(t, v.Has("departureTo"))
}

func TestBookingFilterEmptiness(t *testing.T) {
	assert.True(t, BookingFilterDTO{}.IsEmpty())
	assert.False(t, BookingFilterDTO{Status: "PENDING"}.IsEmpty())
}

func TestCriteriaValidation(t *testing.T) {
	v := newValidate(t)

	tests := []struct {
		name  string
		input interface{}
		ok    bool
	}{
		{"valid ticket search", TicketSearchDTO{TicketCode: "TICKET123", Phone: "+84 912 345 678"}, true},
		{"bad phone", TicketSearchDTO{Phone: "call me"}, false},
		{"bad ticket code", TicketSearchDTO{TicketCode: "T!"}, false},
		{"unknown ticket status", TicketFilterDTO{Status: "LOST"}, false},
		{"bad date", TicketFilterDTO{DepartureFrom: "01/02/2024"}, false},
		{"rating out of range", ReviewFilterDTO{MinRating: intp(6)}, false},
		{"rating bounds", ReviewFilterDTO{MinRating: intp(1), MaxRating: intp(5)}, true},
		{"booking status", BookingFilterDTO{Status: "REFUNDED"}, true},
		{"email recipients", BulkEmailDTO{Subject: "s", Body: "b", Recipients: []string{"a@example.com", "nope"}}, false},
		{"email view", BulkEmailDTO{Subject: "s", Body: "b", ViewID: "5f2b7f4e-8a3c-4d6e-9b1a-2c3d4e5f6a7b"}, true},
		{"mount kind", MountViewDTO{Kind: "trips"}, false},
		{"page", PageDTO{Page: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
