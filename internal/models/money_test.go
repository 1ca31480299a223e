package models

import (
	"encoding/json"
	"testing"
)

func mustMoney(t *testing.T, s string) Money {
	t.Helper()
	m, err := MoneyFromString(s)
	if err != nil {
		t.Fatalf("MoneyFromString(%q) returned error: %v", s, err)
	}
	return m
}

func TestMoneyMarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2.5", "2.50"},
		{"2.50", "2.50"},
		{"15", "15.00"},
		{"17.99", "17.99"},
		{"100", "100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := json.Marshal(mustMoney(t, tt.in))
			if err != nil {
				t.Fatalf("Marshal returned error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal(%s) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestMoneyUnmarshalJSON(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`12.5`), &m); err != nil {
		t.Fatalf("Unmarshal number returned error: %v", err)
	}
	if m.StringFixed(2) != "12.50" {
		t.Errorf("unmarshaled value = %s, want 12.50", m.StringFixed(2))
	}

	if err := json.Unmarshal([]byte(`"3.99"`), &m); err != nil {
		t.Fatalf("Unmarshal string returned error: %v", err)
	}
	if m.StringFixed(2) != "3.99" {
		t.Errorf("unmarshaled value = %s, want 3.99", m.StringFixed(2))
	}
}

func TestMoneyHasMaxPlaces(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"5", true},
		{"5.9", true},
		{"5.99", true},
		{"5.999", false},
	}

	for _, tt := range tests {
		if got := mustMoney(t, tt.in).HasMaxPlaces(2); got != tt.want {
			t.Errorf("HasMaxPlaces(2) for %s = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOrderItemTotalIsExact(t *testing.T) {
	item := OrderItem{MenuItemID: 1, MenuItemName: "Pizza", Quantity: 3, UnitPrice: mustMoney(t, "0.10")}
	if got := item.ItemTotal().StringFixed(2); got != "0.30" {
		t.Errorf("ItemTotal = %s, want 0.30", got)
	}
}
