package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name        string
		amount      int64
		expectError bool
	}{
		{name: "positive", amount: 100},
		{name: "one", amount: 1},
		{name: "max", amount: MaxAmount},
		{name: "zero", amount: 0, expectError: true},
		{name: "negative", amount: -5, expectError: true},
		{name: "above max", amount: MaxAmount + 1, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(tt.amount)

			if tt.expectError && !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("expected ErrInvalidAmount, got %v", err)
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateOdds(t *testing.T) {
	tests := []struct {
		name        string
		odds        int64
		expectError bool
	}{
		{name: "min", odds: MinOdds},
		{name: "max", odds: MaxOdds},
		{name: "zero", odds: 0, expectError: true},
		{name: "above max", odds: MaxOdds + 1, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOdds(tt.odds)

			if tt.expectError && !errors.Is(err, ErrInvalidOdds) {
				t.Errorf("expected ErrInvalidOdds, got %v", err)
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateStatement(t *testing.T) {
	tests := []struct {
		name        string
		statement   string
		expectError bool
	}{
		{name: "normal", statement: "the build will pass on the first try"},
		{name: "too short", statement: "no", expectError: true},
		{name: "whitespace only", statement: "     ", expectError: true},
		{name: "too long", statement: strings.Repeat("a", MaxStatementLength+1), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStatement(tt.statement)

			if tt.expectError && !errors.Is(err, ErrInvalidStatement) {
				t.Errorf("expected ErrInvalidStatement, got %v", err)
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateWindow(t *testing.T) {
	now := time.Now()

	if err := ValidateWindow(now, now.Add(time.Hour)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateWindow(now, now); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("expected ErrInvalidWindow for equal times, got %v", err)
	}
	if err := ValidateWindow(now, now.Add(-time.Hour)); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("expected ErrInvalidWindow for inverted window, got %v", err)
	}
}

func TestValidateUserID(t *testing.T) {
	if err := ValidateUserID("user-123"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateUserID(""); !errors.Is(err, ErrInvalidUserID) {
		t.Errorf("expected ErrInvalidUserID for empty id, got %v", err)
	}
	if err := ValidateUserID("   "); !errors.Is(err, ErrInvalidUserID) {
		t.Errorf("expected ErrInvalidUserID for blank id, got %v", err)
	}
	if err := ValidateUserID(strings.Repeat("x", MaxUserIDLength+1)); !errors.Is(err, ErrInvalidUserID) {
		t.Errorf("expected ErrInvalidUserID for oversized id, got %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name                  string
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{name: "defaults", limit: 0, offset: 0, wantLimit: 50, wantOffset: 0},
		{name: "negative offset", limit: 10, offset: -1, wantLimit: 10, wantOffset: 0},
		{name: "capped limit", limit: 5000, offset: 10, wantLimit: 1000, wantOffset: 10},
		{name: "passthrough", limit: 20, offset: 40, wantLimit: 20, wantOffset: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := ValidatePagination(tt.limit, tt.offset)

			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("expected (%d, %d), got (%d, %d)", tt.wantLimit, tt.wantOffset, limit, offset)
			}
		})
	}
}
