package rules

import (
	"errors"
	"testing"

	"go-splendor/entities"
)

const (
	dia = entities.GemDiamond
	sap = entities.GemSapphire
	emr = entities.GemEmerald
	rub = entities.GemRuby
	onx = entities.GemOnyx
	gld = entities.GemGold
)

func fullBank() map[entities.Gem]int {
	return map[entities.Gem]int{dia: 4, sap: 4, emr: 4, rub: 4, onx: 4, gld: 5}
}

func TestValidatePartial(t *testing.T) {
	v := NewTokenValidator(0)

	tests := []struct {
		name  string
		picks map[entities.Gem]int
		bank  map[entities.Gem]int
		want  error
	}{
		{"single token", map[entities.Gem]int{dia: 1}, fullBank(), nil},
		{"empty is fine while staging", map[entities.Gem]int{}, fullBank(), nil},
		{"zero entries ignored", map[entities.Gem]int{dia: 1, sap: 0}, fullBank(), nil},
		{"three distinct", map[entities.Gem]int{dia: 1, sap: 1, rub: 1}, fullBank(), nil},
		{"two of a kind with bank at 4", map[entities.Gem]int{rub: 2}, fullBank(), nil},
		{"two of a kind with bank at 3", map[entities.Gem]int{rub: 2}, map[entities.Gem]int{rub: 3}, entities.ErrInvalidTwoTokenRule},
		{"gold requested", map[entities.Gem]int{gld: 1}, fullBank(), entities.ErrInvalidTokenAction},
		{"more than three", map[entities.Gem]int{dia: 1, sap: 1, rub: 1, emr: 1}, fullBank(), entities.ErrInvalidTokenAction},
		{"three of a kind", map[entities.Gem]int{onx: 3}, fullBank(), entities.ErrInvalidTokenAction},
		{"mixed double", map[entities.Gem]int{dia: 1, sap: 2}, fullBank(), entities.ErrInvalidTokenAction},
		{"bank empty for gem", map[entities.Gem]int{emr: 1}, map[entities.Gem]int{emr: 0}, entities.ErrNotEnoughBoardToken},
		{"bank missing gem", map[entities.Gem]int{dia: 1, emr: 1}, map[entities.Gem]int{dia: 2}, entities.ErrNotEnoughBoardToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePartial(tt.picks, tt.bank)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateFinal(t *testing.T) {
	v := NewTokenValidator(0)

	if err := v.ValidateFinal(map[entities.Gem]int{}, fullBank()); !errors.Is(err, entities.ErrInvalidTokenAction) {
		t.Fatalf("expected zero-pick commit to be invalid, got %v", err)
	}
	if err := v.ValidateFinal(map[entities.Gem]int{dia: 0}, fullBank()); !errors.Is(err, entities.ErrInvalidTokenAction) {
		t.Fatalf("expected all-zero commit to be invalid, got %v", err)
	}
	if err := v.ValidateFinal(map[entities.Gem]int{dia: 1, sap: 1, rub: 1}, fullBank()); err != nil {
		t.Fatalf("expected three distinct to commit, got %v", err)
	}
	if err := v.ValidateFinal(map[entities.Gem]int{rub: 2}, map[entities.Gem]int{rub: 3}); !errors.Is(err, entities.ErrInvalidTwoTokenRule) {
		t.Fatalf("expected two-token rule at commit, got %v", err)
	}
	if err := v.ValidateFinal(map[entities.Gem]int{gld: 1, dia: 1}, fullBank()); !errors.Is(err, entities.ErrInvalidTokenAction) {
		t.Fatalf("expected gold to be rejected at commit, got %v", err)
	}
}

func TestValidateIsRepeatable(t *testing.T) {
	v := NewTokenValidator(0)
	picks := map[entities.Gem]int{dia: 1, sap: 1}
	bank := fullBank()

	first := v.ValidatePartial(picks, bank)
	second := v.ValidatePartial(picks, bank)
	if first != nil || second != nil {
		t.Fatalf("expected same valid verdict twice, got %v / %v", first, second)
	}
	if len(picks) != 2 || bank[dia] != 4 {
		t.Fatal("validator must not mutate its inputs")
	}
}

func TestCustomDoubleTakeThreshold(t *testing.T) {
	v := NewTokenValidator(5)
	if err := v.ValidatePartial(map[entities.Gem]int{rub: 2}, fullBank()); !errors.Is(err, entities.ErrInvalidTwoTokenRule) {
		t.Fatalf("expected threshold 5 to reject bank of 4, got %v", err)
	}
}
