package goals

import (
	"context"
	"testing"

	"github.com/gustalxpes/foto-nutri/internal/storage/memory"
)

func TestGetOrDefaultReturnsDefaults(t *testing.T) {
	service := NewService(memory.New())

	dto, err := service.GetOrDefault(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !dto.IsDefault {
		t.Fatal("expected is_default=true for a user without saved goals")
	}
	if dto.DailyCalories != 2000 || dto.DailyCarbs != 250 || dto.DailyProtein != 150 ||
		dto.DailyFat != 65 || dto.DailyFiber != 30 {
		t.Fatalf("unexpected default targets: %+v", dto)
	}
	if len(dto.DietDays) != 5 || dto.DietDays[0] != 1 || dto.DietDays[4] != 5 {
		t.Fatalf("expected Mon-Fri default diet days, got %v", dto.DietDays)
	}
}

func TestUpdateThenGet(t *testing.T) {
	service := NewService(memory.New())
	ctx := context.Background()

	_, err := service.Update(ctx, "user-1", &UpdateGoalsRequest{
		DailyCalories: 1800,
		DailyCarbs:    200,
		DailyProtein:  140,
		DailyFat:      60,
		DailyFiber:    25,
		DietDays:      []int{0, 6},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dto, err := service.GetOrDefault(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.IsDefault {
		t.Fatal("expected is_default=false after saving goals")
	}
	if dto.DailyCalories != 1800 {
		t.Fatalf("expected 1800 calories, got %v", dto.DailyCalories)
	}
	if len(dto.DietDays) != 2 || dto.DietDays[0] != 0 || dto.DietDays[1] != 6 {
		t.Fatalf("expected weekend diet days, got %v", dto.DietDays)
	}
}

func TestUpdateNilDietDaysKeepsDefault(t *testing.T) {
	service := NewService(memory.New())

	dto, err := service.Update(context.Background(), "user-1", &UpdateGoalsRequest{
		DailyCalories: 2200,
		DailyCarbs:    260,
		DailyProtein:  160,
		DailyFat:      70,
		DailyFiber:    32,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dto.DietDays) != 5 {
		t.Fatalf("expected default diet days when omitted, got %v", dto.DietDays)
	}
}

func TestUpdateValidation(t *testing.T) {
	cases := []struct {
		name string
		req  UpdateGoalsRequest
	}{
		{"zero calories", UpdateGoalsRequest{DailyCalories: 0, DailyCarbs: 250, DailyProtein: 150, DailyFat: 65, DailyFiber: 30}},
		{"negative protein", UpdateGoalsRequest{DailyCalories: 2000, DailyCarbs: 250, DailyProtein: -1, DailyFat: 65, DailyFiber: 30}},
		{"diet day out of range", UpdateGoalsRequest{DailyCalories: 2000, DailyCarbs: 250, DailyProtein: 150, DailyFat: 65, DailyFiber: 30, DietDays: []int{7}}},
		{"duplicate diet day", UpdateGoalsRequest{DailyCalories: 2000, DailyCarbs: 250, DailyProtein: 150, DailyFat: 65, DailyFiber: 30, DietDays: []int{1, 1}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.req.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
