package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/gustalxpes/foto-nutri/internal/goals"
	"github.com/gustalxpes/foto-nutri/internal/storage"
	"github.com/gustalxpes/foto-nutri/internal/storage/memory"
)

func seedMeal(t *testing.T, store *memory.MemoryStorage, userID string, eatenAt time.Time, calories float64) {
	t.Helper()

	meal := &storage.Meal{
		UserID:   userID,
		EatenAt:  eatenAt,
		MealType: "almoço",
		Servings: 1,
		Calories: calories,
		Carbs:    40,
		Protein:  20,
		Fat:      10,
		Fiber:    5,
		Foods:    []string{"arroz", "frango"},
	}
	if err := store.CreateMeal(context.Background(), meal); err != nil {
		t.Fatalf("failed to seed meal: %v", err)
	}
}

func TestGenerateWeeklyCSV(t *testing.T) {
	store := memory.New()
	gen := NewGenerator(store, goals.NewService(store))

	// 2026-08-12 is a Wednesday; 2026-08-08 is a Saturday (not a diet day
	// under the default Monday-Friday set).
	wednesday := time.Date(2026, 8, 12, 12, 30, 0, 0, time.UTC)
	saturday := time.Date(2026, 8, 8, 13, 0, 0, 0, time.UTC)

	seedMeal(t, store, "u1", wednesday, 500)
	seedMeal(t, store, "u1", saturday, 300)

	data, err := gen.GenerateWeekly(context.Background(), "u1", FormatCSV, wednesday, time.UTC)
	if err != nil {
		t.Fatalf("GenerateWeekly failed: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}

	if len(records) != 8 {
		t.Fatalf("expected header + 7 rows, got %d records", len(records))
	}
	if records[0][0] != "date" || records[0][7] != "diet_day" {
		t.Errorf("unexpected header: %v", records[0])
	}

	if records[1][0] != "2026-08-06" {
		t.Errorf("expected first row 2026-08-06, got %s", records[1][0])
	}
	if records[7][0] != "2026-08-12" {
		t.Errorf("expected last row 2026-08-12, got %s", records[7][0])
	}

	// Saturday row: calories counted, not a diet day
	satRow := records[3]
	if satRow[0] != "2026-08-08" || satRow[1] != "300" || satRow[7] != "false" {
		t.Errorf("unexpected Saturday row: %v", satRow)
	}

	// Wednesday row: diet day with one meal
	wedRow := records[7]
	if wedRow[1] != "500" || wedRow[6] != "1" || wedRow[7] != "true" {
		t.Errorf("unexpected Wednesday row: %v", wedRow)
	}

	// Empty day carries zeros
	if records[2][1] != "0" || records[2][6] != "0" {
		t.Errorf("expected zero totals on empty day, got %v", records[2])
	}
}

func TestGenerateWeeklyPDF(t *testing.T) {
	store := memory.New()
	gen := NewGenerator(store, goals.NewService(store))

	seedMeal(t, store, "u1", time.Date(2026, 8, 12, 12, 0, 0, 0, time.UTC), 650)

	data, err := gen.GenerateWeekly(context.Background(), "u1", FormatPDF,
		time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC), time.UTC)
	if err != nil {
		t.Fatalf("GenerateWeekly failed: %v", err)
	}

	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("expected PDF magic bytes, got %q", data[:min(8, len(data))])
	}
}

func TestGenerateWeeklyUnknownFormat(t *testing.T) {
	store := memory.New()
	gen := NewGenerator(store, goals.NewService(store))

	_, err := gen.GenerateWeekly(context.Background(), "u1", "xlsx", time.Now(), time.UTC)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}
