package handlers

import (
	"testing"
	"time"
)

func TestBuildHeatmap_MergesIdenticalCoordinates(t *testing.T) {
	rows := []heatmapRow{
		{Latitude: 9.9312, Longitude: 76.2673, Diagnosis: "Dengue Fever", District: "Ernakulam"},
		{Latitude: 9.9312, Longitude: 76.2673, Diagnosis: "Malaria", District: "Ernakulam"},
		{Latitude: 9.9312, Longitude: 76.2673, Diagnosis: "Dengue Fever", District: "Ernakulam"},
		{Latitude: 8.5241, Longitude: 76.9366, Diagnosis: "Typhoid", District: "Thiruvananthapuram"},
	}

	points := buildHeatmap(rows)
	if len(points) != 2 {
		t.Fatalf("expected 2 merged points, got %d", len(points))
	}

	var ernakulam *HeatmapPoint
	for i := range points {
		if points[i].District == "Ernakulam" {
			ernakulam = &points[i]
		}
	}
	if ernakulam == nil {
		t.Fatal("expected a point for Ernakulam")
	}
	if ernakulam.Weight != 3 {
		t.Fatalf("expected weight 3, got %d", ernakulam.Weight)
	}
	if len(ernakulam.Diagnoses) != 2 {
		t.Fatalf("expected 2 distinct diagnoses, got %v", ernakulam.Diagnoses)
	}
}

func TestBuildHeatmap_NearbyCoordinatesStaySeparate(t *testing.T) {
	rows := []heatmapRow{
		{Latitude: 9.9312, Longitude: 76.2673, Diagnosis: "Dengue Fever"},
		{Latitude: 9.9313, Longitude: 76.2673, Diagnosis: "Dengue Fever"},
	}

	points := buildHeatmap(rows)
	if len(points) != 2 {
		t.Fatalf("expected nearby but distinct coordinates to stay separate, got %d points", len(points))
	}
	for _, p := range points {
		if p.Weight != 1 {
			t.Fatalf("expected weight 1, got %d", p.Weight)
		}
	}
}

func TestBuildHeatmap_Empty(t *testing.T) {
	points := buildHeatmap(nil)
	if points == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(points) != 0 {
		t.Fatalf("expected no points, got %d", len(points))
	}
}

func TestPivotTrends(t *testing.T) {
	day1 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	rows := []trendRow{
		{Date: day2, Diagnosis: "Malaria", Count: 2},
		{Date: day1, Diagnosis: "Dengue Fever", Count: 5},
		{Date: day1, Diagnosis: "Malaria", Count: 1},
	}

	trends := pivotTrends(rows)
	if len(trends) != 2 {
		t.Fatalf("expected 2 dated entries, got %d", len(trends))
	}

	// Ordered by date ascending
	if trends[0]["date"] != "2024-06-01" || trends[1]["date"] != "2024-06-02" {
		t.Fatalf("expected ascending date order, got %v then %v", trends[0]["date"], trends[1]["date"])
	}

	if trends[0]["Dengue Fever"] != int64(5) || trends[0]["Malaria"] != int64(1) {
		t.Fatalf("unexpected counts on first day: %v", trends[0])
	}

	// A diagnosis absent on a date is omitted, not zero
	if _, present := trends[1]["Dengue Fever"]; present {
		t.Fatal("expected Dengue Fever to be omitted on the second day")
	}
	if trends[1]["Malaria"] != int64(2) {
		t.Fatalf("unexpected counts on second day: %v", trends[1])
	}
}

func TestPivotTrends_Empty(t *testing.T) {
	trends := pivotTrends(nil)
	if len(trends) != 0 {
		t.Fatalf("expected no trend entries, got %d", len(trends))
	}
}

func TestLookbackWindow(t *testing.T) {
	cases := []struct {
		token string
		want  time.Duration
		ok    bool
	}{
		{"24h", 24 * time.Hour, true},
		{"7d", 7 * 24 * time.Hour, true},
		{"30d", 30 * 24 * time.Hour, true},
		{"all", 0, false},
		{"", 0, false},
		{"90d", 0, false},
	}

	for _, tc := range cases {
		got, ok := lookbackWindow(tc.token)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("lookbackWindow(%q) = (%v, %v), want (%v, %v)", tc.token, got, ok, tc.want, tc.ok)
		}
	}

	// Wider tokens must cover strictly more time
	day, _ := lookbackWindow("24h")
	week, _ := lookbackWindow("7d")
	month, _ := lookbackWindow("30d")
	if !(day < week && week < month) {
		t.Fatalf("expected 24h < 7d < 30d, got %v, %v, %v", day, week, month)
	}
}
