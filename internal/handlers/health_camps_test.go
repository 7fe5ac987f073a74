package handlers

import (
	"strings"
	"testing"
	"time"

	"health-bridge-server/internal/models"
)

func floatPtr(f float64) *float64 { return &f }

func TestCampMapsLink(t *testing.T) {
	explicit := campMapsLink("https://maps.example/camp", floatPtr(9.93), floatPtr(76.26))
	if explicit != "https://maps.example/camp" {
		t.Fatalf("expected the explicit link to win, got %q", explicit)
	}

	derived := campMapsLink("", floatPtr(9.9312), floatPtr(76.2673))
	if derived != "https://www.google.com/maps/search/?api=1&query=9.9312,76.2673" {
		t.Fatalf("unexpected derived link: %q", derived)
	}

	if got := campMapsLink("", floatPtr(9.9312), nil); got != "" {
		t.Fatalf("expected empty link with missing longitude, got %q", got)
	}
	if got := campMapsLink("", nil, nil); got != "" {
		t.Fatalf("expected empty link for unlocatable camp, got %q", got)
	}
}

func TestCampNotification(t *testing.T) {
	camp := &models.HealthCamp{
		CampName:      "Monsoon Health Drive",
		CampType:      "Dengue Checkup",
		LocationName:  "Community Hall, Ernakulam",
		ScheduledDate: time.Date(2024, 7, 15, 10, 30, 0, 0, time.UTC),
		Description:   "Free screening for all registered workers.",
	}

	title, message := campNotification(camp, "https://maps.example/camp")

	if title != "New Health Camp: Monsoon Health Drive" {
		t.Fatalf("unexpected title: %q", title)
	}
	if !strings.Contains(message, "Dengue Checkup at Community Hall, Ernakulam") {
		t.Fatalf("message missing type/location: %q", message)
	}
	if !strings.Contains(message, "Monday, 15 July 2024, 10:30 AM") {
		t.Fatalf("message missing formatted date: %q", message)
	}
	if !strings.Contains(message, "Free screening for all registered workers.") {
		t.Fatalf("message missing description: %q", message)
	}
	if !strings.Contains(message, "Navigate to location: https://maps.example/camp") {
		t.Fatalf("message missing maps link: %q", message)
	}
}

func TestCampNotification_NoLinkNoDescription(t *testing.T) {
	camp := &models.HealthCamp{
		CampName:      "Eye Screening",
		CampType:      "Eye Camp",
		LocationName:  "PHC Kozhikode",
		ScheduledDate: time.Date(2024, 8, 1, 9, 0, 0, 0, time.UTC),
	}

	_, message := campNotification(camp, "")
	if strings.Contains(message, "Navigate to location") {
		t.Fatalf("expected no navigation line, got %q", message)
	}
}

func TestValidCampType(t *testing.T) {
	for _, valid := range models.CampTypes {
		if !models.ValidCampType(valid) {
			t.Fatalf("expected %q to be a valid camp type", valid)
		}
	}
	for _, invalid := range []string{"Yoga Camp", "general checkup", ""} {
		if models.ValidCampType(invalid) {
			t.Fatalf("expected %q to be rejected", invalid)
		}
	}
}

func TestCampTypes_ContainsExpectedSet(t *testing.T) {
	if len(models.CampTypes) != 8 {
		t.Fatalf("expected 8 camp types, got %d", len(models.CampTypes))
	}
	for _, want := range []string{"General Checkup", "Vaccination Drive", "Blood Donation"} {
		found := false
		for _, ct := range models.CampTypes {
			if ct == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected camp type %q to be present", want)
		}
	}
}
