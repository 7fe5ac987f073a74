package handlers

import (
	"testing"

	"gorm.io/datatypes"

	"health-bridge-server/internal/models"
)

func mustMedicines(t *testing.T, items []models.MedicationItem) datatypes.JSON {
	t.Helper()
	encoded, err := models.MedicationList(items)
	if err != nil {
		t.Fatalf("failed to encode medicines: %v", err)
	}
	return encoded
}

func intPtr(n int) *int { return &n }

func TestMergeDemand_SumsQuantitiesPerDistrict(t *testing.T) {
	rows := []demandRow{
		{District: "Ernakulam", Medicines: mustMedicines(t, []models.MedicationItem{
			{Name: "Paracetamol", Quantity: intPtr(500)},
		})},
		{District: "Ernakulam", Medicines: mustMedicines(t, []models.MedicationItem{
			{Name: "Paracetamol", Quantity: intPtr(200)},
			{Name: "Artemether", Quantity: intPtr(100)},
		})},
		{District: "Kozhikode", Medicines: mustMedicines(t, []models.MedicationItem{
			{Name: "ORS Sachets", Quantity: intPtr(1000)},
		})},
	}

	demand := mergeDemand(rows)
	if len(demand) != 2 {
		t.Fatalf("expected 2 districts, got %d", len(demand))
	}

	byDistrict := make(map[string]DistrictDemand, len(demand))
	for _, d := range demand {
		byDistrict[d.District] = d
	}

	ernakulam := byDistrict["Ernakulam"]
	if ernakulam.TotalRequests != 2 {
		t.Fatalf("expected 2 requests for Ernakulam, got %d", ernakulam.TotalRequests)
	}
	if ernakulam.Medicines["Paracetamol"] != 700 {
		t.Fatalf("expected Paracetamol 700, got %d", ernakulam.Medicines["Paracetamol"])
	}
	if ernakulam.Medicines["Artemether"] != 100 {
		t.Fatalf("expected Artemether 100, got %d", ernakulam.Medicines["Artemether"])
	}

	kozhikode := byDistrict["Kozhikode"]
	if kozhikode.TotalRequests != 1 || kozhikode.Medicines["ORS Sachets"] != 1000 {
		t.Fatalf("unexpected Kozhikode demand: %+v", kozhikode)
	}
}

func TestMergeDemand_MissingQuantityCountsAsOne(t *testing.T) {
	rows := []demandRow{
		{District: "Thrissur", Medicines: mustMedicines(t, []models.MedicationItem{
			{Name: "Amoxicillin"},
			{Name: "Amoxicillin", Quantity: intPtr(4)},
		})},
	}

	demand := mergeDemand(rows)
	if len(demand) != 1 {
		t.Fatalf("expected 1 district, got %d", len(demand))
	}
	if demand[0].Medicines["Amoxicillin"] != 5 {
		t.Fatalf("expected 5 (4 + default 1), got %d", demand[0].Medicines["Amoxicillin"])
	}
}

func TestMergeDemand_SkipsUndecodableRows(t *testing.T) {
	rows := []demandRow{
		{District: "Kollam", Medicines: datatypes.JSON(`not json`)},
		{District: "Kollam", Medicines: mustMedicines(t, []models.MedicationItem{
			{Name: "Ciprofloxacin", Quantity: intPtr(50)},
		})},
	}

	demand := mergeDemand(rows)
	if len(demand) != 1 {
		t.Fatalf("expected 1 district, got %d", len(demand))
	}
	if demand[0].TotalRequests != 1 {
		t.Fatalf("expected the bad row to be skipped, got %d requests", demand[0].TotalRequests)
	}
	if demand[0].Medicines["Ciprofloxacin"] != 50 {
		t.Fatalf("expected Ciprofloxacin 50, got %d", demand[0].Medicines["Ciprofloxacin"])
	}
}

func TestValidMedicineStatus(t *testing.T) {
	for _, valid := range []string{"pending", "approved", "fulfilled", "rejected"} {
		if !models.ValidMedicineStatus(valid) {
			t.Fatalf("expected %q to be a valid status", valid)
		}
	}
	for _, invalid := range []string{"done", "Pending", "", "cancelled"} {
		if models.ValidMedicineStatus(invalid) {
			t.Fatalf("expected %q to be rejected", invalid)
		}
	}
}

func TestValidEmergencyStatus(t *testing.T) {
	for _, valid := range []string{"pending", "in_progress", "resolved", "cancelled"} {
		if !models.ValidEmergencyStatus(valid) {
			t.Fatalf("expected %q to be a valid status", valid)
		}
	}
	for _, invalid := range []string{"closed", "IN_PROGRESS", ""} {
		if models.ValidEmergencyStatus(invalid) {
			t.Fatalf("expected %q to be rejected", invalid)
		}
	}
}
