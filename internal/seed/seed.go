// Package seed populates an empty database with demo accounts, workers and
// thirty days of case history so the dashboards render something on first
// boot.
package seed

import (
	"log"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"health-bridge-server/internal/models"
)

type seedWorker struct {
	uniqueID string
	name     string
	age      int
	gender   string
	origin   string
	phone    string
	district string
	lat, lng float64
}

var demoWorkers = []seedWorker{
	{"MHB-2024-001", "Ramesh Kumar", 32, "Male", "Bihar", "9876543210", "Ernakulam", 9.9312, 76.2673},
	{"MHB-2024-002", "Suresh Yadav", 28, "Male", "Uttar Pradesh", "9876543211", "Thiruvananthapuram", 8.5241, 76.9366},
	{"MHB-2024-003", "Priya Devi", 25, "Female", "Jharkhand", "9876543212", "Kozhikode", 11.2588, 75.7804},
	{"MHB-2024-004", "Mohan Singh", 35, "Male", "Bihar", "9876543213", "Thrissur", 10.5276, 76.2144},
	{"MHB-2024-005", "Lakshmi Kumari", 29, "Female", "West Bengal", "9876543214", "Kollam", 8.8932, 76.6141},
	{"MHB-2024-006", "Anil Sharma", 40, "Male", "Rajasthan", "9876543215", "Palakkad", 10.7867, 76.6548},
	{"MHB-2024-007", "Sunita Das", 27, "Female", "Odisha", "9876543216", "Malappuram", 11.0510, 76.0711},
	{"MHB-2024-008", "Vijay Patel", 33, "Male", "Gujarat", "9876543217", "Kannur", 11.8745, 75.3704},
}

var demoDiagnoses = []struct {
	diagnosis  string
	medication models.MedicationItem
}{
	{"Dengue Fever", models.MedicationItem{Name: "Paracetamol", Dosage: "500mg", Frequency: "TDS"}},
	{"Malaria", models.MedicationItem{Name: "Artemether", Dosage: "80mg", Frequency: "BD"}},
	{"Typhoid", models.MedicationItem{Name: "Ciprofloxacin", Dosage: "500mg", Frequency: "BD"}},
	{"Respiratory Infection", models.MedicationItem{Name: "Amoxicillin", Dosage: "500mg", Frequency: "TDS"}},
	{"Gastroenteritis", models.MedicationItem{Name: "ORS", Dosage: "1 sachet", Frequency: "QID"}},
	{"Skin Infection", models.MedicationItem{Name: "Clotrimazole", Dosage: "Apply twice", Frequency: "BD"}},
}

// DemoData seeds demo users, workers, prescriptions and medicine requests.
// It is a no-op when the users table already has rows.
func DemoData(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		log.Println("Demo data already exists")
		return nil
	}

	log.Println("Seeding demo data...")

	doctors := []models.User{
		{Email: "doctor@hospital.kerala.gov.in", Name: "Dr. Arun Kumar", Role: models.RoleDoctor,
			HospitalName: "General Hospital Ernakulam", HospitalID: "GHE001"},
		{Email: "doctor2@hospital.kerala.gov.in", Name: "Dr. Priya Menon", Role: models.RoleDoctor,
			HospitalName: "District Hospital Thiruvananthapuram", HospitalID: "DHT001"},
	}
	for i := range doctors {
		if err := doctors[i].SetPassword("doctor123"); err != nil {
			return err
		}
		if err := db.Create(&doctors[i]).Error; err != nil {
			return err
		}
	}

	government := models.User{Email: "health.officer@kerala.gov.in", Name: "Health Commissioner", Role: models.RoleGovernment}
	if err := government.SetPassword("gov123"); err != nil {
		return err
	}
	if err := db.Create(&government).Error; err != nil {
		return err
	}

	workers := make([]models.Worker, 0, len(demoWorkers))
	for _, w := range demoWorkers {
		age := w.age
		lat, lng := w.lat, w.lng
		worker := models.Worker{
			UniqueID:        w.uniqueID,
			Name:            w.name,
			Age:             &age,
			Gender:          w.gender,
			OriginState:     w.origin,
			Phone:           w.phone,
			CurrentDistrict: w.district,
			Latitude:        &lat,
			Longitude:       &lng,
		}
		if err := db.Create(&worker).Error; err != nil {
			return err
		}
		workers = append(workers, worker)
	}

	// Spread 50 demo prescriptions over the last 30 days
	for i := 0; i < 50; i++ {
		doctor := doctors[rand.Intn(len(doctors))]
		worker := workers[rand.Intn(len(workers))]
		entry := demoDiagnoses[rand.Intn(len(demoDiagnoses))]
		daysAgo := rand.Intn(30)

		medications, err := models.MedicationList([]models.MedicationItem{entry.medication})
		if err != nil {
			return err
		}

		prescription := models.Prescription{
			WorkerID:     &worker.ID,
			DoctorID:     doctor.ID,
			Diagnosis:    entry.diagnosis,
			Medications:  medications,
			HospitalName: "Demo Hospital",
			District:     worker.CurrentDistrict,
			Latitude:     worker.Latitude,
			Longitude:    worker.Longitude,
		}
		if err := db.Create(&prescription).Error; err != nil {
			return err
		}

		createdAt := time.Now().Add(-time.Duration(daysAgo) * 24 * time.Hour)
		if err := db.Model(&prescription).Update("created_at", createdAt).Error; err != nil {
			return err
		}
	}

	// Two demo medicine requests for the demand summary
	quantity := func(n int) *int { return &n }
	demoRequests := []struct {
		status    models.MedicineRequestStatus
		medicines []models.MedicationItem
	}{
		{models.MedicineStatusPending, []models.MedicationItem{
			{Name: "Paracetamol", Quantity: quantity(500)},
			{Name: "ORS Sachets", Quantity: quantity(1000)},
		}},
		{models.MedicineStatusApproved, []models.MedicationItem{
			{Name: "Artemether", Quantity: quantity(200)},
		}},
	}
	for _, r := range demoRequests {
		medicines, err := models.MedicationList(r.medicines)
		if err != nil {
			return err
		}
		request := models.MedicineRequest{
			DoctorID:     doctors[0].ID,
			HospitalName: doctors[0].HospitalName,
			District:     "Ernakulam",
			Medicines:    medicines,
			Status:       r.status,
		}
		if err := db.Create(&request).Error; err != nil {
			return err
		}
	}

	log.Printf("Demo data seeded: %d workers, 50 prescriptions", len(workers))
	return nil
}
