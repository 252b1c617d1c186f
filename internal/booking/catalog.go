package booking

type Doctor struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Specialty    string   `json:"specialty"`
	Experience   int      `json:"experienceYears"`
	Rating       float64  `json:"rating"`
	TotalRatings int      `json:"totalRatings"`
	Price        int      `json:"price"`
	Availability []string `json:"availability"`
	Location     string   `json:"location"`
}

// Doctors is the fixed catalog shown on the doctors page. Prices are in INR.
var Doctors = []Doctor{
	{
		ID: 1, Name: "Dr. Sarah Johnson", Specialty: "Cardiologist", Experience: 12,
		Rating: 4.8, TotalRatings: 124, Price: 1500,
		Availability: []string{"10:00 AM", "2:00 PM", "4:30 PM"},
		Location:     "New Delhi, India",
	},
	{
		ID: 2, Name: "Dr. Michael Chen", Specialty: "Neurologist", Experience: 15,
		Rating: 4.9, TotalRatings: 98, Price: 2000,
		Availability: []string{"9:00 AM", "11:30 AM", "3:00 PM"},
		Location:     "Mumbai, India",
	},
	{
		ID: 3, Name: "Dr. Emily Williams", Specialty: "Pediatrician", Experience: 8,
		Rating: 4.7, TotalRatings: 87, Price: 1200,
		Availability: []string{"10:30 AM", "1:00 PM", "5:00 PM"},
		Location:     "Bangalore, India",
	},
	{
		ID: 4, Name: "Dr. James Wilson", Specialty: "Orthopedic Surgeon", Experience: 18,
		Rating: 4.6, TotalRatings: 156, Price: 2500,
		Availability: []string{"8:00 AM", "12:00 PM", "4:00 PM"},
		Location:     "Chennai, India",
	},
}

// TimeSlots are the dashboard booking slots.
var TimeSlots = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
}

var Reasons = []string{
	"Routine Checkup",
	"Follow-up",
	"Consultation",
	"Emergency",
	"Prescription Refill",
	"Test Results",
	"Other",
}

func FindDoctor(id int) (Doctor, bool) {
	for _, d := range Doctors {
		if d.ID == id {
			return d, true
		}
	}
	return Doctor{}, false
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
