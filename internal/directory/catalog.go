package directory

import "github.com/Nixie-Tech-LLC/masjidfinder/internal/model"

func timings(fajr, dhuhr, asr, maghrib, isha string) []model.PrayerTime {
	return []model.PrayerTime{
		{Name: model.Fajr, Time: fajr},
		{Name: model.Dhuhr, Time: dhuhr},
		{Name: model.Asr, Time: asr},
		{Name: model.Maghrib, Time: maghrib},
		{Name: model.Isha, Time: isha},
	}
}

func juma(t string) *string { return &t }

// Catalog is the fixed set of listed masjids.
func Catalog() []model.Masjid {
	return []model.Masjid{
		{
			ID:       "1",
			Name:     "Islamic Center of Downtown",
			Address:  "123 Main Street, Downtown",
			Lat:      40.7173,
			Lng:      -74.0060,
			Distance: "0.5 km away",
			Phone:    "+1 (555) 123-4567",
			Email:    "info@icdowntown.org",
			Timings:  timings("5:30 AM", "12:45 PM", "4:30 PM", "6:50 PM", "8:15 PM"),
			JumaTime: juma("1:30 PM"),
			Announcements: []model.Announcement{
				{
					ID:      "1",
					Title:   "Ramadan Iftar Program",
					Message: "Join us for daily iftar during Ramadan. Dinner will be served 30 minutes before Maghrib.",
					Date:    "March 15, 2024",
				},
				{
					ID:      "2",
					Title:   "Friday Khutbah Topic",
					Message: "This week's khutbah will focus on the importance of community and unity.",
					Date:    "March 14, 2024",
				},
				{
					ID:       "3",
					Title:    "Emergency: Parking Update",
					Message:  "Due to construction, please use the parking lot on 5th Street this week.",
					Date:     "March 13, 2024",
					IsUrgent: true,
				},
			},
		},
		{
			ID:       "2",
			Name:     "Al-Madinah Masjid",
			Address:  "456 Oak Avenue, Midtown",
			Lat:      40.7236,
			Lng:      -74.0060,
			Distance: "1.2 km away",
			Phone:    "+1 (555) 234-5678",
			Email:    "contact@almadinah.org",
			Timings:  timings("5:28 AM", "12:43 PM", "4:28 PM", "6:45 PM", "8:10 PM"),
			JumaTime: juma("1:25 PM"),
			Announcements: []model.Announcement{
				{
					ID:      "1",
					Title:   "New Quran Classes",
					Message: "Registration is now open for adult Quran classes. Classes start next week.",
					Date:    "March 16, 2024",
				},
			},
		},
		{
			ID:            "3",
			Name:          "Central Mosque",
			Address:       "789 Elm Street, Uptown",
			Lat:           40.7317,
			Lng:           -74.0060,
			Distance:      "2.1 km away",
			Phone:         "+1 (555) 345-6789",
			Email:         "info@centralmosque.org",
			Timings:       timings("5:32 AM", "12:47 PM", "4:35 PM", "6:52 PM", "8:17 PM"),
			JumaTime:      juma("1:35 PM"),
			Announcements: []model.Announcement{},
		},
		{
			ID:       "4",
			Name:     "Masjid Al-Noor",
			Address:  "321 Pine Road, Eastside",
			Lat:      40.7128,
			Lng:      -73.9645,
			Distance: "3.5 km away",
			Phone:    "+1 (555) 456-7890",
			Email:    "contact@masjidalnoor.org",
			Timings:  timings("5:25 AM", "12:40 PM", "4:28 PM", "6:48 PM", "8:13 PM"),
			JumaTime: juma("1:20 PM"),
			Announcements: []model.Announcement{
				{
					ID:      "1",
					Title:   "Community Cleanup Day",
					Message: "We need volunteers for our monthly community cleanup. Join us this Saturday at 9 AM.",
					Date:    "March 17, 2024",
				},
			},
		},
	}
}
