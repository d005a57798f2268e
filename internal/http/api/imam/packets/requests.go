package packets

type CreateAnnouncementRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Message  string `json:"message" binding:"required,max=4000"`
	IsUrgent bool   `json:"isUrgent"`
}

// UpdatePrayerTimesRequest takes times as sent by a time input ("16:30").
// Prayers left out keep their current time.
type UpdatePrayerTimesRequest struct {
	Fajr     string `json:"fajr"`
	Dhuhr    string `json:"dhuhr"`
	Asr      string `json:"asr"`
	Maghrib  string `json:"maghrib"`
	Isha     string `json:"isha"`
	JumaTime string `json:"jumaTime"`
}

type UpdateProfileRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Address string `json:"address" binding:"required,max=400"`
	Phone   string `json:"phone" binding:"max=40"`
	Email   string `json:"email" binding:"omitempty,email"`
}

type OnboardingRequest struct {
	MasjidName string   `json:"masjidName"`
	Address    string   `json:"address"`
	Phone      string   `json:"phone"`
	Email      string   `json:"email"`
	Lat        *float64 `json:"lat"`
	Lng        *float64 `json:"lng"`
	ImamName   string   `json:"imamName"`
	ImamEmail  string   `json:"imamEmail"`
	ImamPhone  string   `json:"imamPhone"`
}

type ValidateStepRequest struct {
	Step        int               `json:"step" binding:"required,min=1,max=3"`
	Application OnboardingRequest `json:"application"`
}
