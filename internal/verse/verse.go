package verse

import (
	"time"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
)

var verses = []model.Verse{
	{
		Text:        "وَمَن يَتَّقِ اللَّهَ يَجْعَل لَّهُ مَخْرَجًا",
		Translation: "And whoever fears Allah - He will make for him a way out",
		Source:      "Quran 65:2",
	},
	{
		Text:        "وَاذْكُرُوا اللَّهَ كَثِيرًا لَّعَلَّكُمْ تُفْلِحُونَ",
		Translation: "And remember Allah often that you may succeed",
		Source:      "Quran 8:45",
	},
	{
		Text:        "إِنَّ مَعَ الْعُسْرِ يُسْرًا",
		Translation: "Indeed, with hardship comes ease",
		Source:      "Quran 94:5",
	},
	{
		Text:        "وَمَا تَوْفِيقِي إِلَّا بِاللَّهِ",
		Translation: "And my success is not but through Allah",
		Source:      "Quran 11:88",
	},
	{
		Text:        "رَبَّنَا آتِنَا فِي الدُّنْيَا حَسَنَةً وَفِي الْآخِرَةِ حَسَنَةً",
		Translation: "Our Lord, give us good in this world and good in the Hereafter",
		Source:      "Quran 2:201",
	},
}

// ForDay picks the verse for day; every visitor sees the same verse on the same date.
// January 1st is day zero.
func ForDay(day time.Time) model.Verse {
	return verses[(day.YearDay()-1)%len(verses)]
}
