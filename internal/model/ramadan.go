package model

type RamadanDay struct {
	Date    string `json:"date"`
	Day     int    `json:"day"`
	Suhoor  string `json:"suhoor"`
	Iftar   string `json:"iftar"`
	Fajr    string `json:"fajr"`
	Maghrib string `json:"maghrib"`
	IsToday bool   `json:"isToday"`
}
