package model

type Verse struct {
	Text        string `json:"text"`
	Translation string `json:"translation"`
	Source      string `json:"source"`
}
