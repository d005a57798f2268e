package packets

type StepValidationResponse struct {
	Step  int    `json:"step"`
	Valid bool   `json:"valid"`
	Field string `json:"field,omitempty"`
	Error string `json:"error,omitempty"`
}
