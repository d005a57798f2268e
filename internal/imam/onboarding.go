package imam

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api"
)

const (
	StepMasjidInfo = 1
	StepLocation   = 2
	StepImamInfo   = 3
	StepCount      = 3
)

var ErrUnknownStep = errors.New("unknown onboarding step")

// stepFields lists the Application fields each wizard step collects.
var stepFields = map[int][]string{
	StepMasjidInfo: {"MasjidName", "Address", "Phone", "Email"},
	StepLocation:   {"Lat", "Lng"},
	StepImamInfo:   {"ImamName", "ImamEmail", "ImamPhone"},
}

var validate = validator.New()

// StepError reports the fields that block a step.
type StepError struct {
	Step  int
	Field string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %s", e.Step, api.ValidationMessage(e.Err))
}

func (e *StepError) Unwrap() error { return e.Err }

type Application struct {
	MasjidName string   `json:"masjidName" validate:"required"`
	Address    string   `json:"address" validate:"required"`
	Phone      string   `json:"phone"`
	Email      string   `json:"email" validate:"omitempty,email"`
	Lat        *float64 `json:"lat" validate:"required,latitude"`
	Lng        *float64 `json:"lng" validate:"required,longitude"`
	ImamName   string   `json:"imamName" validate:"required"`
	ImamEmail  string   `json:"imamEmail" validate:"required,email"`
	ImamPhone  string   `json:"imamPhone" validate:"required"`
}

// ValidateStep checks the fields a single step collects.
func ValidateStep(step int, app Application) error {
	fields, ok := stepFields[step]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownStep, step)
	}

	err := validate.StructPartial(app, fields...)
	if err == nil {
		return nil
	}
	stepErr := &StepError{Step: step, Err: err}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		stepErr.Field = lowerFirst(verrs[0].Field())
	}
	return stepErr
}

// Validate runs every step in order.
func Validate(app Application) error {
	for step := 1; step <= StepCount; step++ {
		if err := ValidateStep(step, app); err != nil {
			return err
		}
	}
	return nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

type Registration struct {
	ID          string      `json:"id"`
	Application Application `json:"application"`
	Status      string      `json:"status"`
	SubmittedAt time.Time   `json:"submittedAt"`
}

// Registry records submitted onboarding applications awaiting review.
type Registry struct {
	mu        sync.RWMutex
	pending   []Registration
	sanitizer *Sanitizer
}

func NewRegistry() *Registry {
	return &Registry{sanitizer: NewSanitizer()}
}

// Prepare cleans and validates app and returns the registration to store.
func (r *Registry) Prepare(app Application) (Registration, error) {
	app.MasjidName = r.sanitizer.Text(app.MasjidName)
	app.Address = r.sanitizer.Text(app.Address)
	app.Phone = r.sanitizer.Text(app.Phone)
	app.Email = r.sanitizer.Text(app.Email)
	app.ImamName = r.sanitizer.Text(app.ImamName)
	app.ImamEmail = r.sanitizer.Text(app.ImamEmail)
	app.ImamPhone = r.sanitizer.Text(app.ImamPhone)

	if err := Validate(app); err != nil {
		return Registration{}, err
	}
	return Registration{
		ID:          uuid.NewString(),
		Application: app,
		Status:      "pending-review",
		SubmittedAt: time.Now().UTC(),
	}, nil
}

func (r *Registry) Store(reg Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, reg)
}

func (r *Registry) List() []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Registration{}, r.pending...)
}
