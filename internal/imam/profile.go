package imam

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/directory"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api"
)

var ErrInvalidProfile = errors.New("invalid profile")

type Profile struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
}

type Profiles struct {
	mu        sync.RWMutex
	byMasjid  map[string]Profile
	dir       *directory.Directory
	sanitizer *Sanitizer
}

func NewProfiles(dir *directory.Directory) *Profiles {
	p := &Profiles{byMasjid: map[string]Profile{}, dir: dir, sanitizer: NewSanitizer()}
	for _, m := range dir.All() {
		p.byMasjid[m.ID] = Profile{Name: m.Name, Address: m.Address, Phone: m.Phone, Email: m.Email}
	}
	return p
}

func (p *Profiles) Get(masjidID string) (Profile, error) {
	if !p.dir.Exists(masjidID) {
		return Profile{}, directory.ErrNotFound
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.byMasjid[masjidID], nil
}

// Prepare cleans and validates a profile edit without storing it.
func (p *Profiles) Prepare(masjidID string, in Profile) (Profile, error) {
	if !p.dir.Exists(masjidID) {
		return Profile{}, directory.ErrNotFound
	}

	out := Profile{
		Name:    p.sanitizer.Text(in.Name),
		Address: p.sanitizer.Text(in.Address),
		Phone:   p.sanitizer.Text(in.Phone),
		Email:   p.sanitizer.Text(in.Email),
	}
	if err := validate.Struct(out); err != nil {
		return Profile{}, fmt.Errorf("%w: %s", ErrInvalidProfile, api.ValidationMessage(err))
	}
	return out, nil
}

func (p *Profiles) Store(masjidID string, profile Profile) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byMasjid[masjidID] = profile
}
