// Package imam holds the state edited from the imam admin screens:
// announcements, prayer timetable, masjid profile and onboarding requests.
// Nothing here is authoritative; it lives for the life of the process.
package imam

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/directory"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/events"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/metrics"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
)

var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrTitleRequired        = errors.New("title is required")
	ErrMessageRequired      = errors.New("message is required")
)

type AnnouncementInput struct {
	Title    string
	Message  string
	IsUrgent bool
}

// Board keeps each masjid's announcements, newest first.
type Board struct {
	mu        sync.RWMutex
	posts     map[string][]model.Announcement
	dir       *directory.Directory
	sanitizer *Sanitizer
	bus       *events.Bus
	metrics   metrics.Recorder
	now       func() time.Time
	newID     func() string
}

// NewBoard starts from the announcements already listed in dir.
func NewBoard(dir *directory.Directory, bus *events.Bus, rec metrics.Recorder) *Board {
	if rec == nil {
		rec = metrics.Nop{}
	}
	b := &Board{
		posts:     map[string][]model.Announcement{},
		dir:       dir,
		sanitizer: NewSanitizer(),
		bus:       bus,
		metrics:   rec,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, m := range dir.All() {
		b.posts[m.ID] = m.Announcements
	}
	return b
}

func (b *Board) List(masjidID string) ([]model.Announcement, error) {
	if !b.dir.Exists(masjidID) {
		return nil, directory.ErrNotFound
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]model.Announcement{}, b.posts[masjidID]...), nil
}

// Create sanitises the input, prepends the announcement and broadcasts it.
func (b *Board) Create(ctx context.Context, masjidID string, in AnnouncementInput) (model.Announcement, error) {
	if !b.dir.Exists(masjidID) {
		return model.Announcement{}, directory.ErrNotFound
	}

	a := model.Announcement{
		ID:       b.newID(),
		Title:    b.sanitizer.Text(in.Title),
		Message:  b.sanitizer.Text(in.Message),
		IsUrgent: in.IsUrgent,
	}
	if a.Title == "" {
		return model.Announcement{}, ErrTitleRequired
	}
	if a.Message == "" {
		return model.Announcement{}, ErrMessageRequired
	}
	now := b.now()
	a.Date = fmt.Sprintf("%d/%d/%d", int(now.Month()), now.Day(), now.Year())

	b.mu.Lock()
	b.posts[masjidID] = append([]model.Announcement{a}, b.posts[masjidID]...)
	b.mu.Unlock()

	b.metrics.AnnouncementChanged("created")
	if b.bus != nil {
		payload := events.AnnouncementPublished{MasjidID: masjidID, Announcement: a}
		if err := b.bus.Emit(ctx, events.TopicAnnouncementPublished, "", payload); err != nil {
			log.Error().Err(err).Str("masjid_id", masjidID).Msg("[imam] could not broadcast announcement")
		}
	}
	return a, nil
}

func (b *Board) Delete(masjidID, id string) error {
	if !b.dir.Exists(masjidID) {
		return directory.ErrNotFound
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	posts := b.posts[masjidID]
	for i, a := range posts {
		if a.ID == id {
			b.posts[masjidID] = append(posts[:i:i], posts[i+1:]...)
			b.metrics.AnnouncementChanged("deleted")
			return nil
		}
	}
	return ErrAnnouncementNotFound
}

// Count is the number of live announcements for masjidID.
func (b *Board) Count(masjidID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.posts[masjidID])
}
