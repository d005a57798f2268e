package imam

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/async"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/directory"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/events"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
)

func newAdmin(t *testing.T) (*Admin, *events.Bus) {
	t.Helper()
	bus := events.NewBus()
	runner := async.NewRunner(10*time.Millisecond, nil)
	t.Cleanup(runner.Close)
	return NewAdmin(directory.New(directory.Catalog()), bus, runner, 15*time.Millisecond, nil), bus
}

func TestSanitizerStripsMarkup(t *testing.T) {
	s := NewSanitizer()
	assert.Equal(t, "Iftar & dinner", s.Text("  <b>Iftar</b> &amp; dinner<script>alert(1)</script> "))
	assert.Equal(t, "", s.Text("<img src=x onerror=alert(1)>"))
}

func TestBoardCreatePrependsAndBroadcasts(t *testing.T) {
	a, bus := newAdmin(t)
	l := bus.Subscribe("", events.TopicAnnouncementPublished)
	defer bus.Unsubscribe(l)

	a.Board.now = func() time.Time { return time.Date(2024, time.March, 16, 9, 0, 0, 0, time.UTC) }
	a.Board.newID = func() string { return "new" }

	created, err := a.Board.Create(context.Background(), "1", AnnouncementInput{
		Title:    "<h1>Eid Prayer</h1>",
		Message:  "Eid prayer at 8 AM",
		IsUrgent: true,
	})
	require.NoError(t, err)
	assert.Equal(t, model.Announcement{ID: "new", Title: "Eid Prayer", Message: "Eid prayer at 8 AM", Date: "3/16/2024", IsUrgent: true}, created)

	list, err := a.Board.List("1")
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, "new", list[0].ID)

	select {
	case e := <-l.C:
		var payload events.AnnouncementPublished
		require.NoError(t, e.Decode(&payload))
		assert.Equal(t, "1", payload.MasjidID)
		assert.Equal(t, "Eid Prayer", payload.Announcement.Title)
	case <-time.After(time.Second):
		t.Fatal("announcement was not broadcast")
	}
}

func TestBoardCreateRequiresTitleAndMessage(t *testing.T) {
	a, _ := newAdmin(t)
	ctx := context.Background()

	_, err := a.Board.Create(ctx, "1", AnnouncementInput{Title: "<p></p>", Message: "text"})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = a.Board.Create(ctx, "1", AnnouncementInput{Title: "Title", Message: "  "})
	assert.ErrorIs(t, err, ErrMessageRequired)

	_, err = a.Board.Create(ctx, "99", AnnouncementInput{Title: "Title", Message: "text"})
	assert.ErrorIs(t, err, directory.ErrNotFound)

	assert.Equal(t, 3, a.Board.Count("1"))
}

func TestBoardDelete(t *testing.T) {
	a, _ := newAdmin(t)

	require.NoError(t, a.Board.Delete("1", "2"))
	list, err := a.Board.List("1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "1", list[0].ID)
	assert.Equal(t, "3", list[1].ID)

	assert.ErrorIs(t, a.Board.Delete("1", "2"), ErrAnnouncementNotFound)
}

func TestToDisplay(t *testing.T) {
	cases := map[string]string{
		"05:30":   "5:30 AM",
		"00:05":   "12:05 AM",
		"12:45":   "12:45 PM",
		"16:30":   "4:30 PM",
		"4:30 PM": "4:30 PM",
	}
	for in, want := range cases {
		got, err := ToDisplay(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "25:00", "7", "16:30 PM", "ab:cd"} {
		_, err := ToDisplay(bad)
		assert.Error(t, err, bad)
	}
}

func TestSaveTimetableAppliesAfterDelay(t *testing.T) {
	a, _ := newAdmin(t)

	op, err := a.SaveTimetable("1", TimetableUpdate{
		Times:    map[string]string{model.Asr: "16:45"},
		JumaTime: "13:15",
	})
	require.NoError(t, err)
	assert.Equal(t, async.Pending, op.Status)
	assert.Equal(t, KindPrayerTimes, op.Kind)

	before, err := a.Timetables.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "4:30 PM", before.Timings[2].Time)

	a.runner.Wait()

	after, err := a.Timetables.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "4:45 PM", after.Timings[2].Time)
	assert.Equal(t, "1:15 PM", after.JumaTime)

	done, err := a.Operation(op.ID)
	require.NoError(t, err)
	assert.Equal(t, async.Succeeded, done.Status)
}

func TestSaveTimetableRejectsBadInput(t *testing.T) {
	a, _ := newAdmin(t)

	_, err := a.SaveTimetable("1", TimetableUpdate{Times: map[string]string{"Tahajjud": "03:00"}})
	assert.ErrorIs(t, err, ErrUnknownPrayer)

	_, err = a.SaveTimetable("1", TimetableUpdate{Times: map[string]string{model.Fajr: "29:00"}})
	assert.Error(t, err)

	_, err = a.SaveTimetable("nope", TimetableUpdate{})
	assert.ErrorIs(t, err, directory.ErrNotFound)
}

func TestSaveTimetableRejectsOutOfOrderTimes(t *testing.T) {
	a, _ := newAdmin(t)

	_, err := a.SaveTimetable("1", TimetableUpdate{Times: map[string]string{model.Isha: "05:00"}})
	require.ErrorIs(t, err, ErrTimesOutOfOrder)
	assert.Contains(t, err.Error(), "Isha is not after Maghrib")

	_, err = a.SaveTimetable("1", TimetableUpdate{Times: map[string]string{
		model.Dhuhr: "16:30",
	}})
	assert.ErrorIs(t, err, ErrTimesOutOfOrder, "equal to Asr")

	_, err = a.SaveTimetable("1", TimetableUpdate{Times: map[string]string{
		model.Fajr:  "13:00",
		model.Dhuhr: "12:00",
	}})
	assert.ErrorIs(t, err, ErrTimesOutOfOrder)

	tt, err := a.Timetables.Prepare("1", TimetableUpdate{Times: map[string]string{
		model.Fajr:    "04:10",
		model.Dhuhr:   "13:05",
		model.Asr:     "17:00",
		model.Maghrib: "20:30",
		model.Isha:    "22:00",
	}})
	require.NoError(t, err)
	assert.Equal(t, "10:00 PM", tt.Timings[4].Time)
}

func TestCancelledSaveNeverApplies(t *testing.T) {
	bus := events.NewBus()
	runner := async.NewRunner(time.Hour, nil)
	t.Cleanup(runner.Close)
	a := NewAdmin(directory.New(directory.Catalog()), bus, runner, time.Hour, nil)

	op, err := a.SaveProfile("1", Profile{Name: "Renamed", Address: "1 New Road"})
	require.NoError(t, err)

	_, err = a.CancelOperation(op.ID)
	require.NoError(t, err)
	runner.Wait()

	got, err := a.Operation(op.ID)
	require.NoError(t, err)
	assert.Equal(t, async.Cancelled, got.Status)

	p, err := a.Profiles.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Islamic Center of Downtown", p.Name)
}

func TestSaveProfileValidation(t *testing.T) {
	a, _ := newAdmin(t)

	_, err := a.SaveProfile("1", Profile{Address: "x"})
	assert.ErrorIs(t, err, ErrInvalidProfile)
	assert.Contains(t, err.Error(), "name is required")
	_, err = a.SaveProfile("1", Profile{Name: "x"})
	assert.ErrorIs(t, err, ErrInvalidProfile)
	assert.Contains(t, err.Error(), "address is required")
	_, err = a.SaveProfile("1", Profile{Name: "x", Address: "y", Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidProfile)
	assert.Contains(t, err.Error(), "email must be a valid email address")

	_, err = a.SaveProfile("1", Profile{Name: "ICD", Address: "123 Main Street", Phone: ""})
	require.NoError(t, err)
	a.runner.Wait()

	p, err := a.Profiles.Get("1")
	require.NoError(t, err)
	assert.Equal(t, Profile{Name: "ICD", Address: "123 Main Street"}, p)
}

func coord(v float64) *float64 { return &v }

func TestValidateStep(t *testing.T) {
	app := Application{
		MasjidName: "Masjid Noor",
		Address:    "1 Road",
		Lat:        coord(40.7),
		Lng:        coord(-74),
		ImamName:   "Imam Yusuf",
		ImamEmail:  "yusuf@example.org",
		ImamPhone:  "555",
	}
	require.NoError(t, Validate(app))

	missing := app
	missing.Address = ""
	var se *StepError
	require.True(t, errors.As(ValidateStep(StepMasjidInfo, missing), &se))
	assert.Equal(t, "address", se.Field)

	noLat := app
	noLat.Lat = nil
	require.True(t, errors.As(ValidateStep(StepLocation, noLat), &se))
	assert.Equal(t, "lat", se.Field)
	assert.Equal(t, "step 2: lat is required", se.Error())

	farLng := app
	farLng.Lng = coord(190)
	require.True(t, errors.As(ValidateStep(StepLocation, farLng), &se))
	assert.Equal(t, "lng", se.Field)
	assert.Equal(t, "step 2: lng must be a valid longitude", se.Error())

	badEmail := app
	badEmail.Email = "nope"
	require.True(t, errors.As(ValidateStep(StepMasjidInfo, badEmail), &se))
	assert.Equal(t, "email", se.Field)

	noPhone := app
	noPhone.ImamPhone = ""
	require.True(t, errors.As(ValidateStep(StepImamInfo, noPhone), &se))
	assert.Equal(t, "imamPhone", se.Field)

	assert.ErrorIs(t, ValidateStep(4, app), ErrUnknownStep)
}

func TestSubmitStoresRegistration(t *testing.T) {
	a, _ := newAdmin(t)

	_, err := a.Submit(Application{MasjidName: "x"})
	require.Error(t, err)

	op, err := a.Submit(Application{
		MasjidName: "<i>Masjid Noor</i>",
		Address:    "1 Road",
		Lat:        coord(40.7),
		Lng:        coord(-74),
		ImamName:   "Imam Yusuf",
		ImamEmail:  "yusuf@example.org",
		ImamPhone:  "555",
	})
	require.NoError(t, err)
	assert.Equal(t, KindOnboarding, op.Kind)
	assert.Empty(t, a.Registry.List())

	a.runner.Wait()
	regs := a.Registry.List()
	require.Len(t, regs, 1)
	assert.Equal(t, "Masjid Noor", regs[0].Application.MasjidName)
	assert.Equal(t, "pending-review", regs[0].Status)
}

func TestValidateStepAcceptsEquator(t *testing.T) {
	app := Application{
		MasjidName: "Masjid Kampala",
		Address:    "Old Kampala Road",
		Lat:        coord(0),
		Lng:        coord(32.5),
		ImamName:   "Imam Musa",
		ImamEmail:  "musa@example.org",
		ImamPhone:  "555",
	}
	require.NoError(t, ValidateStep(StepLocation, app))

	reg, err := NewRegistry().Prepare(app)
	require.NoError(t, err)
	require.NotNil(t, reg.Application.Lat)
	assert.Equal(t, 0.0, *reg.Application.Lat)
}

func TestDashboard(t *testing.T) {
	a, _ := newAdmin(t)
	a.now = func() time.Time { return time.Date(2024, time.March, 15, 14, 0, 0, 0, time.Local) }

	d, err := a.Dashboard("1")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, d.Status)
	assert.Equal(t, BaselineSubscribers, d.Subscribers)
	assert.Equal(t, 3, d.Announcements)
	assert.Equal(t, "Islamic Center of Downtown", d.Profile.Name)
	assert.Equal(t, model.Asr, d.UpcomingPrayer.Name)
	assert.True(t, d.UpcomingPrayer.IsNext)
	assert.Equal(t, "1:30 PM", d.JumaTime)

	a.now = func() time.Time { return time.Date(2024, time.March, 15, 22, 0, 0, 0, time.Local) }
	d, err = a.Dashboard("1")
	require.NoError(t, err)
	assert.Equal(t, model.Fajr, d.UpcomingPrayer.Name)

	_, err = a.Dashboard("404")
	assert.ErrorIs(t, err, directory.ErrNotFound)
}

func TestOverlayShowsImamEdits(t *testing.T) {
	a, _ := newAdmin(t)
	ctx := context.Background()

	_, err := a.Board.Create(ctx, "2", AnnouncementInput{Title: "Open house", Message: "Saturday"})
	require.NoError(t, err)
	_, err = a.SaveTimetable("2", TimetableUpdate{Times: map[string]string{model.Fajr: "05:05"}})
	require.NoError(t, err)
	a.runner.Wait()

	dir := directory.New(directory.Catalog())
	m, err := dir.Get("2")
	require.NoError(t, err)

	out := a.Overlay([]model.Masjid{m})
	require.Len(t, out, 1)
	assert.Equal(t, "Open house", out[0].Announcements[0].Title)
	assert.Equal(t, "5:05 AM", out[0].Timings[0].Time)
	assert.Equal(t, m.Name, out[0].Name)
}
