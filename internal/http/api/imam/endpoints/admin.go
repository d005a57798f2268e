// Package endpoints serves the imam admin screens. Changes to the timetable,
// profile and onboarding are accepted as async operations that clients poll.
package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/async"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/countdown"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/directory"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api/imam/packets"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/imam"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
)

type AdminController struct {
	admin *imam.Admin
}

// AdminModule mounts every imam endpoint.
func AdminModule(admin *imam.Admin) api.Module {
	ctl := &AdminController{admin: admin}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/masjids/:id/dashboard", ctl.getDashboard)

		c.GET("/masjids/:id/announcements", ctl.listAnnouncements)
		c.POST("/masjids/:id/announcements", ctl.createAnnouncement)
		c.DELETE("/masjids/:id/announcements/:announcement_id", ctl.deleteAnnouncement)

		c.GET("/masjids/:id/prayer-times", ctl.getPrayerTimes)
		c.PUT("/masjids/:id/prayer-times", ctl.updatePrayerTimes)

		c.GET("/masjids/:id/profile", ctl.getProfile)
		c.PUT("/masjids/:id/profile", ctl.updateProfile)

		c.POST("/onboarding/validate", ctl.validateStep)
		c.POST("/onboarding", ctl.submitOnboarding)
		c.GET("/onboarding", ctl.listRegistrations)

		c.GET("/operations/:id", ctl.getOperation)
		c.DELETE("/operations/:id", ctl.cancelOperation)
	})
}

// adminError maps imam package errors to responses.
func adminError(op string, err error) *api.Error {
	var stepErr *imam.StepError
	switch {
	case errors.Is(err, directory.ErrNotFound):
		return api.NewError(http.StatusNotFound, "masjid not found")
	case errors.Is(err, imam.ErrAnnouncementNotFound), errors.Is(err, async.ErrNotFound):
		return api.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, imam.ErrTitleRequired),
		errors.Is(err, imam.ErrMessageRequired),
		errors.Is(err, imam.ErrInvalidProfile),
		errors.Is(err, imam.ErrUnknownPrayer),
		errors.Is(err, imam.ErrTimesOutOfOrder),
		errors.Is(err, countdown.ErrInvalidClock),
		errors.As(err, &stepErr):
		return api.NewError(http.StatusBadRequest, err.Error())
	}
	log.Error().Err(err).Msgf("[imam] %s: unexpected error", op)
	return api.NewError(http.StatusInternalServerError, "could not complete request")
}

func (a *AdminController) getDashboard(ctx *gin.Context) (any, *api.Error) {
	d, err := a.admin.Dashboard(ctx.Param("id"))
	if err != nil {
		return nil, adminError("dashboard", err)
	}
	return d, nil
}

func (a *AdminController) listAnnouncements(ctx *gin.Context) (any, *api.Error) {
	list, err := a.admin.Board.List(ctx.Param("id"))
	if err != nil {
		return nil, adminError("list announcements", err)
	}
	return list, nil
}

func (a *AdminController) createAnnouncement(ctx *gin.Context) (any, *api.Error) {
	var req packets.CreateAnnouncementRequest
	if apiErr := api.BindJSON(ctx, &req); apiErr != nil {
		return nil, apiErr
	}

	created, err := a.admin.Board.Create(ctx, ctx.Param("id"), imam.AnnouncementInput{
		Title:    req.Title,
		Message:  req.Message,
		IsUrgent: req.IsUrgent,
	})
	if err != nil {
		return nil, adminError("create announcement", err)
	}
	log.Info().Str("masjid_id", ctx.Param("id")).Str("announcement_id", created.ID).Msg("[imam] announcement published")
	return api.Created(created), nil
}

func (a *AdminController) deleteAnnouncement(ctx *gin.Context) (any, *api.Error) {
	if err := a.admin.Board.Delete(ctx.Param("id"), ctx.Param("announcement_id")); err != nil {
		return nil, adminError("delete announcement", err)
	}
	return gin.H{"deleted": true}, nil
}

func (a *AdminController) getPrayerTimes(ctx *gin.Context) (any, *api.Error) {
	tt, err := a.admin.Timetables.Get(ctx.Param("id"))
	if err != nil {
		return nil, adminError("get prayer times", err)
	}
	return tt, nil
}

func (a *AdminController) updatePrayerTimes(ctx *gin.Context) (any, *api.Error) {
	var req packets.UpdatePrayerTimesRequest
	if apiErr := api.BindJSON(ctx, &req); apiErr != nil {
		return nil, apiErr
	}

	times := map[string]string{}
	for name, value := range map[string]string{
		model.Fajr:    req.Fajr,
		model.Dhuhr:   req.Dhuhr,
		model.Asr:     req.Asr,
		model.Maghrib: req.Maghrib,
		model.Isha:    req.Isha,
	} {
		if value != "" {
			times[name] = value
		}
	}

	op, err := a.admin.SaveTimetable(ctx.Param("id"), imam.TimetableUpdate{Times: times, JumaTime: req.JumaTime})
	if err != nil {
		return nil, adminError("update prayer times", err)
	}
	return api.Accepted(op), nil
}

func (a *AdminController) getProfile(ctx *gin.Context) (any, *api.Error) {
	p, err := a.admin.Profiles.Get(ctx.Param("id"))
	if err != nil {
		return nil, adminError("get profile", err)
	}
	return p, nil
}

func (a *AdminController) updateProfile(ctx *gin.Context) (any, *api.Error) {
	var req packets.UpdateProfileRequest
	if apiErr := api.BindJSON(ctx, &req); apiErr != nil {
		return nil, apiErr
	}

	op, err := a.admin.SaveProfile(ctx.Param("id"), imam.Profile{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	})
	if err != nil {
		return nil, adminError("update profile", err)
	}
	return api.Accepted(op), nil
}

func application(req packets.OnboardingRequest) imam.Application {
	return imam.Application{
		MasjidName: req.MasjidName,
		Address:    req.Address,
		Phone:      req.Phone,
		Email:      req.Email,
		Lat:        req.Lat,
		Lng:        req.Lng,
		ImamName:   req.ImamName,
		ImamEmail:  req.ImamEmail,
		ImamPhone:  req.ImamPhone,
	}
}

// validateStep lets the wizard check one step before moving on.
func (a *AdminController) validateStep(ctx *gin.Context) (any, *api.Error) {
	var req packets.ValidateStepRequest
	if apiErr := api.BindJSON(ctx, &req); apiErr != nil {
		return nil, apiErr
	}

	resp := packets.StepValidationResponse{Step: req.Step, Valid: true}
	err := imam.ValidateStep(req.Step, application(req.Application))
	var stepErr *imam.StepError
	switch {
	case errors.As(err, &stepErr):
		resp.Valid = false
		resp.Field = stepErr.Field
		resp.Error = stepErr.Error()
	case err != nil:
		return nil, adminError("validate step", err)
	}
	return resp, nil
}

func (a *AdminController) submitOnboarding(ctx *gin.Context) (any, *api.Error) {
	var req packets.OnboardingRequest
	if apiErr := api.BindJSON(ctx, &req); apiErr != nil {
		return nil, apiErr
	}

	op, err := a.admin.Submit(application(req))
	if err != nil {
		return nil, adminError("submit onboarding", err)
	}
	return api.Accepted(op), nil
}

func (a *AdminController) listRegistrations(ctx *gin.Context) (any, *api.Error) {
	return a.admin.Registry.List(), nil
}

func (a *AdminController) getOperation(ctx *gin.Context) (any, *api.Error) {
	op, err := a.admin.Operation(ctx.Param("id"))
	if err != nil {
		return nil, adminError("get operation", err)
	}
	return op, nil
}

func (a *AdminController) cancelOperation(ctx *gin.Context) (any, *api.Error) {
	op, err := a.admin.CancelOperation(ctx.Param("id"))
	if err != nil {
		return nil, adminError("cancel operation", err)
	}
	return op, nil
}
