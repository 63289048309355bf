package handler

import (
	"time"

	"github.com/medreminder/internal/events"
	"github.com/medreminder/internal/service"
	"github.com/medreminder/internal/store"
	"github.com/rs/zerolog"
)

// Options 是构造 API 时的可选配置
type Options struct {
	WaterGoalML      int
	WaterIncrementML int
	DefaultLanguage  string
	Location         *time.Location
	Logger           zerolog.Logger
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	medicines       *service.MedicineService
	water           *service.WaterService
	profiles        *service.ProfileService
	sessions        *service.SessionService
	calendar        *service.CalendarService
	hub             *events.Hub
	defaultLanguage string
	log             zerolog.Logger
}

// NewAPI constructs a handler set with shared services.
func NewAPI(repo *store.Repository, hub *events.Hub, opts Options) *API {
	water := service.NewWaterService(repo, hub, opts.WaterGoalML, opts.WaterIncrementML)

	return &API{
		medicines:       service.NewMedicineService(repo, hub),
		water:           water,
		profiles:        service.NewProfileService(repo, hub),
		sessions:        service.NewSessionService(repo, hub, opts.Location),
		calendar:        service.NewCalendarService(repo, water),
		hub:             hub,
		defaultLanguage: opts.DefaultLanguage,
		log:             opts.Logger.With().Str("component", "http").Logger(),
	}
}
