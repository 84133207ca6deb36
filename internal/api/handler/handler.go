package handler

import (
	"aura/backend/internal/analysis"
	"aura/backend/internal/auth"
	"aura/backend/internal/catalog"
	"aura/backend/internal/complaint"
	"aura/backend/internal/feed"
	"aura/backend/internal/localization"
	"aura/backend/internal/reservation"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handler holds the services behind the HTTP routes.
type Handler struct {
	Auth         *auth.Service
	Complaints   *complaint.Service
	Reservations *reservation.Service
	Catalog      *catalog.Catalog
	Analyzer     *analysis.Analyzer
	Hub          *feed.Hub
	Localizer    *localization.Localizer
	Log          *zap.SugaredLogger

	upgrader websocket.Upgrader
}

func NewHandler(
	authService *auth.Service,
	complaints *complaint.Service,
	reservations *reservation.Service,
	cat *catalog.Catalog,
	analyzer *analysis.Analyzer,
	hub *feed.Hub,
	loc *localization.Localizer,
	log *zap.SugaredLogger,
) *Handler {
	if loc == nil {
		loc = localization.Default()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Handler{
		Auth:         authService,
		Complaints:   complaints,
		Reservations: reservations,
		Catalog:      cat,
		Analyzer:     analyzer,
		Hub:          hub,
		Localizer:    loc,
		Log:          log,
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
