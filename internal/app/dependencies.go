package app

import (
	"database/sql"
	"strconv"

	"github.com/kalendo/kalendo/internal/config"
	"github.com/kalendo/kalendo/internal/event_bus"
	"github.com/kalendo/kalendo/internal/utils"
	"github.com/kalendo/kalendo/pkg/calendar"
	"github.com/kalendo/kalendo/pkg/navigator"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus *event_bus.EventBus

	CalendarRepository *calendar.RepositoryImpl
	CalendarService    *calendar.Service
	CalendarHandler    *calendar.Handler
	ICSExporter        *calendar.ICSExporter

	GridHandler *calendar.GridHandler

	Navigator        *navigator.Navigator
	NavigatorHandler *navigator.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.Bus = event_bus.NewEventBus()

	deps.CalendarRepository = calendar.NewRepository(db)
	deps.CalendarService = calendar.NewService(deps.CalendarRepository, deps.Bus)
	deps.CalendarHandler = calendar.NewHandler(deps.CalendarService)
	deps.ICSExporter = calendar.NewICSExporter(deps.CalendarService, deps.Clock)

	deps.GridHandler = calendar.NewGridHandler(deps.CalendarService)

	deps.Navigator = navigator.New(deps.Clock)
	deps.NavigatorHandler = navigator.NewHandler(deps.Navigator, deps.CalendarService)

	return deps
}

// seedSnapshot builds the initial aggregate installed on first run.
func seedSnapshot(cfg config.Seed) calendar.Snapshot {
	seed := calendar.NewSnapshot()
	for i, a := range cfg.Assignees {
		seed = seed.WithAssignee(calendar.Assignee{
			ID:     seedAssigneeID(i),
			Name:   a.Name,
			Avatar: a.Avatar,
		})
	}
	for _, t := range cfg.Tags {
		seed = seed.WithTag(calendar.Tag{Name: t.Name, Color: t.Color})
	}
	return seed
}

func seedAssigneeID(index int) string {
	// Stable ids for seeded assignees keep re-seeded installations
	// comparable across resets.
	return "seed-" + strconv.Itoa(index+1)
}
