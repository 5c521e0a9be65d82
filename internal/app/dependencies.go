package app

import (
	"database/sql"

	"github.com/unimind/unimind/internal/auth"
	"github.com/unimind/unimind/internal/config"
	"github.com/unimind/unimind/internal/event_bus"
	"github.com/unimind/unimind/internal/utils"
	"github.com/unimind/unimind/pkg/board"
	"github.com/unimind/unimind/pkg/calendarview"
	"github.com/unimind/unimind/pkg/chat"
	"github.com/unimind/unimind/pkg/event"
	"github.com/unimind/unimind/pkg/google"
	"github.com/unimind/unimind/pkg/journal"
	"github.com/unimind/unimind/pkg/resources"
	"github.com/unimind/unimind/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	AuthTokenValidator auth.TokenValidator

	EventBus *event_bus.EventBus
	Clock    utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	EventRepo    event.Repository
	EventService *event.Service
	EventHandler *event.Handler

	CalendarViewHandler *calendarview.Handler

	BoardRepo    board.Repository
	BoardService *board.Service
	BoardHandler *board.Handler

	JournalRepo    journal.Repository
	JournalService *journal.Service
	JournalHandler *journal.Handler

	ChatRepo    chat.Repository
	ChatService *chat.Service
	ChatHandler *chat.Handler

	ResourcesService *resources.Service
	ResourcesHandler *resources.Handler

	GoogleAuth     *google.GoogleAuth
	GoogleImporter *google.Importer
	GoogleHandler  *google.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.AuthTokenValidator = auth.NewTokenValidator(cfg.Auth)

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.EventRepo = event.NewRepository(db)
	deps.EventService = event.NewService(deps.EventRepo, deps.EventBus)
	deps.EventHandler = event.NewHandler(deps.EventService)

	deps.CalendarViewHandler = calendarview.NewHandler(deps.EventService, deps.Clock)

	deps.BoardRepo = board.NewRepository(db, cfg.Board.XpGoal)
	deps.BoardService = board.NewService(deps.BoardRepo, board.NewRepoXpAwarder(deps.BoardRepo),
		deps.EventBus, deps.Clock, cfg.Board.ChallengeXp, cfg.Board.BoardTileSize)
	deps.BoardHandler = board.NewHandler(deps.BoardService)

	deps.JournalRepo = journal.NewRepository(db)
	deps.JournalService = journal.NewService(deps.JournalRepo, deps.EventBus, deps.Clock)
	deps.JournalHandler = journal.NewHandler(deps.JournalService)

	deps.ChatRepo = chat.NewRepository(db)
	deps.ChatService = chat.NewService(deps.ChatRepo, chat.NewEmotionClient(cfg.Chat),
		chat.NewOpenRouterClient(cfg.Chat), deps.EventService, deps.Clock)
	deps.ChatHandler = chat.NewHandler(deps.ChatService)

	deps.ResourcesService = resources.NewService(resources.NewLocationClient(cfg.Places, cfg.Google.MapsApiKey))
	deps.ResourcesHandler = resources.NewHandler(deps.ResourcesService)

	deps.GoogleAuth = google.NewGoogleAuth(db, cfg)
	deps.GoogleImporter = google.NewImporter(deps.GoogleAuth, deps.EventService)
	deps.GoogleHandler = google.NewHandler(deps.GoogleImporter, deps.Clock)

	return deps
}
