package app

import (
	"github.com/gorilla/mux"
	"github.com/unimind/unimind/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Calendar events
	r.HandleFunc("/api/calendar/events", deps.EventHandler.GetEvents).Methods("GET")
	r.HandleFunc("/api/calendar/events", deps.EventHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/calendar/events/{eventUid}", deps.EventHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/calendar/events/{eventUid}", deps.EventHandler.DeleteEvent).Methods("DELETE")

	// Calendar view
	r.HandleFunc("/api/calendar/view", deps.CalendarViewHandler.GetView).Methods("GET")
	r.HandleFunc("/api/calendar/view/navigate", deps.CalendarViewHandler.Navigate).Methods("POST")
	r.HandleFunc("/api/calendar/view/granularity", deps.CalendarViewHandler.ChangeGranularity).Methods("POST")

	// UniBoard
	r.HandleFunc("/api/uniboard", deps.BoardHandler.GetBoard).Methods("GET")
	r.HandleFunc("/api/uniboard/challenges", deps.BoardHandler.GetChallenges).Methods("GET")
	r.HandleFunc("/api/uniboard/challenges/{challengeId}/complete", deps.BoardHandler.CompleteChallenge).Methods("POST")
	r.HandleFunc("/api/xp", deps.BoardHandler.AwardXp).Methods("POST")

	// Journal
	r.HandleFunc("/api/journal", deps.JournalHandler.AddEntry).Methods("POST")
	r.HandleFunc("/api/journal", deps.JournalHandler.GetEntries).Methods("GET")

	// Chat
	r.HandleFunc("/api/chat", deps.ChatHandler.SendMessage).Methods("POST")
	r.HandleFunc("/api/chat/history", deps.ChatHandler.GetHistory).Methods("GET")

	// Resources
	r.HandleFunc("/api/resources", deps.ResourcesHandler.GetResources).Methods("GET")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user/current", deps.UserHandler.DeleteUser).Methods("DELETE")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")

	// Google integration
	r.HandleFunc("/api/integrations/google/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
	r.HandleFunc("/api/integrations/google/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/integrations/google/import", deps.GoogleHandler.ImportEvents).Methods("POST")
}
