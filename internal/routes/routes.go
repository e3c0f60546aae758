package routes

import (
	"sailbook/internal/handlers"
	"sailbook/internal/middleware"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	authHandler *handlers.AuthHandler,
	passwordHandler *handlers.PasswordHandler,
	accountHandler *handlers.AccountHandler,
	boatHandler *handlers.BoatHandler,
	waypointHandler *handlers.WaypointHandler,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logging)

	api := router.PathPrefix("/api").Subrouter()

	// --- public ---
	api.HandleFunc("/signup", authHandler.Signup).Methods("POST")
	api.HandleFunc("/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	api.HandleFunc("/verify-email", authHandler.VerifyEmail).Methods("GET")

	api.HandleFunc("/password/forgot", passwordHandler.Forgot).Methods("POST")
	api.HandleFunc("/password/reset", passwordHandler.Reset).Methods("POST")

	// --- session required ---
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.SessionAuth)

	protected.HandleFunc("/account", accountHandler.Profile).Methods("GET")
	protected.HandleFunc("/account", accountHandler.Delete).Methods("DELETE")
	protected.HandleFunc("/account/name", accountHandler.ChangeName).Methods("PATCH")
	protected.HandleFunc("/account/password", accountHandler.ChangePassword).Methods("PATCH")

	protected.HandleFunc("/boats", boatHandler.Create).Methods("POST")
	protected.HandleFunc("/boats", boatHandler.List).Methods("GET")
	protected.HandleFunc("/boats/{id}", boatHandler.Get).Methods("GET")
	protected.HandleFunc("/boats/{id}", boatHandler.Update).Methods("PUT")
	protected.HandleFunc("/boats/{id}", boatHandler.Delete).Methods("DELETE")
	protected.HandleFunc("/boats/{id}/waypoints", waypointHandler.ListByBoat).Methods("GET")

	protected.HandleFunc("/waypoints", waypointHandler.Create).Methods("POST")
	protected.HandleFunc("/waypoints/{id}", waypointHandler.Get).Methods("GET")
	protected.HandleFunc("/waypoints/{id}", waypointHandler.Update).Methods("PUT")
	protected.HandleFunc("/waypoints/{id}", waypointHandler.Delete).Methods("DELETE")
}
