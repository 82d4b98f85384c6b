package handlers

import (
	"checkfree/services/auth"
	"checkfree/services/user"
)

// HandlerBundle groups the endpoint handlers and the services their
// middleware needs.
type HandlerBundle struct {
	AuthService auth.AuthService
	UserService user.UserService

	Auth         *AuthHandler
	User         *UserHandler
	Availability *AvailabilityHandler
	Appointment  *AppointmentHandler
}
