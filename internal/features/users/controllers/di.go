package users_controllers

import (
	users_services "eagleflow/internal/features/users/services"

	"golang.org/x/time/rate"
)

var userController = &UserController{
	userService:   users_services.GetUserService(),
	signinLimiter: rate.NewLimiter(rate.Limit(3), 3), // 3 RPS with burst of 3
}

var profileController = &ProfileController{
	profileService: users_services.GetProfileService(),
}

func GetUserController() *UserController {
	return userController
}

func GetProfileController() *ProfileController {
	return profileController
}
