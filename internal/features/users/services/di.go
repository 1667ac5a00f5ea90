package users_services

import (
	users_repositories "eagleflow/internal/features/users/repositories"
)

var userRepository = &users_repositories.UserRepository{}
var profileRepository = &users_repositories.ProfileRepository{}
var secretKeyRepository = &users_repositories.SecretKeyRepository{}

var userService = &UserService{
	userRepository:      userRepository,
	profileRepository:   profileRepository,
	secretKeyRepository: secretKeyRepository,
}

var profileService = &ProfileService{
	profileRepository: profileRepository,
}

func GetUserService() *UserService {
	return userService
}

func GetProfileService() *ProfileService {
	return profileService
}
