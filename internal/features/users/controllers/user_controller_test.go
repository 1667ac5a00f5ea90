package users_controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"eagleflow/internal/features/audit_logs"
	users_dto "eagleflow/internal/features/users/dto"
	users_enums "eagleflow/internal/features/users/enums"
	users_middleware "eagleflow/internal/features/users/middleware"
	users_services "eagleflow/internal/features/users/services"
	users_testing "eagleflow/internal/features/users/testing"
	test_utils "eagleflow/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func createUsersTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	userController := GetUserController()
	userController.SetSignInLimiter(rate.NewLimiter(rate.Inf, 0))

	v1 := router.Group("/api/v1")
	userController.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))
	userController.RegisterProtectedRoutes(protected)
	GetProfileController().RegisterProtectedRoutes(protected)

	audit_logs.SetupDependencies()

	return router
}

func makeSignUpRequest(email string) users_dto.SignUpRequestDTO {
	return users_dto.SignUpRequestDTO{
		Email:     email,
		Password:  "password123",
		FullName:  "Kari Nordmann",
		BirthDate: "1988-06-02",
		Company:   "Nordmann VVS AS",
		JobTitle:  "Senior Engineer",
		City:      "Trondheim",
		Gender:    users_enums.GenderFemale,
	}
}

func uniqueEmail() string {
	return fmt.Sprintf("signup-%s@test.com", uuid.New().String()[:8])
}

func Test_SignUp_WithValidData_CreatesUserAndProfile(t *testing.T) {
	router := createUsersTestRouter()
	email := uniqueEmail()

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signup",
		"",
		makeSignUpRequest(email),
		http.StatusOK,
	)

	var signInResponse users_dto.SignInResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: email, Password: "password123"},
		http.StatusOK,
		&signInResponse,
	)
	assert.NotEmpty(t, signInResponse.Token)
	assert.Equal(t, email, signInResponse.Email)

	var profile users_dto.ProfileResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/profile",
		"Bearer "+signInResponse.Token,
		http.StatusOK,
		&profile,
	)
	assert.Equal(t, "Kari Nordmann", profile.FullName)
	assert.Equal(t, "1988-06-02", profile.BirthDate)
	assert.Equal(t, "Trondheim", profile.City)
	assert.Equal(t, users_enums.GenderFemale, profile.Gender)
}

func Test_SignUp_WhenEmailAlreadyExists_ReturnsBadRequest(t *testing.T) {
	router := createUsersTestRouter()
	email := uniqueEmail()

	test_utils.MakePostRequest(t, router, "/api/v1/users/signup", "", makeSignUpRequest(email), http.StatusOK)

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signup",
		"",
		makeSignUpRequest(email),
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "user with this email already exists")
}

func Test_SignUp_WithShortPassword_ReturnsBadRequest(t *testing.T) {
	router := createUsersTestRouter()

	request := makeSignUpRequest(uniqueEmail())
	request.Password = "short"

	test_utils.MakePostRequest(t, router, "/api/v1/users/signup", "", request, http.StatusBadRequest)
}

func Test_SignUp_WithInvalidBirthDate_ReturnsBadRequest(t *testing.T) {
	router := createUsersTestRouter()

	request := makeSignUpRequest(uniqueEmail())
	request.BirthDate = "02.06.1988"

	resp := test_utils.MakePostRequest(t, router, "/api/v1/users/signup", "", request, http.StatusBadRequest)
	assert.Contains(t, string(resp.Body), "invalid birth date")
}

func Test_SignIn_WithWrongPassword_ReturnsBadRequest(t *testing.T) {
	router := createUsersTestRouter()
	email := uniqueEmail()

	test_utils.MakePostRequest(t, router, "/api/v1/users/signup", "", makeSignUpRequest(email), http.StatusOK)

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: email, Password: "wrong-password"},
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "password is incorrect")
}

func Test_SignIn_WithUnknownEmail_ReturnsBadRequest(t *testing.T) {
	router := createUsersTestRouter()

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: "nobody@test.com", Password: "password123"},
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "user with this email does not exist")
}

func Test_GetCurrentUser_WithValidToken_ReturnsUser(t *testing.T) {
	router := createUsersTestRouter()
	user := users_testing.CreateTestUser()

	var response users_dto.UserResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/me",
		"Bearer "+user.Token,
		http.StatusOK,
		&response,
	)

	assert.Equal(t, user.UserID, response.ID)
	assert.Equal(t, user.Email, response.Email)
	assert.Equal(t, users_enums.UserStatusActive, response.Status)
}

func Test_GetCurrentUser_WithoutToken_ReturnsUnauthorized(t *testing.T) {
	router := createUsersTestRouter()

	resp := test_utils.MakeGetRequest(t, router, "/api/v1/users/me", "", http.StatusUnauthorized)
	assert.Contains(t, string(resp.Body), "Authorization token required")
}

func Test_GetCurrentUser_WithMalformedToken_ReturnsUnauthorized(t *testing.T) {
	router := createUsersTestRouter()

	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/users/me",
		"Bearer not-a-real-token",
		http.StatusUnauthorized,
	)
	assert.Contains(t, string(resp.Body), "Invalid token")
}

func Test_ChangePassword_WithValidPassword_InvalidatesOldToken(t *testing.T) {
	router := createUsersTestRouter()
	email := uniqueEmail()

	test_utils.MakePostRequest(t, router, "/api/v1/users/signup", "", makeSignUpRequest(email), http.StatusOK)

	var signInResponse users_dto.SignInResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: email, Password: "password123"},
		http.StatusOK,
		&signInResponse,
	)

	// Password creation time is compared at second granularity, so make
	// sure the change lands in a later second than the signup
	time.Sleep(1100 * time.Millisecond)

	test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/users/change-password",
		"Bearer "+signInResponse.Token,
		users_dto.ChangePasswordRequestDTO{NewPassword: "new-password-456"},
		http.StatusOK,
	)

	// The old token carries the old password creation time and must be rejected
	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/users/me",
		"Bearer "+signInResponse.Token,
		http.StatusUnauthorized,
	)

	// Old password no longer works, new one does
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: email, Password: "password123"},
		http.StatusBadRequest,
	)
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Email: email, Password: "new-password-456"},
		http.StatusOK,
	)
}

func Test_ChangePassword_WithShortPassword_ReturnsBadRequest(t *testing.T) {
	router := createUsersTestRouter()
	user := users_testing.CreateTestUser()

	resp := test_utils.MakePutRequest(
		t,
		router,
		"/api/v1/users/change-password",
		"Bearer "+user.Token,
		users_dto.ChangePasswordRequestDTO{NewPassword: "short"},
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "Invalid request format")
}
