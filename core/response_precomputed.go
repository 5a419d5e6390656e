package core

import (
	"encoding/json"
	"net/http"
)

// Standard response codes
const (
	// oks
	CodeOkLogout         = "ok_logout"
	CodeOkOtpSent        = "ok_otp_sent"
	CodeOkOtpVerified    = "ok_otp_verified"
	CodeOkPasswordReset  = "ok_password_reset"
	CodeOkEnrolled       = "ok_enrolled"
	CodeOkCourseDeleted  = "ok_course_deleted"
	CodeOkLectureDeleted = "ok_lecture_deleted"

	// errors
	CodeErrorInvalidRequest       = "err_invalid_input"
	CodeErrorMissingFields        = "err_missing_fields"
	CodeErrorPasswordComplexity   = "err_password_complexity"
	CodeErrorInvalidEmailFormat   = "err_invalid_email_format"
	CodeErrorEmailConflict        = "err_email_conflict"
	CodeErrorInvalidCredentials   = "err_invalid_credentials"
	CodeErrorFederatedAccount     = "err_federated_account"
	CodeErrorNoAuthToken          = "err_no_auth_token"
	CodeErrorInvalidTokenFormat   = "err_invalid_token_format"
	CodeErrorJwtInvalidSignMethod = "err_invalid_sign_method"
	CodeErrorJwtTokenExpired      = "err_token_expired"
	CodeErrorJwtInvalidToken      = "err_invalid_token"
	CodeErrorTokenGeneration      = "err_token_generation"
	CodeErrorAuthDatabaseError    = "err_auth_database_error"
	CodeErrorNotFound             = "err_not_found"
	CodeErrorUserNotFound         = "err_user_not_found"
	CodeErrorInvalidOtp           = "err_invalid_otp"
	CodeErrorResetNotAllowed      = "err_reset_not_allowed"
	CodeErrorEducatorOnly         = "err_educator_only"
	CodeErrorNotOwner             = "err_not_owner"
	CodeErrorCourseNotFound       = "err_course_not_found"
	CodeErrorLectureNotFound      = "err_lecture_not_found"
	CodeErrorMailDelivery         = "err_mail_delivery"
	CodeErrorFileTooLarge         = "err_file_too_large"
	CodeErrorInvalidContentType   = "err_invalid_content_type"
	CodeErrorInvalidOAuth2Provider          = "err_invalid_oauth2_provider"
	CodeErrorOAuth2TokenExchangeFailed      = "err_oauth2_token_exchange_failed"
	CodeErrorOAuth2UserInfoFailed           = "err_oauth2_user_info_failed"
	CodeErrorOAuth2UserInfoProcessingFailed = "err_oauth2_user_info_processing_failed"
	CodeErrorOAuth2DatabaseError            = "err_oauth2_database_error"
	CodeErrorCourseDatabaseError            = "err_course_database_error"
)

// precomputeBasicResponse builds the response bytes once, during package
// initialization, so request handling just writes the precomputed body.
func precomputeBasicResponse(status int, code, message string) jsonResponse {
	basic := JsonBasic{
		Status:  status,
		Code:    code,
		Message: message,
	}
	body, _ := json.Marshal(basic)
	return jsonResponse{status: status, body: body}
}

// Precomputed error and ok responses with status codes
var (
	// errors
	errorInvalidRequest       = precomputeBasicResponse(http.StatusBadRequest, CodeErrorInvalidRequest, "The request contains invalid data")
	errorMissingFields        = precomputeBasicResponse(http.StatusBadRequest, CodeErrorMissingFields, "Required fields are missing")
	errorPasswordComplexity   = precomputeBasicResponse(http.StatusBadRequest, CodeErrorPasswordComplexity, "Password must be at least 6 characters")
	errorInvalidEmailFormat   = precomputeBasicResponse(http.StatusBadRequest, CodeErrorInvalidEmailFormat, "Email address is not valid")
	errorEmailConflict        = precomputeBasicResponse(http.StatusConflict, CodeErrorEmailConflict, "Email address is already registered")
	errorInvalidCredentials   = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorInvalidCredentials, "Invalid email or password")
	errorFederatedAccount     = precomputeBasicResponse(http.StatusBadRequest, CodeErrorFederatedAccount, "Account was created with a federated login. Use the provider sign-in")
	errorNoAuthToken          = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorNoAuthToken, "Authentication token is required")
	errorInvalidTokenFormat   = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorInvalidTokenFormat, "Invalid authorization token format")
	errorJwtInvalidSignMethod = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorJwtInvalidSignMethod, "Invalid JWT signing method")
	errorJwtTokenExpired      = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorJwtTokenExpired, "Authentication token has expired")
	errorJwtInvalidToken      = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorJwtInvalidToken, "Invalid authentication token")
	errorTokenGeneration      = precomputeBasicResponse(http.StatusInternalServerError, CodeErrorTokenGeneration, "Failed to generate authentication token")
	errorAuthDatabaseError    = precomputeBasicResponse(http.StatusInternalServerError, CodeErrorAuthDatabaseError, "Database error during authentication")
	errorNotFound             = precomputeBasicResponse(http.StatusNotFound, CodeErrorNotFound, "Requested resource not found")
	errorUserNotFound         = precomputeBasicResponse(http.StatusNotFound, CodeErrorUserNotFound, "No account found for this email")
	errorInvalidOtp           = precomputeBasicResponse(http.StatusBadRequest, CodeErrorInvalidOtp, "Invalid or expired code")
	errorResetNotAllowed      = precomputeBasicResponse(http.StatusForbidden, CodeErrorResetNotAllowed, "Password reset was not verified for this account")
	errorEducatorOnly         = precomputeBasicResponse(http.StatusForbidden, CodeErrorEducatorOnly, "Only educators can manage courses")
	errorNotOwner             = precomputeBasicResponse(http.StatusForbidden, CodeErrorNotOwner, "Only the course creator can modify it")
	errorCourseNotFound       = precomputeBasicResponse(http.StatusNotFound, CodeErrorCourseNotFound, "Course not found")
	errorLectureNotFound      = precomputeBasicResponse(http.StatusNotFound, CodeErrorLectureNotFound, "Lecture not found")
	errorMailDelivery         = precomputeBasicResponse(http.StatusInternalServerError, CodeErrorMailDelivery, "Failed to send email. Please try again")
	errorFileTooLarge         = precomputeBasicResponse(http.StatusRequestEntityTooLarge, CodeErrorFileTooLarge, "File too large")
	errorInvalidContentType   = precomputeBasicResponse(http.StatusUnsupportedMediaType, CodeErrorInvalidContentType, "Unsupported media type")
	errorInvalidOAuth2Provider          = precomputeBasicResponse(http.StatusBadRequest, CodeErrorInvalidOAuth2Provider, "Invalid OAuth2 provider specified")
	errorOAuth2TokenExchangeFailed      = precomputeBasicResponse(http.StatusBadRequest, CodeErrorOAuth2TokenExchangeFailed, "Failed to exchange OAuth2 token")
	errorOAuth2UserInfoFailed           = precomputeBasicResponse(http.StatusBadRequest, CodeErrorOAuth2UserInfoFailed, "Failed to get user info from OAuth2 provider")
	errorOAuth2UserInfoProcessingFailed = precomputeBasicResponse(http.StatusBadRequest, CodeErrorOAuth2UserInfoProcessingFailed, "Failed to process user info from OAuth2 provider")
	errorOAuth2DatabaseError            = precomputeBasicResponse(http.StatusInternalServerError, CodeErrorOAuth2DatabaseError, "Database error during OAuth2 authentication")
	errorCourseDatabaseError            = precomputeBasicResponse(http.StatusInternalServerError, CodeErrorCourseDatabaseError, "Database error while accessing courses")

	// oks
	okLogout         = precomputeBasicResponse(http.StatusOK, CodeOkLogout, "Logged out")
	okOtpSent        = precomputeBasicResponse(http.StatusOK, CodeOkOtpSent, "A one-time code has been sent to your email")
	okOtpVerified    = precomputeBasicResponse(http.StatusOK, CodeOkOtpVerified, "Code verified. You may reset your password now")
	okPasswordReset  = precomputeBasicResponse(http.StatusOK, CodeOkPasswordReset, "Password reset successfully")
	okEnrolled       = precomputeBasicResponse(http.StatusOK, CodeOkEnrolled, "Enrolled in course")
	okCourseDeleted  = precomputeBasicResponse(http.StatusOK, CodeOkCourseDeleted, "Course deleted")
	okLectureDeleted = precomputeBasicResponse(http.StatusOK, CodeOkLectureDeleted, "Lecture deleted")
)
