package apperrors

import "net/http"

// Domain error factories. Kept as functions so each occurrence carries a
// fresh Details slot.

func ErrUserNotFound() *AppError {
	return New(CodeNotFound, "user", "User not found", http.StatusNotFound)
}

func ErrProductNotFound() *AppError {
	return New(CodeNotFound, "product", "Product not found", http.StatusNotFound)
}

func ErrFeedbackNotFound() *AppError {
	return New(CodeNotFound, "feedback", "Feedback not found", http.StatusNotFound)
}

func ErrEmailAlreadyExists() *AppError {
	return New(CodeAlreadyExists, "user", "Email is already registered", http.StatusConflict)
}

func ErrInvalidCredentials() *AppError {
	return New(CodeInvalidCredentials, "auth", "Invalid email or password", http.StatusUnauthorized)
}

func ErrNotVerified() *AppError {
	return New(CodeNotVerified, "auth", "Email address is not verified", http.StatusForbidden)
}

func ErrInvalidToken() *AppError {
	return New(CodeInvalidToken, "auth", "Invalid or expired token", http.StatusBadRequest)
}

func ErrTokenExpired() *AppError {
	return New(CodeTokenExpired, "auth", "Token has expired", http.StatusBadRequest)
}
