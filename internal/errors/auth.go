package errors

var (
	ErrInvalidCredentials = &DomainError{
		Kind:    KindUnauthorized,
		Code:    "INVALID_CREDENTIALS",
		Message: "Invalid credentials",
	}
	ErrInvalidToken = &DomainError{
		Kind:    KindUnauthorized,
		Code:    "INVALID_TOKEN",
		Message: "Invalid or expired token",
	}
	ErrUserNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "USER_NOT_FOUND",
		Message: "User not found",
	}
	ErrEmailTaken = &DomainError{
		Kind:    KindConflict,
		Code:    "EMAIL_TAKEN",
		Message: "The email has already been taken",
	}
	ErrUsernameTaken = &DomainError{
		Kind:    KindConflict,
		Code:    "USERNAME_TAKEN",
		Message: "The username has already been taken",
	}
)
