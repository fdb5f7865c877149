package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrAuthenticationFailed = ErrorResponse{
		Status: "error",
		Error:  "authentication_failed",
	}

	ErrInvalidRegisterRequest = ErrorResponse{
		Status:  "error",
		Error:   "invalid_register_request",
		Details: "Invalid registration data",
	}

	ErrUserAlreadyExists = ErrorResponse{
		Status:  "error",
		Error:   "user_already_exists",
		Details: "User with this email already exists",
	}

	// ErrGalleryNotFound отдается и на несуществующую галерею, и на отказ
	// в доступе: чужой пользователь не должен узнать, что галерея есть
	ErrGalleryNotFound = ErrorResponse{
		Status:  "error",
		Error:   "not_found",
		Details: "Gallery not found",
	}

	ErrAlbumNotFound = ErrorResponse{
		Status:  "error",
		Error:   "not_found",
		Details: "Album not found",
	}

	ErrAuthRequired = ErrorResponse{
		Status:  "error",
		Error:   "auth_required",
		Details: "Sign in to view this gallery",
	}
)
