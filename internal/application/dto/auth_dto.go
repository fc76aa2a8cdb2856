package dto

// LoginRequest credenciales del formulario de login (acepta form o JSON).
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// SessionUser identidad expuesta al resto de la aplicación.
type SessionUser struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// LoginResponse resultado de un login exitoso. RedirectTo depende del rol.
type LoginResponse struct {
	Token      string      `json:"token"`
	User       SessionUser `json:"user"`
	RedirectTo string      `json:"redirect_to"`
}

// RecoverRequest solicitud de recuperación de contraseña.
type RecoverRequest struct {
	Email string `json:"email" form:"email"`
}

// ResetPasswordRequest restablecimiento con token de recuperación.
type ResetPasswordRequest struct {
	Token       string `json:"token" form:"token"`
	NewPassword string `json:"new_password" form:"newPassword"`
}
