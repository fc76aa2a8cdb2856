package dto

// UserResponse usuario del sistema para la pantalla de gestión.
type UserResponse struct {
	Username  string `json:"username"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	WorkShift string `json:"work_shift"`
}

// UserListResponse listado de usuarios.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// CreateUserRequest alta de usuario (solo admin/dueño).
type CreateUserRequest struct {
	Username  string `json:"username" form:"username"`
	Password  string `json:"password" form:"password"`
	Name      string `json:"name" form:"name"`
	Role      string `json:"role" form:"role"`
	WorkShift string `json:"work_shift" form:"workShift"`
}

// UpdateUserRequest cambio de rol y turno.
type UpdateUserRequest struct {
	Role      string `json:"role" form:"role"`
	WorkShift string `json:"work_shift" form:"workShift"`
}

// ProfileResponse datos del perfil propio.
type ProfileResponse struct {
	Username      string `json:"username"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	RoleLabel     string `json:"role_label"`
	RecoveryEmail string `json:"recovery_email"`
	WorkShift     string `json:"work_shift"`
}

// UpdateProfileRequest cambio de nombre y correo de recuperación.
type UpdateProfileRequest struct {
	Name          string `json:"name" form:"name"`
	RecoveryEmail string `json:"recovery_email" form:"recoveryEmail"`
}

// ChangePasswordRequest cambio de contraseña del propio usuario.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" form:"currentPassword"`
	NewPassword     string `json:"new_password" form:"newPassword"`
	ConfirmPassword string `json:"confirm_password" form:"confirmPassword"`
}
