package auth

import (
	"sort"
	"sync"

	"github.com/tu-usuario/taller-pro/internal/domain"
	"github.com/tu-usuario/taller-pro/internal/domain/entity"
)

// Credential es el registro en memoria de un usuario del sistema.
// Este almacén NO persiste: se reconstruye con la lista fija en cada
// arranque y los cambios hechos en caliente se pierden al reiniciar.
// Limitación heredada del sistema original, no un bug a corregir en silencio.
type Credential struct {
	Username      string
	PasswordHash  string
	Role          string
	Name          string
	RecoveryEmail string
	WorkShift     string
}

// seedUsers es la lista fija del sistema original (contraseña "1234").
var seedUsers = []struct {
	username, role, name string
}{
	{"admin", entity.RoleAdmin, "Administrador"},
	{"dueño", entity.RoleAdmin, "Dueño"},
	{"vendedor", entity.RoleEmployee, "Vendedor"},
	{"cajero", entity.RoleEmployee, "Cajero"},
	{"juan", entity.RoleTechnician, "Juan"},
	{"rodrigo", entity.RoleTechnician, "Rodrigo"},
	{"franco", entity.RoleTechnician, "Franco"},
}

// protectedUsers no pueden eliminarse (cuentas semilla de administración).
var protectedUsers = map[string]bool{
	"admin": true,
	"dueño": true,
}

// CredentialStore guarda las credenciales en memoria, compartidas por todas
// las peticiones concurrentes. Toda mutación toma el lock de escritura.
type CredentialStore struct {
	mu     sync.RWMutex
	users  map[string]*Credential
	hasher PasswordHasher
}

// NewCredentialStore construye el almacén sembrado con los usuarios fijos.
func NewCredentialStore(hasher PasswordHasher) *CredentialStore {
	s := &CredentialStore{
		users:  make(map[string]*Credential, len(seedUsers)),
		hasher: hasher,
	}
	for _, u := range seedUsers {
		hash, _ := hasher.Hash("1234")
		s.users[u.username] = &Credential{
			Username:     u.username,
			PasswordHash: hash,
			Role:         u.role,
			Name:         u.name,
			WorkShift:    entity.ShiftFullTime,
		}
	}
	return s
}

// Verify comprueba usuario y contraseña contra el hash almacenado.
func (s *CredentialStore) Verify(username, password string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[username]
	if !ok {
		return false
	}
	return s.hasher.Verify(password, u.PasswordHash)
}

// Get devuelve una copia de la credencial, si existe.
func (s *CredentialStore) Get(username string) (Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[username]
	if !ok {
		return Credential{}, false
	}
	return *u, true
}

// List devuelve copias de todas las credenciales ordenadas por username.
func (s *CredentialStore) List() []Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Credential, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

// Create agrega un usuario nuevo. ErrUserAlreadyExists si el username está tomado.
func (s *CredentialStore) Create(username, password, name, role, workShift string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[username]; exists {
		return domain.ErrUserAlreadyExists
	}
	if workShift == "" {
		workShift = entity.ShiftFullTime
	}
	s.users[username] = &Credential{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Name:         name,
		WorkShift:    workShift,
	}
	return nil
}

// UpdateRoleShift cambia rol y turno. Un administrador no puede quitarse a sí
// mismo el rol ADMIN (quedaría sin acceso a la gestión de usuarios).
func (s *CredentialStore) UpdateRoleShift(actor, username, role, workShift string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	if actor == username && u.Role == entity.RoleAdmin && role != entity.RoleAdmin {
		return domain.ErrPermissionDenied
	}
	u.Role = role
	if workShift != "" {
		u.WorkShift = workShift
	}
	return nil
}

// UpdateProfile cambia nombre y correo de recuperación del propio usuario.
func (s *CredentialStore) UpdateProfile(username, name, recoveryEmail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Name = name
	u.RecoveryEmail = recoveryEmail
	return nil
}

// SetPassword reemplaza el hash de contraseña.
func (s *CredentialStore) SetPassword(username, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

// Remove elimina un usuario. Cuentas protegidas y auto-eliminación fallan con
// ErrPermissionDenied.
func (s *CredentialStore) Remove(actor, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if protectedUsers[username] || actor == username {
		return domain.ErrPermissionDenied
	}
	if _, ok := s.users[username]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, username)
	return nil
}

// FindByRecoveryEmail busca la credencial cuyo correo de recuperación coincide.
func (s *CredentialStore) FindByRecoveryEmail(email string) (Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.RecoveryEmail != "" && u.RecoveryEmail == email {
			return *u, true
		}
	}
	return Credential{}, false
}
