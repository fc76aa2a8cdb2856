package auth

import (
	"sync"
	"time"
)

// loginAttempt acumula los intentos fallidos de un username.
type loginAttempt struct {
	count       int
	lastAttempt time.Time
}

// LockoutTracker bloquea temporalmente las cuentas con demasiados intentos
// fallidos. Estado en memoria por proceso, compartido entre peticiones
// concurrentes; todas las operaciones toman el lock.
//
// Máquina de estados por username: libre → acumulando(count) → bloqueado.
// El desbloqueo es automático cuando pasa la ventana desde el último intento.
type LockoutTracker struct {
	mu        sync.Mutex
	attempts  map[string]*loginAttempt
	threshold int
	window    time.Duration
	now       func() time.Time
}

// NewLockoutTracker construye el tracker (5 intentos / 15 min en el original).
func NewLockoutTracker(threshold int, window time.Duration) *LockoutTracker {
	return &LockoutTracker{
		attempts:  make(map[string]*loginAttempt),
		threshold: threshold,
		window:    window,
		now:       time.Now,
	}
}

// WithClock fija el reloj del tracker (tests).
func (t *LockoutTracker) WithClock(now func() time.Time) *LockoutTracker {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = now
	return t
}

// RecordFailure registra un intento fallido y devuelve cuántos quedan antes
// del bloqueo (cero o negativo cuando la cuenta ya quedó bloqueada).
func (t *LockoutTracker) RecordFailure(username string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	a, ok := t.attempts[username]
	if !ok {
		a = &loginAttempt{}
		t.attempts[username] = a
	}
	a.count++
	a.lastAttempt = t.now()
	return t.threshold - a.count
}

// IsLocked indica si el username está bloqueado. Si la ventana de bloqueo ya
// pasó desde el último intento, la cuenta vuelve a estado libre (auto-desbloqueo).
func (t *LockoutTracker) IsLocked(username string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	a, ok := t.attempts[username]
	if !ok || a.count < t.threshold {
		return false
	}
	if t.now().Sub(a.lastAttempt) >= t.window {
		delete(t.attempts, username)
		return false
	}
	return true
}

// Clear borra los intentos acumulados (login exitoso).
func (t *LockoutTracker) Clear(username string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.attempts, username)
}

// Remaining devuelve los minutos que faltan para el auto-desbloqueo
// (cero si no está bloqueado). Solo para el mensaje al usuario.
func (t *LockoutTracker) Remaining(username string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	a, ok := t.attempts[username]
	if !ok || a.count < t.threshold {
		return 0
	}
	left := t.window - t.now().Sub(a.lastAttempt)
	if left < 0 {
		return 0
	}
	return left
}
