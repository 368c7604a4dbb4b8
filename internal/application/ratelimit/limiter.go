// Package ratelimit implementa el limitador de intentos de login: un contador
// de fallos por identificador con ventana deslizante y bloqueo temporal.
package ratelimit

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Config parámetros del limitador.
type Config struct {
	MaxAttempts int           // fallos consecutivos antes del bloqueo
	Window      time.Duration // antigüedad que perdona fallos previos
	Lockout     time.Duration // duración del bloqueo
	Capacity    int           // techo de identificadores en memoria
}

// DefaultConfig valores del sistema: 5 intentos, ventana y bloqueo de 15
// minutos, techo de 1000 identificadores.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 5,
		Window:      15 * time.Minute,
		Lockout:     15 * time.Minute,
		Capacity:    1000,
	}
}

// Result respuesta de Check.
type Result struct {
	Allowed           bool
	RemainingAttempts int
	LockedUntil       *time.Time
}

type record struct {
	count         int
	lockoutUntil  *time.Time
	lastAttemptAt time.Time
}

// Limiter estado process-wide del limitador. Todas las operaciones son
// concurrentes-seguras; los incrementos simultáneos sobre el mismo
// identificador no se pierden.
//
// El bloqueo se computa de forma diferida: Record solo incrementa el contador,
// y es el siguiente Check tras el quinto fallo el que calcula y almacena
// lockoutUntil. Este ordenamiento es observable y está fijado por tests.
type Limiter struct {
	mu      sync.Mutex
	records map[string]*record
	cfg     Config
	now     func() time.Time
}

// New construye el limitador. now==nil usa time.Now (inyectable en tests).
func New(cfg Config, now func() time.Time) *Limiter {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.Window <= 0 {
		cfg.Window = 15 * time.Minute
	}
	if cfg.Lockout <= 0 {
		cfg.Lockout = 15 * time.Minute
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = 1000
	}
	if now == nil {
		now = time.Now
	}
	return &Limiter{
		records: make(map[string]*record),
		cfg:     cfg,
		now:     now,
	}
}

// Check evalúa si el identificador puede intentar login:
//   - bloqueo vigente -> denegado con su expiración;
//   - último intento más viejo que la ventana -> el contador se perdona y se
//     permite con los intentos completos;
//   - contador en el máximo -> se computa y almacena el bloqueo ahora
//     (diferido) y se deniega;
//   - si no, permitido con los intentos restantes.
func (l *Limiter) Check(identifier string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	rec, ok := l.records[identifier]
	if !ok {
		return Result{Allowed: true, RemainingAttempts: l.cfg.MaxAttempts}
	}

	if rec.lockoutUntil != nil {
		if now.Before(*rec.lockoutUntil) {
			until := *rec.lockoutUntil
			return Result{Allowed: false, LockedUntil: &until}
		}
		// Bloqueo expirado: el identificador queda limpio
		delete(l.records, identifier)
		return Result{Allowed: true, RemainingAttempts: l.cfg.MaxAttempts}
	}

	if !rec.lastAttemptAt.IsZero() && now.Sub(rec.lastAttemptAt) > l.cfg.Window {
		// La ventana perdona los fallos antiguos
		delete(l.records, identifier)
		return Result{Allowed: true, RemainingAttempts: l.cfg.MaxAttempts}
	}

	if rec.count >= l.cfg.MaxAttempts {
		until := now.Add(l.cfg.Lockout)
		rec.lockoutUntil = &until
		lockedUntil := until
		return Result{Allowed: false, LockedUntil: &lockedUntil}
	}

	return Result{Allowed: true, RemainingAttempts: l.cfg.MaxAttempts - rec.count}
}

// Record registra el resultado de un intento. Éxito limpia el registro por
// completo; fallo incrementa el contador y estampa lastAttemptAt. El bloqueo
// NO se computa aquí (ver doc del tipo).
func (l *Limiter) Record(identifier string, success bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if success {
		delete(l.records, identifier)
		return
	}

	now := l.now()
	rec, ok := l.records[identifier]
	if !ok {
		rec = &record{}
		l.records[identifier] = rec
	}
	rec.count++
	rec.lastAttemptAt = now

	if len(l.records) > l.cfg.Capacity {
		l.evictOldestLocked()
	}
}

// evictOldestLocked desaloja en bloque el 10% más antiguo (por lastAttemptAt)
// cuando el mapa supera el techo. Requiere l.mu tomado.
func (l *Limiter) evictOldestLocked() {
	type aged struct {
		id string
		at time.Time
	}
	all := make([]aged, 0, len(l.records))
	for id, rec := range l.records {
		all = append(all, aged{id: id, at: rec.lastAttemptAt})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].at.Before(all[j].at) })

	n := l.cfg.Capacity / 10
	if n < 1 {
		n = 1
	}
	for i := 0; i < n && i < len(all); i++ {
		delete(l.records, all[i].id)
	}
}

// Sweep elimina los registros cuyo bloqueo ya expiró.
func (l *Limiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for id, rec := range l.records {
		if rec.lockoutUntil != nil && !now.Before(*rec.lockoutUntil) {
			delete(l.records, id)
		}
	}
}

// StartSweeper ejecuta Sweep periódicamente hasta que el contexto se cancele.
func (l *Limiter) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.Sweep()
			}
		}
	}()
}

// Size cantidad de identificadores registrados (tests y métricas).
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
