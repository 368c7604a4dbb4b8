// Package keylock ofrece exclusión mutua por clave para serializar secuencias
// read-modify-write sobre el almacén clave-valor. Operaciones sobre claves
// distintas proceden en paralelo; nunca hay un lock global.
package keylock

import "sync"

// KeyLock mapa de mutexes por clave. Los mutexes se crean bajo demanda y no se
// liberan: el conjunto de claves activas (productos, pedidos) es acotado.
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New construye el KeyLock.
func New() *KeyLock {
	return &KeyLock{locks: make(map[string]*sync.Mutex)}
}

func (k *KeyLock) lockFor(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	return l
}

// Lock adquiere el mutex de la clave.
func (k *KeyLock) Lock(key string) {
	k.lockFor(key).Lock()
}

// Unlock libera el mutex de la clave.
func (k *KeyLock) Unlock(key string) {
	k.lockFor(key).Unlock()
}

// LockAll adquiere los mutexes de todas las claves en orden lexicográfico
// (las claves deben venir ordenadas y sin duplicados) para evitar deadlocks
// entre operaciones multi-línea concurrentes.
func (k *KeyLock) LockAll(keys []string) {
	for _, key := range keys {
		k.Lock(key)
	}
}

// UnlockAll libera en orden inverso.
func (k *KeyLock) UnlockAll(keys []string) {
	for i := len(keys) - 1; i >= 0; i-- {
		k.Unlock(keys[i])
	}
}
