package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Incrementos concurrentes sobre un contador protegido por la misma clave: sin
// serialización habría lost updates.
func TestLock_SerializaPorClave(t *testing.T) {
	k := New()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			k.Lock("product:p-1")
			counter++
			k.Unlock("product:p-1")
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

// Lotes concurrentes con claves solapadas en orden lexicográfico no se
// bloquean entre sí (mismo orden de adquisición en todos los lotes).
func TestLockAll_ClavesSolapadas_SinDeadlock(t *testing.T) {
	k := New()
	keysA := []string{"product:a", "product:b"}
	keysB := []string{"product:b", "product:c"}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			k.LockAll(keysA)
			k.UnlockAll(keysA)
		}()
		go func() {
			defer wg.Done()
			k.LockAll(keysB)
			k.UnlockAll(keysB)
		}()
	}
	wg.Wait()
}

func TestLock_ClavesDistintasNoSeBloquean(t *testing.T) {
	k := New()
	k.Lock("product:a")
	defer k.Unlock("product:a")

	done := make(chan struct{})
	go func() {
		k.Lock("product:b")
		k.Unlock("product:b")
		close(done)
	}()
	<-done
}
