// Package id genera identificadores con componente temporal creciente más
// sufijo aleatorio: ordenables por creación y libres de colisión sin
// coordinación entre instancias.
package id

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// New genera un id con la forma "<unix-millis base36>-<8 hex aleatorios>".
func New() string {
	return NewAt(time.Now())
}

// NewAt genera un id anclado al instante dado (útil en tests).
func NewAt(t time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return strconv.FormatInt(t.UnixMilli(), 36) + "-" + suffix
}
