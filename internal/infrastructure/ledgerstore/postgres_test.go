package ledgerstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Las claves del libro contienen "_" (stock_history:), que en LIKE es comodín:
// el escape debe neutralizarlo para que el scan por prefijo sea literal.
func TestEscapeLike(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"product:", "product:"},
		{"stock_history:", `stock\_history:`},
		{"100%", `100\%`},
		{`a\b`, `a\\b`},
		{`_%\`, `\_\%\\`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, escapeLike(tc.in), "escape de %q", tc.in)
	}
}
