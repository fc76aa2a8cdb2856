package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/taller-pro/pkg/textnorm"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "electronica", textnorm.Fold("Electrónica"))
	assert.Equal(t, "reparacion", textnorm.Fold("REPARACIÓN"))
	assert.Equal(t, "perez", textnorm.Fold("Pérez"))
	assert.Equal(t, "sin acentos", textnorm.Fold("sin acentos"))
	assert.Equal(t, "", textnorm.Fold(""))
	// NFD descompone la eñe y elimina la virgulilla, igual que hace
	// unaccent() en Postgres.
	assert.Equal(t, "dueno", textnorm.Fold("dueño"))
}
