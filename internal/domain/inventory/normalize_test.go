package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/AlmacenCentral-api/internal/domain/inventory"
)

func TestNormalizeQuery_MinusculasYSinTildes(t *testing.T) {
	assert.Equal(t, "bujia", inventory.NormalizeQuery("  Bujía "))
	assert.Equal(t, "filtro de oxigeno", inventory.NormalizeQuery("FILTRO DE OXÍGENO"))
	assert.Equal(t, "", inventory.NormalizeQuery("   "))
}

func TestMatchesQuery_SubcadenaInsensible(t *testing.T) {
	q := inventory.NormalizeQuery("bujía")
	assert.True(t, inventory.MatchesQuery(q, "Bujia de iridio", "BJ-7731"),
		"la búsqueda con tilde debe encontrar el campo sin tilde")
	assert.True(t, inventory.MatchesQuery(inventory.NormalizeQuery("bj-77"), "Bujía de iridio", "BJ-7731"),
		"también coincide por número de parte")
	assert.False(t, inventory.MatchesQuery(q, "Filtro de aceite", "FO-1042"))
}

// Query vacío coincide con todo (la subcadena vacía está en cualquier campo).
func TestMatchesQuery_VacioCoincideConTodo(t *testing.T) {
	assert.True(t, inventory.MatchesQuery("", "cualquier cosa"))
}
