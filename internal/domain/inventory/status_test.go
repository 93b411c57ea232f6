package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// StockStatus — el estado siempre se deriva de (currentQty, minStock)
// ──────────────────────────────────────────────────────────────────────────────

func TestStockStatus_DerivaEstadoCorrecto(t *testing.T) {
	cases := []struct {
		name       string
		currentQty int64
		minStock   int64
		want       string
	}{
		{"cantidad cero es Out of Stock", 0, 5, entity.StockStatusOutOfStock},
		{"cantidad bajo el umbral es Low Stock", 3, 5, entity.StockStatusLowStock},
		{"cantidad igual al umbral es In Stock", 5, 5, entity.StockStatusInStock},
		{"cantidad sobre el umbral es In Stock", 10, 5, entity.StockStatusInStock},
		{"umbral cero con existencias es In Stock", 1, 0, entity.StockStatusInStock},
		{"umbral cero sin existencias es Out of Stock", 0, 0, entity.StockStatusOutOfStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.StockStatus(tc.currentQty, tc.minStock))
		})
	}
}

// Out of Stock tiene prioridad sobre Low Stock cuando qty = 0 y minStock > 0.
func TestStockStatus_CeroGanaSobreUmbral(t *testing.T) {
	assert.Equal(t, entity.StockStatusOutOfStock, inventory.StockStatus(0, 100),
		"con cantidad cero el estado es Out of Stock aunque haya umbral alto")
}

// ──────────────────────────────────────────────────────────────────────────────
// ClampRemove — las salidas nunca dejan cantidad negativa
// ──────────────────────────────────────────────────────────────────────────────

func TestClampRemove_SalidaNormal(t *testing.T) {
	newQty, clamped := inventory.ClampRemove(10, 4)
	assert.Equal(t, int64(6), newQty)
	assert.False(t, clamped, "una salida dentro de lo disponible no recorta")
}

func TestClampRemove_SalidaExacta(t *testing.T) {
	newQty, clamped := inventory.ClampRemove(4, 4)
	assert.Equal(t, int64(0), newQty)
	assert.False(t, clamped, "vaciar exactamente el stock no cuenta como recorte")
}

func TestClampRemove_RecortaEnCero(t *testing.T) {
	newQty, clamped := inventory.ClampRemove(3, 10)
	assert.Equal(t, int64(0), newQty, "la cantidad nunca queda negativa")
	assert.True(t, clamped, "pedir más de lo disponible debe marcar el recorte")
}
