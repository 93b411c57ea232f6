// seed genera un script SQL con datos de demostración: centros de servicio,
// usuarios (password hasheado con bcrypt) y stock inicial del almacén central.
//
// Uso: go run ./cmd/seed [archivo_salida.sql]
// Por defecto escribe: internal/infrastructure/postgres/migrations/002_seed_demo.sql
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/inventory"
	"golang.org/x/crypto/bcrypt"
)

func sqlEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

type seedStock struct {
	partID, partName, partNumber, hsnCode, category string
	unitPrice                                       string
	currentQty, minStock                            int64
}

func main() {
	outPath := "internal/infrastructure/postgres/migrations/002_seed_demo.sql"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	var b strings.Builder
	b.WriteString("-- Datos de demostración. Generado por cmd/seed; no editar a mano.\n\n")

	now := time.Now().UTC().Format(time.RFC3339)

	centers := []struct{ code, name, address, phone string }{
		{"SC-BOG", "Centro de Servicio Bogotá", "Cra 15 # 93-60, Bogotá", "+57 601 555 0101"},
		{"SC-MED", "Centro de Servicio Medellín", "Cl 10 # 43A-30, Medellín", "+57 604 555 0102"},
		{"SC-CAL", "Centro de Servicio Cali", "Av 6N # 23-45, Cali", "+57 602 555 0103"},
	}
	centerIDs := make([]string, len(centers))
	b.WriteString("-- Centros de servicio\n")
	for i, sc := range centers {
		centerIDs[i] = uuid.New().String()
		b.WriteString(fmt.Sprintf(
			"INSERT INTO service_centers (id, code, name, address, phone, created_at, updated_at)\nVALUES ('%s', '%s', '%s', '%s', '%s', '%s', '%s');\n",
			centerIDs[i], sc.code, sqlEscape(sc.name), sqlEscape(sc.address), sc.phone, now, now,
		))
	}

	users := []struct{ email, password, name, role, centerID string }{
		{"admin@almacen.local", "admin123", "Administrador", entity.RoleAdmin, ""},
		{"bodega@almacen.local", "bodega123", "Bodeguero Central", entity.RoleBodeguero, ""},
		{"bogota@almacen.local", "centro123", "Recepción Bogotá", entity.RoleCentro, centerIDs[0]},
	}
	b.WriteString("\n-- Usuarios (passwords de demo, cambiarlos en cualquier entorno real)\n")
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bcrypt: %v\n", err)
			os.Exit(1)
		}
		b.WriteString(fmt.Sprintf(
			"INSERT INTO users (id, email, password_hash, name, role, service_center_id, status, created_at, updated_at)\nVALUES ('%s', '%s', '%s', '%s', '%s', '%s', 'active', '%s', '%s');\n",
			uuid.New().String(), u.email, string(hash), sqlEscape(u.name), u.role, u.centerID, now, now,
		))
	}

	stocks := []seedStock{
		{"PRT-0001", "Filtro de aceite", "FO-1042", "8421", "Filtros", "18500.00", 120, 20},
		{"PRT-0002", "Pastillas de freno delanteras", "PF-2210", "8708", "Frenos", "96000.00", 45, 15},
		{"PRT-0003", "Bujía de iridio", "BJ-7731", "8511", "Encendido", "42000.00", 8, 10},
		{"PRT-0004", "Correa de distribución", "CD-5120", "4010", "Transmisión", "155000.00", 0, 5},
		{"PRT-0005", "Amortiguador trasero", "AM-9004", "8708", "Suspensión", "210000.00", 30, 8},
	}
	b.WriteString("\n-- Stock inicial del almacén central\n")
	for _, s := range stocks {
		status := inventory.StockStatus(s.currentQty, s.minStock)
		b.WriteString(fmt.Sprintf(
			"INSERT INTO central_stock (id, part_id, part_name, part_number, hsn_code, category, unit_price, current_qty, min_stock, status, last_updated, last_updated_by)\nVALUES ('%s', '%s', '%s', '%s', '%s', '%s', %s, %d, %d, '%s', '%s', 'seed');\n",
			uuid.New().String(), s.partID, sqlEscape(s.partName), s.partNumber, s.hsnCode,
			sqlEscape(s.category), s.unitPrice, s.currentQty, s.minStock, status, now,
		))
	}

	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir %s: %v\n", outPath, err)
		os.Exit(1)
	}
	fmt.Printf("Seed generado: %s (%d centros, %d usuarios, %d repuestos)\n",
		outPath, len(centers), len(users), len(stocks))
}
