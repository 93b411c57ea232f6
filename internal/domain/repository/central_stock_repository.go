package repository

import "github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"

// CentralStockRepository define el puerto de persistencia del stock central.
// Get* devuelven (nil, nil) cuando la fila no existe.
type CentralStockRepository interface {
	Create(stock *entity.CentralStock) error
	GetByID(id string) (*entity.CentralStock, error)
	// GetByPartID devuelve la primera coincidencia por clave de negocio
	// (el puerto no impide duplicados de PartID).
	GetByPartID(partID string) (*entity.CentralStock, error)
	List() ([]*entity.CentralStock, error)
	// Search busca por subcadena (insensible a mayúsculas y tildes) en nombre,
	// número de parte, código HSN y categoría. Query vacío devuelve todo.
	Search(query string) ([]*entity.CentralStock, error)
	Update(stock *entity.CentralStock) error
	Delete(id string) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(id string) (*entity.CentralStock, error)
}
