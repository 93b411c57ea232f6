// Package memory implementa los puertos de persistencia sobre mapas en memoria.
// Es el adaptador por defecto de los tests y de las demos sin base de datos.
package memory

import (
	"sync"
	"time"

	"github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"
)

// Store contiene todas las colecciones en memoria. Un mutex único guarda
// cada operación; las transacciones se serializan aparte en TxRunner.
type Store struct {
	mu sync.Mutex

	stocks      map[string]*entity.CentralStock
	adjustments []*entity.StockAdjustment
	orders      map[string]*entity.PurchaseOrder
	issues      map[string]*entity.PartsIssue
	centers     map[string]*entity.ServiceCenter
	users       map[string]*entity.User
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{
		stocks:  make(map[string]*entity.CentralStock),
		orders:  make(map[string]*entity.PurchaseOrder),
		issues:  make(map[string]*entity.PartsIssue),
		centers: make(map[string]*entity.ServiceCenter),
		users:   make(map[string]*entity.User),
	}
}

// snapshot copia el estado completo para poder restaurarlo si una
// transacción falla a mitad de camino.
func (s *Store) snapshot() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := NewStore()
	for id, st := range s.stocks {
		snap.stocks[id] = cloneStock(st)
	}
	snap.adjustments = make([]*entity.StockAdjustment, len(s.adjustments))
	for i, adj := range s.adjustments {
		snap.adjustments[i] = cloneAdjustment(adj)
	}
	for id, po := range s.orders {
		snap.orders[id] = cloneOrder(po)
	}
	for id, pi := range s.issues {
		snap.issues[id] = cloneIssue(pi)
	}
	for id, sc := range s.centers {
		snap.centers[id] = cloneCenter(sc)
	}
	for id, u := range s.users {
		snap.users[id] = cloneUser(u)
	}
	return snap
}

// restore reemplaza el estado con el de un snapshot previo.
func (s *Store) restore(snap *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stocks = snap.stocks
	s.adjustments = snap.adjustments
	s.orders = snap.orders
	s.issues = snap.issues
	s.centers = snap.centers
	s.users = snap.users
}

// paginate aplica limit/offset sobre un slice ya ordenado.
func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneStock(st *entity.CentralStock) *entity.CentralStock {
	c := *st
	return &c
}

func cloneAdjustment(adj *entity.StockAdjustment) *entity.StockAdjustment {
	c := *adj
	return &c
}

func cloneOrder(po *entity.PurchaseOrder) *entity.PurchaseOrder {
	c := *po
	c.Items = make([]entity.PurchaseOrderItem, len(po.Items))
	copy(c.Items, po.Items)
	c.ApprovedAt = cloneTime(po.ApprovedAt)
	c.RejectedAt = cloneTime(po.RejectedAt)
	c.FulfilledAt = cloneTime(po.FulfilledAt)
	return &c
}

func cloneIssue(pi *entity.PartsIssue) *entity.PartsIssue {
	c := *pi
	c.Items = make([]entity.PartsIssueItem, len(pi.Items))
	copy(c.Items, pi.Items)
	c.ReceivedAt = cloneTime(pi.ReceivedAt)
	return &c
}

func cloneCenter(sc *entity.ServiceCenter) *entity.ServiceCenter {
	c := *sc
	return &c
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}
