package inventory_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria de los puertos de persistencia. Sin semántica transaccional:
// los tests de aislamiento inyectan el fallo antes de la primera escritura.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	documents  map[string]*entity.Document
	items      map[string][]*entity.DocumentItem
	products   map[string]*entity.Product
	lots       []*entity.InventoryLot
	lotTxs     []*entity.LotTransaction
	productTxs []*entity.ProductTransaction
	tasks      map[string]*entity.InventoryTask // por DocumentID
	audits     []*entity.AuditLog

	lotSeq int64

	// Inyección de fallos por producto (GetForUpdate) para probar aislamiento.
	failLockProduct map[string]error
	// Forzar ErrDuplicate en el Create de la tarea (carrera create-vs-create).
	taskCreateDuplicate bool
}

func newMemStore() *memStore {
	return &memStore{
		documents:       map[string]*entity.Document{},
		items:           map[string][]*entity.DocumentItem{},
		products:        map[string]*entity.Product{},
		tasks:           map[string]*entity.InventoryTask{},
		failLockProduct: map[string]error{},
	}
}

func (s *memStore) addProduct(id, code string, stock decimal.Decimal) *entity.Product {
	p := &entity.Product{ID: id, Code: code, Name: code, Unit: "EA", CurrentStock: stock}
	s.products[id] = p
	return p
}

func (s *memStore) addLot(id, productID string, qty decimal.Decimal, receivedAt time.Time) *entity.InventoryLot {
	l := &entity.InventoryLot{
		ID:              id,
		ProductID:       productID,
		LotNumber:       "LOT-" + id,
		InitialQuantity: qty,
		CurrentQuantity: qty,
		Status:          entity.LotStatusAvailable,
		SourceType:      entity.LotSourcePurchase,
		ReceivedAt:      receivedAt,
		CreatedAt:       receivedAt,
	}
	s.lots = append(s.lots, l)
	return l
}

func (s *memStore) addDocument(id, number, docType, status string, items ...*entity.DocumentItem) *entity.Document {
	d := &entity.Document{ID: id, Number: number, Type: docType, CounterpartyID: "counterparty-1", Status: status}
	s.documents[id] = d
	for i, it := range items {
		it.DocumentID = id
		it.Position = i + 1
	}
	s.items[id] = items
	return d
}

func item(id, productID, name, quantityText string, unitPrice int64) *entity.DocumentItem {
	return &entity.DocumentItem{
		ID:           id,
		ProductID:    productID,
		Name:         name,
		QuantityText: quantityText,
		Unit:         "EA",
		UnitPrice:    decimal.NewFromInt(unitPrice),
	}
}

// ── DocumentRepository ────────────────────────────────────────────────────────

type fakeDocumentRepo struct{ s *memStore }

func (r *fakeDocumentRepo) GetByID(id string) (*entity.Document, error) {
	return r.s.documents[id], nil
}

func (r *fakeDocumentRepo) ListItems(documentID string) ([]*entity.DocumentItem, error) {
	return r.s.items[documentID], nil
}

// ── ProductRepository ─────────────────────────────────────────────────────────

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return r.s.products[id], nil }

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	if err := r.s.failLockProduct[id]; err != nil {
		return nil, err
	}
	return r.s.products[id], nil
}

func (r *fakeProductRepo) UpdateStock(productID string, stock decimal.Decimal) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = stock
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

// ── LotRepository / LotNumberRepository ───────────────────────────────────────

type fakeLotRepo struct{ s *memStore }

func (r *fakeLotRepo) Create(lot *entity.InventoryLot) error {
	r.s.lots = append(r.s.lots, lot)
	return nil
}

func (r *fakeLotRepo) GetByID(id string) (*entity.InventoryLot, error) {
	for _, l := range r.s.lots {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (r *fakeLotRepo) ListAvailableForUpdate(productID string) ([]*entity.InventoryLot, error) {
	var out []*entity.InventoryLot
	for _, l := range r.s.lots {
		if l.ProductID == productID && l.HasStock() {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ReceivedAt.Equal(out[j].ReceivedAt) {
			return out[i].ReceivedAt.Before(out[j].ReceivedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeLotRepo) UpdateQuantity(lot *entity.InventoryLot) error { return nil }

func (r *fakeLotRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryLot, error) {
	return nil, nil
}

type fakeLotNumberRepo struct{ s *memStore }

func (r *fakeLotNumberRepo) Next() (string, error) {
	r.s.lotSeq++
	return "LOT-" + decimal.NewFromInt(r.s.lotSeq).String(), nil
}

// ── Ledgers ───────────────────────────────────────────────────────────────────

type fakeLotTxRepo struct{ s *memStore }

func (r *fakeLotTxRepo) Create(tx *entity.LotTransaction) error {
	r.s.lotTxs = append(r.s.lotTxs, tx)
	return nil
}

func (r *fakeLotTxRepo) ListByLot(lotID string, limit, offset int) ([]*entity.LotTransaction, error) {
	var out []*entity.LotTransaction
	for _, t := range r.s.lotTxs {
		if t.LotID == lotID {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeProductTxRepo struct{ s *memStore }

func (r *fakeProductTxRepo) Create(tx *entity.ProductTransaction) error {
	r.s.productTxs = append(r.s.productTxs, tx)
	return nil
}

func (r *fakeProductTxRepo) ExistsForItem(documentID, itemID string) (bool, error) {
	for _, t := range r.s.productTxs {
		if t.DocumentID == documentID && t.ItemID == itemID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProductTxRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.ProductTransaction, error) {
	return nil, nil
}

func (r *fakeProductTxRepo) ListByDocument(documentID string) ([]*entity.ProductTransaction, error) {
	var out []*entity.ProductTransaction
	for _, t := range r.s.productTxs {
		if t.DocumentID == documentID {
			out = append(out, t)
		}
	}
	return out, nil
}

// ── Tareas y auditoría ────────────────────────────────────────────────────────

type fakeTaskRepo struct{ s *memStore }

func (r *fakeTaskRepo) Create(task *entity.InventoryTask) error {
	if _, ok := r.s.tasks[task.DocumentID]; ok {
		return domain.ErrDuplicate
	}
	if r.s.taskCreateDuplicate {
		// Simula otro worker ganando la carrera entre el Get y el Create:
		// la tarea ganadora ya quedó persistida cuando el INSERT choca.
		winner := *task
		winner.ID = "task-ganadora-" + task.DocumentID
		r.s.tasks[task.DocumentID] = &winner
		return domain.ErrDuplicate
	}
	r.s.tasks[task.DocumentID] = task
	return nil
}

func (r *fakeTaskRepo) GetByID(id string) (*entity.InventoryTask, error) {
	for _, t := range r.s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTaskRepo) GetByDocumentID(documentID string) (*entity.InventoryTask, error) {
	t, ok := r.s.tasks[documentID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return t, nil
}

func (r *fakeTaskRepo) MarkCompleted(task *entity.InventoryTask) error { return nil }

func (r *fakeTaskRepo) List(status, taskType string, limit, offset int) ([]*entity.InventoryTask, error) {
	return nil, nil
}

type fakeAuditRepo struct{ s *memStore }

func (r *fakeAuditRepo) Create(log *entity.AuditLog) error {
	r.s.audits = append(r.s.audits, log)
	return nil
}

func (r *fakeAuditRepo) ListByRecord(recordID string, limit, offset int) ([]*entity.AuditLog, error) {
	return nil, nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// fakeTxRunner ejecuta el callback directamente contra el store, sin transacción
// real.
type fakeTxRunner struct{ s *memStore }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.LotRepository,
	lotTxRepo repository.LotTransactionRepository,
	productRepo repository.ProductRepository,
	productTxRepo repository.ProductTransactionRepository,
) error) error {
	return fn(&fakeLotRepo{r.s}, &fakeLotTxRepo{r.s}, &fakeProductRepo{r.s}, &fakeProductTxRepo{r.s})
}
