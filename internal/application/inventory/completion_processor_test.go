package inventory_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lotes-api/internal/application/inventory"
	"github.com/jhoicas/lotes-api/internal/domain"
	"github.com/jhoicas/lotes-api/internal/domain/entity"
	"github.com/jhoicas/lotes-api/pkg/logger"
)

const testActor = "00000000-0000-0000-0000-000000000099"

func newProcessor(s *memStore) *inventory.CompletionProcessor {
	return inventory.NewCompletionProcessor(
		&fakeTxRunner{s},
		&fakeDocumentRepo{s},
		&fakeTaskRepo{s},
		&fakeLotNumberRepo{s},
		&fakeAuditRepo{s},
		logger.NewNop(),
	)
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// ──────────────────────────────────────────────────────────────────────────────
// Precondiciones fatales
// ──────────────────────────────────────────────────────────────────────────────

// Documento inexistente: corrida fallida, sin tarea y sin mutación del ledger.
func TestProcess_DocumentoInexistente(t *testing.T) {
	s := newMemStore()
	result, err := newProcessor(s).Process(context.Background(), "no-existe", testActor)

	require.ErrorIs(t, err, domain.ErrDocumentNotFound)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Errors)
	assert.Empty(t, s.tasks, "no debe crearse tarea para un documento inexistente")
	assert.Empty(t, s.productTxs)
}

// Documento en estado no final: el motor nunca debe correr contra él.
func TestProcess_DocumentoNoCompletado(t *testing.T) {
	s := newMemStore()
	s.addProduct("p1", "SKU-001", dec(0))
	s.addDocument("d1", "ORD-0001", entity.DocumentTypeOrder, entity.DocumentStatusPending,
		item("i1", "p1", "Tornillo M8", "10", 100))

	result, err := newProcessor(s).Process(context.Background(), "d1", testActor)

	require.ErrorIs(t, err, domain.ErrDocumentNotCompleted)
	assert.False(t, result.Success)
	assert.Empty(t, s.lots)
	assert.Empty(t, s.tasks)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entrada (compra completada → lote)
// ──────────────────────────────────────────────────────────────────────────────

// Compra de 25 unidades a costo 1000 para un producto sin lotes previos:
// un lote nuevo initial=current=25, stock +25, un asiento por ledger.
func TestProcess_EntradaCreaLote(t *testing.T) {
	s := newMemStore()
	s.addProduct("p1", "SKU-001", dec(0))
	s.addDocument("d1", "ORD-0001", entity.DocumentTypeOrder, entity.DocumentStatusCompleted,
		item("i1", "p1", "Tornillo M8", "25", 1000))

	result, err := newProcessor(s).Process(context.Background(), "d1", testActor)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.LotsCreated)
	assert.Equal(t, 1, result.StockUpdated)
	assert.Empty(t, result.Errors)

	require.Len(t, s.lots, 1)
	lot := s.lots[0]
	assert.True(t, lot.InitialQuantity.Equal(dec(25)))
	assert.True(t, lot.CurrentQuantity.Equal(dec(25)))
	assert.Equal(t, entity.LotStatusAvailable, lot.Status)
	assert.Equal(t, entity.LotSourcePurchase, lot.SourceType)
	assert.Equal(t, "d1", lot.SourceDocumentID)
	assert.Equal(t, "counterparty-1", lot.SupplierID)
	assert.True(t, lot.UnitCost.Equal(dec(1000)))
	assert.True(t, lot.TotalCost.Equal(dec(25000)))

	assert.True(t, s.products["p1"].CurrentStock.Equal(dec(25)))

	require.Len(t, s.lotTxs, 1)
	assert.Equal(t, entity.TransactionTypeInbound, s.lotTxs[0].Type)
	assert.True(t, s.lotTxs[0].QuantityBefore.Equal(dec(0)))
	assert.True(t, s.lotTxs[0].QuantityAfter.Equal(dec(25)))

	require.Len(t, s.productTxs, 1)
	assert.Equal(t, entity.TransactionTypeInbound, s.productTxs[0].Type)
	assert.True(t, s.productTxs[0].StockBefore.Equal(dec(0)))
	assert.True(t, s.productTxs[0].StockAfter.Equal(dec(25)))
}

// Una línea sin producto vinculado es informativa: una advertencia, cero escrituras,
// y la corrida sigue siendo exitosa (trivial si no hay más líneas).
func TestProcess_LineaSinProductoSeOmite(t *testing.T) {
	s := newMemStore()
	s.addDocument("d1", "ORD-0001", entity.DocumentTypeOrder, entity.DocumentStatusCompleted,
		item("i1", "", "Flete y manejo", "1", 35000))

	result, err := newProcessor(s).Process(context.Background(), "d1", testActor)

	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Flete y manejo")
	assert.Zero(t, result.LotsCreated)
	assert.Zero(t, result.StockUpdated)
	assert.Empty(t, s.lots)
	assert.Empty(t, s.lotTxs)
	assert.Empty(t, s.productTxs)

	// La tarea igual se crea y completa: corrida trivial válida.
	task, errTask := (&fakeTaskRepo{s}).GetByDocumentID("d1")
	require.NoError(t, errTask)
	assert.Equal(t, entity.TaskStatusCompleted, task.Status)
}

// Cantidades cero, negativas o no parseables se omiten con advertencia.
func TestProcess_CantidadNoPositivaSeOmite(t *testing.T) {
	s := newMemStore()
	s.addProduct("p1", "SKU-001", dec(0))
	s.addDocument("d1", "ORD-0001", entity.DocumentTypeOrder, entity.DocumentStatusCompleted,
		item("i1", "p1", "línea cero", "0", 100),
		item("i2", "p1", "línea negativa", "-5", 100),
		item("i3", "p1", "línea basura", "N/A", 100),
	)

	result, err := newProcessor(s).Process(context.Background(), "d1", testActor)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Len(t, result.Warnings, 3)
	assert.Empty(t, s.lots)
	assert.True(t, s.products["p1"].CurrentStock.Equal(dec(0)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Salida (venta completada → consumo FIFO)
// ──────────────────────────────────────────────────────────────────────────────

// Un lote de 100, venta de 60: el lote queda en 40 (available), stock 40,
// un LotTransaction outbound de 60 y un ProductTransaction por el neto.
func TestProcess_SalidaConsumeParcialUnLote(t *testing.T) {
	s := newMemStore()
	s.addProduct("p1", "SKU-001", dec(100))
	s.addLot("l1", "p1", dec(100), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s.addDocument("d1", "EST-0001", entity.DocumentTypeEstimate, entity.DocumentStatusCompleted,
		item("i1", "p1", "Tornillo M8", "60", 1500))

	result, err := newProcessor(s).Process(context.Background(), "d1", testActor)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.LotsDeducted)
	assert.Equal(t, 1, result.StockUpdated)
	assert.Empty(t, result.Warnings)

	lot := s.lots[0]
	assert.True(t, lot.CurrentQuantity.Equal(dec(40)))
	assert.Equal(t, entity.LotStatusAvailable, lot.Status)
	assert.True(t, s.products["p1"].CurrentStock.Equal(dec(40)))

	require.Len(t, s.lotTxs, 1)
	assert.Equal(t, entity.TransactionTypeOutbound, s.lotTxs[0].Type)
	assert.True(t, s.lotTxs[0].Quantity.Equal(dec(60)))
	assert.True(t, s.lotTxs[0].QuantityBefore.Equal(dec(100)))
	assert.True(t, s.lotTxs[0].QuantityAfter.Equal(dec(40)))

	require.Len(t, s.productTxs, 1)
	assert.Equal(t, entity.TransactionTypeOutbound, s.productTxs[0].Type)
	assert.True(t, s.productTxs[0].StockBefore.Equal(dec(100)))
	assert.True(t, s.productTxs[0].StockAfter.Equal(dec(40)))
}

// Dos lotes (40 del 1-ene, 50 del 1-feb), venta de 70: el lote viejo se agota
// (depleted) y el nuevo queda en 20. Dos asientos de lote, uno de producto por 70.
func TestProcess_SalidaFIFOMultiLote(t *testing.T) {
	s := newMemStore()
	s.addProduct("p1", "SKU-001", dec(90))
	l1 := s.addLot("l1", "p1", dec(40), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	l2 := s.addLot("l2", "p1", dec(50), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	s.addDocument("d1", "EST-0001", entity.DocumentTypeEstimate, entity.DocumentStatusCompleted,
		item("i1", "p1", "Tornillo M8", "70", 1500))

	result, err := newProcessor(s).Process(context.Background(), "d1", testActor)

	require.NoError(t, err)
	assert.Equal(t, 2, result.LotsDeducted)

	assert.True(t, l1.CurrentQuantity.Equal(dec(0)))
	assert.Equal(t, entity.LotStatusDepleted, l1.Status)
	assert.True(t, l2.CurrentQuantity.Equal(dec(20)))
	assert.Equal(t, entity.LotStatusAvailable, l2.Status)
	assert.True(t, s.products["p1"].CurrentStock.Equal(dec(20)))

	// FIFO estricto: primero el lote más viejo, y completo, antes de tocar el nuevo.
	require.Len(t, s.lotTxs, 2)
	assert.Equal(t, "l1", s.lotTxs[0].LotID)
	assert.True(t, s.lotTxs[0].Quantity.Equal(dec(40)))
	assert.Equal(t, "l2", s.lotTxs[1].LotID)
	assert.True(t, s.lotTxs[1].Quantity.Equal(dec(30)))

	require.Len(t, s.productTxs, 1)
	assert.True(t, s.productTxs[0].Quantity.Equal(dec(70)))
}

// El orden FIFO depende solo de received_at/created_at, nunca del costo.
func TestProcess_FIFOIgnoraElCosto(t *testing.T) {
	s := newMemStore()
	s.addProduct("p1", "SKU-001", dec(20))
	caro := s.addLot("l-caro", "p1", dec(10), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	caro.UnitCost = dec(9000)
	barato := s.addLot("l-barato", "p1", dec(10), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	barato.UnitCost = dec(1)
	s.addDocument("d1", "EST-0001", entity.DocumentTypeEstimate, entity.DocumentStatusCompleted,
		item("i1", "p1", "Tornillo M8", "5", 1500))

	_, err := newProcessor(s).Process(context.Background(), "d1", testActor)

	require.NoError(t, err)
	assert.True(t, caro.CurrentQuantity.Equal(dec(5)), "debe consumirse el lote más viejo aunque sea el más caro")
	assert.True(t, barato.CurrentQuantity.Equal(dec(10)), "el lote nuevo no debe tocarse mientras el viejo tenga saldo")
}

// Venta de 50 con solo 30 disponibles: cumplimiento parcial, stock a 0, y una
// advertencia que nombra las 20 unidades sin cubrir. La corrida sigue exitosa.
func TestProcess_StockInsuficienteCumpleParcial(t *testing.T) {
	s := newMemStore()
	s.addProduct("p1", "SKU-001", dec(30))
	s.addLot("l1", "p1", dec(30), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s.addDocument("d1", "EST-0001", entity.DocumentTypeEstimate, entity.DocumentStatusCompleted,
		item("i1", "p1", "Tornillo M8", "50", 1500))

	result, err := newProcessor(s).Process(context.Background(), "d1", testActor)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.LotsDeducted)
	assert.True(t, s.products["p1"].CurrentStock.Equal(dec(0)))
	assert.Equal(t, entity.LotStatusDepleted, s.lots[0].Status)

	// Advertencia de stock insuficiente + advertencia del remanente sin cubrir.
	require.NotEmpty(t, result.Warnings)
	joined := ""
	for _, w := range result.Warnings {
		joined += w + "\n"
	}
	assert.Contains(t, joined, "20", "la advertencia debe nombrar la cantidad sin cubrir")

	require.Len(t, s.productTxs, 1)
	assert.True(t, s.productTxs[0].Quantity.Equal(dec(30)), "el asiento refleja lo realmente retirado")
	assert.True(t, s.productTxs[0].StockAfter.Equal(dec(0)))
}

// Invariantes tras cualquier corrida de salida: lotes acotados y stock no negativo.
func TestProcess_InvariantesTrasSalida(t *testing.T) {
	s := newMemStore()
	s.addProduct("p1", "SKU-001", dec(45))
	s.addLot("l1", "p1", dec(15), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s.addLot("l2", "p1", dec(30), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	s.addDocument("d1", "EST-0001", entity.DocumentTypeEstimate, entity.DocumentStatusCompleted,
		item("i1", "p1", "Tornillo M8", "100", 1500))

	_, err := newProcessor(s).Process(context.Background(), "d1", testActor)
	require.NoError(t, err)

	for _, l := range s.lots {
		assert.False(t, l.CurrentQuantity.IsNegative(), "current_quantity nunca negativo")
		assert.True(t, l.CurrentQuantity.LessThanOrEqual(l.InitialQuantity), "current <= initial")
	}
	assert.False(t, s.products["p1"].CurrentStock.IsNegative(), "stock nunca negativo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Idempotencia y aislamiento
// ──────────────────────────────────────────────────────────────────────────────

// Procesar dos veces el mismo documento: una sola tarea, y ningún lote ni asiento
// duplicado (el check por línea omite lo ya asentado).
func TestProcess_ReprocesoIdempotente(t *testing.T) {
	s := newMemStore()
	s.addProduct("p1", "SKU-001", dec(0))
	s.addDocument("d1", "ORD-0001", entity.DocumentTypeOrder, entity.DocumentStatusCompleted,
		item("i1", "p1", "Tornillo M8", "25", 1000))

	proc := newProcessor(s)
	first, err := proc.Process(context.Background(), "d1", testActor)
	require.NoError(t, err)
	second, err := proc.Process(context.Background(), "d1", testActor)
	require.NoError(t, err)

	assert.Equal(t, first.TaskID, second.TaskID, "debe reutilizarse la misma tarea")
	assert.Len(t, s.tasks, 1)

	assert.Len(t, s.lots, 1, "el reproceso no debe crear un segundo lote")
	assert.Len(t, s.productTxs, 1)
	assert.True(t, s.products["p1"].CurrentStock.Equal(dec(25)), "el stock no debe duplicarse")
	assert.Zero(t, second.LotsCreated)
	assert.NotEmpty(t, second.Warnings, "el reproceso advierte las líneas ya asentadas")
}

// Carrera create-vs-create sobre la tarea: ante ErrDuplicate se relee la que ganó.
func TestProcess_TareaDuplicadaRelee(t *testing.T) {
	s := newMemStore()
	s.addProduct("p1", "SKU-001", dec(0))
	s.addDocument("d1", "ORD-0001", entity.DocumentTypeOrder, entity.DocumentStatusCompleted,
		item("i1", "p1", "Tornillo M8", "10", 100))

	s.taskCreateDuplicate = true
	result, err := newProcessor(s).Process(context.Background(), "d1", testActor)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Len(t, s.tasks, 1)
	task := s.tasks["d1"]
	require.NotNil(t, task)
	assert.Equal(t, task.ID, result.TaskID, "debe adoptarse la tarea que ganó la carrera")
	assert.Equal(t, "task-ganadora-d1", result.TaskID)
	assert.Equal(t, entity.TaskStatusCompleted, task.Status)

	// La corrida continúa normal tras releer la tarea.
	assert.Equal(t, 1, result.LotsCreated)
	assert.True(t, s.products["p1"].CurrentStock.Equal(dec(10)))
}

// Una línea que falla no aborta el documento: las demás se asientan y el error
// queda capturado en Errors con el nombre de la línea.
func TestProcess_FalloPorLineaNoAbortaLasDemas(t *testing.T) {
	s := newMemStore()
	s.addProduct("p1", "SKU-001", dec(0))
	s.addProduct("p2", "SKU-002", dec(0))
	s.addProduct("p3", "SKU-003", dec(0))
	s.failLockProduct["p2"] = errors.New("deadlock detectado")
	s.addDocument("d1", "ORD-0001", entity.DocumentTypeOrder, entity.DocumentStatusCompleted,
		item("i1", "p1", "línea uno", "10", 100),
		item("i2", "p2", "línea dos", "20", 100),
		item("i3", "p3", "línea tres", "30", 100),
	)

	result, err := newProcessor(s).Process(context.Background(), "d1", testActor)

	require.NoError(t, err)
	assert.True(t, result.Success, "errores por línea no vuelcan Success")
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "línea dos")

	assert.Equal(t, 2, result.LotsCreated)
	assert.True(t, s.products["p1"].CurrentStock.Equal(dec(10)))
	assert.True(t, s.products["p2"].CurrentStock.Equal(dec(0)))
	assert.True(t, s.products["p3"].CurrentStock.Equal(dec(30)))

	// La tarea se completa igualmente: todas las líneas fueron intentadas.
	task := s.tasks["d1"]
	require.NotNil(t, task)
	assert.Equal(t, entity.TaskStatusCompleted, task.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tarea y auditoría
// ──────────────────────────────────────────────────────────────────────────────

// La tarea deriva su tipo del documento y queda completada con actor y timestamp.
func TestProcess_TareaCompletadaConActor(t *testing.T) {
	s := newMemStore()
	s.addProduct("p1", "SKU-001", dec(50))
	s.addLot("l1", "p1", dec(50), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s.addDocument("d1", "EST-0001", entity.DocumentTypeEstimate, entity.DocumentStatusCompleted,
		item("i1", "p1", "Tornillo M8", "10", 1500))

	result, err := newProcessor(s).Process(context.Background(), "d1", testActor)
	require.NoError(t, err)

	task := s.tasks["d1"]
	require.NotNil(t, task)
	assert.Equal(t, result.TaskID, task.ID)
	assert.Equal(t, entity.TaskTypeOutbound, task.TaskType)
	assert.Equal(t, entity.TaskStatusCompleted, task.Status)
	assert.Equal(t, testActor, task.CompletedBy)
	require.NotNil(t, task.CompletedAt)
}

// Cada corrida emite exactamente una entrada de auditoría AUTO_PROCESS con los
// conteos y advertencias, referenciando la tarea.
func TestProcess_EmiteUnaEntradaDeAuditoria(t *testing.T) {
	s := newMemStore()
	s.addProduct("p1", "SKU-001", dec(0))
	s.addDocument("d1", "ORD-0001", entity.DocumentTypeOrder, entity.DocumentStatusCompleted,
		item("i1", "p1", "Tornillo M8", "25", 1000),
		item("i2", "", "Flete", "1", 35000),
	)

	result, err := newProcessor(s).Process(context.Background(), "d1", testActor)
	require.NoError(t, err)

	require.Len(t, s.audits, 1)
	entry := s.audits[0]
	assert.Equal(t, entity.AuditKindAutoProcess, entry.Kind)
	assert.Equal(t, result.TaskID, entry.RecordID)
	assert.Equal(t, testActor, entry.CreatedBy)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(entry.Payload, &payload))
	assert.Equal(t, "d1", payload["document_id"])
	assert.Equal(t, float64(1), payload["lots_created"])
	assert.NotEmpty(t, payload["warnings"])
}
