package handler

import (
	"io"

	"go-affiliate-ops/internal/model"
	"go-affiliate-ops/internal/repository"
	"go-affiliate-ops/internal/service"

	"github.com/gofiber/fiber/v2"
)

// FinanceHandler serves commissions, cashflow, assets and debts/receivables
type FinanceHandler struct {
	commissions service.CommissionService
	cashflow    service.CashflowService
	assets      service.AssetService
	debts       service.DebtService
}

func NewFinanceHandler(
	commissions service.CommissionService,
	cashflow service.CashflowService,
	assets service.AssetService,
	debts service.DebtService,
) *FinanceHandler {
	return &FinanceHandler{
		commissions: commissions,
		cashflow:    cashflow,
		assets:      assets,
		debts:       debts,
	}
}

// ============ COMMISSIONS ============

// GET /api/v1/commissions?month=&year=&account_id=&group_id=
func (h *FinanceHandler) GetCommissions(c *fiber.Ctx) error {
	month, year, ok := monthYear(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid month or year"})
	}
	accountID, ok := queryUUID(c, "account_id")
	if !ok {
		return invalidID(c, "account")
	}
	groupID, ok := queryUUID(c, "group_id")
	if !ok {
		return invalidID(c, "group")
	}

	rows, err := h.commissions.List(repository.CommissionFilter{Month: month, Year: year, AccountID: accountID, GroupID: groupID})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": rows, "total": len(rows)})
}

// GET /api/v1/commissions/summary?month=&year=
func (h *FinanceHandler) GetCommissionSummary(c *fiber.Ctx) error {
	month, year, ok := monthYear(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid month or year"})
	}

	totals, err := h.commissions.Summary(month, year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": totals})
}

// POST /api/v1/commissions
func (h *FinanceHandler) CreateCommission(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	var req service.CommissionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	row, err := h.commissions.Create(&req, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Commission created successfully", "data": row})
}

// PUT /api/v1/commissions/:id
func (h *FinanceHandler) UpdateCommission(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "commission")
	}
	var req service.CommissionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	row, err := h.commissions.Update(id, &req, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Commission updated successfully", "data": row})
}

// DELETE /api/v1/commissions/:id
func (h *FinanceHandler) DeleteCommission(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "commission")
	}

	if err := h.commissions.Delete(id, actor); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Commission deleted successfully"})
}

// ImportCommissions accepts a multipart "file" field (.csv or .xlsx)
// POST /api/v1/commissions/import
func (h *FinanceHandler) ImportCommissions(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}

	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "File is required (multipart field 'file')"})
	}
	file, err := header.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Cannot open uploaded file"})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Cannot read uploaded file"})
	}

	imported, err := h.commissions.Import(header.Filename, data, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Import completed", "imported": imported})
}

// ============ CASHFLOW ============

func cashflowQuery(c *fiber.Ctx) (service.CashflowQuery, bool) {
	month, year, ok := monthYear(c)
	if !ok {
		return service.CashflowQuery{}, false
	}
	return service.CashflowQuery{Month: month, Year: year, Type: model.CashflowType(c.Query("type"))}, true
}

// GET /api/v1/cashflow?month=&year=&type=
func (h *FinanceHandler) GetCashflow(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	q, ok := cashflowQuery(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid month or year"})
	}

	entries, err := h.cashflow.List(q, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": entries, "total": len(entries)})
}

// GET /api/v1/cashflow/summary?month=&year=
func (h *FinanceHandler) GetCashflowSummary(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	q, ok := cashflowQuery(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid month or year"})
	}

	summary, err := h.cashflow.Summary(q, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": summary})
}

// GET /api/v1/cashflow/:id
func (h *FinanceHandler) GetCashflowEntry(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "cashflow")
	}

	entry, err := h.cashflow.Get(id, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": entry})
}

// POST /api/v1/cashflow
func (h *FinanceHandler) CreateCashflow(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	var req service.CashflowRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	entry, err := h.cashflow.Create(&req, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Cashflow entry created successfully", "data": entry})
}

// PUT /api/v1/cashflow/:id
func (h *FinanceHandler) UpdateCashflow(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "cashflow")
	}
	var req service.CashflowRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	entry, err := h.cashflow.Update(id, &req, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Cashflow entry updated successfully", "data": entry})
}

// DELETE /api/v1/cashflow/:id
func (h *FinanceHandler) DeleteCashflow(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "cashflow")
	}

	if err := h.cashflow.Delete(id, actor); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Cashflow entry deleted successfully"})
}

// ============ ASSETS ============

// GET /api/v1/assets
func (h *FinanceHandler) GetAssets(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}

	assets, err := h.assets.List(actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": assets, "total": len(assets)})
}

// GET /api/v1/assets/summary
func (h *FinanceHandler) GetAssetSummary(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}

	summary, err := h.assets.Summary(actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": summary})
}

// POST /api/v1/assets
func (h *FinanceHandler) CreateAsset(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	var req service.AssetRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	asset, err := h.assets.Create(&req, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Asset created successfully", "data": asset})
}

// PUT /api/v1/assets/:id
func (h *FinanceHandler) UpdateAsset(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "asset")
	}
	var req service.AssetRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	asset, err := h.assets.Update(id, &req, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Asset updated successfully", "data": asset})
}

// DELETE /api/v1/assets/:id
func (h *FinanceHandler) DeleteAsset(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "asset")
	}

	if err := h.assets.Delete(id, actor); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Asset deleted successfully"})
}

// ============ DEBTS / RECEIVABLES ============

// GET /api/v1/debts?type=&status=
func (h *FinanceHandler) GetDebts(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}

	entries, err := h.debts.List(model.DebtType(c.Query("type")), model.PaymentStatus(c.Query("status")), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": entries, "total": len(entries)})
}

// GET /api/v1/debts/summary
func (h *FinanceHandler) GetDebtSummary(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}

	totals, err := h.debts.Summary(actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": totals})
}

// POST /api/v1/debts
func (h *FinanceHandler) CreateDebt(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	var req service.DebtRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	entry, err := h.debts.Create(&req, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Entry created successfully", "data": entry})
}

// PUT /api/v1/debts/:id
func (h *FinanceHandler) UpdateDebt(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "debt")
	}
	var req service.DebtRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	entry, err := h.debts.Update(id, &req, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Entry updated successfully", "data": entry})
}

// DELETE /api/v1/debts/:id
func (h *FinanceHandler) DeleteDebt(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "debt")
	}

	if err := h.debts.Delete(id, actor); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Entry deleted successfully"})
}
