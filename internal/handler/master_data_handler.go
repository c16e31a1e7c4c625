package handler

import (
	"strconv"

	"go-affiliate-ops/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// MasterDataHandler serves devices, affiliate accounts, groups, SOP documents,
// KPI targets and the audit trail
type MasterDataHandler struct {
	devices  service.DeviceService
	accounts service.AccountService
	groups   service.GroupService
	sops     service.SOPService
	kpis     service.KPIService
	audit    service.AuditService
}

func NewMasterDataHandler(
	devices service.DeviceService,
	accounts service.AccountService,
	groups service.GroupService,
	sops service.SOPService,
	kpis service.KPIService,
	audit service.AuditService,
) *MasterDataHandler {
	return &MasterDataHandler{
		devices:  devices,
		accounts: accounts,
		groups:   groups,
		sops:     sops,
		kpis:     kpis,
		audit:    audit,
	}
}

// ============ DEVICES ============

// GET /api/v1/devices?group_id=
func (h *MasterDataHandler) GetDevices(c *fiber.Ctx) error {
	groupID, ok := queryUUID(c, "group_id")
	if !ok {
		return invalidID(c, "group")
	}

	devices, err := h.devices.List(groupID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": devices, "total": len(devices)})
}

// GetMyDevices lists the devices available to the logged-in employee's group
// GET /api/v1/reports/devices
func (h *MasterDataHandler) GetMyDevices(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}

	devices, err := h.devices.List(actor.GroupID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": devices, "total": len(devices)})
}

// GET /api/v1/devices/:id
func (h *MasterDataHandler) GetDevice(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "device")
	}

	device, err := h.devices.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": device})
}

// POST /api/v1/devices
func (h *MasterDataHandler) CreateDevice(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	var req service.DeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	device, err := h.devices.Create(&req, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Device created successfully", "data": device})
}

// PUT /api/v1/devices/:id
func (h *MasterDataHandler) UpdateDevice(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "device")
	}
	var req service.DeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	device, err := h.devices.Update(id, &req, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Device updated successfully", "data": device})
}

// DELETE /api/v1/devices/:id
func (h *MasterDataHandler) DeleteDevice(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "device")
	}

	if err := h.devices.Delete(id, actor); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Device deleted successfully"})
}

// ============ AFFILIATE ACCOUNTS ============

// GET /api/v1/accounts?group_id=
func (h *MasterDataHandler) GetAccounts(c *fiber.Ctx) error {
	groupID, ok := queryUUID(c, "group_id")
	if !ok {
		return invalidID(c, "group")
	}

	accounts, err := h.accounts.List(groupID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": accounts, "total": len(accounts)})
}

// GetMyAccounts lists the affiliate accounts of the logged-in employee's group
// GET /api/v1/reports/accounts
func (h *MasterDataHandler) GetMyAccounts(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}

	accounts, err := h.accounts.List(actor.GroupID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": accounts, "total": len(accounts)})
}

// GET /api/v1/accounts/:id
func (h *MasterDataHandler) GetAccount(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "account")
	}

	account, err := h.accounts.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": account})
}

// POST /api/v1/accounts
func (h *MasterDataHandler) CreateAccount(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	var req service.AccountRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	account, err := h.accounts.Create(&req, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Account created successfully", "data": account})
}

// PUT /api/v1/accounts/:id
func (h *MasterDataHandler) UpdateAccount(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "account")
	}
	var req service.AccountRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	account, err := h.accounts.Update(id, &req, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Account updated successfully", "data": account})
}

// DELETE /api/v1/accounts/:id
func (h *MasterDataHandler) DeleteAccount(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "account")
	}

	if err := h.accounts.Delete(id, actor); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Account deleted successfully"})
}

// ============ GROUPS ============

// GET /api/v1/groups
func (h *MasterDataHandler) GetGroups(c *fiber.Ctx) error {
	groups, err := h.groups.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": groups, "total": len(groups)})
}

// POST /api/v1/groups
func (h *MasterDataHandler) CreateGroup(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	var req service.GroupRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	group, err := h.groups.Create(&req, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Group created successfully", "data": group})
}

// PUT /api/v1/groups/:id
func (h *MasterDataHandler) UpdateGroup(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "group")
	}
	var req service.GroupRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	group, err := h.groups.Update(id, &req, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Group updated successfully", "data": group})
}

// DELETE /api/v1/groups/:id
func (h *MasterDataHandler) DeleteGroup(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "group")
	}

	if err := h.groups.Delete(id, actor); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Group deleted successfully"})
}

// ============ SOP DOCUMENTS ============

// GET /api/v1/sop-documents
func (h *MasterDataHandler) GetSOPs(c *fiber.Ctx) error {
	docs, err := h.sops.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": docs, "total": len(docs)})
}

// POST /api/v1/sop-documents
func (h *MasterDataHandler) CreateSOP(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	var req service.SOPRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	doc, err := h.sops.Create(&req, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "SOP document created successfully", "data": doc})
}

// PUT /api/v1/sop-documents/:id
func (h *MasterDataHandler) UpdateSOP(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "SOP document")
	}
	var req service.SOPRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	doc, err := h.sops.Update(id, &req, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "SOP document updated successfully", "data": doc})
}

// DELETE /api/v1/sop-documents/:id
func (h *MasterDataHandler) DeleteSOP(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "SOP document")
	}

	if err := h.sops.Delete(id, actor); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "SOP document deleted successfully"})
}

// ============ KPI TARGETS ============

// GET /api/v1/kpi-targets?month=&year=
func (h *MasterDataHandler) GetKPITargets(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	month, year, ok := monthYear(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid month or year"})
	}

	targets, err := h.kpis.List(month, year, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": targets, "total": len(targets)})
}

// GetKPIProgress compares a group's month with its targets
// GET /api/v1/kpi-targets/progress?group_id=&month=&year=
func (h *MasterDataHandler) GetKPIProgress(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	month, year, ok := monthYear(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid month or year"})
	}

	var groupID uuid.UUID
	if raw := c.Query("group_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return invalidID(c, "group")
		}
		groupID = parsed
	} else if actor.GroupID != nil {
		groupID = *actor.GroupID
	} else {
		return c.Status(400).JSON(fiber.Map{"error": "group_id is required"})
	}

	progress, err := h.kpis.Progress(groupID, month, year, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": progress})
}

// POST /api/v1/kpi-targets
func (h *MasterDataHandler) CreateKPITarget(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	var req service.KPIRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	target, err := h.kpis.Create(&req, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "KPI target created successfully", "data": target})
}

// PUT /api/v1/kpi-targets/:id
func (h *MasterDataHandler) UpdateKPITarget(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "KPI target")
	}
	var req service.KPIRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	target, err := h.kpis.Update(id, &req, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "KPI target updated successfully", "data": target})
}

// DELETE /api/v1/kpi-targets/:id
func (h *MasterDataHandler) DeleteKPITarget(c *fiber.Ctx) error {
	actor, ok := actorOf(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "KPI target")
	}

	if err := h.kpis.Delete(id, actor); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "KPI target deleted successfully"})
}

// ============ AUDIT TRAIL ============

// GET /api/v1/audit-trail?table=&limit=
func (h *MasterDataHandler) GetAuditTrail(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	entries, err := h.audit.List(c.Query("table"), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": entries, "total": len(entries)})
}
