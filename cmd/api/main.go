package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-affiliate-ops/internal/handler"
	"go-affiliate-ops/internal/model"
	"go-affiliate-ops/internal/rbac"
	"go-affiliate-ops/internal/repository"
	"go-affiliate-ops/internal/service"
	"go-affiliate-ops/internal/ws"
	"go-affiliate-ops/pkg/cache"
	"go-affiliate-ops/pkg/config"
	"go-affiliate-ops/pkg/database"
	"go-affiliate-ops/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Load Env
	cfg := config.Load()
	service.SetLocation(cfg.Location())
	jwt.SetSecret(cfg.JWTSecret)

	// 2. Permission matrix harus lengkap sebelum server jalan
	matrix := rbac.DefaultMatrix()
	if err := rbac.Validate(matrix); err != nil {
		log.Fatalf("Invalid permission matrix: %v", err)
	}
	evaluator := rbac.NewEvaluator(matrix)

	// 3. Setup Database
	db := database.ConnectDB(cfg.DB, cfg.Timezone)
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	if err := db.AutoMigrate(
		&model.Group{}, &model.User{}, &model.Device{}, &model.AffiliateAccount{},
		&model.DailyReport{}, &model.Attendance{}, &model.Commission{}, &model.Cashflow{},
		&model.Asset{}, &model.DebtReceivable{}, &model.KPITarget{}, &model.SOPDocument{},
		&model.AuditEntry{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	groupRepo := repository.NewGroupRepo(db)
	deviceRepo := repository.NewDeviceRepo(db)
	accountRepo := repository.NewAccountRepo(db)
	reportRepo := repository.NewReportRepo(db)
	attendanceRepo := repository.NewAttendanceRepo(db)
	commissionRepo := repository.NewCommissionRepo(db)
	cashflowRepo := repository.NewCashflowRepo(db)
	assetRepo := repository.NewAssetRepo(db)
	debtRepo := repository.NewDebtRepo(db)
	kpiRepo := repository.NewKPIRepo(db)
	sopRepo := repository.NewSOPRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	seedSuperAdmin(userRepo, cfg.SeedAdmin)

	auditService := service.NewAuditService(auditRepo)
	dashService := service.NewDashboardService(commissionRepo, cashflowRepo, reportRepo, userRepo, groupRepo, cache.New(cfg.Redis))
	authService := service.NewAuthService(userRepo, evaluator, wsHub)
	userService := service.NewUserService(userRepo, auditService)
	reportService := service.NewReportService(reportRepo, deviceRepo, accountRepo, userRepo, groupRepo, auditService, wsHub)
	attendanceService := service.NewAttendanceService(attendanceRepo, auditService)
	commissionService := service.NewCommissionService(commissionRepo, accountRepo, auditService, dashService.Invalidate)
	cashflowService := service.NewCashflowService(cashflowRepo, auditService, wsHub, dashService.Invalidate)
	profitLossService := service.NewProfitLossService(cashflowRepo, commissionRepo)
	assetService := service.NewAssetService(assetRepo, auditService)
	debtService := service.NewDebtService(debtRepo, auditService)
	deviceService := service.NewDeviceService(deviceRepo, auditService)
	accountService := service.NewAccountService(accountRepo, auditService)
	groupService := service.NewGroupService(groupRepo, auditService)
	sopService := service.NewSOPService(sopRepo, auditService)
	kpiService := service.NewKPIService(kpiRepo, reportRepo, commissionRepo, attendanceRepo, auditService)

	h := handlers{
		auth:       handler.NewAuthHandler(authService, userService),
		role:       handler.NewRoleHandler(evaluator, rbac.DefaultMenu),
		user:       handler.NewUserHandler(userService),
		dashboard:  handler.NewDashboardHandler(dashService, reportService, profitLossService),
		report:     handler.NewReportHandler(reportService),
		attendance: handler.NewAttendanceHandler(attendanceService),
		finance:    handler.NewFinanceHandler(commissionService, cashflowService, assetService, debtService),
		master:     handler.NewMasterDataHandler(deviceService, accountService, groupService, sopService, kpiService, auditService),
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:   "Affiliate Ops Dashboard v1.0",
		BodyLimit: 10 * 1024 * 1024, // spreadsheet import
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	if err := registerRoutes(app, h, routeDeps{
		sessions:       authService,
		evaluator:      evaluator,
		hub:            wsHub,
		loginRateLimit: cfg.LoginRateLimit,
	}); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedSuperAdmin creates the first superadmin account if it doesn't exist
func seedSuperAdmin(userRepo repository.UserRepository, seed config.SeedConfig) {
	if _, err := userRepo.FindByUsername(seed.Username); err == nil {
		return
	}

	admin := &model.User{
		Username: seed.Username,
		FullName: "Super Administrator",
		Position: model.RoleSuperAdmin,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword(seed.Password); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
		return
	}
	log.Printf("✅ Admin user created: %s (superadmin)", seed.Username)
}
