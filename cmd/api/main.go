package main

import (
	"fmt"
	"net/http"

	"github.com/umairahsan10/crm-backend-go/internal/config"
	appHTTP "github.com/umairahsan10/crm-backend-go/internal/handler/http"
	"github.com/umairahsan10/crm-backend-go/internal/pkg/cron"
	"github.com/umairahsan10/crm-backend-go/internal/pkg/database"
	"github.com/umairahsan10/crm-backend-go/internal/pkg/jwt"
	"github.com/umairahsan10/crm-backend-go/internal/repository/postgresql"
	attendanceService "github.com/umairahsan10/crm-backend-go/internal/service/attendance"
	incidentService "github.com/umairahsan10/crm-backend-go/internal/service/incident"
	leaveService "github.com/umairahsan10/crm-backend-go/internal/service/leave"
	policyService "github.com/umairahsan10/crm-backend-go/internal/service/policy"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	transactor := postgresql.NewTransactor(db)
	dailyLogRepo := postgresql.NewDailyLogRepository(db)
	counterRepo := postgresql.NewCounterRepository(db)
	incidentRepo := postgresql.NewIncidentRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	policyProvider := policyService.NewProvider(policyRepo, cfg.Jobs.PolicyCacheTTL)
	attendanceSvc := attendanceService.NewAttendanceService(
		transactor,
		dailyLogRepo,
		counterRepo,
		incidentRepo,
		employeeRepo,
		policyProvider,
	)
	correctionSvc := attendanceService.NewCorrectionService(
		transactor,
		dailyLogRepo,
		counterRepo,
		employeeRepo,
		leaveRepo,
		policyProvider,
		auditRepo,
		cfg.Jobs.BulkBatchSize,
	)
	incidentSvc := incidentService.NewIncidentService(transactor, incidentRepo, counterRepo)
	leaveSvc := leaveService.NewLeaveService(transactor, leaveRepo, dailyLogRepo, counterRepo, employeeRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	incidentHandler := appHTTP.NewIncidentHandler(incidentSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	correctionHandler := appHTTP.NewCorrectionHandler(correctionSvc)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(correctionSvc, db)
	attendanceJobs.RegisterJobs(scheduler, cfg.Jobs.AutoAbsenceInterval)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg.App.Env,
		jwtService,
		attendanceHandler,
		incidentHandler,
		leaveHandler,
		correctionHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server starting on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
