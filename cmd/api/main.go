package main

import (
	"fmt"
	"net/http"

	"github.com/k3guard/attendance-backend-go/internal/config"
	appHTTP "github.com/k3guard/attendance-backend-go/internal/handler/http"
	"github.com/k3guard/attendance-backend-go/internal/pkg/cron"
	"github.com/k3guard/attendance-backend-go/internal/pkg/database"
	"github.com/k3guard/attendance-backend-go/internal/pkg/jwt"
	"github.com/k3guard/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/k3guard/attendance-backend-go/internal/service/attendance"
	authService "github.com/k3guard/attendance-backend-go/internal/service/auth"
	scheduleService "github.com/k3guard/attendance-backend-go/internal/service/schedule"
	shiftService "github.com/k3guard/attendance-backend-go/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	branchRepo := postgresql.NewBranchRepository(db)
	catalogRepo := postgresql.NewCatalogRepository(db)
	scheduleSourceRepo := postgresql.NewScheduleSourceRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	resolver := shiftService.NewResolver(catalogRepo, scheduleSourceRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, branchRepo, policyRepo, resolver)
	authSvc := authService.NewAuthService(employeeRepo, jwtService)
	projector := scheduleService.NewProjector(resolver, attendanceRepo, leaveRepo)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceRepo, catalogRepo, policyRepo, cfg.Location())
	attendanceJobs.RegisterJobs(scheduler, cfg.Jobs.AutoCloseInterval)
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtService)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, cfg.Location())
	scheduleHandler := appHTTP.NewScheduleHandler(projector, employeeRepo, cfg.Location())
	shiftHandler := appHTTP.NewShiftHandler(catalogRepo)
	settingsHandler := appHTTP.NewSettingsHandler(policyRepo)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		attendanceHandler,
		scheduleHandler,
		shiftHandler,
		settingsHandler,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
