package http

import (
	"net/http"

	"patients-management/internal/delivery/http/handler"
	"patients-management/internal/delivery/http/middleware"
	"patients-management/internal/domain/entity"
	"patients-management/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Handlers groups every resource handler served by the router.
type Handlers struct {
	Auth               *handler.AuthHandler
	User               *handler.UserHandler
	Patient            *handler.PatientHandler
	Doctor             *handler.DoctorHandler
	Medicine           *handler.MedicineHandler
	Record             *handler.RecordHandler
	PrescribedMedicine *handler.PrescribedMedicineHandler
	GivenMedicine      *handler.GivenMedicineHandler
	Report             *handler.ReportHandler
	AuditLog           *handler.AuditLogHandler
}

type Router struct {
	router         *mux.Router
	handlers       Handlers
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
	log            *logrus.Logger
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	log *logrus.Logger,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		handlers:       handlers,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
		log:            log,
	}
}

// only restricts a route to users holding one of roles.
func only(h http.HandlerFunc, roles ...entity.Role) http.Handler {
	return middleware.RequireRole(roles...)(h)
}

// Setup registers every route and returns the root handler. CORS and request
// logging wrap the whole router so preflight requests never reach route matching.
func (r *Router) Setup() http.Handler {
	h := r.handlers

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", h.Auth.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", h.Auth.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", h.Auth.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", h.Auth.GetCurrentUser).Methods(http.MethodGet)

	// Everything below requires a valid access token.
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	staff := []entity.Role{entity.RoleReception, entity.RoleDoctor, entity.RoleAdmin}
	clinical := []entity.Role{entity.RoleDoctor, entity.RoleAdmin}
	pharmacy := []entity.Role{entity.RolePharmacist, entity.RoleAdmin}
	dispensing := []entity.Role{entity.RolePharmacist, entity.RoleDoctor, entity.RoleAdmin}

	// Patients
	protected.HandleFunc("/patients", h.Patient.GetAllPatients).Methods(http.MethodGet)
	protected.Handle("/patients", only(h.Patient.CreatePatient, staff...)).Methods(http.MethodPost)
	protected.HandleFunc("/patients/{id}", h.Patient.GetPatient).Methods(http.MethodGet)
	protected.Handle("/patients/{id}", only(h.Patient.UpdatePatient, staff...)).Methods(http.MethodPut)
	protected.Handle("/patients/{id}", only(h.Patient.DeletePatient, entity.RoleAdmin)).Methods(http.MethodDelete)
	protected.HandleFunc("/patients/{id}/records", h.Patient.GetPatientRecords).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}/prescribed-medicines", h.Patient.GetPatientPrescribedMedicines).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}/given-medicines", h.Patient.GetPatientGivenMedicines).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}/total-price", h.Patient.GetPatientTotalPrice).Methods(http.MethodGet)

	// Doctors
	protected.HandleFunc("/doctors", h.Doctor.GetAllDoctors).Methods(http.MethodGet)
	protected.Handle("/doctors", only(h.Doctor.CreateDoctor, entity.RoleAdmin)).Methods(http.MethodPost)
	protected.HandleFunc("/doctors/{id}", h.Doctor.GetDoctor).Methods(http.MethodGet)
	protected.Handle("/doctors/{id}", only(h.Doctor.UpdateDoctor, entity.RoleAdmin)).Methods(http.MethodPut)
	protected.Handle("/doctors/{id}", only(h.Doctor.DeleteDoctor, entity.RoleAdmin)).Methods(http.MethodDelete)

	// Medicines
	protected.HandleFunc("/medicines", h.Medicine.GetAllMedicines).Methods(http.MethodGet)
	protected.Handle("/medicines", only(h.Medicine.CreateMedicine, pharmacy...)).Methods(http.MethodPost)
	protected.HandleFunc("/medicines/{id}", h.Medicine.GetMedicine).Methods(http.MethodGet)
	protected.Handle("/medicines/{id}", only(h.Medicine.UpdateMedicine, pharmacy...)).Methods(http.MethodPut)
	protected.Handle("/medicines/{id}", only(h.Medicine.DeleteMedicine, pharmacy...)).Methods(http.MethodDelete)

	// Records
	protected.HandleFunc("/records", h.Record.GetAllRecords).Methods(http.MethodGet)
	protected.Handle("/records", only(h.Record.CreateRecord, clinical...)).Methods(http.MethodPost)
	protected.HandleFunc("/records/{id}", h.Record.GetRecord).Methods(http.MethodGet)
	protected.Handle("/records/{id}", only(h.Record.UpdateRecord, clinical...)).Methods(http.MethodPut)
	protected.Handle("/records/{id}", only(h.Record.DeleteRecord, clinical...)).Methods(http.MethodDelete)
	protected.HandleFunc("/records/{id}/prescribed-medicines", h.Record.GetRecordPrescribedMedicines).Methods(http.MethodGet)
	protected.HandleFunc("/records/{id}/total-price", h.Record.GetRecordTotalPrice).Methods(http.MethodGet)

	// Prescribed medicines
	protected.HandleFunc("/prescribed-medicines", h.PrescribedMedicine.GetAllPrescribedMedicines).Methods(http.MethodGet)
	protected.Handle("/prescribed-medicines", only(h.PrescribedMedicine.CreatePrescribedMedicine, clinical...)).Methods(http.MethodPost)
	protected.HandleFunc("/prescribed-medicines/{id}", h.PrescribedMedicine.GetPrescribedMedicine).Methods(http.MethodGet)
	protected.Handle("/prescribed-medicines/{id}", only(h.PrescribedMedicine.UpdatePrescribedMedicine, clinical...)).Methods(http.MethodPut)
	protected.Handle("/prescribed-medicines/{id}", only(h.PrescribedMedicine.DeletePrescribedMedicine, clinical...)).Methods(http.MethodDelete)

	// Given medicines
	protected.HandleFunc("/given-medicines", h.GivenMedicine.GetAllGivenMedicines).Methods(http.MethodGet)
	protected.Handle("/given-medicines", only(h.GivenMedicine.CreateGivenMedicine, dispensing...)).Methods(http.MethodPost)
	protected.HandleFunc("/given-medicines/{id}", h.GivenMedicine.GetGivenMedicine).Methods(http.MethodGet)
	protected.Handle("/given-medicines/{id}", only(h.GivenMedicine.UpdateGivenMedicine, dispensing...)).Methods(http.MethodPut)
	protected.Handle("/given-medicines/{id}", only(h.GivenMedicine.DeleteGivenMedicine, dispensing...)).Methods(http.MethodDelete)

	// Reports
	protected.HandleFunc("/reports/medicines", h.Report.GetMedicineReport).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// User management (admin)
	admin.HandleFunc("/users", h.User.GetAllUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users", h.User.CreateUser).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id}", h.User.GetUser).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", h.User.UpdateUser).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}", h.User.PatchUser).Methods(http.MethodPatch)
	admin.HandleFunc("/users/{id}", h.User.DeleteUser).Methods(http.MethodDelete)

	// Audit trail (admin)
	admin.HandleFunc("/audit-logs", h.AuditLog.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", h.AuditLog.GetAuditLog).Methods(http.MethodGet)

	r.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r.corsMiddleware.Handle(middleware.RequestLogger(r.log)(r.router))
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
