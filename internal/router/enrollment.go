package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"classhub/internal/models"
	"classhub/internal/payments"
)

// PaymentRoutes record completed payments, mounted at /payments.
func (e *Env) PaymentRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(e.requireAuth())

	router.Post("/", e.recordPaymentHandler)

	return router
}

// PaymentIntentRoutes create gateway payment intents, mounted at /create-payment-intent.
func (e *Env) PaymentIntentRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(e.requireAuth())

	router.Post("/", e.createPaymentIntentHandler)

	return router
}

// EnrollmentRoutes are mounted at /enrollments.
func (e *Env) EnrollmentRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(e.requireAuth())

	router.Post("/", e.enrollHandler)
	router.Get("/", e.listEnrollmentsHandler)

	return router
}

// POST: /create-payment-intent
func (e *Env) createPaymentIntentHandler(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentIntentRequest
	if err := e.decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	intent, err := e.Payments.CreatePaymentIntent(r.Context(), &payments.Intent{
		Amount:       payments.MinorUnits(float64(req.Price)),
		ReceiptEmail: req.Email,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, models.PaymentIntentResponse{ClientSecret: intent.ClientSecret})
}

// POST: /payments
func (e *Env) recordPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePaymentRequest
	if err := e.decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	payment, enrollment, err := e.Repository.RecordPayment(r.Context(), &req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondCreated(w, r, models.PaymentResult{
		WriteResult:  models.WriteResult{Success: true, Message: "Payment recorded", InsertedID: payment.ID},
		EnrollmentID: enrollment.ID,
	})
}

// POST: /enrollments
func (e *Env) enrollHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEnrollmentRequest
	if err := e.decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	enrollment, err := e.Repository.Enroll(r.Context(), &req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondCreated(w, r, models.WriteResult{Success: true, Message: "Enrolled successfully", InsertedID: enrollment.ID})
}

// GET: /enrollments?email=
func (e *Env) listEnrollmentsHandler(w http.ResponseWriter, r *http.Request) {
	email, err := requiredQuery(r, "email")
	if err != nil {
		respondError(w, r, err)
		return
	}

	enrollments, err := e.Repository.ListEnrollmentsByEmail(r.Context(), email)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, enrollments)
}
