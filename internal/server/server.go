package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang/glog"
	"github.com/rs/cors"

	"classhub/internal/config"
	rtr "classhub/internal/router"
)

func Routes(env *rtr.Env) *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.Logger, // Log API Request Calls
		middleware.Recoverer,
	)

	router.Get("/", rtr.HealthHandler)
	router.Mount("/jwt", env.TokenRoutes())

	router.Mount("/user", env.UserRoutes())
	router.Mount("/users", env.UsersRoutes())

	router.Mount("/classes", env.ClassRoutes())
	router.Mount("/teacher", env.TeacherRoutes())
	router.Mount("/admin", env.AdminRoutes())

	router.Mount("/create-payment-intent", env.PaymentIntentRoutes())
	router.Mount("/payments", env.PaymentRoutes())
	router.Mount("/enrollments", env.EnrollmentRoutes())

	router.Mount("/assignments", env.AssignmentRoutes())
	router.Mount("/submissions", env.SubmissionRoutes())

	router.Mount("/feedback", env.FeedbackRoutes())
	router.Mount("/feedbacks", env.FeedbackRoutes())

	router.Mount("/class-progress", env.ClassProgressRoutes())
	router.Mount("/stats", env.StatsRoutes())

	return router
}

// Handler wraps the routes in the CORS policy.
func Handler(cfg *config.ServerConfig, env *rtr.Env) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "PATCH", "OPTIONS"},
		AllowCredentials: true,
	})
	return c.Handler(Routes(env))
}

// Start serves until ctx is cancelled, then drains in-flight requests for at most cfg.ShutdownTimeout.
func Start(ctx context.Context, cfg *config.ServerConfig, env *rtr.Env) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%v", cfg.Port),
		Handler: Handler(cfg, env),
	}

	errCh := make(chan error, 1)
	go func() {
		glog.Infof("Server is listening on port %v\n", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	glog.Infoln("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
