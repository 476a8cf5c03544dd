package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"

	"classhub/internal/auth"
	"classhub/internal/config"
	"classhub/internal/firebase"
	"classhub/internal/payments"
	"classhub/internal/repository"
	"classhub/internal/router"
	"classhub/internal/server"
)

func main() {
	flag.Parse()
	defer glog.Flush()

	if err := run(); err != nil {
		glog.Errorf("%v\n", err)
		glog.Flush()
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := firebase.NewApp(context.Background(), cfg)
	if err != nil {
		return err
	}
	client, err := firebase.NewFirestoreClient(context.Background(), app)
	if err != nil {
		return err
	}
	defer client.Close()
	authClient, err := firebase.NewAuthClient(context.Background(), app)
	if err != nil {
		return err
	}

	gateway, err := payments.New(cfg.Payments)
	if err != nil {
		return err
	}

	env := router.NewEnv(
		repository.NewFirebaseRepository(client),
		gateway,
		auth.NewTokenIssuer(cfg.TokenSecret, cfg.TokenExpiration),
		auth.NewFirebaseIdentity(authClient),
	)
	return server.Start(ctx, cfg, env)
}
