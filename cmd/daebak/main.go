package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/AndreyVLZ/mr-daebak/internal/daebak/app"
	"github.com/joho/godotenv"
)

func main() {
	// .env fills in what the environment does not set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("load .env: %v\n", err)
	}

	addrPtr := flag.String("a", app.AddresDef, "address and port to listen on")
	backendPtr := flag.String("b", app.BackendURLDef, "base URL of the Mr. Daeback backend API")
	dbURIPtr := flag.String("d", "", "postgres connection string for the receipt ledger")
	redisPtr := flag.String("r", "", "redis address for checkout guards")
	ttlPtr := flag.String("t", app.SessionTTLDef.String(), "idle time before a session is dropped")
	fakePtr := flag.Bool("fake", false, "serve from an in-memory backend")
	flag.Parse()

	opts := []app.FuncOpt{
		app.SetAddr(*addrPtr),
		app.SetBackendURL(*backendPtr),
		app.SetDBURI(*dbURIPtr),
		app.SetRedisAddr(*redisPtr),
		app.SetSessionTTL(*ttlPtr),
		app.SetFake(*fakePtr),
	}

	if addrENV, ok := os.LookupEnv("RUN_ADDRESS"); ok {
		opts = append(opts, app.SetAddr(addrENV))
	}

	if backendENV, ok := os.LookupEnv("BACKEND_ADDRESS"); ok {
		opts = append(opts, app.SetBackendURL(backendENV))
	}

	if dbConnENV, ok := os.LookupEnv("DATABASE_URI"); ok {
		opts = append(opts, app.SetDBURI(dbConnENV))
	}

	if redisENV, ok := os.LookupEnv("REDIS_ADDRESS"); ok {
		opts = append(opts, app.SetRedisAddr(redisENV))
	}

	if ttlENV, ok := os.LookupEnv("SESSION_TTL"); ok {
		opts = append(opts, app.SetSessionTTL(ttlENV))
	}

	cfg, err := app.NewConfig(opts...)
	if err != nil {
		log.Fatalf("parse config: %v\n", err)
	}

	app := app.New(cfg)

	ctx := context.Background()

	chErr := make(chan error)
	go func(ce chan<- error) {
		defer close(ce)
		ce <- app.Start()
	}(chErr)

	ctxSignal, stopSignal := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stopSignal()

	select {
	case <-ctxSignal.Done():
		log.Println("signal")
	case err := <-chErr:
		if err != nil {
			log.Printf("app start err %v\n", err)
		}
	}

	if err := app.Stop(ctx); err != nil {
		log.Printf("app stop err: %v\n", err)
	} else {
		log.Println("all services stopped")
	}

	log.Println("app stopped")
}
