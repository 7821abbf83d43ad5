package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"swing-copilot/internal/stub"
	"swing-copilot/pkg/tracing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Demo key accepted when SWING_STUB_KEYS is unset. Matches the documented
// license format so it passes client-side validation too.
const defaultStubKey = "PRO-1A2B3C-4D5E6F"

func main() {
	godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, _, err := tracing.InitTracer(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	keys := parseKeys(os.Getenv("SWING_STUB_KEYS"))
	h := stub.New(keys)

	r := gin.Default()
	r.Use(otelgin.Middleware("swing-copilot-stub"))
	r.Use(cors.Default())
	h.RegisterRoutes(r)

	port := os.Getenv("SWING_STUB_PORT")
	if port == "" {
		port = "5000"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()
	log.Printf("Stub scoring API listening on :%s (%d keys accepted)", port, len(keys))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

func parseKeys(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{defaultStubKey}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if k := strings.TrimSpace(p); k != "" {
			out = append(out, k)
		}
	}
	if len(out) == 0 {
		return []string{defaultStubKey}
	}
	return out
}
