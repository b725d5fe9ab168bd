package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"vidshare/admins"
	"vidshare/categories"
	"vidshare/saved"
	"vidshare/store"
	"vidshare/users"
	"vidshare/videos"
)

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	st, err := store.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		cancel()
		log.Fatalf("mongo unreachable at %s (db %s): %v", cfg.MongoURI, cfg.MongoDB, err)
	}
	if err := st.EnsureIndexes(ctx); err != nil {
		cancel()
		log.Fatalf("failed to ensure indexes: %v", err)
	}
	cancel()
	defer st.Close(context.Background())
	log.Printf("connected to mongo: %s", cfg.MongoDB)

	r := newRouter(st, cfg)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	go func() {
		log.Printf("vidshare API listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	srv.Shutdown(shutdownCtx)
	log.Println("server shut down")
}

func newRouter(st store.Store, cfg Config) chi.Router {
	uh := &users.Handler{Store: st, BcryptCost: cfg.BcryptCost}
	ah := &admins.Handler{Store: st, BcryptCost: cfg.BcryptCost}
	ch := &categories.Handler{Store: st}
	vh := &videos.Handler{Store: st}
	sh := &saved.Handler{Store: st}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("API OK"))
	})

	// Each resource lists every path prefix it answers on; the singular
	// forms are kept for older clients and must resolve identically.
	mounts := []struct {
		prefixes []string
		routes   func(chi.Router)
	}{
		{[]string{"/users", "/user"}, func(r chi.Router) {
			r.Get("/", uh.HandleList)
			r.Post("/register", uh.HandleRegister)
			r.Post("/login", uh.HandleLogin)
			r.Get("/{userId}/saved", sh.HandleList)
			r.Post("/{userId}/saved", sh.HandleSave)
			r.Delete("/{userId}/saved/{savedId}", sh.HandleDelete)
		}},
		{[]string{"/admins", "/admin"}, func(r chi.Router) {
			r.Get("/", ah.HandleList)
			r.Post("/register", ah.HandleRegister)
			r.Post("/login", ah.HandleLogin)
		}},
		{[]string{"/categories", "/category"}, func(r chi.Router) {
			r.Get("/", ch.HandleList)
		}},
		{[]string{"/videos", "/video"}, func(r chi.Router) {
			r.Get("/", vh.HandleList)
			r.Post("/", vh.HandleCreate)
			r.Get("/{id}", vh.HandleGet)
			r.Put("/{id}", vh.HandleUpdate)
			r.Delete("/{id}", vh.HandleDelete)
		}},
	}
	for _, m := range mounts {
		for _, prefix := range m.prefixes {
			r.Route(prefix, m.routes)
		}
	}

	r.NotFound(plainNotFound)
	r.MethodNotAllowed(plainNotFound)
	return r
}

func plainNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(404)
	fmt.Fprintf(w, "Cannot %s %s", r.Method, r.URL.Path)
}
