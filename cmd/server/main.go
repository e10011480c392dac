package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/blaze/backend/internal/config"
	"github.com/blaze/backend/internal/handlers"
	appMiddleware "github.com/blaze/backend/internal/middleware"
	"github.com/blaze/backend/internal/services"
	"github.com/blaze/backend/internal/store"
	"github.com/blaze/backend/internal/upload"
	"github.com/blaze/backend/internal/web"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	st, err := store.New(ctx, cfg.MongoURI, cfg.MongoDB)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer st.Close(context.Background())

	render, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	// Services
	userService := services.NewMongoUserService(st, cfg.JWTSecret)
	itemService := services.NewMongoItemService(st)
	photoService := services.NewMongoPhotoService(st)
	videoService := services.NewMongoVideoService(st)
	carouselService := services.NewMongoCarouselService(st)
	mailer := services.NewSendGridMailer(cfg.SendGridAPIKey, cfg.FromEmail, cfg.OperatorEmail)
	uploads := upload.NewProcessor()

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, carouselService, render)
	itemHandler := handlers.NewItemHandler(itemService, uploads, render)
	photoHandler := handlers.NewPhotoHandler(photoService, uploads, render)
	videoHandler := handlers.NewVideoHandler(videoService, render)
	carouselHandler := handlers.NewCarouselHandler(carouselService, uploads, render)
	clientHandler := handlers.NewClientHandler(mailer)
	pagesHandler := handlers.NewPagesHandler(carouselService, render)

	auth := appMiddleware.Auth(userService, cfg.JWTSecret)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(appMiddleware.MethodOverride)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Public pages
	r.Get("/", pagesHandler.Home)
	r.Get("/achievements", pagesHandler.Achievements)
	r.Get("/contact-us", pagesHandler.ContactUs)
	r.Get("/login", authHandler.LoginPage)
	r.Post("/login", authHandler.Login)
	r.Post("/users", authHandler.Register)
	r.Post("/clients", clientHandler.Submit)

	// Public content
	r.Get("/items", itemHandler.List)
	r.Get("/items/{id}/itemPic", itemHandler.Pic)
	r.Get("/gallery/photos", photoHandler.List)
	r.Get("/gallery/photos/{id}/pic.png", photoHandler.Pic)
	r.Get("/gallery/videos", videoHandler.List)
	r.Get("/carousels/{id}/pic.png", carouselHandler.Pic)

	// Owner-only routes
	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Get("/adminPanel", authHandler.AdminPanel)
		r.Get("/users/me", authHandler.Me)
		r.Delete("/users/me", authHandler.DeleteMe)
		r.Post("/users/logout", authHandler.Logout)
		r.Post("/users/logoutAll", authHandler.LogoutAll)
		r.Patch("/users/{id}", authHandler.ChangePassword)

		r.Post("/items", itemHandler.Create)
		r.Get("/items/{id}", itemHandler.Edit)
		r.Patch("/items/{id}", itemHandler.Update)
		r.Patch("/items/itemPic/{id}", itemHandler.UpdatePic)
		r.Delete("/items/{id}", itemHandler.Delete)

		r.Post("/gallery/photos", photoHandler.Create)
		r.Get("/gallery/photos/{id}", photoHandler.Edit)
		r.Patch("/gallery/photos/{id}", photoHandler.UpdatePic)
		r.Delete("/gallery/photos/{id}", photoHandler.Delete)

		r.Post("/gallery/videos", videoHandler.Create)
		r.Get("/gallery/videos/{id}", videoHandler.Edit)
		r.Patch("/gallery/videos/{id}", videoHandler.Update)
		r.Delete("/gallery/videos/{id}", videoHandler.Delete)

		r.Post("/carousels", carouselHandler.Create)
		r.Get("/carousels/{id}", carouselHandler.Edit)
		r.Patch("/carousels/{id}", carouselHandler.UpdatePic)
	})

	// Static assets
	workDir, _ := os.Getwd()
	filesDir := http.Dir(workDir + "/public")
	r.Handle("/css/*", http.FileServer(filesDir))
	r.Handle("/img/*", http.FileServer(filesDir))

	log.Printf("Blaze server starting on %s", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
