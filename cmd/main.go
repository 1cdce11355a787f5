package main

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"lotto645/internal/config"
	"lotto645/internal/handlers"
	"lotto645/internal/services"
	"lotto645/internal/storage"
)

//go:embed all:templates
var templateFS embed.FS

//go:embed all:assets
var assetsFS embed.FS

func main() {
	cfg := config.Load()

	// 1. Load the draw history. A failed load degrades to an empty history
	// and a notice in the UI rather than aborting startup.
	history, historyErr := storage.LoadHistory(cfg.HistoryCSV)
	if historyErr != nil {
		log.Printf("History load failed, continuing without data: %v", historyErr)
	} else {
		log.Printf("Loaded %d historical draws from %s", len(history), cfg.HistoryCSV)
	}

	// 2. Initialize the bookmark store and the lotto service.
	store := storage.NewFileStore(cfg.BookmarksFile)
	lottoService := services.NewLottoService(history, store, nil)

	// 3. Load HTML templates from the embedded filesystem.
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	// 4. Initialize the HTTP handler.
	httpHandler := handlers.NewHTTPHandler(lottoService, templates, historyErr)

	// 5. Set up the Gin router.
	r := gin.Default()

	// 6. Serve static files from the embedded filesystem.
	assetsSubFS, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		log.Fatalf("Failed to create assets sub-filesystem: %v", err)
	}
	r.StaticFS("/assets", http.FS(assetsSubFS))

	// 7. Register routes.
	httpHandler.RegisterRoutes(r)

	// 8. Run the server.
	log.Printf("Server starting on http://localhost%s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
