package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
)

//go:embed static
var staticFiles embed.FS

// Register mounts the single-page UI at the root of the app.
func Register(app *fiber.App) error {
	root, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return err
	}

	app.Use("/", filesystem.New(filesystem.Config{
		Root:   http.FS(root),
		Index:  "index.html",
		Browse: false,
	}))

	return nil
}
