package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/gabriel-vasile/mimetype"

	"alfredoptarigan/resume-mocker/internal/config"
	"alfredoptarigan/resume-mocker/internal/models"
	"alfredoptarigan/resume-mocker/internal/repositories"
	"alfredoptarigan/resume-mocker/internal/services"
)

// Roasts a local resume from the terminal:
//
//	go run ./scripts/roast_file.go -intensity 7 ./resume.pdf
func main() {
	intensity := flag.Int("intensity", models.DefaultIntensity, "roast intensity from 1 to 10")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: roast_file [-intensity N] <resume.pdf|.png|.jpg>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("❌ Failed to read %s: %v", path, err)
	}

	model, err := services.NewRoastModel(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize %s: %v", cfg.LLM.Provider, err)
	}

	roastService := services.NewRoastService(
		repositories.NewMemoryAttemptRepository(1),
		services.NewFileEncoder(cfg.Storage.MaxFileSize, services.NewPDFInspector(cfg.Storage.MaxPDFPages)),
		services.NewRequestBuilder(cfg.Model(), cfg.Roast.Temperature),
		model,
		cfg.Model(),
		cfg.Roast.Timeout,
	)

	upload := services.UploadedFile{
		Name:     filepath.Base(path),
		MimeType: mimetype.Detect(data).String(),
		Data:     data,
	}

	log.Printf("📄 Roasting %s at intensity %d (%s)...", upload.Name, *intensity, models.IntensityLabel(*intensity))

	outcome, err := roastService.RequestRoast(context.Background(), upload, *intensity)
	if err != nil {
		log.Fatalf("❌ %s", services.UserMessage(err))
	}

	out, err := sonic.ConfigStd.MarshalIndent(outcome.Result, "", "  ")
	if err != nil {
		log.Fatalf("❌ Failed to encode result: %v", err)
	}
	fmt.Println(string(out))
	log.Printf("✅ Done: %d/100 (%s)", outcome.Result.MockScore, models.ScoreBandFor(outcome.Result.MockScore))
}
