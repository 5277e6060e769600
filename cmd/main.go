package main

import (
	"context"
	"image"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"strconv"

	"docscan/config"
	"docscan/internal/container"
	"docscan/internal/domain/entity"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if len(os.Args) < 3 {
		log.Fatalf("Usage: %s <input.jpg|png> <output.png> [rotation 0|90|180|270]", os.Args[0])
	}
	input, output := os.Args[1], os.Args[2]

	rotation := entity.Rotate0
	if len(os.Args) > 3 {
		deg, err := strconv.Atoi(os.Args[3])
		if err != nil || !entity.Rotation(deg).Valid() {
			log.Fatalf("Invalid rotation %q: want 0, 90, 180 or 270", os.Args[3])
		}
		rotation = entity.Rotation(deg)
	}

	f, err := os.Open(input)
	if err != nil {
		log.Fatalf("Failed to open input: %v", err)
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to decode image: %v", err)
	}

	// Собираем конвейер с демонстрационной сегментацией
	c := container.New(cfg, nil)

	out, found, err := c.ScanService.Scan(context.Background(), img, rotation)
	if err != nil {
		log.Fatalf("Scan error: %v", err)
	}
	if !found {
		// не ошибка: просто нет документа в кадре
		log.Println("No document found")
		os.Exit(1)
	}

	dst, err := os.Create(output)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	defer dst.Close()
	if err := png.Encode(dst, out); err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}

	b := out.Bounds()
	log.Printf("Saved %s (%dx%d)", output, b.Dx(), b.Dy())
}
