package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config — настройки конвейера сканирования.
type Config struct {
	MaskThreshold  float64 // порог бинаризации маски сегментации
	MinAreaRatio   float64 // минимальная доля площади области документа
	SimplifyRatio  float64 // допуск упрощения контура как доля периметра
	MatteThreshold float64 // порог матте при затирании фона
	Relaxed        bool    // разрешить ограничивающий четырёхугольник
	MaskWidth      int     // разрешение маски демонстрационной сегментации
	MaskHeight     int
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		MaskThreshold:  0.5,
		MinAreaRatio:   0.02,
		SimplifyRatio:  0.02,
		MatteThreshold: 0.5,
		Relaxed:        true,
		MaskWidth:      256,
		MaskHeight:     256,
	}

	envFloat("SCAN_MASK_THRESHOLD", &cfg.MaskThreshold)
	envFloat("SCAN_MIN_AREA_RATIO", &cfg.MinAreaRatio)
	envFloat("SCAN_SIMPLIFY_RATIO", &cfg.SimplifyRatio)
	envFloat("SCAN_MATTE_THRESHOLD", &cfg.MatteThreshold)
	envBool("SCAN_RELAXED", &cfg.Relaxed)
	envInt("SCAN_MASK_WIDTH", &cfg.MaskWidth)
	envInt("SCAN_MASK_HEIGHT", &cfg.MaskHeight)

	return cfg, nil
}

// Кривые значения переменных окружения молча игнорируются —
// остаётся значение по умолчанию.

func envFloat(name string, dst *float64) {
	if v, err := strconv.ParseFloat(os.Getenv(name), 64); err == nil {
		*dst = v
	}
}

func envInt(name string, dst *int) {
	if v, err := strconv.Atoi(os.Getenv(name)); err == nil {
		*dst = v
	}
}

func envBool(name string, dst *bool) {
	if v, err := strconv.ParseBool(os.Getenv(name)); err == nil {
		*dst = v
	}
}
