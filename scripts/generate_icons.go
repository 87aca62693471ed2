//go:build ignore

// Скрипт для генерации иконки трея.
// Запуск: go run scripts/generate_icons.go
package main

import (
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
)

func main() {
	dir := "embedded"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Не удалось создать директорию %s: %v", dir, err)
	}

	path := filepath.Join(dir, "icon.png")
	if err := generateIcon(path); err != nil {
		log.Fatalf("Ошибка генерации %s: %v", path, err)
	}
	log.Printf("Создан: %s", path)
}

func generateIcon(path string) error {
	const size = 64
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	paper := color.RGBA{88, 166, 255, 255} // Голубой лист
	line := color.RGBA{255, 255, 255, 255}  // Строки
	fold := color.RGBA{40, 100, 180, 255}   // Загнутый угол

	// Лист с загнутым правым верхним углом
	const left, top, right, bottom, corner = 12, 6, 52, 58, 14
	for y := top; y < bottom; y++ {
		for x := left; x < right; x++ {
			dx, dy := x-(right-corner), (top+corner)-y
			switch {
			case dx >= 0 && dy > 0 && dx+(corner-dy) >= corner:
				// Срезанный угол остаётся прозрачным
			case dx >= 0 && dy > 0:
				img.Set(x, y, fold)
			default:
				img.Set(x, y, paper)
			}
		}
	}

	// Строки текста
	for _, y := range []int{28, 36, 44} {
		for x := left + 7; x < right-7; x++ {
			img.Set(x, y, line)
			img.Set(x, y+1, line)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
