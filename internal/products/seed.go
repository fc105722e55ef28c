package products

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeedProducts returns the gallery's opening collection. Creation times are
// spread back from now the same way the catalog was first stocked.
func SeedProducts(now time.Time) []Product {
	day := 24 * time.Hour
	return []Product{
		{
			ID:          1,
			Title:       "Sunset over the Lake",
			Description: "A painterly view of the sun setting over a mountain lake.",
			Price:       decimal.NewFromInt(15000),
			ImageURL:    "https://images.unsplash.com/photo-1518998053901-5348d3961a04",
			Artist:      "Anna Ivanova",
			Medium:      "oil",
			Size:        "60x80 cm",
			Year:        2023,
			InStock:     true,
			CreatedAt:   now.Add(-20 * day),
		},
		{
			ID:          2,
			Title:       "Abstract Composition",
			Description: "Contemporary abstract painting in bright colours.",
			Price:       decimal.NewFromInt(12000),
			ImageURL:    "https://images.unsplash.com/photo-1536924940846-227afb31e2a5",
			Artist:      "Michael Chen",
			Medium:      "acrylic",
			Size:        "70x100 cm",
			Year:        2022,
			InStock:     true,
			CreatedAt:   now.Add(-45 * day),
		},
		{
			ID:          3,
			Title:       "Seascape",
			Description: "A calm view of the ocean with a distant horizon.",
			Price:       decimal.NewFromInt(8000),
			ImageURL:    "https://images.unsplash.com/photo-1580137189272-c9379f8864fd",
			Artist:      "Sarah Miller",
			Medium:      "watercolor",
			Size:        "50x70 cm",
			Year:        2023,
			InStock:     true,
			CreatedAt:   now.Add(-15 * day),
		},
		{
			ID:          4,
			Title:       "Cityscape",
			Description: "A modern city skyline with high-rise buildings.",
			Price:       decimal.NewFromInt(20000),
			ImageURL:    "https://images.unsplash.com/photo-1496442226666-8d4d0e62e6e9",
			Artist:      "Alexey Petrov",
			Medium:      "oil",
			Size:        "90x120 cm",
			Year:        2021,
			InStock:     true,
			CreatedAt:   now.Add(-60 * day),
		},
		{
			ID:          5,
			Title:       "Flower Arrangement",
			Description: "A vivid arrangement of wild flowers.",
			Price:       decimal.NewFromInt(6500),
			ImageURL:    "https://images.unsplash.com/photo-1445110236002-8fd381e285e9",
			Artist:      "Elena Smirnova",
			Medium:      "acrylic",
			Size:        "40x50 cm",
			Year:        2023,
			InStock:     true,
			CreatedAt:   now.Add(-10 * day),
		},
		{
			ID:          6,
			Title:       "Winter Forest",
			Description: "An atmospheric winter landscape with snow-covered trees.",
			Price:       decimal.NewFromInt(18000),
			ImageURL:    "https://images.unsplash.com/photo-1418985991508-e47386d96a71",
			Artist:      "Ivan Kuznetsov",
			Medium:      "oil",
			Size:        "65x85 cm",
			Year:        2022,
			InStock:     false,
			CreatedAt:   now.Add(-90 * day),
		},
	}
}
