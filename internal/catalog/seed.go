package catalog

import "github.com/shopspring/decimal"

// DemoCatalog is the eight-product catalog loaded by cmd/seed.
func DemoCatalog() []Product {
	entry := func(name, description, price string, stock int) Product {
		return Product{
			Name:          name,
			Description:   description,
			Price:         decimal.RequireFromString(price),
			StockQuantity: stock,
		}
	}
	return []Product{
		entry(`Laptop Pro 15"`, "High-performance laptop with 16GB RAM and 512GB SSD", "1299.99", 50),
		entry("Wireless Headphones", "Noise-cancelling Bluetooth headphones", "199.99", 100),
		entry("Smartphone X", "Latest smartphone with 128GB storage", "699.99", 75),
		entry("Gaming Mouse", "RGB gaming mouse with 16000 DPI", "79.99", 200),
		entry("Mechanical Keyboard", "RGB mechanical keyboard with blue switches", "129.99", 150),
		entry("4K Monitor", "27-inch 4K UHD monitor", "399.99", 30),
		entry("Bluetooth Speaker", "Portable waterproof Bluetooth speaker", "59.99", 120),
		entry("Tablet Air", "10.9-inch tablet with 64GB storage", "549.99", 80),
	}
}
