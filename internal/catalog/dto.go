package catalog

import (
	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/shared"
)

// View renders p for API responses.
func (p Product) View() ProductView {
	v := ProductView{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price.Round(2).InexactFloat64(),
		StockQuantity: p.StockQuantity,
	}
	if !p.CreatedAt.IsZero() {
		v.CreatedAt = shared.ISOTime(p.CreatedAt)
	}
	if !p.UpdatedAt.IsZero() {
		v.UpdatedAt = shared.ISOTime(p.UpdatedAt)
	}
	return v
}

func views(products []Product) []ProductView {
	out := make([]ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, p.View())
	}
	return out
}
