package orders

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ashrafhany/Real-Time-Sales-Analytics-System/internal/shared"
)

// CreateOrderRequest is the ingestion input. Pointer fields distinguish a
// missing value from a zero one.
type CreateOrderRequest struct {
	ProductID *int64           `json:"product_id" validate:"required,gt=0"`
	Quantity  *int             `json:"quantity" validate:"required,min=1,max=2147483647"`
	Price     *decimal.Decimal `json:"price" validate:"required,gte=0,lte=9999999999.99"`
	Date      *string          `json:"date" validate:"omitempty"`
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// DecodeCreateOrderRequest reads the JSON body field by field so that type
// mismatches are reported against the offending field.
func DecodeCreateOrderRequest(body io.Reader) (CreateOrderRequest, error) {
	var (
		req CreateOrderRequest
		raw map[string]json.RawMessage
	)
	verr := shared.NewValidationError()
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		verr.Add("body", "The request body must be a JSON object.")
		return req, verr
	}

	decodeField(raw, "product_id", &req.ProductID, "The product id field must be an integer.", verr)
	decodeField(raw, "quantity", &req.Quantity, "The quantity field must be an integer.", verr)
	decodeField(raw, "price", &req.Price, "The price field must be a number.", verr)
	decodeField(raw, "date", &req.Date, "The date field must be a valid date.", verr)

	return req, verr.Err()
}

func decodeField[T any](raw map[string]json.RawMessage, field string, target **T, message string, verr *shared.ValidationError) {
	value, ok := raw[field]
	if !ok || string(value) == "null" {
		return
	}
	var decoded T
	if err := json.Unmarshal(value, &decoded); err != nil {
		verr.Add(field, message)
		return
	}
	*target = &decoded
}

// parseOrderDate accepts RFC3339 and the common SQL date forms. Values
// without a zone are read in loc.
func parseOrderDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return shared.ISOTime(t)
}
