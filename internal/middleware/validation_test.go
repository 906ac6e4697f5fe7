package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testProductRequest struct {
	Name     string          `json:"name" validate:"required,max=200"`
	Price    decimal.Decimal `json:"price" validate:"gt=0,money"`
	Currency string          `json:"currency" validate:"required,len=3"`
	Stock    int             `json:"stockQuantity" validate:"gte=0"`
}

func decodeBody(t *testing.T, body map[string]any) (testProductRequest, error) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/products", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	var out testProductRequest
	err = DecodeAndValidate(req, &out)
	return out, err
}

// Feature: inventory-api, Property 22: Required field validation works
func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("missing required fields are rejected", prop.ForAll(
		func(includeName bool, includePrice bool) bool {
			body := map[string]any{"currency": "BRL", "stockQuantity": 3}
			if includeName {
				body["name"] = "Mouse"
			}
			if includePrice {
				body["price"] = 10.5
			}

			_, err := decodeBody(t, body)
			if includeName && includePrice {
				return err == nil
			}
			return err != nil
		},
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Feature: inventory-api, Property 23: Decimal prices must be positive
func TestProperty_DecimalPricesMustBePositive(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("prices are accepted exactly when greater than zero", prop.ForAll(
		func(cents int64) bool {
			price := decimal.New(cents, -2)
			_, err := decodeBody(t, map[string]any{"name": "Mouse", "price": price, "currency": "BRL"})
			return (err == nil) == price.IsPositive()
		},
		gen.Int64Range(-10000, 10000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestFormatValidationErrors_UsesJSONNames(t *testing.T) {
	_, err := decodeBody(t, map[string]any{
		"name":          strings.Repeat("x", 201),
		"price":         "1.00",
		"currency":      "REAL",
		"stockQuantity": -1,
	})
	require.Error(t, err)

	fields := map[string]string{}
	for _, ve := range FormatValidationErrors(err) {
		fields[ve.Field] = ve.Message
	}
	assert.Equal(t, map[string]string{
		"name":          "Value must be at most 200",
		"currency":      "Value must be exactly 3 characters",
		"stockQuantity": "Value must be greater than or equal to 0",
	}, fields)
}

func TestDecodeAndValidate_PriceMustFitStorage(t *testing.T) {
	cases := []struct {
		price string
		ok    bool
	}{
		{"10.5", true},
		{"10.500", true},
		{"999999999999.99", true},
		{"10.005", false},
		{"0.001", false},
		{"1000000000000", false},
		{"99999999999999", false},
	}

	for _, tc := range cases {
		t.Run(tc.price, func(t *testing.T) {
			_, err := decodeBody(t, map[string]any{
				"name":     "Mouse",
				"price":    json.RawMessage(tc.price),
				"currency": "BRL",
			})
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			errs := FormatValidationErrors(err)
			require.Len(t, errs, 1)
			assert.Equal(t, "price", errs[0].Field)
			assert.Equal(t, "Value must have at most 2 decimal places and 12 integer digits", errs[0].Message)
		})
	}
}

func TestDecodeAndValidate_CurrencyIsRequired(t *testing.T) {
	_, err := decodeBody(t, map[string]any{"name": "Mouse", "price": 10})
	require.Error(t, err)

	errs := FormatValidationErrors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "currency", errs[0].Field)
	assert.Equal(t, "This field is required", errs[0].Message)
}

func TestDecodeAndValidate_MalformedJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/products", strings.NewReader("{not json"))

	var out testProductRequest
	err := DecodeAndValidate(req, &out)
	assert.True(t, errors.Is(err, ErrInvalidBody))

	w := httptest.NewRecorder()
	RespondWithDecodeError(w, err)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}
