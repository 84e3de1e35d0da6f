package order

import (
	"errors"
	"testing"

	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderRequest_Validate_Quantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		wantErr  string
	}{
		{name: "one", quantity: 1},
		{name: "at the cap", quantity: MaxItemQuantity},
		{name: "zero", quantity: 0, wantErr: "quantity must be greater than 0"},
		{name: "negative", quantity: -3, wantErr: "quantity must be greater than 0"},
		{name: "above the cap", quantity: MaxItemQuantity + 1, wantErr: "quantity must not exceed 100000"},
		{name: "wraps int32", quantity: 1<<32 + 1, wantErr: "quantity must not exceed 100000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			req := CreateOrderRequest{
				OutletID: uuid.NewString(),
				Items:    []OrderItemRequest{{ProductID: uuid.NewString(), Quantity: tt.quantity}},
			}

			// Act
			err := req.Validate()

			// Assert
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.wantErr, verrs.ToMap()["items[0].quantity"])
		})
	}
}

func TestCreateOrderRequest_Validate_RepeatedProduct(t *testing.T) {
	productID := uuid.NewString()
	req := CreateOrderRequest{
		OutletID: uuid.NewString(),
		Items: []OrderItemRequest{
			{ProductID: productID, Quantity: 1},
			{ProductID: productID, Quantity: 2},
		},
	}

	err := req.Validate()

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "items[1].product_id")
}
