package domain

// LowStockThreshold is the quantity below which stock counts as low.
const LowStockThreshold = 10

// StockQuantity is an immutable on-hand unit count. The zero value is a valid
// quantity of 0.
type StockQuantity struct {
	quantity int
}

func NewStockQuantity(quantity int) (StockQuantity, error) {
	if quantity < 0 {
		return StockQuantity{}, ErrNegativeStock
	}
	return StockQuantity{quantity: quantity}, nil
}

func (s StockQuantity) Quantity() int { return s.quantity }

func (s StockQuantity) IsLowStock() bool { return s.quantity < LowStockThreshold }

func (s StockQuantity) IsOutOfStock() bool { return s.quantity == 0 }

func (s StockQuantity) Add(amount int) (StockQuantity, error) {
	if amount < 0 {
		return StockQuantity{}, ErrNegativeStockDelta
	}
	return NewStockQuantity(s.quantity + amount)
}

func (s StockQuantity) Subtract(amount int) (StockQuantity, error) {
	if amount < 0 {
		return StockQuantity{}, ErrNegativeStockDelta
	}
	if amount > s.quantity {
		return StockQuantity{}, ErrInsufficientStock
	}
	return NewStockQuantity(s.quantity - amount)
}

// Update replaces the quantity wholesale.
func (s StockQuantity) Update(newQuantity int) (StockQuantity, error) {
	return NewStockQuantity(newQuantity)
}
