package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"zigzax/internal/model"
	"zigzax/pkg/apperr"
)

// PackVariantLabel is the display name set when the whole-pack variant is chosen.
const PackVariantLabel = "PACK (Seri)"

// DefaultWarehouse mirrors the first warehouse option of the invoice form.
const DefaultWarehouse = "01 - Merter Depo"

var (
	hundred        = decimal.NewFromInt(100)
	defaultTaxRate = decimal.NewFromInt(10) // default VAT per new line
)

// Line is one invoice draft line. BasePriceUSD is a snapshot of the product's
// wholesale USD price taken at selection time; UnitPrice is always re-derived
// from it on currency or rate changes, never compounded from a converted value.
type Line struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uint            `json:"productId"`
	ProductName  string          `json:"productName"`
	VariantID    string          `json:"variantId"`
	VariantName  string          `json:"variantName"`
	Quantity     int             `json:"quantity"`
	BasePriceUSD decimal.Decimal `json:"basePriceUsd"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	DiscountRate decimal.Decimal `json:"discountRate"` // percent, 0-100
	TaxRate      decimal.Decimal `json:"taxRate"`      // percent, 0-100
	Total        decimal.Decimal `json:"total"`        // quantity * unitPrice * (1 - discountRate/100)
}

// Draft is a mutable sales-invoice aggregate owned by one form session. All
// derived figures are recomputed by explicit calls; nothing updates implicitly.
type Draft struct {
	ID             uuid.UUID       `json:"id"`
	AccountID      uint            `json:"accountId"`
	Date           string          `json:"date"`
	DueDate        string          `json:"dueDate"`
	Warehouse      string          `json:"warehouse"`
	Currency       string          `json:"currency"`
	NoTax          bool            `json:"noTax"`
	Transportation decimal.Decimal `json:"transportation"`
	Rates          Rates           `json:"rates"`
	Lines          []Line          `json:"items"`
}

// NewDraft creates an empty draft with the form's defaults: dated today, due
// in 15 days, priced in USD against the supplied rates.
func NewDraft(rates Rates) *Draft {
	now := time.Now()
	return &Draft{
		ID:             uuid.New(),
		Date:           now.Format("2006-01-02"),
		DueDate:        now.AddDate(0, 0, 15).Format("2006-01-02"),
		Warehouse:      DefaultWarehouse,
		Currency:       CurrencyUSD,
		Transportation: decimal.Zero,
		Rates:          rates,
		Lines:          []Line{},
	}
}

// AddLine appends an empty line and returns it.
func (d *Draft) AddLine() Line {
	line := Line{
		ID:       uuid.New(),
		Quantity: 1,
		TaxRate:  defaultTaxRate,
	}
	d.Lines = append(d.Lines, line)
	return line
}

// RemoveLine deletes the line with the given id.
func (d *Draft) RemoveLine(id uuid.UUID) error {
	for i := range d.Lines {
		if d.Lines[i].ID == id {
			d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}

// Line returns a copy of the line with the given id.
func (d *Draft) Line(id uuid.UUID) (Line, error) {
	if l := d.line(id); l != nil {
		return *l, nil
	}
	return Line{}, apperr.ErrNotFound
}

func (d *Draft) line(id uuid.UUID) *Line {
	for i := range d.Lines {
		if d.Lines[i].ID == id {
			return &d.Lines[i]
		}
	}
	return nil
}

// SelectProduct snapshots the product's wholesale USD price onto the line,
// derives the unit price for the current invoice currency and resets the
// variant selection.
func (d *Draft) SelectProduct(lineID uuid.UUID, product *model.Product) error {
	line := d.line(lineID)
	if line == nil {
		return apperr.ErrNotFound
	}
	factor, err := d.Rates.Factor(d.Currency)
	if err != nil {
		return err
	}

	line.ProductID = product.ID
	line.ProductName = product.Name
	line.VariantID = ""
	line.VariantName = ""
	line.BasePriceUSD = product.Data.Pricing.WholesalePrice
	line.UnitPrice = line.BasePriceUSD.Mul(factor)
	recalcLine(line)
	return nil
}

// SelectVariant resolves variantID against the line's selected product.
// Choosing "PACK" on a pack product fills the quantity with the pack's unit
// count unless the user already raised it above 1. An unknown standard variant
// id falls back to being stored as the display name.
func (d *Draft) SelectVariant(lineID uuid.UUID, product *model.Product, variantID string) error {
	line := d.line(lineID)
	if line == nil {
		return apperr.ErrNotFound
	}
	if line.ProductID == 0 {
		return apperr.State("select a product before choosing a variant")
	}
	if product == nil || product.ID != line.ProductID {
		return apperr.State("variant does not belong to the selected product")
	}

	line.VariantID = variantID

	if product.Type == model.ProductTypePack && variantID == model.VariantPack {
		line.VariantName = PackVariantLabel
		if line.Quantity <= 1 {
			line.Quantity = packUnitCount(product.Data.PackDetails)
		}
	} else {
		line.VariantName = variantID
		for _, v := range product.Data.Variants {
			if v.ID == variantID {
				line.VariantName = v.Color + " / " + v.Size
				break
			}
		}
	}
	recalcLine(line)
	return nil
}

// SetQuantity updates the line quantity; it must be a positive integer.
func (d *Draft) SetQuantity(lineID uuid.UUID, quantity int) error {
	line := d.line(lineID)
	if line == nil {
		return apperr.ErrNotFound
	}
	if quantity < 1 {
		return apperr.Validation("quantity must be a positive integer")
	}
	line.Quantity = quantity
	recalcLine(line)
	return nil
}

// SetUnitPrice applies a manual price override in the invoice currency. The
// override holds until the next currency or rate change re-derives the price
// from the USD snapshot.
func (d *Draft) SetUnitPrice(lineID uuid.UUID, price decimal.Decimal) error {
	line := d.line(lineID)
	if line == nil {
		return apperr.ErrNotFound
	}
	if price.IsNegative() {
		return apperr.Validation("unit price cannot be negative")
	}
	line.UnitPrice = price
	recalcLine(line)
	return nil
}

// SetDiscountRate updates the line discount percentage (0-100).
func (d *Draft) SetDiscountRate(lineID uuid.UUID, rate decimal.Decimal) error {
	line := d.line(lineID)
	if line == nil {
		return apperr.ErrNotFound
	}
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return apperr.Validation("discount rate must be between 0 and 100")
	}
	line.DiscountRate = rate
	recalcLine(line)
	return nil
}

// SetTaxRate updates the line tax percentage (0-100).
func (d *Draft) SetTaxRate(lineID uuid.UUID, rate decimal.Decimal) error {
	line := d.line(lineID)
	if line == nil {
		return apperr.ErrNotFound
	}
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return apperr.Validation("tax rate must be between 0 and 100")
	}
	line.TaxRate = rate
	recalcLine(line)
	return nil
}

// SetCurrency switches the invoice currency and re-derives every line's unit
// price from its USD snapshot, so repeated switches cannot drift.
func (d *Draft) SetCurrency(currency string) error {
	factor, err := d.Rates.Factor(currency)
	if err != nil {
		return err
	}
	d.Currency = currency
	d.applyFactor(factor)
	return nil
}

// SetRates installs fresh conversion factors and re-derives every line for
// the current currency, e.g. when a late rate fetch lands mid-edit.
func (d *Draft) SetRates(rates Rates) error {
	d.Rates = rates
	factor, err := d.Rates.Factor(d.Currency)
	if err != nil {
		return err
	}
	d.applyFactor(factor)
	return nil
}

// SetTransportation sets the flat transport surcharge in the invoice currency.
func (d *Draft) SetTransportation(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return apperr.Validation("transportation cannot be negative")
	}
	d.Transportation = amount
	return nil
}

// Totals recomputes the aggregate figures from the current line set.
func (d *Draft) Totals() Totals {
	return ComputeTotals(d.Lines, d.NoTax, d.Transportation)
}

func (d *Draft) applyFactor(factor decimal.Decimal) {
	for i := range d.Lines {
		d.Lines[i].UnitPrice = d.Lines[i].BasePriceUSD.Mul(factor)
		recalcLine(&d.Lines[i])
	}
}

// recalcLine restores the line invariant. Tax is aggregated on the header,
// never folded into the line.
func recalcLine(l *Line) {
	l.Total = LineTotal(l.Quantity, l.UnitPrice, l.DiscountRate)
}

func packUnitCount(details *model.PackDetails) int {
	if details == nil {
		return 1
	}
	count := 0
	for _, item := range details.Items {
		count += item.Quantity
	}
	if count == 0 {
		return 1
	}
	return count
}
