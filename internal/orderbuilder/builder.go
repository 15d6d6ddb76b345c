package orderbuilder

import (
	"context"
	"sort"
	"strings"

	"laundry-admin/internal/domain"
)

// Phase is the order-construction step.
type Phase string

const (
	PhaseCustomerInfo     Phase = "customer_info"
	PhaseProductSelection Phase = "product_selection"
	PhaseSubmitting       Phase = "submitting"
	PhaseCommitted        Phase = "committed"
	PhaseCancelled        Phase = "cancelled"
)

// CatalogItem is a selectable product as listed in the picker.
type CatalogItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Pinned    bool    `json:"pinned"`
}

// SelectedItem is one chosen product with its live quantity.
type SelectedItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    float64 `json:"quantity"`
}

// Draft is the in-progress order handed to the submission collaborator.
type Draft struct {
	CustomerName string         `json:"customerName"`
	Phone        string         `json:"phone"`
	Note         string         `json:"note,omitempty"`
	Items        []SelectedItem `json:"orderItems"`
}

// CatalogSource loads the active product catalog.
type CatalogSource interface {
	FetchCatalog(ctx context.Context) ([]CatalogItem, error)
}

// Submitter receives the finalized draft.
type Submitter interface {
	SubmitOrder(ctx context.Context, d Draft) error
}

// PinUpdater persists a pin-toggle before the local flag flips.
type PinUpdater interface {
	UpdatePin(ctx context.Context, productID string, pinned bool) error
}

// Builder drives the two-step order workflow: customer info first, then
// product selection with live quantities. The draft is owned by exactly
// one builder instance and discarded on cancel.
type Builder struct {
	phase        Phase
	customerName string
	phone        string
	note         string

	catalog  []CatalogItem
	selected map[string]*SelectedItem
	picked   []string // selection order
	search   string

	catalogSrc CatalogSource
	submitter  Submitter
	pins       PinUpdater
}

func New(catalogSrc CatalogSource, submitter Submitter, pins PinUpdater) *Builder {
	return &Builder{
		phase:      PhaseCustomerInfo,
		selected:   map[string]*SelectedItem{},
		catalogSrc: catalogSrc,
		submitter:  submitter,
		pins:       pins,
	}
}

func (b *Builder) Phase() Phase { return b.phase }

// LoadCatalog fetches the product list. Catalog order is kept as returned
// by the source; only the pinned flag affects listing order later.
func (b *Builder) LoadCatalog(ctx context.Context) error {
	items, err := b.catalogSrc.FetchCatalog(ctx)
	if err != nil {
		return err
	}
	b.catalog = items
	return nil
}

func (b *Builder) SetCustomerName(name string) { b.customerName = name }
func (b *Builder) SetPhone(phone string)       { b.phone = phone }
func (b *Builder) SetNote(note string)         { b.note = note }

// Next advances CustomerInfo -> ProductSelection. Both customer name and
// phone must be non-empty after trimming; otherwise the phase is kept and
// a field-specific validation error is returned.
func (b *Builder) Next() error {
	if b.phase != PhaseCustomerInfo {
		return domain.ConflictError{Resource: "order draft", Msg: "không ở bước thông tin khách hàng"}
	}
	if strings.TrimSpace(b.customerName) == "" {
		return domain.ValidationError{Field: "customerName", Msg: "Vui lòng nhập tên khách hàng"}
	}
	if strings.TrimSpace(b.phone) == "" {
		return domain.ValidationError{Field: "phone", Msg: "Vui lòng nhập số điện thoại"}
	}
	b.phase = PhaseProductSelection
	return nil
}

// Back returns to CustomerInfo without clearing captured fields.
func (b *Builder) Back() {
	if b.phase == PhaseProductSelection {
		b.phase = PhaseCustomerInfo
	}
}

// SetSearch filters the visible catalog. It never touches the selection.
func (b *Builder) SetSearch(term string) { b.search = term }

// VisibleCatalog lists catalog items matching the search term, pinned
// items first. Within each group the fetch order is preserved.
func (b *Builder) VisibleCatalog() []CatalogItem {
	term := strings.ToLower(strings.TrimSpace(b.search))
	out := make([]CatalogItem, 0, len(b.catalog))
	for _, it := range b.catalog {
		if term == "" ||
			strings.Contains(strings.ToLower(it.Name), term) ||
			strings.Contains(strings.ToLower(it.ProductID), term) {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Pinned && !out[j].Pinned
	})
	return out
}

// IsSelected reports whether the product currently counts toward the total.
func (b *Builder) IsSelected(productID string) bool {
	it, ok := b.selected[productID]
	return ok && it.Quantity > 0
}

// SelectedItems returns the chosen items in selection order.
func (b *Builder) SelectedItems() []SelectedItem {
	out := make([]SelectedItem, 0, len(b.picked))
	for _, id := range b.picked {
		if it, ok := b.selected[id]; ok {
			out = append(out, *it)
		}
	}
	return out
}

// ToggleSelect selects an unselected catalog item with quantity 1, or
// removes an already selected one.
func (b *Builder) ToggleSelect(productID string) error {
	if _, ok := b.selected[productID]; ok {
		b.remove(productID)
		return nil
	}
	item, ok := b.catalogItem(productID)
	if !ok {
		return domain.NotFoundError{Resource: "sản phẩm"}
	}
	b.selected[productID] = &SelectedItem{
		ProductID:   item.ProductID,
		ProductName: item.Name,
		Price:       item.Price,
		Quantity:    1,
	}
	b.picked = append(b.picked, productID)
	return nil
}

// SetQuantityInput applies a typed quantity. Invalid text is rejected and
// the prior value stays. A quantity of zero removes the item.
func (b *Builder) SetQuantityInput(productID, text string) error {
	it, ok := b.selected[productID]
	if !ok {
		return domain.NotFoundError{Resource: "sản phẩm"}
	}
	qty, valid := ParseQuantity(text)
	if !valid {
		return domain.ValidationError{Field: "quantity", Msg: "Số lượng không hợp lệ"}
	}
	if qty <= 0 {
		b.remove(productID)
		return nil
	}
	it.Quantity = qty
	return nil
}

// Increment raises the quantity by step.
func (b *Builder) Increment(productID string, step float64) error {
	it, ok := b.selected[productID]
	if !ok {
		return domain.NotFoundError{Resource: "sản phẩm"}
	}
	it.Quantity += step
	return nil
}

// Decrement lowers the quantity by step, clamped at zero. Reaching zero
// deselects the item.
func (b *Builder) Decrement(productID string, step float64) error {
	it, ok := b.selected[productID]
	if !ok {
		return domain.NotFoundError{Resource: "sản phẩm"}
	}
	it.Quantity -= step
	if it.Quantity <= 0 {
		b.remove(productID)
	}
	return nil
}

// Total recomputes the order amount from the selection on every call.
func (b *Builder) Total() float64 {
	var total float64
	for _, id := range b.picked {
		if it, ok := b.selected[id]; ok && it.Quantity > 0 {
			total += it.Quantity * it.Price
		}
	}
	return total
}

// TogglePin persists the flipped pin state before changing the local
// flag. On collaborator failure the flag is left as is.
func (b *Builder) TogglePin(ctx context.Context, productID string) error {
	idx := -1
	for i := range b.catalog {
		if b.catalog[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.NotFoundError{Resource: "sản phẩm"}
	}
	next := !b.catalog[idx].Pinned
	if err := b.pins.UpdatePin(ctx, productID, next); err != nil {
		return err
	}
	b.catalog[idx].Pinned = next
	return nil
}

// Draft snapshots the current state for submission.
func (b *Builder) Draft() Draft {
	return Draft{
		CustomerName: strings.TrimSpace(b.customerName),
		Phone:        strings.TrimSpace(b.phone),
		Note:         strings.TrimSpace(b.note),
		Items:        b.SelectedItems(),
	}
}

// Submit finalizes the draft. At least one item must be selected. A
// rejection from the submission collaborator returns the builder to
// ProductSelection with the draft intact.
func (b *Builder) Submit(ctx context.Context) error {
	if b.phase != PhaseProductSelection {
		return domain.ConflictError{Resource: "order draft", Msg: "không ở bước chọn sản phẩm"}
	}
	if len(b.SelectedItems()) == 0 {
		return domain.ValidationError{Field: "orderItems", Msg: "Vui lòng chọn ít nhất một sản phẩm"}
	}
	b.phase = PhaseSubmitting
	if err := b.submitter.SubmitOrder(ctx, b.Draft()); err != nil {
		b.phase = PhaseProductSelection
		return err
	}
	b.phase = PhaseCommitted
	return nil
}

// Cancel discards the draft unconditionally.
func (b *Builder) Cancel() {
	b.phase = PhaseCancelled
	b.customerName = ""
	b.phone = ""
	b.note = ""
	b.selected = map[string]*SelectedItem{}
	b.picked = nil
}

func (b *Builder) catalogItem(productID string) (CatalogItem, bool) {
	for _, it := range b.catalog {
		if it.ProductID == productID {
			return it, true
		}
	}
	return CatalogItem{}, false
}

func (b *Builder) remove(productID string) {
	delete(b.selected, productID)
	for i, id := range b.picked {
		if id == productID {
			b.picked = append(b.picked[:i], b.picked[i+1:]...)
			break
		}
	}
}
