package web

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vbonduro/nichevendor/internal/domain"
	"github.com/vbonduro/nichevendor/internal/service"
	"github.com/vbonduro/nichevendor/internal/storage"
	"github.com/vbonduro/nichevendor/internal/validate"
)

// blankRows is how many empty line-item rows a form offers for new entries.
const blankRows = 3

const maxFormSize = 1 << 20

// productForm holds the raw submitted values so a rejected form can be shown
// again exactly as typed.
type productForm struct {
	ID          string
	Name        string
	Description string
	Price       string
	Stock       string
	Category    string
	ImageURL    string
	Variants    []variantRow
}

type variantRow struct {
	ID              string
	Name            string
	StockAdjustment string
}

func productFormFrom(p domain.Product) productForm {
	f := productForm{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       strconv.FormatFloat(p.Price, 'f', 2, 64),
		Stock:       strconv.Itoa(p.Stock),
		Category:    p.Category,
		ImageURL:    p.ImageURL,
	}
	for _, v := range p.Variants {
		f.Variants = append(f.Variants, variantRow{ID: v.ID, Name: v.Name, StockAdjustment: strconv.Itoa(v.StockAdjustment)})
	}
	f.Variants = append(f.Variants, make([]variantRow, 1)...)
	return f
}

func parseProductForm(r *http.Request) (productForm, service.ProductInput, validate.Errors) {
	errs := validate.Errors{}
	f := productForm{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Price:       r.PostFormValue("price"),
		Stock:       r.PostFormValue("stock"),
		Category:    r.PostFormValue("category"),
		ImageURL:    r.PostFormValue("imageUrl"),
	}
	in := service.ProductInput{
		Name:        f.Name,
		Description: f.Description,
		Category:    f.Category,
		ImageURL:    f.ImageURL,
		Price:       parseFloat(f.Price, "price", "Price must be a number", errs),
		Stock:       parseInt(f.Stock, "stock", "Stock must be a whole number", errs),
	}

	ids := r.PostForm["variant_id"]
	names := r.PostForm["variant_name"]
	adjust := r.PostForm["variant_adjust"]
	for i := range names {
		row := variantRow{ID: at(ids, i), Name: names[i], StockAdjustment: at(adjust, i)}
		f.Variants = append(f.Variants, row)
		if strings.TrimSpace(row.Name) == "" && strings.TrimSpace(row.StockAdjustment) == "" {
			continue
		}
		in.Variants = append(in.Variants, domain.ProductVariant{
			ID:              row.ID,
			Name:            row.Name,
			StockAdjustment: parseInt(row.StockAdjustment, "variants", "Variant stock adjustment must be a whole number", errs),
		})
	}
	return f, in, errs
}

type orderForm struct {
	ID            string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Items         []orderItemRow
	Deposit       string
	IsPaid        bool
	Status        string
	Deadline      string
	Notes         string
	EventID       string
}

type orderItemRow struct {
	ID          string
	ProductID   string
	Description string
	Quantity    string
	Price       string
}

func newOrderForm() orderForm {
	return orderForm{
		Status: string(domain.OrderPending),
		Items:  make([]orderItemRow, blankRows),
	}
}

func orderFormFrom(o domain.Order) orderForm {
	f := orderForm{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		CustomerPhone: o.CustomerPhone,
		Deposit:       strconv.FormatFloat(o.DepositAmount, 'f', 2, 64),
		IsPaid:        o.IsPaid,
		Status:        string(o.Status),
		Notes:         o.Notes,
		EventID:       o.EventID,
	}
	if o.Deadline != nil {
		f.Deadline = o.Deadline.UTC().Format("2006-01-02")
	}
	for _, it := range o.Items {
		f.Items = append(f.Items, orderItemRow{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    strconv.Itoa(it.Quantity),
			Price:       strconv.FormatFloat(it.Price, 'f', 2, 64),
		})
	}
	f.Items = append(f.Items, make([]orderItemRow, 1)...)
	return f
}

// parseOrderForm reads the order form. Item rows left entirely blank are
// ignored.
func parseOrderForm(r *http.Request) (orderForm, service.OrderInput, validate.Errors) {
	errs := validate.Errors{}
	f := orderForm{
		CustomerName:  r.PostFormValue("customerName"),
		CustomerEmail: r.PostFormValue("customerEmail"),
		CustomerPhone: r.PostFormValue("customerPhone"),
		Deposit:       r.PostFormValue("depositAmount"),
		IsPaid:        r.PostFormValue("isPaid") != "",
		Status:        r.PostFormValue("status"),
		Deadline:      r.PostFormValue("deadline"),
		Notes:         r.PostFormValue("notes"),
		EventID:       r.PostFormValue("eventId"),
	}
	in := service.OrderInput{
		CustomerName:  f.CustomerName,
		CustomerEmail: f.CustomerEmail,
		CustomerPhone: f.CustomerPhone,
		DepositAmount: parseFloat(f.Deposit, "depositAmount", "Deposit must be a number", errs),
		IsPaid:        f.IsPaid,
		Status:        domain.OrderStatus(f.Status),
		Notes:         f.Notes,
		EventID:       f.EventID,
	}
	in.Deadline = parseOptionalDate(f.Deadline, "deadline", errs)

	ids := r.PostForm["item_id"]
	products := r.PostForm["item_product"]
	descs := r.PostForm["item_description"]
	qtys := r.PostForm["item_quantity"]
	prices := r.PostForm["item_price"]
	for i := range descs {
		row := orderItemRow{
			ID:          at(ids, i),
			ProductID:   at(products, i),
			Description: descs[i],
			Quantity:    at(qtys, i),
			Price:       at(prices, i),
		}
		f.Items = append(f.Items, row)
		if allBlank(row.Description, row.Quantity, row.Price) {
			continue
		}
		in.Items = append(in.Items, service.OrderItemInput{
			ID:          row.ID,
			ProductID:   row.ProductID,
			Description: row.Description,
			Quantity:    parseInt(row.Quantity, "items", "Item quantity must be a whole number", errs),
			Price:       parseFloat(row.Price, "items", "Item price must be a number", errs),
		})
	}
	if len(f.Items) == 0 {
		f.Items = make([]orderItemRow, blankRows)
	}
	return f, in, errs
}

type eventForm struct {
	Name        string
	Location    string
	StartDate   string
	EndDate     string
	BoothNumber string
	Notes       string
	Checklist   string
}

func parseEventForm(r *http.Request) (eventForm, service.EventInput, validate.Errors) {
	errs := validate.Errors{}
	f := eventForm{
		Name:        r.PostFormValue("name"),
		Location:    r.PostFormValue("location"),
		StartDate:   r.PostFormValue("startDate"),
		EndDate:     r.PostFormValue("endDate"),
		BoothNumber: r.PostFormValue("boothNumber"),
		Notes:       r.PostFormValue("notes"),
		Checklist:   r.PostFormValue("checklist"),
	}
	in := service.EventInput{
		Name:        f.Name,
		Location:    f.Location,
		BoothNumber: f.BoothNumber,
		Notes:       f.Notes,
		ProductIDs:  r.PostForm["productIds"],
		Checklist:   strings.Split(f.Checklist, "\n"),
	}
	if start := parseOptionalDate(f.StartDate, "startDate", errs); start != nil {
		in.StartDate = *start
	}
	if end := parseOptionalDate(f.EndDate, "endDate", errs); end != nil {
		in.EndDate = *end
	}
	return f, in, errs
}

type saleForm struct {
	EventID       string
	PaymentMethod string
	Notes         string
	Date          string
	Items         []saleRow
}

type saleRow struct {
	ProductID string
	Quantity  string
}

func newSaleForm() saleForm {
	return saleForm{PaymentMethod: string(domain.PaymentCash), Items: make([]saleRow, blankRows)}
}

// parseSaleForm prices each line from the current product so the sale keeps
// the price it was made at.
func parseSaleForm(r *http.Request, lookup func(id string) (*domain.Product, error)) (saleForm, service.SaleInput, validate.Errors) {
	errs := validate.Errors{}
	f := saleForm{
		EventID:       r.PostFormValue("eventId"),
		PaymentMethod: r.PostFormValue("paymentMethod"),
		Notes:         r.PostFormValue("notes"),
		Date:          r.PostFormValue("date"),
	}
	in := service.SaleInput{
		EventID:       f.EventID,
		PaymentMethod: domain.PaymentMethod(f.PaymentMethod),
		Notes:         f.Notes,
	}
	if d := parseOptionalDate(f.Date, "date", errs); d != nil {
		in.Date = *d
	}

	qtys := r.PostForm["sale_quantity"]
	for i, id := range r.PostForm["sale_product"] {
		row := saleRow{ProductID: id, Quantity: at(qtys, i)}
		f.Items = append(f.Items, row)
		if allBlank(row.ProductID) {
			continue
		}
		p, err := lookup(row.ProductID)
		if err != nil {
			errs.Add("items", "Unknown product")
			continue
		}
		qty := 1
		if !allBlank(row.Quantity) {
			qty = parseInt(row.Quantity, "items", "Quantity must be a whole number", errs)
		}
		in.Items = append(in.Items, domain.SaleItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    qty,
			Price:       p.Price,
		})
	}
	if len(f.Items) == 0 {
		f.Items = make([]saleRow, blankRows)
	}
	return f, in, errs
}

type boothForm struct {
	Name    string
	EventID string
	Notes   string
	Items   []boothRow
}

type boothRow struct {
	Type   string
	Label  string
	X      string
	Y      string
	Width  string
	Height string
}

func newBoothForm() boothForm {
	return boothForm{Items: make([]boothRow, blankRows)}
}

func parseBoothForm(r *http.Request) (boothForm, service.BoothInput, validate.Errors) {
	errs := validate.Errors{}
	f := boothForm{
		Name:    r.PostFormValue("name"),
		EventID: r.PostFormValue("eventId"),
		Notes:   r.PostFormValue("notes"),
	}
	in := service.BoothInput{Name: f.Name, EventID: f.EventID, Notes: f.Notes}

	labels := r.PostForm["item_label"]
	xs, ys := r.PostForm["item_x"], r.PostForm["item_y"]
	ws, hs := r.PostForm["item_width"], r.PostForm["item_height"]
	for i, typ := range r.PostForm["item_type"] {
		row := boothRow{Type: typ, Label: at(labels, i), X: at(xs, i), Y: at(ys, i), Width: at(ws, i), Height: at(hs, i)}
		f.Items = append(f.Items, row)
		if allBlank(row.Type, row.Label) {
			continue
		}
		const msg = "Positions and sizes must be numbers"
		in.Items = append(in.Items, domain.BoothLayoutItem{
			Type:   strings.TrimSpace(row.Type),
			Label:  strings.TrimSpace(row.Label),
			X:      parseFloat(row.X, "items", msg, errs),
			Y:      parseFloat(row.Y, "items", msg, errs),
			Width:  parseFloat(row.Width, "items", msg, errs),
			Height: parseFloat(row.Height, "items", msg, errs),
		})
	}
	if len(f.Items) == 0 {
		f.Items = make([]boothRow, blankRows)
	}
	return f, in, errs
}

// parseFloat reads an optional number. Blank is zero.
func parseFloat(s, field, msg string, errs validate.Errors) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		errs.Add(field, msg)
		return 0
	}
	return v
}

func parseInt(s, field, msg string, errs validate.Errors) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		errs.Add(field, msg)
		return 0
	}
	return v
}

func parseOptionalDate(s, field string, errs validate.Errors) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := storage.ParseTime(s)
	if err != nil {
		errs.Add(field, "Date is not valid")
		return nil
	}
	return &t
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

func allBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
