package canteen

import (
	"fmt"
	"time"

	"canteen-backend/domain"
	"canteen-backend/entities"

	"github.com/google/uuid"
)

type SampleData struct {
	Canteen    *entities.Canteen
	Categories []*entities.Category
	MenuItems  []*entities.MenuItem
	Orders     []*entities.Order
	OrderItems []*entities.OrderItem
}

type sampleItem struct {
	category string
	name     string
	price    float64
	prepTime int
}

var sampleCategories = []struct{ name, description string }{
	{"Main Course", "Hearty and delicious main courses."},
	{"Snacks", "Quick and tasty snacks."},
	{"Beverages", "Cool and refreshing drinks."},
}

var sampleItems = []sampleItem{
	{"Main Course", "Chicken Biryani", 150, 25},
	{"Main Course", "Paneer Butter Masala", 120, 20},
	{"Snacks", "Samosa", 15, 10},
	{"Snacks", "Veg Sandwich", 40, 5},
	{"Beverages", "Masala Chai", 10, 5},
	{"Beverages", "Fresh Lime Soda", 25, 3},
}

type sampleLine struct {
	item     string
	quantity int
}

var sampleOrders = []struct {
	customer string
	status   domain.OrderStatus
	payment  domain.PaymentMethod
	age      time.Duration
	lines    []sampleLine
}{
	{"Ankit", domain.OrderStatusCompleted, domain.PaymentUPI, 24 * time.Hour, []sampleLine{{"Chicken Biryani", 1}, {"Samosa", 1}}},
	{"Bhavna", domain.OrderStatusPreparing, domain.PaymentCash, 10 * time.Minute, []sampleLine{{"Paneer Butter Masala", 1}, {"Masala Chai", 1}}},
	{"Chirag", domain.OrderStatusPending, domain.PaymentCard, 2 * time.Minute, []sampleLine{{"Masala Chai", 5}}},
}

// NewSampleData builds the welcome canteen for an owner. Order totals are
// derived from the lines.
func NewSampleData(ownerID uuid.UUID, ownerName string, now time.Time) *SampleData {
	data := &SampleData{
		Canteen: &entities.Canteen{
			ID:          uuid.New(),
			Name:        fmt.Sprintf("%s's Canteen", ownerName),
			Description: "A fresh canteen ready for business!",
			OwnerID:     ownerID,
			IsActive:    true,
		},
	}
	canteenID := data.Canteen.ID

	categories := make(map[string]uuid.UUID, len(sampleCategories))
	for _, c := range sampleCategories {
		category := &entities.Category{
			ID:          uuid.New(),
			CanteenID:   canteenID,
			Name:        c.name,
			Description: c.description,
			IsActive:    true,
		}
		categories[c.name] = category.ID
		data.Categories = append(data.Categories, category)
	}

	items := make(map[string]*entities.MenuItem, len(sampleItems))
	for _, s := range sampleItems {
		item := &entities.MenuItem{
			ID:              uuid.New(),
			CanteenID:       canteenID,
			CategoryID:      categories[s.category],
			Name:            s.name,
			Price:           s.price,
			PreparationTime: s.prepTime,
			IsActive:        true,
			IsAvailable:     true,
		}
		items[s.name] = item
		data.MenuItems = append(data.MenuItems, item)
	}

	for _, o := range sampleOrders {
		customer := o.customer
		created := now.Add(-o.age)
		order := &entities.Order{
			ID:            uuid.New(),
			CanteenID:     canteenID,
			CustomerName:  &customer,
			OrderType:     domain.OrderTypeDineIn,
			PaymentMethod: o.payment,
			Status:        o.status,
			Timestamp:     entities.Timestamp{CreatedAt: created, UpdatedAt: created},
		}
		if o.status == domain.OrderStatusCompleted {
			servedBy := ownerID
			order.ServedBy = &servedBy
			order.CompletedAt = &created
		}

		var total float64
		for _, l := range o.lines {
			item := items[l.item]
			lineTotal := item.Price * float64(l.quantity)
			total += lineTotal
			data.OrderItems = append(data.OrderItems, &entities.OrderItem{
				ID:         uuid.New(),
				OrderID:    order.ID,
				MenuItemID: item.ID,
				Quantity:   l.quantity,
				UnitPrice:  item.Price,
				TotalPrice: lineTotal,
			})
		}
		order.TotalAmount = total
		data.Orders = append(data.Orders, order)
	}

	return data
}
