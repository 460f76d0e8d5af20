package service

import (
	"github.com/vbonduro/nichevendor/internal/domain"
	"github.com/vbonduro/nichevendor/internal/money"
)

// Summary is what the home page shows.
type Summary struct {
	ProductCount       int
	LowStock           []domain.Product
	OpenOrders         int
	OutstandingBalance float64
	UpcomingEvents     []domain.Event
	RecentOrders       []domain.Order
}

type DashboardService struct {
	products  productRepository
	orders    orderRepository
	events    *EventService
	threshold int
	now       Clock
}

func NewDashboardService(products productRepository, orders orderRepository, events *EventService, lowStockThreshold int, now Clock) *DashboardService {
	return &DashboardService{
		products:  products,
		orders:    orders,
		events:    events,
		threshold: lowStockThreshold,
		now:       now,
	}
}

const recentOrderLimit = 5

func (s *DashboardService) Summary() Summary {
	products := s.products.Products()
	orders := s.orders.Orders()

	sum := Summary{ProductCount: len(products)}
	for _, p := range products {
		if p.Stock <= s.threshold {
			sum.LowStock = append(sum.LowStock, p)
		}
	}

	var balances []float64
	for _, o := range orders {
		if o.Status.Open() {
			sum.OpenOrders++
		}
		balances = append(balances, money.Balance(o))
	}
	sum.OutstandingBalance = money.Sum(balances...)

	for i := len(orders) - 1; i >= 0 && len(sum.RecentOrders) < recentOrderLimit; i-- {
		sum.RecentOrders = append(sum.RecentOrders, orders[i])
	}

	sum.UpcomingEvents = s.events.Upcoming(s.now())
	return sum
}

// LowStockThreshold is the stock level at or below which a product is flagged.
func (s *DashboardService) LowStockThreshold() int {
	return s.threshold
}

