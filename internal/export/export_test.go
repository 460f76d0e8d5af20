package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/nichevendor/internal/domain"
)

var created = time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)

func TestProducts(t *testing.T) {
	var buf bytes.Buffer
	err := Products(&buf, []domain.Product{
		{ID: "p1", Name: "Pin, enamel", Category: "Pins", Price: 8, Stock: 12, CreatedAt: created},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,name,category,price,stock,description,created", lines[0])
	assert.Equal(t, `p1,"Pin, enamel",Pins,8.00,12,,2025-02-03T04:05:06Z`, lines[1])
}

func TestOrders(t *testing.T) {
	deadline := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	err := Orders(&buf, []domain.Order{
		{ID: "o1", CustomerName: "Sam", Status: domain.OrderPending, TotalAmount: 30.3, DepositAmount: 10, Deadline: &deadline, CreatedAt: created},
		{ID: "o2", CustomerName: "Riley", Status: domain.OrderDelivered, TotalAmount: 12, IsPaid: true, CreatedAt: created},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,customer,email,phone,status,total,deposit,balance,paid,deadline,created", lines[0])
	assert.Equal(t, "o1,Sam,,,pending,30.30,10.00,20.30,false,2025-03-01,2025-02-03T04:05:06Z", lines[1])
	assert.Equal(t, "o2,Riley,,,delivered,12.00,0.00,0.00,true,,2025-02-03T04:05:06Z", lines[2])
}

func TestProducts_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Products(&buf, nil))
	assert.Equal(t, "id,name,category,price,stock,description,created", strings.TrimSpace(buf.String()))
}
