package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProductClone(t *testing.T) {
	p := Product{
		ID: "p1",
		Variants: []ProductVariant{
			{ID: "v1", Name: "Red", Attributes: map[string]string{"color": "red"}},
		},
	}

	c := p.Clone()
	c.Variants[0].Name = "Blue"
	c.Variants[0].Attributes["color"] = "blue"

	assert.Equal(t, "Red", p.Variants[0].Name)
	assert.Equal(t, "red", p.Variants[0].Attributes["color"])
}

func TestOrderClone(t *testing.T) {
	deadline := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	o := Order{ID: "o1", Items: []OrderItem{{ID: "i1", Quantity: 1}}, Deadline: &deadline}

	c := o.Clone()
	c.Items[0].Quantity = 9
	*c.Deadline = deadline.AddDate(0, 0, 1)

	assert.Equal(t, 1, o.Items[0].Quantity)
	assert.Equal(t, deadline, *o.Deadline)
}

func TestEventClone(t *testing.T) {
	e := Event{ID: "e1", Products: []string{"p1"}, ChecklistItems: []ChecklistItem{{ID: "c1"}}}

	c := e.Clone()
	c.Products[0] = "p2"
	c.ChecklistItems[0].IsChecked = true

	assert.Equal(t, "p1", e.Products[0])
	assert.False(t, e.ChecklistItems[0].IsChecked)
}

func TestCloneKeepsNil(t *testing.T) {
	assert.Nil(t, Product{}.Clone().Variants)
	assert.Nil(t, Order{}.Clone().Deadline)
	assert.Nil(t, Sale{}.Clone().Items)
	assert.Nil(t, BoothLayout{}.Clone().Items)
}
