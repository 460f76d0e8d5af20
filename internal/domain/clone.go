package domain

import (
	"maps"
	"slices"
)

// Clone returns a copy of p that shares no slices or maps with p.
func (p Product) Clone() Product {
	p.Variants = slices.Clone(p.Variants)
	for i := range p.Variants {
		p.Variants[i].Attributes = maps.Clone(p.Variants[i].Attributes)
	}
	return p
}

func (o Order) Clone() Order {
	o.Items = slices.Clone(o.Items)
	if o.Deadline != nil {
		d := *o.Deadline
		o.Deadline = &d
	}
	return o
}

func (e Event) Clone() Event {
	e.Products = slices.Clone(e.Products)
	e.ChecklistItems = slices.Clone(e.ChecklistItems)
	return e
}

func (s Sale) Clone() Sale {
	s.Items = slices.Clone(s.Items)
	return s
}

func (b BoothLayout) Clone() BoothLayout {
	b.Items = slices.Clone(b.Items)
	return b
}
