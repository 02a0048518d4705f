package app

import "context"

// PriceSource describes where the price list lives and how to read it.
type PriceSource struct {
	Location      string
	Sheet         string
	Format        string
	Layout        string
	HeaderMarker  string
	FilterColumn  string
	FilterValue   string
	ExamplesSheet string
}

type PriceTableLoader interface {
	Load(ctx context.Context, src PriceSource) (*PriceTable, error)
}
