package generator

import "time"

// Config drives the synthetic transaction generator.
type Config struct {
	NumCustomers int
	NumOrders    int
	Seed         int64
	Start        time.Time
	Days         int
}

// DefaultConfig returns baseline settings that produce a dataset with every
// customer segment represented.
func DefaultConfig() Config {
	return Config{
		NumCustomers: 500,
		NumOrders:    5000,
		Seed:         42,
		Start:        time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Days:         365,
	}
}
