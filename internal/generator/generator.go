package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meera/rfmscope/backend/internal/rfm"
)

// profile shapes a customer's buying behaviour: in which slice of the
// generation window they order, how often, and how much they spend.
type profile struct {
	name        string
	windowStart float64 // fraction of the window where orders begin
	windowEnd   float64 // fraction of the window where orders stop
	orderWeight float64 // relative share of total orders
	minPrice    int     // unit price range, whole currency units
	maxPrice    int
}

// profiles are weighted so that a generated dataset covers the whole
// segmentation table, from recent heavy spenders to long-lapsed one-timers.
var profiles = []struct {
	p      profile
	weight float64
}{
	{profile{"champion", 0.6, 1.0, 6.0, 80, 400}, 0.10},
	{profile{"loyal", 0.0, 1.0, 4.0, 40, 200}, 0.20},
	{profile{"lapsed_big", 0.0, 0.4, 5.0, 100, 500}, 0.10},
	{profile{"drifting", 0.2, 0.8, 2.0, 20, 120}, 0.25},
	{profile{"fresh", 0.9, 1.0, 1.0, 10, 80}, 0.15},
	{profile{"dormant", 0.0, 0.3, 1.0, 5, 60}, 0.20},
}

// Generator produces synthetic purchase histories for demo and load datasets.
type Generator struct {
	cfg           Config
	rand          *rand.Rand
	nameFragments nameFragments
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.NumCustomers <= 0 {
		cfg.NumCustomers = def.NumCustomers
	}
	if cfg.NumOrders <= 0 {
		cfg.NumOrders = def.NumOrders
	}
	if cfg.Days <= 0 {
		cfg.Days = def.Days
	}
	if cfg.Start.IsZero() {
		cfg.Start = def.Start
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:           cfg,
		rand:          rand.New(rand.NewSource(cfg.Seed)),
		nameFragments: defaultNameFragments(),
	}
}

type customer struct {
	id      string
	name    string
	profile profile
}

// Generate synthesises transaction records. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) ([]rfm.TransactionRecord, error) {
	customers := make([]customer, g.cfg.NumCustomers)
	totalWeight := 0.0
	for i := range customers {
		p := g.pickProfile()
		customers[i] = customer{
			id:      fmt.Sprintf("CUST-%05d", i+1),
			name:    g.randomFullName(),
			profile: p,
		}
		totalWeight += p.orderWeight
	}

	records := make([]rfm.TransactionRecord, 0, g.cfg.NumOrders)
	for _, c := range customers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		share := c.profile.orderWeight / totalWeight
		orders := int(share * float64(g.cfg.NumOrders))
		if orders < 1 {
			orders = 1
		}
		for o := 0; o < orders; o++ {
			records = append(records, g.randomOrder(c))
		}
	}

	// Fill any shortfall from integer truncation with extra loyal-profile
	// orders so the requested volume is met.
	for len(records) < g.cfg.NumOrders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c := customers[g.rand.Intn(len(customers))]
		records = append(records, g.randomOrder(c))
	}

	return records, nil
}

func (g *Generator) randomOrder(c customer) rfm.TransactionRecord {
	lo := int(c.profile.windowStart * float64(g.cfg.Days))
	hi := int(c.profile.windowEnd * float64(g.cfg.Days))
	if hi <= lo {
		hi = lo + 1
	}
	day := lo + g.rand.Intn(hi-lo)

	priceUnits := c.profile.minPrice + g.rand.Intn(c.profile.maxPrice-c.profile.minPrice+1)
	cents := g.rand.Intn(100)

	return rfm.TransactionRecord{
		CustomerID:   c.id,
		CustomerName: c.name,
		InvoiceDate:  g.cfg.Start.AddDate(0, 0, day),
		Quantity:     1 + g.rand.Intn(5),
		UnitPrice:    decimal.New(int64(priceUnits*100+cents), -2),
	}
}

func (g *Generator) pickProfile() profile {
	roll := g.rand.Float64()
	acc := 0.0
	for _, entry := range profiles {
		acc += entry.weight
		if roll < acc {
			return entry.p
		}
	}
	return profiles[len(profiles)-1].p
}

type nameFragments struct {
	first []string
	last  []string
}

func defaultNameFragments() nameFragments {
	return nameFragments{
		first: []string{
			"Ava", "Noah", "Mia", "Liam", "Zoe", "Ethan", "Ines", "Omar",
			"Lena", "Hugo", "Sara", "Felix", "Nina", "Ravi", "Elsa", "Marco",
		},
		last: []string{
			"Fernandez", "Okafor", "Lindgren", "Tanaka", "Moreau", "Petrov",
			"Alvarez", "Haddad", "Kowalski", "Mbeki", "Rossi", "Chen",
		},
	}
}

func (g *Generator) randomFullName() string {
	first := g.nameFragments.first[g.rand.Intn(len(g.nameFragments.first))]
	last := g.nameFragments.last[g.rand.Intn(len(g.nameFragments.last))]
	return first + " " + last
}
