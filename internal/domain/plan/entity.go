package plan

import (
	"regexp"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Plan names accepted by the catalog.
const (
	NameFree       = "Free Plan"
	NameStandard   = "Standard Plan"
	NamePremium    = "Premium Plan"
	NameEnterprise = "Enterprise Plan"
)

var Names = []string{NameFree, NameStandard, NamePremium, NameEnterprise}

// Plan represents a subscription plan. Features is free text; the seat
// limit is read from it.
type Plan struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	Currency  string
	Duration  string
	Features  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

var seatLimitPattern = regexp.MustCompile(`(?i)up to (\d+) employees`)

// SeatLimit extracts N from "up to N employees". ok is false when the plan
// has no limit.
func (p *Plan) SeatLimit() (limit int, ok bool) {
	m := seatLimitPattern.FindStringSubmatch(p.Features)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
