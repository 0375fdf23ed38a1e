package models

import (
	"strings"
	"time"
)

// SubscriptionStatus is the lifecycle state of a Subscription.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
)

// Subscription ties a user to a pricing plan and tracks solution generations
// used in the current month. MaxGenerations is informational: no component
// refuses work when the counter exceeds it.
type Subscription struct {
	ID                 string             `json:"id" firestore:"-"`
	UserID             *string            `json:"userId" firestore:"userId"`
	PlanType           string             `json:"planType" firestore:"planType"`
	Status             SubscriptionStatus `json:"status" firestore:"status"`
	StartDate          time.Time          `json:"startDate" firestore:"startDate"`
	EndDate            *time.Time         `json:"endDate" firestore:"endDate"`
	MonthlyGenerations int                `json:"monthlyGenerations" firestore:"monthlyGenerations"`
	MaxGenerations     *int               `json:"maxGenerations" firestore:"maxGenerations"`
}

// NewSubscription holds the caller-supplied fields of a new subscription.
// An empty Status defaults to active.
type NewSubscription struct {
	UserID         *string
	PlanType       string
	Status         SubscriptionStatus
	EndDate        *time.Time
	MaxGenerations *int
}

// Plan describes one entry of the pricing catalogue.
type Plan struct {
	Type           string   `json:"planType"`
	Name           string   `json:"name"`
	Price          string   `json:"price"`
	Period         string   `json:"period"`
	MaxGenerations *int     `json:"maxGenerations"`
	Features       []string `json:"features"`
}

func intPtr(v int) *int { return &v }

// Plans is the pricing catalogue. A nil MaxGenerations means unlimited.
var Plans = []Plan{
	{
		Type:           "basic",
		Name:           "BASIC",
		Price:          "₹2 Lakhs",
		Period:         "per year",
		MaxGenerations: intPtr(5),
		Features: []string{
			"Basic DSB solution generation",
			"Standard dashboards",
			"Email support",
			"5 solution generations/month",
		},
	},
	{
		Type:   "professional",
		Name:   "PROFESSIONAL",
		Price:  "₹8 Lakhs",
		Period: "per year",
		Features: []string{
			"Advanced AI-powered solutions",
			"Custom industry dashboards",
			"Priority phone support",
			"Unlimited generations",
			"API access",
		},
	},
	{
		Type:   "enterprise",
		Name:   "ENTERPRISE",
		Price:  "₹25+ Lakhs",
		Period: "per year",
		Features: []string{
			"Full consulting integration",
			"Dedicated account manager",
			"Custom AI model training",
			"On-site implementation",
		},
	},
}

// FindPlan looks a plan up by type, case-insensitively.
func FindPlan(planType string) (Plan, bool) {
	for _, p := range Plans {
		if strings.EqualFold(p.Type, planType) {
			return p, true
		}
	}
	return Plan{}, false
}
