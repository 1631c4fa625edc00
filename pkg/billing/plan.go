package billing

// Plan describes a subscription tier.
// Cost is expressed in minor currency units per member per billing period.
type Plan struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Type PlanType `json:"type"`
	Cost int64    `json:"cost"`
}

// FreePlan returns the plan that stands in when an owner has no subscription.
func FreePlan() Plan {
	return Plan{
		ID:   "free",
		Name: "Free",
		Type: PlanTypeFree,
	}
}

// IsFree reports whether the plan is the free tier.
// Plans without a type are treated as free so incomplete records never unlock paid affordances.
func (p Plan) IsFree() bool {
	return p.Type == PlanTypeFree || p.Type == ""
}
