package model

// Member is the authenticated user profile kept in the users collection,
// keyed by the identity provider's subject.
type Member struct {
	ID       string `json:"id" firestore:"-"`
	Email    string `json:"email" firestore:"email"`
	Name     string `json:"name" firestore:"name"`
	PhotoURL string `json:"photoURL" firestore:"photoURL"`
	Handle   string `json:"boj_id,omitempty" firestore:"boj_id"`
}

// RegistryRecord is a row of the club's member registry (the signedUser
// collection), maintained by the club operators.
type RegistryRecord struct {
	Handle            string `json:"boj_id" firestore:"boj_id"`
	Department        string `json:"department" firestore:"department"`
	Email             string `json:"email" firestore:"email"`
	IsProfileComplete bool   `json:"isProfileComplete" firestore:"isProfileComplete"`
	Name              string `json:"name" firestore:"name"`
	PhotoURL          string `json:"photoURL" firestore:"photoURL"`
	Quarter           string `json:"quarter" firestore:"quarter"`
	UpdatedAt         string `json:"updatedAt" firestore:"updatedAt"`
}

// PenaltyRecord is one member's accumulated penalty and payment state,
// in won. Unpaid amounts are derived, never stored.
type PenaltyRecord struct {
	Handle  string `json:"boj_id" firestore:"boj_id"`
	Name    string `json:"name" firestore:"name"`
	Penalty int    `json:"penalty" firestore:"penalty"`
	Paid    int    `json:"paid" firestore:"paid"`
}

func (p PenaltyRecord) Unpaid() int {
	return p.Penalty - p.Paid
}

// PenaltyReport is the penalty table plus its totals.
type PenaltyReport struct {
	Records      []PenaltyRecord `json:"records"`
	TotalPenalty int             `json:"totalPenalty"`
	TotalPaid    int             `json:"totalPaid"`
	TotalUnpaid  int             `json:"totalUnpaid"`
}
