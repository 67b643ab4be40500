package models

import "time"

// CardInfo carries the raw card fields entered at checkout. They are
// forwarded to the processor once and must never be stored or logged.
type CardInfo struct {
	Name     string `json:"card_name"`
	Number   string `json:"card_number"`
	ExpMonth string `json:"card_exp_month"`
	ExpYear  string `json:"card_exp_year"`
	CVC      string `json:"card_cvc"`
}

type Address struct {
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	CountryCode string `json:"country_code"`
}

type CartItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderSubmission is one checkout attempt as handed over by the host
// commerce application. Created fresh per attempt, never persisted
// as-is.
type OrderSubmission struct {
	Price       float64    `json:"price"`
	Currency    string     `json:"currency"`
	PurchaseKey string     `json:"purchase_key"`
	Date        string     `json:"date"`
	Email       string     `json:"email"`
	IP          string     `json:"-"`
	Address     Address    `json:"address"`
	Card        CardInfo   `json:"card_info"`
	Cart        []CartItem `json:"cart_details"`
	PaymentMode string     `json:"payment_mode"`

	// HostErrors carries validation messages the host platform's own
	// checkout validators raised before handing the attempt over. Any
	// entry blocks the purchase outright.
	HostErrors []string `json:"host_errors,omitempty"`
}

// PaymentRecord is what gets written to the order store once the
// processor has accepted the sale. No card fields ever land here.
type PaymentRecord struct {
	ID            string
	PurchaseKey   string
	Email         string
	Price         float64
	Currency      string
	Status        string
	TransactionID string
	CartJSON      string
	BuyerName     string
	Date          time.Time
}

const (
	PaymentStatusPending   = "pending"
	PaymentStatusComplete  = "publish"
	PaymentStatusReconcile = "reconcile"
)
