package paylane

import "encoding/json"

// Wire shapes for the PayLane card sale call. Field names follow the
// processor's REST API exactly.

type Sale struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
}

type CustomerAddress struct {
	StreetHouse string `json:"street_house"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	CountryCode string `json:"country_code"`
}

type Customer struct {
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	IP      string          `json:"ip"`
	Address CustomerAddress `json:"address"`
}

type Card struct {
	CardNumber      string `json:"card_number"`
	ExpirationMonth string `json:"expiration_month"`
	ExpirationYear  string `json:"expiration_year"`
	NameOnCard      string `json:"name_on_card"`
	CardCode        string `json:"card_code"`
}

type SaleRequest struct {
	Sale     Sale     `json:"sale"`
	Customer Customer `json:"customer"`
	Card     Card     `json:"card"`
}

type saleError struct {
	ErrorNumber      string `json:"error_number"`
	ErrorDescription string `json:"error_description"`
}

// saleID tolerates both wire renderings of id_sale: a JSON string and
// a bare number. PayLane has shipped both over the years.
type saleID string

func (s *saleID) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = saleID(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = saleID(num.String())
	return nil
}

// saleResponseWire mirrors the raw response body. Success is a pointer
// so a body without the discriminator can be told apart from
// success=false.
type saleResponseWire struct {
	Success *bool      `json:"success"`
	IDSale  saleID     `json:"id_sale"`
	Error   *saleError `json:"error"`
}

// SaleResponse is the decoded processor verdict. Exactly one of the
// two variants is populated.
type SaleResponse struct {
	Success          bool
	IDSale           string
	ErrorNumber      string
	ErrorDescription string
}
