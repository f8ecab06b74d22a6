package dto

// ValidateCardRequest is the body of POST /api/cardsvalidation/validate
type ValidateCardRequest struct {
	CardNumber string `json:"cardNumber" validate:"required,notblank,min=13,max=19,card_digits"`
}

// ValidateCardResponse carries the masked number and the Luhn result
type ValidateCardResponse struct {
	CardNumber string `json:"cardNumber"`
	IsValid    bool   `json:"isValid"`
}
