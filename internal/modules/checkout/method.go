package checkout

import "regexp"

var (
	cardNumberRe = regexp.MustCompile(`^\d{12}$`)
	tngPhoneRe   = regexp.MustCompile(`^\d{9,10}$`)
)

const (
	MethodCard    = "Card"
	MethodTnG     = "TnG"
	MethodEWallet = "EWallet"
)

// Method is a closed set of payment methods. Each variant carries only
// its own required fields and is validated at construction, so a
// Method value in hand is always well-formed.
type Method interface {
	Kind() string
	isMethod()
}

type Card struct {
	Number string
	Bank   string
}

func (Card) Kind() string { return MethodCard }
func (Card) isMethod()    {}

func NewCard(number, bank string) (Card, error) {
	if bank == "" {
		return Card{}, &FieldError{Field: "bank", Message: "Please select bank"}
	}
	if !cardNumberRe.MatchString(number) {
		return Card{}, &FieldError{Field: "card_number", Message: "Credit card number must be exactly 12 digits"}
	}
	return Card{Number: number, Bank: bank}, nil
}

type TnG struct {
	Phone string
}

func (TnG) Kind() string { return MethodTnG }
func (TnG) isMethod()    {}

func NewTnG(phone string) (TnG, error) {
	if !tngPhoneRe.MatchString(phone) {
		return TnG{}, &FieldError{Field: "tng_number", Message: "Phone number must be exactly 9 or 10 digits"}
	}
	return TnG{Phone: phone}, nil
}

type EWallet struct{}

func (EWallet) Kind() string { return MethodEWallet }
func (EWallet) isMethod()    {}

// ParseMethod builds the tagged variant from the loosely-typed request
// body.
func ParseMethod(req PaymentMethodRequest) (Method, error) {
	switch req.PaymentMethod {
	case "":
		return nil, ErrNoPaymentMethod
	case MethodCard:
		return NewCard(req.CardNumber, req.Bank)
	case MethodTnG:
		return NewTnG(req.TngNumber)
	case MethodEWallet:
		return EWallet{}, nil
	default:
		return nil, ErrUnknownPaymentMethod
	}
}
