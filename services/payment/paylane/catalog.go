package paylane

// errorCatalog maps PayLane's numeric error codes to messages safe to
// show at checkout. Built once, read-only afterwards. Codes group
// roughly by meaning: 3xx direct debit and field validation, 4xx card
// and sale validation, 5xx server side, 6xx fraud and blacklists, 7xx
// 3-D Secure.
var errorCatalog = map[string]string{
	"302": "Direct debit is not accessible for this country.",
	"303": "Direct debit declined.",
	"312": "Account holder name is not valid.",
	"313": "Customer name is not valid.",
	"314": "Customer email is not valid.",
	"315": "Customer address is not valid.",
	"316": "Customer city is not valid.",
	"317": "Customer zip code is not valid.",
	"318": "Customer state is not valid.",
	"319": "Customer country is not valid.",
	"320": "Amount is not valid.",
	"321": "Amount is below merchant threshold.",
	"322": "Currency code is not valid.",
	"323": "Customer IP address is not valid.",
	"324": "Transaction description is not valid.",
	"325": "Account country is not valid.",
	"326": "Bank code is not valid.",
	"327": "Account number is not valid.",
	"401": "Multiple transaction lock triggered. Please try again in a moment.",
	"402": "Payment gateway error. Please try again later.",
	"403": "Card declined.",
	"404": "Transaction in this currency is not allowed.",
	"405": "Unknown payment method or method not set.",
	"406": "More than one payment method provided.",
	"407": "Capture later not possible with this payment method.",
	"408": "Feature not available for this payment method.",
	"409": "Overriding defaults not allowed for this merchant account.",
	"410": "Unsupported payment method.",
	"411": "Card number format is not valid.",
	"412": "Card expiration year is not valid.",
	"413": "Card expiration month is not valid.",
	"414": "Card expiration year is in the past.",
	"415": "Card has expired.",
	"416": "Card code format is not valid.",
	"417": "Name on card is not valid.",
	"418": "Cardholder name is not valid.",
	"419": "Cardholder email is not valid.",
	"420": "Cardholder address is not valid.",
	"421": "Cardholder city is not valid.",
	"422": "Cardholder zip is not valid.",
	"423": "Cardholder state is not valid.",
	"424": "Cardholder country is not valid.",
	"425": "Amount is not valid.",
	"426": "Amount is below merchant threshold.",
	"427": "Currency code is not valid.",
	"428": "Client IP is not valid.",
	"429": "Purchase description is not valid.",
	"430": "Unknown card type or card number invalid.",
	"431": "Card issue number is not valid.",
	"432": "Fraud check on is not valid.",
	"433": "AVS level is not valid.",
	"441": "Sale authorization ID is not valid.",
	"442": "Sale authorization ID not found or authorization has been closed.",
	"443": "Capture sale amount greater than the authorization amount.",
	"470": "Resale without card code is not allowed for this merchant account.",
	"471": "Sale ID is not valid.",
	"472": "Resale amount is not valid.",
	"473": "Amount is below merchant account threshold.",
	"474": "Resale currency code is not valid.",
	"475": "Resale description is not valid.",
	"476": "Sale ID not found.",
	"477": "Cannot resale. Chargeback assigned to sale ID.",
	"478": "Cannot resale this sale.",
	"479": "Card has expired.",
	"480": "Cannot resale. Reversal assigned to sale ID.",
	"481": "Sale ID is not valid.",
	"482": "Refund amount is not valid.",
	"483": "Refund reason is not valid.",
	"484": "Sale ID not found.",
	"485": "Cannot refund. Chargeback assigned to sale ID.",
	"486": "Cannot refund. Exceeded available refund amount.",
	"487": "Cannot refund. Sale is already refunded.",
	"488": "Cannot refund this sale.",
	"491": "Sale ID is not set or empty.",
	"492": "Sale ID is too large.",
	"493": "Sale ID is not valid.",
	"501": "Internal server error. Please try again later.",
	"502": "Payment gateway error. Please try again later.",
	"503": "Payment method not allowed for this merchant account.",
	"505": "This merchant account is inactive.",
	"601": "Fraud attempt detected.",
	"611": "Blacklisted account number found.",
	"612": "Blacklisted card country found.",
	"613": "Blacklisted card number found.",
	"614": "Blacklisted customer country found.",
	"615": "Blacklisted customer email found.",
	"616": "Blacklisted customer IP address found.",
	"701": "3-D Secure authentication server error. Please try again or use card not enrolled in 3-D Secure.",
	"702": "3-D Secure authentication server problem. Please try again or use card not enrolled in 3-D Secure.",
	"703": "3-D Secure authentication failed. Credit card cannot be accepted for payment.",
	"704": "3-D Secure authentication failed. Card declined.",
	"711": "Card number format is not valid.",
	"712": "Card expiration year is not valid.",
	"713": "Card expiration month is not valid.",
	"714": "Card has expired.",
	"715": "Amount is not valid.",
	"716": "Currency code is not valid.",
	"717": "Back URL is not valid.",
	"718": "Unknown card type or card number invalid.",
	"719": "Card issue number is not valid.",
	"720": "Unable to verify enrollment for 3-D Secure. You can perform a payment without 3-D Secure or decline the transaction.",
	"731": "Completed authentication with this Secure3d ID not found.",
	"732": "Sale and 3-D Secure card numbers are different.",
	"733": "Sale and 3-D Secure card expiration years are different.",
	"734": "Sale and 3-D Secure card expiration months are different.",
	"735": "Sale and 3-D Secure amounts are different.",
	"736": "Sale and 3-D Secure currency codes are different.",
	"737": "Sale was performed for this Secure3d ID.",
}

// Translate resolves a processor error code to the catalog message.
// Unknown codes fall through to the processor's own description, which
// PayLane keeps user-presentable.
func Translate(errorNumber, fallbackDescription string) string {
	if msg, ok := errorCatalog[errorNumber]; ok {
		return msg
	}
	return fallbackDescription
}

// KnownErrorCodes returns a copy of the catalog key set.
func KnownErrorCodes() []string {
	codes := make([]string, 0, len(errorCatalog))
	for code := range errorCatalog {
		codes = append(codes, code)
	}
	return codes
}
