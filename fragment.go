package fxql

// Function is one of the rate functions allowed inside a block.
type Function string

const (
	Buy  Function = "BUY"
	Sell Function = "SELL"
	Cap  Function = "CAP"
)

// functions lists the recognized function keywords.
var functions = map[string]Function{
	string(Buy):  Buy,
	string(Sell): Sell,
	string(Cap):  Cap,
}

// fragment is an element of the block being parsed, either a currencyPair
// or a functionCall.
type fragment interface {
	isFragment()
}

// currencyPair is always the first fragment of a block.
type currencyPair struct {
	source, dest string
}

// functionCall holds the validated but unparsed value of a function.
type functionCall struct {
	fn  Function
	raw string
}

func (currencyPair) isFragment() {}
func (functionCall) isFragment() {}
