package mpesa

import "strings"

// NormalizePhone converts local Kenyan numbers to the 254 international
// form the gateway expects: "0712 345 678" becomes "254712345678".
func NormalizePhone(phone string) string {
	p := strings.Join(strings.Fields(phone), "")
	p = strings.TrimPrefix(p, "+")

	if strings.HasPrefix(p, "0") {
		p = "254" + p[1:]
	}

	return p
}
