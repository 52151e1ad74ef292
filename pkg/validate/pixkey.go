package validate

import "regexp"

// PIX key shapes per the central bank DICT rules. EVP ("random") keys are
// plain v4 UUIDs.
var (
	cpfRe   = regexp.MustCompile(`^\d{11}$`)
	cnpjRe  = regexp.MustCompile(`^\d{14}$`)
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)
	evpRe   = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
)

// IsPixKey reports whether key is structurally valid for the given key type
// (CPF, CNPJ, EMAIL, PHONE or RANDOM).
func IsPixKey(keyType, key string) bool {
	switch keyType {
	case "CPF":
		return cpfRe.MatchString(key)
	case "CNPJ":
		return cnpjRe.MatchString(key)
	case "EMAIL":
		return emailRe.MatchString(key) && len(key) <= 255
	case "PHONE":
		return phoneRe.MatchString(key)
	case "RANDOM":
		return evpRe.MatchString(key)
	default:
		return false
	}
}
