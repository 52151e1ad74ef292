package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPixKey(t *testing.T) {
	tests := []struct {
		name    string
		keyType string
		key     string
		want    bool
	}{
		{"Valid CPF", "CPF", "12345678901", true},
		{"CPF with punctuation", "CPF", "123.456.789-01", false},
		{"Valid CNPJ", "CNPJ", "12345678000195", true},
		{"CNPJ too short", "CNPJ", "1234567800019", false},
		{"Valid email", "EMAIL", "payer@example.com", true},
		{"Email without domain", "EMAIL", "payer@", false},
		{"Valid phone", "PHONE", "+5511987654321", true},
		{"Phone without plus", "PHONE", "5511987654321", false},
		{"Valid EVP", "RANDOM", "123e4567-e89b-42d3-a456-426614174000", true},
		{"EVP wrong version", "RANDOM", "123e4567-e89b-12d3-a456-426614174000", false},
		{"Unknown key type", "IBAN", "BR1234", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPixKey(tt.keyType, tt.key))
		})
	}
}
