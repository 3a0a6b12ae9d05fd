package utils

import (
	"testing"
)

func TestRemoveAccents(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"hello", "hello"},
		{"cobrança", "cobranca"},
		{"notificações", "notificacoes"},
		{"café", "cafe"},
		{"José", "Jose"},
		{"São Paulo", "Sao Paulo"},
		{"naïve", "naive"},
		{"piñata", "pinata"},
	}

	for _, test := range tests {
		result := RemoveAccents(test.input)
		if result != test.expected {
			t.Errorf("RemoveAccents(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestSplitCamelCase(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"hello", []string{"hello"}},
		{"helloWorld", []string{"hello", "World"}},
		{"getUserById", []string{"get", "User", "By", "Id"}},
		{"XMLHttpRequest", []string{"XML", "Http", "Request"}},
	}

	for _, test := range tests {
		result := SplitCamelCase(test.input)
		if len(result) != len(test.expected) {
			t.Errorf("SplitCamelCase(%q) = %v, expected %v", test.input, result, test.expected)
			continue
		}
		for i, part := range result {
			if part != test.expected[i] {
				t.Errorf("SplitCamelCase(%q) = %v, expected %v", test.input, result, test.expected)
				break
			}
		}
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "general"},
		{"  ", "general"},
		{"!!!", "general"},
		{"Users", "users"},
		{"User Management", "user-management"},
		{"userAccounts", "user-accounts"},
		{"XMLHttp API", "xml-http-api"},
		{"Cobranças & Pagamentos", "cobrancas-pagamentos"},
		{"v2_orders", "v2-orders"},
	}

	for _, test := range tests {
		result := Slug(test.input, "general")
		if result != test.expected {
			t.Errorf("Slug(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}
