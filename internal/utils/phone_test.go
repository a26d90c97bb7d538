package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatToNumber(t *testing.T) {
	assert.Equal(t, "243 971955445", FormatToNumber("243971955445"))
	assert.Equal(t, "24 397195544", FormatToNumber("24397195544"))
	assert.Equal(t, "0 971955445", FormatToNumber("0971955445"))
	assert.Equal(t, "", FormatToNumber(""))
}

func TestFormatToNumberIsIdempotent(t *testing.T) {
	once := FormatToNumber("243971955445")
	assert.Equal(t, "243 971955445", once)
	assert.Equal(t, once, FormatToNumber(once))
	assert.Equal(t, "243 971955445", FormatToNumber(FormatToNumber(FormatToNumber("243971955445"))))
}

func TestValidateAsPhoneNumber(t *testing.T) {
	testCases := []struct {
		tel  string
		want bool
	}{
		{tel: "243971955445", want: true},
		{tel: "243 971955445", want: true},
		{tel: "0971955445", want: true},
		{tel: "12345", want: false},
		{tel: "243abc955445", want: false},
		{tel: "", want: false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, ValidateAsPhoneNumber(tc.tel), "tel=%q", tc.tel)
	}
}
