package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	assert.NoError(t, Email("user@example.com"))
	assert.NoError(t, Email("a.b+c@sub.domain.org"))
	assert.Error(t, Email(""))
	assert.Error(t, Email("plainaddress"))
	assert.Error(t, Email("user@nodot"))
	assert.Error(t, Email("user @example.com"))
}

func TestPassword(t *testing.T) {
	assert.NoError(t, Password("secret1"))
	assert.Error(t, Password("12345"))
	assert.Error(t, Password(""))
}

func TestAmount(t *testing.T) {
	assert.NoError(t, Amount(0.01))
	assert.Error(t, Amount(0))
	assert.Error(t, Amount(-10))
}

func TestDisplayName(t *testing.T) {
	assert.NoError(t, DisplayName("Jo"))
	assert.Error(t, DisplayName("J"))
	assert.Error(t, DisplayName("  a  "))
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Field: "amount", Message: "please enter a valid amount"}
	assert.Equal(t, "amount: please enter a valid amount", err.Error())
}
