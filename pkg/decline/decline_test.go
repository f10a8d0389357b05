package decline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantOK   bool
		wantCode Code
	}{
		{"одобрено", "0000", true, CodeApproved},
		{"утерянная карта", "1008", true, CodeDeclinedLostCard},
		{"пробелы вокруг кода", " 1016 ", true, CodeDeclinedInsufficientFunds},
		{"неизвестный код", "9876", false, ""},
		{"пустой код", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := Classify(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		raw      string
		expected Category
	}{
		{"0013", CategoryApproved},
		{"1000", CategoryDeclined},
		{"1999", CategoryDeclined},
		{"5021", CategoryInternalError},
		{"9111", CategorySystemError},
		{"3000", CategoryUnknown},
		{"", CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategoryOf(tt.raw))
		})
	}
}

func TestCanRetry(t *testing.T) {
	denied := []string{"1001", "1002", "1008", "1009", "1025", "1030", "1032", "1033", "1042", "1043", "1070", "1071", "9200", "5021"}
	for _, raw := range denied {
		t.Run("запрещён "+raw, func(t *testing.T) {
			assert.False(t, CanRetry(raw))
			code, ok := Classify(raw)
			require.True(t, ok)
			assert.False(t, code.CanRetry())
		})
	}

	for _, raw := range []string{"1000", "1016", "5006", "9111", "9876"} {
		t.Run("разрешён "+raw, func(t *testing.T) {
			assert.True(t, CanRetry(raw))
		})
	}
}

func TestIsFraudRelated(t *testing.T) {
	assert.True(t, IsFraudRelated("1002"))
	assert.True(t, IsFraudRelated("1043"))
	assert.True(t, IsFraudRelated("1070"))
	assert.False(t, IsFraudRelated("1008"))
	assert.False(t, IsFraudRelated("9876"))
}

func TestCodes_AllHaveMessages(t *testing.T) {
	codes := Codes()
	require.NotEmpty(t, codes)
	assert.Equal(t, CodeApproved, codes[0])
	assert.Equal(t, CodeSystemError, codes[len(codes)-1])

	for _, c := range codes {
		assert.NotEmpty(t, c.Message(), "код %s без сообщения", c)
		assert.NotEqual(t, CategoryUnknown, c.Category(), "код %s без категории", c)
	}
}

func TestDescribe(t *testing.T) {
	info := Describe("1008")
	assert.Equal(t, Info{
		Code:     CodeDeclinedLostCard,
		Message:  "Cartão reportado como perdido",
		Category: CategoryDeclined,
		CanRetry: false,
		IsFraud:  false,
		Known:    true,
	}, info)

	unknown := Describe("1999")
	assert.False(t, unknown.Known)
	assert.Empty(t, unknown.Message)
	assert.Equal(t, CategoryDeclined, unknown.Category)
	assert.True(t, unknown.CanRetry)
}
