package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"january", "2023-01", "Jan 2023"},
		{"december", "1999-12", "Dec 1999"},
		{"unpadded month", "2023-7", "Jul 2023"},
		{"empty passes through", "", ""},
		{"present passes through", "Present", "Present"},
		{"missing month", "2023", "2023"},
		{"trailing dash", "2023-", "2023-"},
		{"month zero", "2023-00", "2023-00"},
		{"month thirteen", "2023-13", "2023-13"},
		{"non numeric month", "2023-xy", "2023-xy"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatDate(tc.in))
		})
	}
}

func TestDateRange(t *testing.T) {
	assert.Equal(t, "Jan 2022 - Present", DateRange("2022-01", "Present"))
	assert.Equal(t, "Mar 2020 - Jun 2021", DateRange("2020-03", "2021-06"))

	// half-specified ranges are suppressed entirely
	assert.Equal(t, "", DateRange("2022-01", ""))
	assert.Equal(t, "", DateRange("", "2022-01"))
	assert.Equal(t, "", DateRange("", ""))
}
