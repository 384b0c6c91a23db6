package verification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		draw     int
		wantCode string
	}{
		{name: "lowest draw", draw: 0, wantCode: "100000"},
		{name: "highest draw", draw: 899999, wantCode: "999999"},
		{name: "middle draw", draw: 234567, wantCode: "334567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issuer := NewIssuerWithRand(func(n int) int {
				require.Equal(t, 900000, n)
				return tt.draw
			})
			code, expiry := issuer.Issue(now)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, now.Add(time.Hour), expiry)
			assert.Len(t, code, 6)
		})
	}
}

func TestIssueDefaultRandInRange(t *testing.T) {
	issuer := NewIssuer()
	now := time.Now()
	for i := 0; i < 100; i++ {
		code, _ := issuer.Issue(now)
		require.Len(t, code, 6)
		assert.GreaterOrEqual(t, code, "100000")
		assert.LessOrEqual(t, code, "999999")
	}
}

func TestCheck(t *testing.T) {
	issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	expiry := issued.Add(time.Hour)

	tests := []struct {
		name     string
		supplied string
		now      time.Time
		want     Result
	}{
		{name: "correct code before expiry", supplied: "123456", now: issued.Add(30 * time.Minute), want: Verified},
		{name: "correct code at exact expiry instant", supplied: "123456", now: expiry, want: Verified},
		{name: "correct code just past expiry", supplied: "123456", now: expiry.Add(time.Millisecond), want: Expired},
		{name: "wrong code before expiry", supplied: "654321", now: issued.Add(30 * time.Minute), want: Invalid},
		{name: "wrong code past expiry reports expired", supplied: "654321", now: expiry.Add(time.Second), want: Expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Check("123456", expiry, tt.supplied, tt.now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckRepeatableAfterSuccess(t *testing.T) {
	issued := time.Now()
	expiry := issued.Add(time.Hour)

	// The code is not cleared on success; re-submitting the same still-valid
	// code keeps confirming Verified.
	for i := 0; i < 3; i++ {
		assert.Equal(t, Verified, Check("555555", expiry, "555555", issued.Add(time.Minute)))
	}
}
