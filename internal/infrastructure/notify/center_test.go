package notify

import (
	"testing"
	"time"
)

func TestShowDeliversToSink(t *testing.T) {
	var got []Toast
	center := NewCenter(time.Minute, time.Second, func(toast Toast) {
		got = append(got, toast)
	})

	center.Show("SECURITY ALERT", "User mallory attempted risky command: rm -rf /", "alert")

	if len(got) != 1 {
		t.Fatalf("sink received %d toasts, want 1", len(got))
	}
	if got[0].Title != "SECURITY ALERT" || got[0].Kind != "alert" {
		t.Fatalf("toast = %+v", got[0])
	}
	if got[0].ID == "" {
		t.Fatal("toast missing id")
	}
	if center.Active() != 1 {
		t.Fatalf("active = %d, want 1", center.Active())
	}
}

func TestBurstStacksWithoutCoalescing(t *testing.T) {
	center := NewCenter(time.Minute, time.Second, nil)

	for i := 0; i < 5; i++ {
		center.Show("SECURITY ALERT", "same message", "alert")
	}

	if center.Active() != 5 {
		t.Fatalf("active = %d, want 5", center.Active())
	}
}

func TestToastExpiresAfterDisplayAndFade(t *testing.T) {
	center := NewCenter(20*time.Millisecond, 10*time.Millisecond, nil)

	center.Show("SECURITY ALERT", "expiring", "alert")
	if center.Active() != 1 {
		t.Fatalf("active = %d, want 1", center.Active())
	}

	deadline := time.Now().Add(time.Second)
	for center.Active() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("toast never expired")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNilSinkIsSilent(t *testing.T) {
	center := NewCenter(time.Minute, time.Second, nil)
	center.Show("SECURITY ALERT", "no sink", "alert")
	if center.Active() != 1 {
		t.Fatalf("active = %d, want 1", center.Active())
	}
}
