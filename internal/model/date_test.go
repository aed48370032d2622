package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "Given an ISO day When parsing Then succeeds", in: "2024-03-10"},
		{name: "Given a timestamp When parsing Then fails", in: "2024-03-10T10:00:00Z", wantErr: true},
		{name: "Given a day-first date When parsing Then fails", in: "10/03/2024", wantErr: true},
		{name: "Given an impossible day When parsing Then fails", in: "2024-02-30", wantErr: true},
		{name: "Given an empty string When parsing Then fails", in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.in, d)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.String() != tt.in {
				t.Errorf("String() = %q, want %q", d.String(), tt.in)
			}
		})
	}
}

func TestDateJSON(t *testing.T) {
	var body struct {
		In  Date `json:"in"`
		Out Date `json:"out"`
	}
	if err := json.Unmarshal([]byte(`{"in":"2024-05-01","out":null}`), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.In.String() != "2024-05-01" || !body.Out.IsZero() {
		t.Fatalf("unexpected decode: %+v", body)
	}
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"in":"2024-05-01","out":null}` {
		t.Errorf("marshal = %s", b)
	}
	if err := json.Unmarshal([]byte(`{"in":"May 1"}`), &body); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestDateScan(t *testing.T) {
	want := "2024-01-31"
	sources := []any{
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		[]byte("2024-01-31"),
		"2024-01-31 00:00:00",
	}
	for _, src := range sources {
		var d Date
		if err := d.Scan(src); err != nil {
			t.Fatalf("Scan(%T): %v", src, err)
		}
		if d.String() != want {
			t.Errorf("Scan(%T) = %s, want %s", src, d, want)
		}
	}
	var d Date
	if err := d.Scan(42); err == nil {
		t.Error("expected error scanning int")
	}
	if v, _ := (Date{}).Value(); v != nil {
		t.Errorf("zero Value() = %v, want nil", v)
	}
}

func TestBookingNights(t *testing.T) {
	mk := func(in, out string) Booking {
		a, _ := ParseDate(in)
		b, _ := ParseDate(out)
		return Booking{CheckIn: a, CheckOut: b}
	}
	if n := mk("2024-01-01", "2024-01-04").Nights(); n != 3 {
		t.Errorf("three night stay = %d", n)
	}
	if n := mk("2024-01-01", "2024-01-01").Nights(); n != 1 {
		t.Errorf("same day stay = %d, want 1", n)
	}
	if n := mk("2024-02-28", "2024-03-01").Nights(); n != 2 {
		t.Errorf("leap year stay = %d, want 2", n)
	}
}

func TestToCents(t *testing.T) {
	if c := ToCents(0.1 + 0.2); c != 30 {
		t.Errorf("ToCents(0.1+0.2) = %d", c)
	}
	if c := ToCents(199.99); c != 19999 {
		t.Errorf("ToCents(199.99) = %d", c)
	}
}

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		name     string
		from, to Date
		want     int
	}{
		{name: "Given the same day When counting Then zero", from: NewDate(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)), to: NewDate(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)), want: 0},
		{name: "Given a leap February When counting Then includes the 29th", from: NewDate(time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)), to: NewDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)), want: 2},
		{name: "Given unnormalised times When counting Then whole days only", from: Date{time.Date(2024, 5, 1, 23, 30, 0, 0, time.UTC)}, to: Date{time.Date(2024, 5, 3, 0, 15, 0, 0, time.UTC)}, want: 2},
		{name: "Given a reversed range When counting Then negative", from: NewDate(time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)), to: NewDate(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)), want: -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.DaysUntil(tt.to); got != tt.want {
				t.Errorf("DaysUntil = %d, want %d", got, tt.want)
			}
		})
	}
}
