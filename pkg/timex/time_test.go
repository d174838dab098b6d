package timex

import (
	"testing"
	"time"
)

func TestTime_UnixMethods(t *testing.T) {
	// Create a fixed time
	// 创建一个固定时间
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tt := Time(now)

	if tt.Unix() != now.Unix() {
		t.Errorf("Unix() = %v, want %v", tt.Unix(), now.Unix())
	}
	if tt.UnixMilli() != now.UnixMilli() {
		t.Errorf("UnixMilli() = %v, want %v", tt.UnixMilli(), now.UnixMilli())
	}
	if tt.UnixMicro() != now.UnixMicro() {
		t.Errorf("UnixMicro() = %v, want %v", tt.UnixMicro(), now.UnixMicro())
	}
	if tt.UnixNano() != now.UnixNano() {
		t.Errorf("UnixNano() = %v, want %v", tt.UnixNano(), now.UnixNano())
	}
}

func TestRecordTimestampRoundTrip(t *testing.T) {
	ms := time.Date(2025, 3, 4, 5, 6, 7, 891_000_000, time.UTC).UnixMilli()

	s := FormatRecord(ms)
	if s != "2025-03-04T05:06:07.891Z" {
		t.Fatalf("FormatRecord = %q", s)
	}

	back, err := ParseRecord(s)
	if err != nil {
		t.Fatalf("ParseRecord: %v", err)
	}
	if back != ms {
		t.Errorf("ParseRecord = %d, want %d", back, ms)
	}
}

func TestTime_Scan(t *testing.T) {
	var tt Time
	if err := tt.Scan("2024-05-06 07:08:09"); err != nil {
		t.Fatalf("Scan string: %v", err)
	}
	if got := time.Time(tt).Format(dbLayout); got != "2024-05-06 07:08:09" {
		t.Errorf("Scan string = %s", got)
	}
	if err := tt.Scan(nil); err != nil || !time.Time(tt).IsZero() {
		t.Errorf("Scan nil should reset, got %v %v", tt, err)
	}
	if err := tt.Scan(42); err == nil {
		t.Error("Scan int should fail")
	}
}
