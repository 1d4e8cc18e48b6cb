package iec21

import "testing"

func TestParseObisItemWithUnit(t *testing.T) {
	item, ok := ParseObisItem("1.8.0(00123.45*kWh)")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	want := ObisItem{Code: "1.8.0", Value: "00123.45", Unit: "kWh"}
	if item != want {
		t.Fatalf("got %+v, want %+v", item, want)
	}
}

func TestParseObisItemWithoutUnit(t *testing.T) {
	item, ok := ParseObisItem("0.9.1(12:00:00)")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if item.Code != "0.9.1" || item.Value != "12:00:00" || item.Unit != "" {
		t.Fatalf("got %+v", item)
	}
}

func TestParseObisItemNoParens(t *testing.T) {
	if _, ok := ParseObisItem("1.8.0"); ok {
		t.Fatal("expected no-parens line to fail")
	}
}

func TestParseDataBlock(t *testing.T) {
	body := "1.8.0(00123.45*kWh)\r\n2.8.0(00045.67*kWh)\r\n\r\ngarbage\r\n"
	items := ParseDataBlock(body)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2: %+v", len(items), items)
	}
	if items[0].Code != "1.8.0" || items[1].Code != "2.8.0" {
		t.Fatalf("unexpected codes: %+v", items)
	}
}
