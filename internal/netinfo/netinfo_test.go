package netinfo

import (
	"net"
	"reflect"
	"testing"
)

func TestAddressesAbsentInterface(t *testing.T) {
	addrs, present := Addresses("definitely-not-a-real-interface0")
	if present {
		t.Fatal("expected absent interface")
	}
	if len(addrs) != 0 {
		t.Fatalf("expected no addresses, got %v", addrs)
	}
}

func TestCollectPreservesOrderAndAbsence(t *testing.T) {
	results := Collect([]string{"nope0", "nope1"})
	if len(results) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(results))
	}
	if results[0].Name != "nope0" || results[1].Name != "nope1" {
		t.Fatalf("order not preserved: %#v", results)
	}
	for _, r := range results {
		if r.Present {
			t.Fatalf("expected absent: %#v", r)
		}
	}
}

func TestIPv4Strings(t *testing.T) {
	addrs := []net.Addr{
		&net.IPNet{IP: net.ParseIP("192.168.1.5"), Mask: net.CIDRMask(24, 32)},
		&net.IPNet{IP: net.ParseIP("fe80::1"), Mask: net.CIDRMask(64, 128)},
		&net.IPAddr{IP: net.ParseIP("10.0.0.7")},
	}
	got := ipv4Strings(addrs)
	want := []string{"192.168.1.5", "10.0.0.7"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ipv4Strings = %v, want %v", got, want)
	}
}
