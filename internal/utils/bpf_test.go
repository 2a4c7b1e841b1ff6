package utils

import (
	"testing"

	"golang.org/x/net/bpf"
)

func TestMatcherAcceptAll(t *testing.T) {
	raw, err := bpf.Assemble([]bpf.Instruction{
		bpf.RetConstant{Val: 0xFFFF},
	})
	if err != nil {
		t.Fatalf("bpf.Assemble failed: %v", err)
	}

	m, err := NewMatcher(raw)
	if err != nil {
		t.Fatalf("NewMatcher failed: %v", err)
	}

	ok, err := m.Match([]byte{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if !ok {
		t.Errorf("accept-all program rejected the packet")
	}
}

func TestMatcherRejectAll(t *testing.T) {
	raw, err := bpf.Assemble([]bpf.Instruction{
		bpf.RetConstant{Val: 0},
	})
	if err != nil {
		t.Fatalf("bpf.Assemble failed: %v", err)
	}

	m, err := NewMatcher(raw)
	if err != nil {
		t.Fatalf("NewMatcher failed: %v", err)
	}

	ok, err := m.Match([]byte{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if ok {
		t.Errorf("reject-all program accepted the packet")
	}
}

func TestMatcherEtherType(t *testing.T) {
	// Accept only EtherType IPv4 (offset 12, value 0x0800).
	raw, err := bpf.Assemble([]bpf.Instruction{
		bpf.LoadAbsolute{Off: 12, Size: 2},
		bpf.JumpIf{Cond: bpf.JumpEqual, Val: 0x0800, SkipTrue: 0, SkipFalse: 1},
		bpf.RetConstant{Val: 0xFFFF},
		bpf.RetConstant{Val: 0},
	})
	if err != nil {
		t.Fatalf("bpf.Assemble failed: %v", err)
	}

	m, err := NewMatcher(raw)
	if err != nil {
		t.Fatalf("NewMatcher failed: %v", err)
	}

	ipv4 := make([]byte, 14)
	ipv4[12], ipv4[13] = 0x08, 0x00
	arp := make([]byte, 14)
	arp[12], arp[13] = 0x08, 0x06

	if ok, _ := m.Match(ipv4); !ok {
		t.Errorf("IPv4 frame rejected")
	}
	if ok, _ := m.Match(arp); ok {
		t.Errorf("ARP frame accepted")
	}
}
