package utils

import (
	"fmt"

	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
	"golang.org/x/net/bpf"
)

// CompileFilter compiles a tcpdump filter expression against the given link
// type and snap length into raw BPF instructions.
func CompileFilter(filter string, linkType layers.LinkType, snapLen int) ([]bpf.RawInstruction, error) {
	pcapBpf, err := pcap.CompileBPFFilter(linkType, snapLen, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to compile BPF filter: %w", err)
	}

	rawBpf := make([]bpf.RawInstruction, len(pcapBpf))
	for i, ins := range pcapBpf {
		rawBpf[i] = bpf.RawInstruction{Op: ins.Code, Jt: ins.Jt, Jf: ins.Jf, K: ins.K}
	}
	return rawBpf, nil
}

// Matcher runs a compiled BPF program against raw packet bytes.
type Matcher struct {
	vm *bpf.VM
}

// NewMatcher builds a Matcher from raw BPF instructions.
func NewMatcher(raw []bpf.RawInstruction) (*Matcher, error) {
	instructions, allDecoded := bpf.Disassemble(raw)
	if !allDecoded {
		return nil, fmt.Errorf("BPF program contains undecodable instructions")
	}

	vm, err := bpf.NewVM(instructions)
	if err != nil {
		return nil, fmt.Errorf("failed to build BPF VM: %w", err)
	}
	return &Matcher{vm: vm}, nil
}

// Match reports whether the packet is accepted by the filter.
func (m *Matcher) Match(packet []byte) (bool, error) {
	n, err := m.vm.Run(packet)
	if err != nil {
		return false, fmt.Errorf("BPF VM run failed: %w", err)
	}
	return n > 0, nil
}
