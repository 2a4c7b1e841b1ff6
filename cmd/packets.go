package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"firestige.xyz/strix/internal/log"
	"firestige.xyz/strix/internal/pcapng"
	"firestige.xyz/strix/internal/reader"
	"firestige.xyz/strix/internal/utils"
)

var (
	packetFilter string
	packetLimit  int
)

// packetSummary is the printable view of one Enhanced Packet Block.
type packetSummary struct {
	Index       int     `yaml:"index"`
	Interface   uint32  `yaml:"interface"`
	Time        float64 `yaml:"time"`
	CapturedLen uint32  `yaml:"captured_len"`
	OriginalLen uint32  `yaml:"original_len"`
	Layers      string  `yaml:"layers"`
	Flow        string  `yaml:"flow,omitempty"`
}

var packetsCmd = &cobra.Command{
	Use:   "packets <file>",
	Short: "Summarize captured packets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open capture file: %w", err)
		}
		defer f.Close()

		r, err := reader.NewReader(f)
		if err != nil {
			return err
		}

		// One filter program per link type, compiled on first use.
		matchers := make(map[pcapng.LinkType]*utils.Matcher)

		var summaries []packetSummary
		index := 0
		for packetLimit <= 0 || len(summaries) < packetLimit {
			block, err := r.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}

			epb, ok := block.(pcapng.EnhancedPacket)
			if !ok {
				continue
			}

			interfaces := r.Interfaces()
			if int(epb.InterfaceID) >= len(interfaces) {
				return fmt.Errorf("packet references unknown interface %d", epb.InterfaceID)
			}
			idb := interfaces[epb.InterfaceID]
			index++

			if packetFilter != "" {
				m, err := matcherForLinkType(matchers, idb, packetFilter)
				if err != nil {
					return err
				}
				ok, err := m.Match(epb.Data)
				if err != nil {
					log.GetLogger().WithError(err).Warnf("filter failed on packet %d", index)
					continue
				}
				if !ok {
					continue
				}
			}

			summaries = append(summaries, summarize(epb, idb, index))
		}

		if outputFormat == "yaml" {
			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(summaries)
		}

		out := cmd.OutOrStdout()
		for _, s := range summaries {
			flow := s.Flow
			if flow != "" {
				flow = " " + flow
			}
			fmt.Fprintf(out, "%6d  if%d  %.6f  %d/%d  %s%s\n",
				s.Index, s.Interface, s.Time, s.CapturedLen, s.OriginalLen, s.Layers, flow)
		}
		return nil
	},
}

func init() {
	packetsCmd.Flags().StringVarP(&packetFilter, "filter", "f", "",
		"BPF filter expression (tcpdump syntax)")
	packetsCmd.Flags().IntVarP(&packetLimit, "limit", "n", 0,
		"stop after N matching packets (0 = all)")
}

func matcherForLinkType(matchers map[pcapng.LinkType]*utils.Matcher, idb pcapng.InterfaceDescription, filter string) (*utils.Matcher, error) {
	if m, ok := matchers[idb.LinkType]; ok {
		return m, nil
	}

	// libpcap's compiler addresses link types as a single byte.
	if idb.LinkType > 0xFF {
		return nil, fmt.Errorf("cannot compile filter for link type %s", idb.LinkType)
	}
	snaplen := int(idb.SnapLen)
	if snaplen == 0 {
		snaplen = 65535
	}
	raw, err := utils.CompileFilter(filter, layers.LinkType(idb.LinkType), snaplen)
	if err != nil {
		return nil, err
	}
	m, err := utils.NewMatcher(raw)
	if err != nil {
		return nil, err
	}
	matchers[idb.LinkType] = m
	return m, nil
}

// summarize decodes the packet bytes with gopacket under the owning
// interface's link type and condenses the result to one line.
func summarize(epb pcapng.EnhancedPacket, idb pcapng.InterfaceDescription, index int) packetSummary {
	s := packetSummary{
		Index:       index,
		Interface:   epb.InterfaceID,
		Time:        float64(epb.Timestamp()) / float64(idb.TimestampResolution()),
		CapturedLen: epb.CapturedLen,
		OriginalLen: epb.OriginalLen,
	}

	// gopacket's link-type registry covers codes up to 255; anything higher
	// stays undecoded.
	if idb.LinkType > 0xFF {
		s.Layers = idb.LinkType.String()
		return s
	}
	pkt := gopacket.NewPacket(epb.Data, layers.LinkType(idb.LinkType), gopacket.Lazy)

	var names []string
	for _, layer := range pkt.Layers() {
		names = append(names, layer.LayerType().String())
	}
	s.Layers = strings.Join(names, "/")

	if net := pkt.NetworkLayer(); net != nil {
		flow := net.NetworkFlow()
		s.Flow = fmt.Sprintf("%s > %s", flow.Src(), flow.Dst())
		if transport := pkt.TransportLayer(); transport != nil {
			tf := transport.TransportFlow()
			s.Flow = fmt.Sprintf("%s:%s > %s:%s", flow.Src(), tf.Src(), flow.Dst(), tf.Dst())
		}
	}
	return s
}
