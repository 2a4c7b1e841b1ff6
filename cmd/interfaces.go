package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"firestige.xyz/strix/internal/pcapng"
	"firestige.xyz/strix/internal/reader"
)

// interfaceInfo is the printable view of an Interface Description Block.
type interfaceInfo struct {
	Index       int    `yaml:"index"`
	LinkType    string `yaml:"link_type"`
	SnapLen     uint32 `yaml:"snaplen"`
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description,omitempty"`
	Speed       uint64 `yaml:"speed_bps,omitempty"`
	TsResol     uint64 `yaml:"timestamp_ticks_per_second"`
	OS          string `yaml:"os,omitempty"`
	Hardware    string `yaml:"hardware,omitempty"`
}

var interfacesCmd = &cobra.Command{
	Use:   "interfaces <file>",
	Short: "List capture interfaces",
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

		var infos []interfaceInfo
		for {
			block, err := r.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}

			idb, ok := block.(pcapng.InterfaceDescription)
			if !ok {
				continue
			}

			info := interfaceInfo{
				Index:       len(infos),
				LinkType:    idb.LinkType.String(),
				SnapLen:     idb.SnapLen,
				Name:        idb.Name(),
				Description: idb.Description(),
				TsResol:     idb.TimestampResolution(),
			}
			for _, opt := range idb.Options {
				switch v := opt.(type) {
				case pcapng.IfSpeed:
					info.Speed = uint64(v)
				case pcapng.IfOS:
					info.OS = string(v)
				case pcapng.IfHardware:
					info.Hardware = string(v)
				}
			}
			infos = append(infos, info)
		}

		if outputFormat == "yaml" {
			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(infos)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "IDX\tLINKTYPE\tSNAPLEN\tNAME\tDESCRIPTION")
		for _, info := range infos {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n",
				info.Index, info.LinkType, info.SnapLen, info.Name, info.Description)
		}
		return w.Flush()
	},
}
