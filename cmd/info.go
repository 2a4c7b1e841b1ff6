package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"firestige.xyz/strix/internal/pcapng"
	"firestige.xyz/strix/internal/reader"
)

// sectionInfo is the printable view of a Section Header Block.
type sectionInfo struct {
	Version     string `yaml:"version"`
	ByteOrder   string `yaml:"byte_order"`
	Hardware    string `yaml:"hardware,omitempty"`
	OS          string `yaml:"os,omitempty"`
	Application string `yaml:"application,omitempty"`
	Comment     string `yaml:"comment,omitempty"`
}

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show the capture's section header",
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

		block, err := r.Next()
		if err != nil {
			return err
		}
		shb, ok := block.(pcapng.SectionHeader)
		if !ok {
			return fmt.Errorf("first block is not a section header")
		}

		info := sectionInfo{
			Version:   fmt.Sprintf("%d.%d", shb.MajorVersion, shb.MinorVersion),
			ByteOrder: byteOrderName(r),
		}
		for _, opt := range shb.Options {
			switch v := opt.(type) {
			case pcapng.ShbHardware:
				info.Hardware = string(v)
			case pcapng.ShbOS:
				info.OS = string(v)
			case pcapng.ShbUserAppl:
				info.Application = string(v)
			case pcapng.Comment:
				info.Comment = string(v)
			}
		}

		if outputFormat == "yaml" {
			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(info)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "pcapng version: %s\n", info.Version)
		fmt.Fprintf(out, "byte order:     %s\n", info.ByteOrder)
		if info.Hardware != "" {
			fmt.Fprintf(out, "hardware:       %s\n", info.Hardware)
		}
		if info.OS != "" {
			fmt.Fprintf(out, "os:             %s\n", info.OS)
		}
		if info.Application != "" {
			fmt.Fprintf(out, "application:    %s\n", info.Application)
		}
		if info.Comment != "" {
			fmt.Fprintf(out, "comment:        %s\n", info.Comment)
		}
		return nil
	},
}

func byteOrderName(r *reader.Reader) string {
	if r.ByteOrder().String() == "BigEndian" {
		return "big-endian"
	}
	return "little-endian"
}
